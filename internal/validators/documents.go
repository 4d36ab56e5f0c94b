package validators

import "strings"

// Validação de dígito verificador de CPF/CNPJ. Campos vazios são
// aceitos — obrigatoriedade é decidida pelo chamador conforme o tipo
// do contratante.

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allSame(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

func IsValidCPF(cpf string) bool {
	d := onlyDigits(cpf)
	if len(d) != 11 || allSame(d) {
		return false
	}

	for _, n := range []int{9, 10} {
		sum := 0
		for i := 0; i < n; i++ {
			sum += int(d[i]-'0') * (n + 1 - i)
		}
		check := (sum * 10) % 11 % 10
		if check != int(d[n]-'0') {
			return false
		}
	}
	return true
}

func IsValidCNPJ(cnpj string) bool {
	d := onlyDigits(cnpj)
	if len(d) != 14 || allSame(d) {
		return false
	}

	weights := []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}

	for _, n := range []int{12, 13} {
		sum := 0
		for i := 0; i < n; i++ {
			sum += int(d[i]-'0') * weights[len(weights)-n+i]
		}
		check := sum % 11
		if check < 2 {
			check = 0
		} else {
			check = 11 - check
		}
		if check != int(d[n]-'0') {
			return false
		}
	}
	return true
}
