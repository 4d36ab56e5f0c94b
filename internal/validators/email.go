package validators

import "strings"

// IsEmailDomainValid faz uma checagem sintática offline do domínio.
// Não consulta DNS: cadastro não pode depender de resolução externa.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	if !strings.Contains(domain, ".") {
		return false
	}
	return !strings.ContainsAny(domain, " ,;")
}
