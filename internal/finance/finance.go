package finance

import (
	"math"
	"strconv"
	"strings"

	"github.com/PalcoPro/band-agenda/internal/models"
)

type CommissionType string

const (
	CommissionPercentage CommissionType = "PERCENTAGE"
	CommissionFixed      CommissionType = "FIXED"
)

// ParseCommissionType cai em FIXED para qualquer valor desconhecido.
func ParseCommissionType(raw string) CommissionType {
	if CommissionType(strings.ToUpper(strings.TrimSpace(raw))) == CommissionPercentage {
		return CommissionPercentage
	}
	return CommissionFixed
}

func CommissionAmount(gross float64, typ CommissionType, value float64) float64 {
	if typ == CommissionPercentage {
		return gross * value / 100
	}
	return value
}

// ComputeNet deriva o líquido do bruto. Pode ser negativo quando os
// descontos passam do bruto; não há piso em zero, o valor negativo é o
// sinal de negócio ruim para o operador.
func ComputeNet(gross float64, typ CommissionType, commissionValue, taxes float64) float64 {
	return gross - CommissionAmount(gross, typ, commissionValue) - taxes
}

// Recompute devolve os financials com NetValue rederivado do zero.
// É chamado em toda gravação; o valor armazenado nunca é confiável.
func Recompute(f models.Financials) models.Financials {
	f.GrossValue = safeNumber(f.GrossValue)
	f.CommissionValue = safeNumber(f.CommissionValue)
	f.Taxes = safeNumber(f.Taxes)
	f.CommissionType = string(ParseCommissionType(f.CommissionType))
	f.NetValue = ComputeNet(
		f.GrossValue,
		CommissionType(f.CommissionType),
		f.CommissionValue,
		f.Taxes,
	)
	return f
}

func safeNumber(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseAmount trata os dígitos da entrada como centavos: "150000"
// vira 1500.00. Qualquer caractere não numérico é descartado.
func ParseAmount(input string) float64 {
	var digits strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	cents, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0
	}
	return float64(cents) / 100
}

// ParseDecimal converte número com vírgula decimal ("1500,50").
func ParseDecimal(raw string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
