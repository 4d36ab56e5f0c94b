// Package csvimport valida o arquivo de importação em massa de
// eventos. O parse divide cada linha em vírgulas, sem suporte a campos
// entre aspas — limitação herdada do formato combinado com as
// produtoras; arquivos com vírgula embutida quebram a coluna.
package csvimport

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	domain "github.com/PalcoPro/band-agenda/internal/domain/event"
	"github.com/PalcoPro/band-agenda/internal/finance"
	"github.com/PalcoPro/band-agenda/internal/models"
)

// Colunas obrigatórias, com o cabeçalho exato combinado.
const (
	colBand   = "Banda"
	colName   = "Nome do Evento"
	colDate   = "Data (DD/MM/AAAA)"
	colStatus = "Status"

	colTime       = "Hora"
	colCity       = "Cidade"
	colVenue      = "Local"
	colContractor = "Contratante"
	colGross      = "Valor Bruto"
)

var requiredColumns = []string{colBand, colName, colDate, colStatus}

var dateRe = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)

// HeaderError rejeita o arquivo inteiro antes de processar linhas.
type HeaderError struct {
	Missing []string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf(
		"colunas obrigatórias ausentes no cabeçalho: %s",
		strings.Join(e.Missing, ", "),
	)
}

// ParsedRow é o resultado por linha. Linhas são indivisíveis: qualquer
// erro exclui a linha inteira do conjunto a ser gravado.
type ParsedRow struct {
	LineNumber int           `json:"line_number"`
	Original   []string      `json:"original"`
	Event      *models.Event `json:"event,omitempty"`
	Errors     []string      `json:"errors"`
}

func (r ParsedRow) Valid() bool {
	return len(r.Errors) == 0
}

// ValidEvents extrai os eventos das linhas sem erro.
func ValidEvents(rows []ParsedRow) []models.Event {
	out := make([]models.Event, 0, len(rows))
	for _, row := range rows {
		if row.Valid() && row.Event != nil {
			out = append(out, *row.Event)
		}
	}
	return out
}

// Validate processa o texto do arquivo contra as bandas conhecidas.
// Erro não-nulo significa cabeçalho inválido (importação rejeitada por
// inteiro); erros por linha ficam acumulados em cada ParsedRow.
func Validate(fileText string, knownBands []models.Band) ([]ParsedRow, error) {
	lines := strings.Split(strings.ReplaceAll(fileText, "\r\n", "\n"), "\n")

	header := strings.Split(lines[0], ",")
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &HeaderError{Missing: missing}
	}

	bandsByName := make(map[string]models.Band, len(knownBands))
	for _, b := range knownBands {
		bandsByName[strings.ToLower(strings.TrimSpace(b.Name))] = b
	}

	var rows []ParsedRow
	for i, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, ",")
		row := ParsedRow{
			LineNumber: i + 2,
			Original:   fields,
		}

		field := func(col string) string {
			idx, ok := index[col]
			if !ok || idx >= len(fields) {
				return ""
			}
			return strings.TrimSpace(fields[idx])
		}

		// ---- Banda (match exato, sem diferenciar caixa) ----
		var band models.Band
		bandName := field(colBand)
		if b, ok := bandsByName[strings.ToLower(bandName)]; ok && bandName != "" {
			band = b
		} else {
			row.Errors = append(row.Errors,
				fmt.Sprintf("banda %q não encontrada", bandName))
		}

		// ---- Nome ----
		name := field(colName)
		if name == "" {
			row.Errors = append(row.Errors, "nome do evento é obrigatório")
		}

		// ---- Data ----
		date, ok := parseDate(field(colDate))
		if !ok {
			row.Errors = append(row.Errors,
				"data inválida, use o formato DD/MM/AAAA")
		}

		// ---- Status ----
		status, ok := domain.ParseStatus(field(colStatus))
		if !ok {
			row.Errors = append(row.Errors, fmt.Sprintf(
				"status %q inválido; valores permitidos: %s",
				field(colStatus),
				strings.Join(domain.StatusNames(), ", "),
			))
		}

		// ---- Opcionais com default ----
		hour := field(colTime)
		if hour == "" {
			hour = "21:00"
		}

		// Valor não numérico cai para 0 em silêncio, sem erro.
		gross, ok := finance.ParseDecimal(field(colGross))
		if !ok {
			gross = 0
		}

		if row.Valid() {
			row.Event = &models.Event{
				Name:       name,
				Date:       date,
				Time:       hour,
				City:       field(colCity),
				Venue:      field(colVenue),
				BandID:     band.ID,
				Contractor: field(colContractor),
				Status:     string(status),
				Financials: models.Financials{
					GrossValue:     gross,
					CommissionType: string(finance.CommissionFixed),
					NetValue:       gross,
				},
			}
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// parseDate exige DD/MM/AAAA e fixa meio-dia UTC para a data não
// escorregar de dia em nenhum fuso.
func parseDate(raw string) (time.Time, bool) {
	m := dateRe.FindStringSubmatch(raw)
	if m == nil {
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	t := time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month || t.Year() != year {
		return time.Time{}, false
	}
	return t, true
}
