// Package sanitize normaliza registros persistidos possivelmente
// parciais (esquemas antigos, documentos editados à mão) em entidades
// completas. Nunca falha: todo campo ausente ou malformado recebe um
// default. Idempotente por construção — sanitizar duas vezes é o mesmo
// que sanitizar uma.
package sanitize

import (
	"net/url"
	"path"
	"strings"
	"time"

	"gorm.io/datatypes"

	domain "github.com/PalcoPro/band-agenda/internal/domain/event"
	"github.com/PalcoPro/band-agenda/internal/finance"
	"github.com/PalcoPro/band-agenda/internal/models"
)

const defaultShowTime = "21:00"

// Event completa um registro de evento. Migra a coluna legada de
// contrato único para a lista de arquivos e rederiva o NetValue —
// o invariante financeiro vale em toda leitura e toda gravação.
func Event(raw models.Event, id string) models.Event {
	ev := raw

	if id != "" {
		ev.ID = id
	}

	ev.Name = strings.TrimSpace(ev.Name)
	ev.City = strings.TrimSpace(ev.City)
	ev.Venue = strings.TrimSpace(ev.Venue)
	ev.VenueAddress = strings.TrimSpace(ev.VenueAddress)
	ev.Contractor = strings.TrimSpace(ev.Contractor)
	ev.CreatedBy = strings.TrimSpace(ev.CreatedBy)

	st, ok := domain.ParseStatus(ev.Status)
	if !ok {
		st = domain.StatusReserved
	}
	ev.Status = string(st)

	// Inferência única para registro legado sem etapa de pipeline.
	if !domain.IsValidStage(ev.PipelineStage) {
		ev.PipelineStage = string(domain.InferStage(st))
	} else {
		ev.PipelineStage = strings.ToUpper(strings.TrimSpace(ev.PipelineStage))
	}

	if strings.TrimSpace(ev.Time) == "" {
		ev.Time = defaultShowTime
	}
	if ev.DurationHours <= 0 {
		ev.DurationHours = 1
	}

	ev.Financials = finance.Recompute(ev.Financials)

	// Migração: URL única legada vira lista de um elemento.
	if len(ev.ContractFiles) == 0 && ev.ContractURL != "" {
		ev.ContractFiles = datatypes.JSONSlice[models.ContractFile]{{
			Name:       legacyFileName(ev.ContractURL),
			URL:        ev.ContractURL,
			UploadedAt: ev.CreatedAt,
		}}
		ev.ContractURL = ""
	}
	if ev.ContractFiles == nil {
		ev.ContractFiles = datatypes.JSONSlice[models.ContractFile]{}
	}

	// Flag ausente: registros legados com arquivo contam como
	// "contrato recebido"; sem arquivo algum, não.
	if ev.HasContract == nil {
		v := len(ev.ContractFiles) > 0
		ev.HasContract = &v
	}

	if !domain.IsValidFormStatus(ev.ContractorFormStatus) {
		ev.ContractorFormStatus = string(domain.FormPending)
	}

	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Unix(0, 0).UTC()
	}

	return ev
}

func legacyFileName(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if name := path.Base(u.Path); name != "." && name != "/" && name != "" {
			return name
		}
	}
	return "contrato"
}

// User aplica os defaults de compatibilidade: contas anteriores ao
// fluxo de aprovação são todas ativas, e papel ausente vira MEMBER.
func User(raw models.User, id string) models.User {
	u := raw

	if id != "" {
		u.ID = id
	}

	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	if strings.TrimSpace(u.Role) == "" {
		u.Role = models.RoleMember
	}
	if strings.TrimSpace(u.Status) == "" {
		u.Status = models.UserStatusActive
	}
	if u.BandIDs == nil {
		u.BandIDs = datatypes.JSONSlice[string]{}
	}

	return u
}

// Contractor garante os campos aninhados e o país default.
func Contractor(raw models.Contractor, id string) models.Contractor {
	ct := raw

	if id != "" {
		ct.ID = id
	}

	ct.Name = strings.TrimSpace(ct.Name)

	if ct.Type != models.ContractorTypeJuridica {
		ct.Type = models.ContractorTypeFisica
	}

	addr := ct.Address.Data()
	if strings.TrimSpace(addr.Country) == "" {
		addr.Country = "Brasil"
	}
	ct.Address = datatypes.NewJSONType(addr)
	ct.AdditionalInfo = datatypes.NewJSONType(ct.AdditionalInfo.Data())

	return ct
}

// Band corrige o mínimo de integrantes.
func Band(raw models.Band, id string) models.Band {
	b := raw

	if id != "" {
		b.ID = id
	}

	b.Name = strings.TrimSpace(b.Name)
	if b.Members < 1 {
		b.Members = 1
	}

	return b
}
