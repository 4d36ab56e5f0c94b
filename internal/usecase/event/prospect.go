package event

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/PalcoPro/band-agenda/internal/audit"
	domain "github.com/PalcoPro/band-agenda/internal/domain/event"
	"github.com/PalcoPro/band-agenda/internal/httperr"
	"github.com/PalcoPro/band-agenda/internal/models"
	"github.com/PalcoPro/band-agenda/internal/sanitize"
	"github.com/PalcoPro/band-agenda/internal/tokens"
)

// ======================================================
// INPUT
// ======================================================

type CreateProspectInput struct {
	Token string

	// Lead (contratante)
	ContractorName string
	ContractorType string
	Email          string
	Phone          string
	AdditionalInfo models.ContractorAdditionalInfo

	// Evento pretendido
	EventName string
	Date      time.Time
	City      string
	Venue     string
}

// ======================================================
// USE CASE
// ======================================================

// CreateProspect é o fluxo público de prospecção: um visitante anônimo
// com link válido cria o próprio lead. O token é invalidado uma única
// vez, depois que a submissão inteira deu certo.
type CreateProspect struct {
	repo   domain.Repository
	tokens *tokens.Manager
	audit  *audit.Dispatcher
}

func NewCreateProspect(
	repo domain.Repository,
	tokens *tokens.Manager,
	audit *audit.Dispatcher,
) *CreateProspect {
	return &CreateProspect{repo: repo, tokens: tokens, audit: audit}
}

func (uc *CreateProspect) Execute(ctx context.Context, in CreateProspectInput) (*models.Event, error) {

	if !uc.tokens.ValidateProspectingToken(ctx, in.Token) {
		return nil, httperr.ErrBusiness("invalid_token")
	}

	if in.ContractorName == "" {
		return nil, httperr.ErrBusiness("contractor_name_required")
	}

	contractor := sanitize.Contractor(models.Contractor{
		Name:           in.ContractorName,
		Type:           in.ContractorType,
		Email:          in.Email,
		Phone:          in.Phone,
		AdditionalInfo: datatypes.NewJSONType(in.AdditionalInfo),
	}, uuid.NewString())

	if err := uc.repo.SaveContractor(ctx, &contractor); err != nil {
		return nil, err
	}

	name := in.EventName
	if name == "" {
		name = "Evento de " + contractor.Name
	}

	// Lead ainda não tem banda: o bandId fica vazio até um operador
	// privilegiado atribuir uma.
	ev := sanitize.Event(models.Event{
		Name:          name,
		Date:          in.Date,
		City:          in.City,
		Venue:         in.Venue,
		Contractor:    contractor.Name,
		Status:        string(domain.StatusReserved),
		PipelineStage: string(domain.StageLead),
		CreatedBy:     "prospecção",
		CreatedAt:     time.Now(),
	}, uuid.NewString())

	if err := uc.repo.SaveEvent(ctx, &ev); err != nil {
		return nil, err
	}

	if err := uc.tokens.InvalidateProspectingToken(ctx, in.Token); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    contractor.Name,
		Action:   "prospect_created",
		Entity:   "event",
		EntityID: ev.ID,
	})

	return &ev, nil
}
