package event

import (
	"context"

	"github.com/PalcoPro/band-agenda/internal/audit"
	domain "github.com/PalcoPro/band-agenda/internal/domain/event"
	"github.com/PalcoPro/band-agenda/internal/httperr"
	"github.com/PalcoPro/band-agenda/internal/models"
	"github.com/PalcoPro/band-agenda/internal/sanitize"
)

type UpdateEvent struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateEvent(repo domain.Repository, audit *audit.Dispatcher) *UpdateEvent {
	return &UpdateEvent{repo: repo, audit: audit}
}

// Execute aplica o formulário de edição por cima do registro atual.
// Auditoria, token de formulário e arquivos de contrato não são
// editáveis por aqui; o recálculo financeiro acontece em toda gravação.
func (uc *UpdateEvent) Execute(ctx context.Context, eventID string, in CreateEventInput, actor string) (*models.Event, error) {

	existing, err := uc.repo.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, httperr.ErrBusiness("event_not_found")
	}

	if in.BandID != existing.BandID {
		band, err := uc.repo.GetBand(ctx, in.BandID)
		if err != nil {
			return nil, err
		}
		if band == nil {
			return nil, httperr.ErrBusiness("band_not_found")
		}
	}

	ev := *existing
	ev.Name = in.Name
	ev.Date = in.Date
	ev.Time = in.Time
	ev.DurationHours = in.DurationHours
	ev.City = in.City
	ev.Venue = in.Venue
	ev.VenueAddress = in.VenueAddress
	ev.BandID = in.BandID
	ev.Contractor = in.Contractor
	ev.Status = in.Status
	ev.PipelineStage = in.PipelineStage
	ev.Financials = models.Financials{
		GrossValue:      in.GrossValue,
		CommissionType:  in.CommissionType,
		CommissionValue: in.CommissionValue,
		Taxes:           in.Taxes,
	}

	ev = sanitize.Event(ev, "")

	if ev.Name == "" {
		return nil, httperr.ErrBusiness("event_name_required")
	}

	if err := uc.repo.SaveEvent(ctx, &ev); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    actor,
		Action:   "event_updated",
		Entity:   "event",
		EntityID: ev.ID,
	})

	return &ev, nil
}
