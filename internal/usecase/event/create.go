package event

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/PalcoPro/band-agenda/internal/audit"
	domain "github.com/PalcoPro/band-agenda/internal/domain/event"
	"github.com/PalcoPro/band-agenda/internal/httperr"
	"github.com/PalcoPro/band-agenda/internal/models"
	"github.com/PalcoPro/band-agenda/internal/sanitize"
)

// ======================================================
// INPUT
// ======================================================

type CreateEventInput struct {
	Name          string
	Date          time.Time
	Time          string
	DurationHours float64

	City         string
	Venue        string
	VenueAddress string

	BandID     string
	Contractor string

	Status        string
	PipelineStage string

	GrossValue      float64
	CommissionType  string
	CommissionValue float64
	Taxes           float64

	CreatedBy string
}

// ======================================================
// USE CASE
// ======================================================

type CreateEvent struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateEvent(repo domain.Repository, audit *audit.Dispatcher) *CreateEvent {
	return &CreateEvent{repo: repo, audit: audit}
}

func (uc *CreateEvent) Execute(ctx context.Context, in CreateEventInput) (*models.Event, error) {

	// --------------------------------------------------
	// 1. Banda precisa existir na criação
	// --------------------------------------------------
	band, err := uc.repo.GetBand(ctx, in.BandID)
	if err != nil {
		return nil, err
	}
	if band == nil {
		return nil, httperr.ErrBusiness("band_not_found")
	}

	// --------------------------------------------------
	// 2. Monta e sanitiza (sanitize rederiva o NetValue)
	// --------------------------------------------------
	ev := sanitize.Event(models.Event{
		Name:          in.Name,
		Date:          in.Date,
		Time:          in.Time,
		DurationHours: in.DurationHours,
		City:          in.City,
		Venue:         in.Venue,
		VenueAddress:  in.VenueAddress,
		BandID:        band.ID,
		Contractor:    in.Contractor,
		Status:        in.Status,
		PipelineStage: in.PipelineStage,
		Financials: models.Financials{
			GrossValue:      in.GrossValue,
			CommissionType:  in.CommissionType,
			CommissionValue: in.CommissionValue,
			Taxes:           in.Taxes,
		},
		CreatedBy: in.CreatedBy,
		CreatedAt: time.Now(),
	}, uuid.NewString())

	if ev.Name == "" {
		return nil, httperr.ErrBusiness("event_name_required")
	}

	if err := uc.repo.SaveEvent(ctx, &ev); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    in.CreatedBy,
		Action:   "event_created",
		Entity:   "event",
		EntityID: ev.ID,
	})

	return &ev, nil
}
