package event

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/PalcoPro/band-agenda/internal/domain/event"
	"github.com/PalcoPro/band-agenda/internal/httperr"
	"github.com/PalcoPro/band-agenda/internal/models"
)

func TestCreateEvent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	repo.bands["band-1"] = models.Band{ID: "band-1", Name: "Banda Principal"}

	uc := NewCreateEvent(repo, testDispatcher())

	ev, err := uc.Execute(ctx, CreateEventInput{
		Name:            "Show de Verão",
		Date:            time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC),
		BandID:          "band-1",
		Status:          "confirmed",
		GrossValue:      10000,
		CommissionType:  "PERCENTAGE",
		CommissionValue: 10,
		Taxes:           500,
		CreatedBy:       "ana@exemplo.com",
	})
	require.NoError(t, err)
	require.NotNil(t, ev)

	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, string(domain.StatusConfirmed), ev.Status)
	assert.Equal(t, string(domain.StageWon), ev.PipelineStage)
	assert.Equal(t, "21:00", ev.Time)
	assert.InDelta(t, 8500, ev.Financials.NetValue, 0.001)

	saved, err := repo.GetEvent(ctx, ev.ID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, ev.Name, saved.Name)
}

func TestCreateEventBandaInexistente(t *testing.T) {
	uc := NewCreateEvent(newFakeRepository(), testDispatcher())

	_, err := uc.Execute(context.Background(), CreateEventInput{
		Name:   "Show",
		BandID: "nao-existe",
	})
	assert.True(t, httperr.IsBusiness(err, "band_not_found"))
}

func TestCreateEventNomeObrigatorio(t *testing.T) {
	repo := newFakeRepository()
	repo.bands["band-1"] = models.Band{ID: "band-1", Name: "Banda"}

	uc := NewCreateEvent(repo, testDispatcher())

	_, err := uc.Execute(context.Background(), CreateEventInput{
		Name:   "   ",
		BandID: "band-1",
	})
	assert.True(t, httperr.IsBusiness(err, "event_name_required"))
	assert.Empty(t, repo.events)
}

func TestUpdateEvent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	repo.bands["band-1"] = models.Band{ID: "band-1", Name: "Banda"}

	create := NewCreateEvent(repo, testDispatcher())
	created, err := create.Execute(ctx, CreateEventInput{
		Name:       "Show",
		BandID:     "band-1",
		GrossValue: 5000,
	})
	require.NoError(t, err)

	update := NewUpdateEvent(repo, testDispatcher())
	updated, err := update.Execute(ctx, created.ID, CreateEventInput{
		Name:            "Show Renomeado",
		Date:            created.Date,
		BandID:          "band-1",
		Status:          string(domain.StatusConfirmed),
		PipelineStage:   string(domain.StageContract),
		GrossValue:      8000,
		CommissionType:  "FIXED",
		CommissionValue: 1000,
	}, "ana@exemplo.com")
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Show Renomeado", updated.Name)
	assert.Equal(t, string(domain.StageContract), updated.PipelineStage)
	assert.InDelta(t, 7000, updated.Financials.NetValue, 0.001)
}

func TestUpdateEventInexistente(t *testing.T) {
	uc := NewUpdateEvent(newFakeRepository(), testDispatcher())

	_, err := uc.Execute(context.Background(), "fantasma", CreateEventInput{Name: "X"}, "ana")
	assert.True(t, httperr.IsBusiness(err, "event_not_found"))
}

func TestUpdateEventTrocaParaBandaInexistente(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	repo.bands["band-1"] = models.Band{ID: "band-1", Name: "Banda"}

	create := NewCreateEvent(repo, testDispatcher())
	created, err := create.Execute(ctx, CreateEventInput{Name: "Show", BandID: "band-1"})
	require.NoError(t, err)

	update := NewUpdateEvent(repo, testDispatcher())
	_, err = update.Execute(ctx, created.ID, CreateEventInput{
		Name:   "Show",
		BandID: "banda-fantasma",
	}, "ana")
	assert.True(t, httperr.IsBusiness(err, "band_not_found"))
}
