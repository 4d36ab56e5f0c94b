package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PalcoPro/band-agenda/internal/audit"
	"github.com/PalcoPro/band-agenda/internal/dto"
	"github.com/PalcoPro/band-agenda/internal/middleware"
	"github.com/PalcoPro/band-agenda/internal/models"
)

// stubRepository cobre só o que os handlers de leitura usam.
type stubRepository struct {
	events map[string]models.Event
	bands  map[string]models.Band
}

func newStubRepository() *stubRepository {
	return &stubRepository{
		events: map[string]models.Event{},
		bands:  map[string]models.Band{},
	}
}

func (r *stubRepository) ListEvents(context.Context) ([]models.Event, error) {
	out := make([]models.Event, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev)
	}
	return out, nil
}

func (r *stubRepository) GetEvent(_ context.Context, id string) (*models.Event, error) {
	ev, ok := r.events[id]
	if !ok {
		return nil, nil
	}
	return &ev, nil
}

func (r *stubRepository) SaveEvent(_ context.Context, ev *models.Event) error {
	r.events[ev.ID] = *ev
	return nil
}

func (r *stubRepository) DeleteEvent(_ context.Context, id string) error {
	delete(r.events, id)
	return nil
}

func (r *stubRepository) ListBands(context.Context) ([]models.Band, error) {
	out := make([]models.Band, 0, len(r.bands))
	for _, b := range r.bands {
		out = append(out, b)
	}
	return out, nil
}

func (r *stubRepository) GetBand(_ context.Context, id string) (*models.Band, error) {
	b, ok := r.bands[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *stubRepository) FindContractorByName(context.Context, string) (*models.Contractor, error) {
	return nil, nil
}

func (r *stubRepository) SaveContractor(_ context.Context, _ *models.Contractor) error {
	return nil
}

type stubSummarizer struct{}

func (stubSummarizer) Summarize(_ context.Context, _ models.Event, _ string) string {
	return "resumo"
}

type discardSink struct{}

func (discardSink) Log(_, _, _, _ string, _ any) error { return nil }

func newEventTestContext(t *testing.T, user models.User) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(middleware.ContextUser, user)
	return c, w
}

// Registro de esquema antigo: flag de contrato ausente, URL única de
// contrato e um líquido gravado que não bate com os outros campos.
func legacyEvent() models.Event {
	return models.Event{
		ID:          "ev-legacy",
		Name:        "Show Antigo",
		BandID:      "band-1",
		Status:      "CONFIRMED",
		ContractURL: "https://bucket.s3.amazonaws.com/contracts/ev-legacy/contrato.pdf",
		Financials: models.Financials{
			GrossValue:      10000,
			CommissionType:  "PERCENTAGE",
			CommissionValue: 10,
			Taxes:           500,
			NetValue:        999999, // lixo gravado
		},
	}
}

func newLegacyEventHandler() *EventHandler {
	repo := newStubRepository()
	repo.bands["band-1"] = models.Band{ID: "band-1", Name: "Banda Principal"}
	repo.events["ev-legacy"] = legacyEvent()

	return NewEventHandler(repo, nil, nil, stubSummarizer{}, audit.NewDispatcher(discardSink{}))
}

func TestEventListSaneiaRegistroLegado(t *testing.T) {
	h := newLegacyEventHandler()
	c, w := newEventTestContext(t, models.User{ID: "u-1", Role: models.RoleAdmin})

	h.List(c)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data  []dto.EventListDTO `json:"data"`
		Total int                `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)

	item := body.Data[0]
	assert.True(t, item.HasContract, "arquivo legado conta como contrato recebido")
	require.NotNil(t, item.Financials)
	assert.InDelta(t, 8500, item.Financials.NetValue, 0.001, "líquido gravado é descartado")
}

func TestEventGetSaneiaRegistroLegado(t *testing.T) {
	h := newLegacyEventHandler()
	c, w := newEventTestContext(t, models.User{ID: "u-1", Role: models.RoleAdmin})
	c.Params = gin.Params{{Key: "id", Value: "ev-legacy"}}

	h.Get(c)
	require.Equal(t, http.StatusOK, w.Code)

	var item dto.EventListDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &item))

	assert.Equal(t, "ev-legacy", item.ID)
	assert.Equal(t, "Banda Principal", item.BandName)
	assert.True(t, item.HasContract)
	require.NotNil(t, item.Financials)
	assert.InDelta(t, 8500, item.Financials.NetValue, 0.001)
}
