package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PalcoPro/band-agenda/internal/access"
	"github.com/PalcoPro/band-agenda/internal/audit"
	domain "github.com/PalcoPro/band-agenda/internal/domain/event"
	"github.com/PalcoPro/band-agenda/internal/dto"
	"github.com/PalcoPro/band-agenda/internal/httperr"
	"github.com/PalcoPro/band-agenda/internal/httpresp"
	"github.com/PalcoPro/band-agenda/internal/models"
	"github.com/PalcoPro/band-agenda/internal/sanitize"
	"github.com/PalcoPro/band-agenda/internal/summarizer"
	usecase "github.com/PalcoPro/band-agenda/internal/usecase/event"
)

type EventHandler struct {
	repo       domain.Repository
	create     *usecase.CreateEvent
	update     *usecase.UpdateEvent
	summarizer summarizer.Summarizer
	audit      *audit.Dispatcher
}

func NewEventHandler(
	repo domain.Repository,
	create *usecase.CreateEvent,
	update *usecase.UpdateEvent,
	sum summarizer.Summarizer,
	audit *audit.Dispatcher,
) *EventHandler {
	return &EventHandler{
		repo:       repo,
		create:     create,
		update:     update,
		summarizer: sum,
		audit:      audit,
	}
}

// --------- Requests ---------

type EventRequest struct {
	Name          string  `json:"name" binding:"required"`
	Date          string  `json:"date" binding:"required"` // AAAA-MM-DD
	Time          string  `json:"time"`
	DurationHours float64 `json:"duration_hours"`

	City         string `json:"city"`
	Venue        string `json:"venue"`
	VenueAddress string `json:"venue_address"`

	BandID     string `json:"band_id" binding:"required"`
	Contractor string `json:"contractor"`

	Status        string `json:"status"`
	PipelineStage string `json:"pipeline_stage"`

	GrossValue      float64 `json:"gross_value"`
	CommissionType  string  `json:"commission_type"`
	CommissionValue float64 `json:"commission_value"`
	Taxes           float64 `json:"taxes"`
}

func (r EventRequest) toInput(createdBy string) (usecase.CreateEventInput, error) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return usecase.CreateEventInput{}, err
	}

	return usecase.CreateEventInput{
		Name:            r.Name,
		Date:            date,
		Time:            r.Time,
		DurationHours:   r.DurationHours,
		City:            r.City,
		Venue:           r.Venue,
		VenueAddress:    r.VenueAddress,
		BandID:          r.BandID,
		Contractor:      r.Contractor,
		Status:          r.Status,
		PipelineStage:   r.PipelineStage,
		GrossValue:      r.GrossValue,
		CommissionType:  r.CommissionType,
		CommissionValue: r.CommissionValue,
		Taxes:           r.Taxes,
		CreatedBy:       createdBy,
	}, nil
}

// --------- Handlers ---------

// List devolve os eventos visíveis ao usuário, já com a banda resolvida
// por nome e os financials redigidos conforme o papel.
func (h *EventHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	user := currentUser(c)

	events, err := h.repo.ListEvents(ctx)
	if err != nil {
		httperr.Internal(c, "failed_to_list_events", "Erro ao listar eventos.")
		return
	}

	bands, err := h.repo.ListBands(ctx)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bands", "Erro ao listar eventos.")
		return
	}

	bandNames := make(map[string]string, len(bands))
	for _, b := range bands {
		bandNames[b.ID] = b.Name
	}

	visible := access.FilterEvents(events, bands, user)
	showFinancials := access.CanSeeFinancials(user)

	items := make([]dto.EventListDTO, 0, len(visible))
	for _, ev := range visible {
		// Registro legado sai completo: a sanitização roda em toda leitura.
		ev = sanitize.Event(ev, "")
		items = append(items, dto.NewEventListDTO(ev, bandNames[ev.BandID], showFinancials))
	}

	httpresp.List(c, items)
}

func (h *EventHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	user := currentUser(c)

	ev, err := h.loadVisible(c, c.Param("id"))
	if err != nil || ev == nil {
		return // resposta já escrita
	}

	var bandName string
	if band, err := h.repo.GetBand(ctx, ev.BandID); err == nil && band != nil {
		bandName = band.Name
	}

	httpresp.OK(c, dto.NewEventListDTO(*ev, bandName, access.CanSeeFinancials(user)))
}

func (h *EventHandler) Create(c *gin.Context) {
	user := currentUser(c)

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	in, err := req.toInput(user.Email)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida, use o formato AAAA-MM-DD.")
		return
	}

	ev, err := h.create.Execute(c.Request.Context(), in)
	if err != nil {
		writeEventError(c, err)
		return
	}

	httpresp.Created(c, ev)
}

func (h *EventHandler) Update(c *gin.Context) {
	user := currentUser(c)

	if existing, err := h.loadVisible(c, c.Param("id")); err != nil || existing == nil {
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	in, err := req.toInput(user.Email)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida, use o formato AAAA-MM-DD.")
		return
	}

	ev, err := h.update.Execute(c.Request.Context(), c.Param("id"), in, user.Email)
	if err != nil {
		writeEventError(c, err)
		return
	}

	httpresp.OK(c, ev)
}

func (h *EventHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	if !access.CanDeleteEvents(user) {
		httperr.Forbidden(c, "forbidden", "Você não tem permissão para excluir eventos.")
		return
	}

	ev, err := h.loadVisible(c, c.Param("id"))
	if err != nil || ev == nil {
		return
	}

	if err := h.repo.DeleteEvent(c.Request.Context(), ev.ID); err != nil {
		httperr.Internal(c, "failed_to_delete_event", "Erro ao excluir evento.")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    user.Email,
		Action:   "event_deleted",
		Entity:   "event",
		EntityID: ev.ID,
	})

	c.Status(http.StatusNoContent)
}

// Summary gera o resumo textual do evento. O colaborador nunca falha:
// no pior caso devolve o texto padrão.
func (h *EventHandler) Summary(c *gin.Context) {
	ctx := c.Request.Context()

	ev, err := h.loadVisible(c, c.Param("id"))
	if err != nil || ev == nil {
		return
	}

	var bandName string
	if band, err := h.repo.GetBand(ctx, ev.BandID); err == nil && band != nil {
		bandName = band.Name
	}

	summary := h.summarizer.Summarize(ctx, *ev, bandName)
	httpresp.OK(c, gin.H{"summary": summary})
}

// --------- Helpers ---------

// loadVisible carrega o evento e aplica o filtro de visibilidade do
// usuário logado. Evento fora do escopo responde 404, não 403: quem não
// pode ver também não descobre que o registro existe.
func (h *EventHandler) loadVisible(c *gin.Context, id string) (*models.Event, error) {
	ctx := c.Request.Context()
	user := currentUser(c)

	ev, err := h.repo.GetEvent(ctx, id)
	if err != nil {
		httperr.Internal(c, "failed_to_load_event", "Erro ao carregar evento.")
		return nil, err
	}
	if ev == nil {
		httperr.NotFound(c, "event_not_found", "Evento não encontrado.")
		return nil, nil
	}

	bands, err := h.repo.ListBands(ctx)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bands", "Erro ao carregar evento.")
		return nil, err
	}

	if len(access.FilterEvents([]models.Event{*ev}, bands, user)) == 0 {
		httperr.NotFound(c, "event_not_found", "Evento não encontrado.")
		return nil, nil
	}

	clean := sanitize.Event(*ev, "")
	return &clean, nil
}

func writeEventError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "band_not_found"):
		httperr.BadRequest(c, "band_not_found", "A banda informada não existe.")
	case httperr.IsBusiness(err, "event_not_found"):
		httperr.NotFound(c, "event_not_found", "Evento não encontrado.")
	case httperr.IsBusiness(err, "event_name_required"):
		httperr.BadRequest(c, "event_name_required", "O nome do evento é obrigatório.")
	default:
		httperr.Internal(c, "failed_to_save_event", "Erro ao salvar evento.")
	}
}
