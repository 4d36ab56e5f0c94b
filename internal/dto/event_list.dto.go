package dto

import (
	"time"

	"github.com/PalcoPro/band-agenda/internal/models"
)

// EventListDTO é a projeção de listagem: resolve o nome da banda e
// omite os financials para quem não pode vê-los.
type EventListDTO struct {
	ID   string    `json:"id"`
	Name string    `json:"name"`
	Date time.Time `json:"date"`
	Time string    `json:"time"`

	City  string `json:"city"`
	Venue string `json:"venue"`

	BandID   string `json:"band_id"`
	BandName string `json:"band_name"`

	Contractor    string `json:"contractor"`
	Status        string `json:"status"`
	PipelineStage string `json:"pipeline_stage"`

	HasContract          bool   `json:"has_contract"`
	ContractorFormStatus string `json:"contractor_form_status"`

	Financials *models.Financials `json:"financials,omitempty"`
}

func NewEventListDTO(ev models.Event, bandName string, showFinancials bool) EventListDTO {
	item := EventListDTO{
		ID:                   ev.ID,
		Name:                 ev.Name,
		Date:                 ev.Date,
		Time:                 ev.Time,
		City:                 ev.City,
		Venue:                ev.Venue,
		BandID:               ev.BandID,
		BandName:             bandName,
		Contractor:           ev.Contractor,
		Status:               ev.Status,
		PipelineStage:        ev.PipelineStage,
		ContractorFormStatus: ev.ContractorFormStatus,
	}

	if ev.HasContract != nil {
		item.HasContract = *ev.HasContract
	}

	if showFinancials {
		f := ev.Financials
		item.Financials = &f
	}

	return item
}
