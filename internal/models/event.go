package models

import (
	"time"

	"gorm.io/datatypes"
)

// ContractFile é um arquivo de contrato anexado ao evento.
type ContractFile struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Financials pertence exclusivamente ao evento; NetValue é sempre
// recalculado a partir dos outros quatro campos, nunca editado à mão.
type Financials struct {
	GrossValue      float64 `json:"gross_value"`
	CommissionType  string  `json:"commission_type"` // PERCENTAGE | FIXED
	CommissionValue float64 `json:"commission_value"`
	Taxes           float64 `json:"taxes"`
	NetValue        float64 `json:"net_value"`
}

type Event struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Name          string    `gorm:"size:200;not null" json:"name"`
	Date          time.Time `json:"date"`
	Time          string    `gorm:"size:5" json:"time"` // HH:mm, horário local
	DurationHours float64   `json:"duration_hours"`

	City         string `gorm:"size:100" json:"city"`
	Venue        string `gorm:"size:200" json:"venue"`
	VenueAddress string `gorm:"size:255" json:"venue_address"`

	BandID string `gorm:"size:36;index" json:"band_id"`

	// Vínculo fraco por nome, não é chave estrangeira. Nomes duplicados
	// de contratantes são ambíguos; vale o primeiro encontrado.
	Contractor string `gorm:"size:200" json:"contractor"`

	Status        string `gorm:"size:20" json:"status"`
	PipelineStage string `gorm:"size:20" json:"pipeline_stage"`

	Financials Financials `gorm:"embedded;embeddedPrefix:fin_" json:"financials"`

	// HasContract é ponteiro para distinguir registro legado (ausente)
	// de um "false" explícito; o sanitizador garante valor preenchido.
	HasContract *bool `json:"has_contract"`

	// Coluna legada de arquivo único; migrada para ContractFiles na leitura.
	ContractURL   string                            `gorm:"size:500" json:"-"`
	ContractFiles datatypes.JSONSlice[ContractFile] `json:"contract_files"`

	ContractorFormToken  string `gorm:"size:64" json:"contractor_form_token"`
	ContractorFormStatus string `gorm:"size:20" json:"contractor_form_status"`

	CreatedBy string    `gorm:"size:100" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
