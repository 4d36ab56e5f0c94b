package models

import (
	"time"

	"gorm.io/datatypes"
)

// Tipo do contratante; decide quais campos de documento fazem sentido.
const (
	ContractorTypeFisica   = "FISICA"
	ContractorTypeJuridica = "JURIDICA"
)

type ContractorAddress struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	ZipCode      string `json:"zip_code"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
}

type ContractorAdditionalInfo struct {
	PreferredEventType string `json:"preferred_event_type"`
	PreferredVenue     string `json:"preferred_venue"`
	Notes              string `json:"notes"`
}

type Contractor struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Type string `gorm:"size:10" json:"type"` // FISICA | JURIDICA

	// Eventos apontam para o contratante por este nome, não por ID.
	Name string `gorm:"size:200;not null;index" json:"name"`

	ResponsibleName    string `gorm:"size:100" json:"responsible_name"`
	ResponsibleContact string `gorm:"size:100" json:"responsible_contact"`
	Email              string `gorm:"size:100" json:"email"`
	Phone              string `gorm:"size:20" json:"phone"`

	// Documentos: CPF/RG/nascimento para FISICA, CNPJ para JURIDICA.
	CPF       string `gorm:"size:14" json:"cpf"`
	RG        string `gorm:"size:20" json:"rg"`
	BirthDate string `gorm:"size:10" json:"birth_date"`
	CNPJ      string `gorm:"size:18" json:"cnpj"`

	Address        datatypes.JSONType[ContractorAddress]        `json:"address"`
	AdditionalInfo datatypes.JSONType[ContractorAdditionalInfo] `json:"additional_info"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
