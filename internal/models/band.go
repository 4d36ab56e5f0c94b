package models

import "time"

// BandCompany guarda os dados jurídicos usados na geração de contratos.
type BandCompany struct {
	RazaoSocial         string `gorm:"size:200" json:"razao_social"`
	CNPJ                string `gorm:"size:18" json:"cnpj"`
	Address             string `gorm:"size:255" json:"address"`
	LegalRepresentative string `gorm:"size:100" json:"legal_representative"`
}

type Band struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Genre   string `gorm:"size:50" json:"genre"`
	Members int    `json:"members"`

	Company BandCompany `gorm:"embedded;embeddedPrefix:company_" json:"company"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
