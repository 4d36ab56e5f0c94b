package models

import (
	"time"

	"gorm.io/datatypes"
)

// Papéis são flags de funcionalidade, não uma hierarquia linear.
const (
	RoleAdmin     = "ADMIN"
	RoleManager   = "MANAGER"
	RoleContracts = "CONTRACTS"
	RoleSales     = "SALES"
	RoleViewer    = "VIEWER"
	RoleMember    = "MEMBER"
)

const (
	UserStatusActive  = "ACTIVE"
	UserStatusPending = "PENDING" // não autentica até ser aprovado
)

type User struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	Role   string `gorm:"size:20;default:'MEMBER'" json:"role"`
	Status string `gorm:"size:20;default:'ACTIVE'" json:"status"`

	// Bandas visíveis para papéis não privilegiados.
	BandIDs datatypes.JSONSlice[string] `json:"band_ids"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
