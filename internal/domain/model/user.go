package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role é o nível de acesso administrativo de um usuário
type Role string

const (
	RoleGuestAdmin Role = "GUEST_ADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// Roles aceitos pelos gates; comparação por pertencimento, não por ordem
var (
	AdminRoles      = []Role{RoleAdmin, RoleSuperAdmin, RoleGuestAdmin}
	SuperAdminRoles = []Role{RoleSuperAdmin}
)

// Valid informa se o valor pertence ao enum
func (r Role) Valid() bool {
	switch r {
	case RoleGuestAdmin, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// In informa se o papel está no conjunto permitido
func (r Role) In(allowed []Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// User representa uma conta administrativa.
// Password nunca é serializado em respostas.
type User struct {
	ID             string    `json:"id" gorm:"primaryKey;size:36"`
	FirstName      string    `json:"firstName" gorm:"size:100;not null"`
	LastName       string    `json:"lastName" gorm:"size:100;not null"`
	Email          string    `json:"email" gorm:"uniqueIndex;size:191;not null"`
	Password       string    `json:"-" gorm:"not null"`
	Phone          string    `json:"phone" gorm:"size:20"`
	OpenAddress    string    `json:"openAddress,omitempty" gorm:"size:255"`
	ProvinceID     *int      `json:"provinceId,omitempty" gorm:"index"`
	DistrictID     *int      `json:"districtId,omitempty" gorm:"index"`
	NeighborhoodID *int      `json:"neighborhoodId,omitempty" gorm:"index"`
	Role           Role      `json:"role" gorm:"size:20;not null;default:GUEST_ADMIN"`
	CreatedAt      time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName define o nome da tabela
func (User) TableName() string {
	return "users"
}

// BeforeCreate gera o identificador quando ausente
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
