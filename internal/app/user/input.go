package user

import (
	"strings"

	"github.com/diillson/retail-admin-api/internal/domain/model"
	"github.com/diillson/retail-admin-api/internal/validation"
)

// IDInput valida o identificador recebido na rota
type IDInput struct {
	ID string `validate:"required,uuid"`
}

// Normalize aceita UUID em maiúsculas; os identificadores são gravados em minúsculas
func (in *IDInput) Normalize() {
	validation.TrimStrings(in)
	in.ID = strings.ToLower(in.ID)
}

func (in *IDInput) Messages() validation.Messages {
	return validation.Messages{"ID": "Invalid ID format"}
}

// AdminUpdateInput é o corpo de PUT /users/:id; nunca altera a senha
type AdminUpdateInput struct {
	FirstName *string     `json:"firstName" validate:"omitnil,min=1,max=100"`
	LastName  *string     `json:"lastName" validate:"omitnil,min=1,max=100"`
	Role      *model.Role `json:"role" validate:"omitnil,oneof=GUEST_ADMIN ADMIN SUPER_ADMIN"`
}

func (in *AdminUpdateInput) Normalize() { validation.TrimStrings(in) }

func (in *AdminUpdateInput) Messages() validation.Messages {
	return validation.Messages{
		"FirstName.min": "First name is required",
		"FirstName.max": "First name is too long",
		"LastName.min":  "Last name is required",
		"LastName.max":  "Last name is too long",
		"Role.oneof":    "Invalid role",
	}
}

func (in *AdminUpdateInput) fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if in.FirstName != nil {
		fields["first_name"] = *in.FirstName
	}
	if in.LastName != nil {
		fields["last_name"] = *in.LastName
	}
	if in.Role != nil {
		fields["role"] = *in.Role
	}
	return fields
}

// ProfileInput é o corpo de PUT /users/:id/profile; nunca altera o papel
type ProfileInput struct {
	FirstName       *string `json:"firstName" validate:"omitnil,min=1,max=100"`
	LastName        *string `json:"lastName" validate:"omitnil,min=1,max=100"`
	Phone           *string `json:"phone" validate:"omitnil,max=20"`
	OpenAddress     *string `json:"openAddress" validate:"omitnil,max=255"`
	ProvinceID      *int    `json:"provinceId" validate:"omitnil,gt=0"`
	DistrictID      *int    `json:"districtId" validate:"omitnil,gt=0"`
	NeighborhoodID  *int    `json:"neighborhoodId" validate:"omitnil,gt=0"`
	Password        *string `json:"password" validate:"omitnil,min=6,max=72"`
	ConfirmPassword *string `json:"confirmPassword"`
}

func (in *ProfileInput) Normalize() { validation.TrimStrings(in) }

func (in *ProfileInput) Messages() validation.Messages {
	return validation.Messages{
		"FirstName.min":     "First name is required",
		"FirstName.max":     "First name is too long",
		"LastName.min":      "Last name is required",
		"LastName.max":      "Last name is too long",
		"Phone.max":         "Phone number is too long",
		"OpenAddress.max":   "Address is too long",
		"ProvinceID.gt":     "Invalid province ID",
		"DistrictID.gt":     "Invalid district ID",
		"NeighborhoodID.gt": "Invalid neighborhood ID",
		"Password.min":      "Password must be at least 6 characters",
		"Password.max":      "Password is too long",
	}
}

// passwordsMatch confere a confirmação quando uma nova senha é enviada
func (in *ProfileInput) passwordsMatch() bool {
	if in.Password == nil {
		return true
	}
	return in.ConfirmPassword != nil && *in.ConfirmPassword == *in.Password
}

func (in *ProfileInput) fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if in.FirstName != nil {
		fields["first_name"] = *in.FirstName
	}
	if in.LastName != nil {
		fields["last_name"] = *in.LastName
	}
	if in.Phone != nil {
		fields["phone"] = *in.Phone
	}
	if in.OpenAddress != nil {
		fields["open_address"] = *in.OpenAddress
	}
	if in.ProvinceID != nil {
		fields["province_id"] = *in.ProvinceID
	}
	if in.DistrictID != nil {
		fields["district_id"] = *in.DistrictID
	}
	if in.NeighborhoodID != nil {
		fields["neighborhood_id"] = *in.NeighborhoodID
	}
	return fields
}
