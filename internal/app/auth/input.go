package auth

import "github.com/diillson/retail-admin-api/internal/validation"

// RegisterInput é o corpo de POST /users/register
type RegisterInput struct {
	FirstName       string `json:"firstName" validate:"required,max=100"`
	LastName        string `json:"lastName" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,emailfmt,max=191"`
	Password        string `json:"password" validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,min=6,eqfield=Password"`
}

func (in *RegisterInput) Normalize() { validation.TrimStrings(in) }

func (in *RegisterInput) Messages() validation.Messages {
	return validation.Messages{
		"FirstName.required":       "First name is required",
		"FirstName.max":            "First name is too long",
		"LastName.required":        "Last name is required",
		"LastName.max":             "Last name is too long",
		"Email.required":           "Email is required",
		"Email.emailfmt":           "Please enter a valid email address",
		"Email.max":                "Email is too long",
		"Password.required":        "Password is required",
		"Password.min":             "Password must be at least 6 characters",
		"Password.max":             "Password is too long",
		"ConfirmPassword.required": "Confirm password is required",
		"ConfirmPassword.min":      "Password must be at least 6 characters",
		"ConfirmPassword.eqfield":  "Passwords do not match",
	}
}

// LoginInput é o corpo de POST /users/login
type LoginInput struct {
	Email    string `json:"email" validate:"required,emailfmt"`
	Password string `json:"password" validate:"required,min=6"`
}

func (in *LoginInput) Normalize() { validation.TrimStrings(in) }

func (in *LoginInput) Messages() validation.Messages {
	return validation.Messages{
		"Email.required":    "Email is required",
		"Email.emailfmt":    "Please enter a valid email address",
		"Password.required": "Password is required",
		"Password.min":      "Password must be at least 6 characters",
	}
}
