// Package validation aplica as regras declaradas nas tags `validate` dos DTOs
// e devolve apenas a mensagem da primeira regra violada.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// emailPattern é propositalmente permissivo: algo@algo.algo sem espaços
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Messages mapeia "Campo.tag" para a mensagem exibida ao cliente
type Messages map[string]string

// Schema é implementado pelos DTOs validados
type Schema interface {
	Messages() Messages
}

// Normalizer é implementado pelos DTOs que precisam aparar campos antes da validação
type Normalizer interface {
	Normalize()
}

const fallbackMessage = "Invalid request data"

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator retorna o validador compartilhado com as tags customizadas registradas
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("emailfmt", func(fl validator.FieldLevel) bool {
			return emailPattern.MatchString(fl.Field().String())
		})
		instance = v
	})
	return instance
}

// Validate normaliza e valida o DTO; retorna "" quando válido
func Validate(s Schema) string {
	if n, ok := s.(Normalizer); ok {
		n.Normalize()
	}

	err := Validator().Struct(s)
	if err == nil {
		return ""
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fallbackMessage
	}

	first := fieldErrs[0]
	if msg, ok := s.Messages()[first.StructField()+"."+first.Tag()]; ok {
		return msg
	}
	if msg, ok := s.Messages()[first.StructField()]; ok {
		return msg
	}
	return fallbackMessage
}

// IsEmail informa se o valor segue o formato de email aceito
func IsEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// TrimStrings apara todos os campos string e *string do struct apontado
func TrimStrings(ptr interface{}) {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}
		switch {
		case field.Kind() == reflect.String:
			field.SetString(strings.TrimSpace(field.String()))
		case field.Kind() == reflect.Ptr && !field.IsNil() && field.Elem().Kind() == reflect.String:
			field.Elem().SetString(strings.TrimSpace(field.Elem().String()))
		}
	}
}

// Var valida um valor isolado contra as tags informadas; messages é indexado pela tag
func Var(value interface{}, tags string, messages map[string]string) string {
	err := Validator().Var(value, tags)
	if err == nil {
		return ""
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		if msg, ok := messages[fieldErrs[0].Tag()]; ok {
			return msg
		}
	}
	return fallbackMessage
}
