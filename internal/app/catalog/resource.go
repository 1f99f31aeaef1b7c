package catalog

import (
	"fmt"
	"strings"
)

// Resource descreve um recurso nomeado do catálogo e os textos exibidos para ele
type Resource struct {
	// Singular e Plural em minúsculas, como aparecem nas mensagens
	Singular     string
	Plural       string
	NameMaxLen   int
	DefaultLimit int
}

var (
	// Brands é o recurso de marcas
	Brands = Resource{Singular: "brand", Plural: "brands", NameMaxLen: 255, DefaultLimit: 10}
	// Categories é o recurso de categorias
	Categories = Resource{Singular: "category", Plural: "categories", NameMaxLen: 100, DefaultLimit: 10}
)

func (r Resource) title() string {
	return capitalize(r.Singular)
}

// Message monta a mensagem de sucesso de uma ação, ex.: "Brand created successfully"
func (r Resource) Message(action string) string {
	return fmt.Sprintf("%s %s successfully", r.title(), action)
}

// ListMessage é a mensagem de sucesso de uma listagem, ex.: "Brands fetched successfully"
func (r Resource) ListMessage() string {
	return fmt.Sprintf("%s fetched successfully", capitalize(r.Plural))
}

func (r Resource) idRequired() string   { return r.title() + " ID is required" }
func (r Resource) notFound() string     { return r.title() + " not found" }
func (r Resource) noneFound() string    { return "No " + r.Plural + " found" }
func (r Resource) duplicate() string    { return "This " + r.Singular + " name already exists" }
func (r Resource) nameRequired() string { return r.title() + " name is required" }
func (r Resource) nameTooLong() string  { return r.title() + " name is too long" }

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
