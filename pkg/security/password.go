package security

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost é o fator de custo fixo usado para novos hashes
const DefaultBcryptCost = 10

// PasswordHasher encapsula o bcrypt com um custo fixo
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher cria um hasher; custos fora do intervalo do bcrypt usam o padrão
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash gera o hash salgado da senha
func (h *PasswordHasher) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify compara a senha com o hash; hash malformado conta como divergência
func (h *PasswordHasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
