package securetoken

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/servicollantas/workshop-api/internal/domain/rating"
)

// Source genera tokens de 32 bytes aleatorios codificados en hex.
type Source struct{}

func New() Source {
	return Source{}
}

func (Source) Generate() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

var _ rating.TokenSource = Source{}
