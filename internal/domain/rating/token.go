package rating

import (
	"strings"
	"time"
)

// TokenTTL es la ventana de validez de un link de calificación.
const TokenTTL = 30 * 24 * time.Hour

// TokenSource produce tokens opacos con entropía criptográfica.
type TokenSource interface {
	Generate() (string, error)
}

func ExpiryFrom(now time.Time) time.Time {
	return now.Add(TokenTTL)
}

// LinkURL arma la URL pública que el cliente recibe.
func LinkURL(frontendURL, token string) string {
	return strings.TrimRight(frontendURL, "/") + "/rate/" + token
}
