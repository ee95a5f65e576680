package validators

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func IsEmailValid(email string) bool {
	return emailRe.MatchString(email)
}

// IsPhoneValid acepta números en formato internacional, con o sin
// separadores comunes.
func IsPhoneValid(phone string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	match, _ := regexp.MatchString(`^\+?[1-9]\d{1,14}$`, cleaned)
	return match
}

// NormalizePlate deja las placas en mayúsculas sin espacios ni guiones
// para que el índice único no admita duplicados cosméticos.
func NormalizePlate(plate string) string {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(plate)
	return strings.ToUpper(cleaned)
}
