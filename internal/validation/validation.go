package validation

import (
	"regexp"
)

var emailRegex = regexp.MustCompile(`^[A-Za-z0-9]+([._\-][A-Za-z0-9]+)*@[A-Za-z0-9]+([\-\.][A-Za-z0-9]+)*\.[A-Za-z]{2,15}$`)

func IsEmailValid(email string) bool {
	return emailRegex.MatchString(email)
}
