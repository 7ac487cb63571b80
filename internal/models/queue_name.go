package models

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

const maxNameLength = 255

var urlNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidateQueueNames проверяет имена очереди до записи в базу: url_name
// из строчных латинских букв, цифр, '-' и '_', display_name не пустой.
func ValidateQueueNames(displayName, urlName string) error {
	if strings.TrimSpace(displayName) == "" {
		return errors.Wrap(ErrInvalidQueueName, "display_name must not be empty")
	}
	if utf8.RuneCountInString(displayName) > maxNameLength {
		return errors.Wrapf(ErrInvalidQueueName, "display_name longer than %d", maxNameLength)
	}
	if len(urlName) > maxNameLength || !urlNamePattern.MatchString(urlName) {
		return errors.Wrapf(ErrInvalidQueueName, "url_name %q: допустимы строчные латинские буквы, цифры, '-' и '_'", urlName)
	}
	return nil
}
