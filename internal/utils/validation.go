package utils

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Park and route ids, city and state names are free text in the dataset, so
// the only request values that can never match a record are ones that are not
// valid UTF-8. Anything else is handed to the engine, which answers not-found
// or an empty list.

const maxQueryLength = 1000

// ValidateID rejects ids that no loaded record can carry.
func ValidateID(id string) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}
	if !utf8.ValidString(id) {
		return errors.New("id is not valid UTF-8")
	}
	return nil
}

// ValidateQuery bounds search text. Empty queries are valid; the search itself
// treats them as a no-op.
func ValidateQuery(query string) error {
	if n := utf8.RuneCountInString(query); n > maxQueryLength {
		return fmt.Errorf("query too long (max %d characters)", maxQueryLength)
	}
	return nil
}

// ValidateFilterValue checks a city, state or park name filter value.
func ValidateFilterValue(value string) error {
	if !utf8.ValidString(value) {
		return errors.New("filter value is not valid UTF-8")
	}
	return nil
}
