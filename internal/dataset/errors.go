package dataset

import (
	"errors"
	"fmt"
)

// ErrDatasetUnavailable is returned when the dataset could not be fetched or
// parsed. The application keeps running with no dataset.
var ErrDatasetUnavailable = errors.New("dataset unavailable")

// ValidationError reports the first invalid record when strict validation is on.
type ValidationError struct {
	Warning Warning
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid record %s", e.Warning)
}
