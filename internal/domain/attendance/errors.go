package attendance

import "errors"

var (
	ErrEntryNotFound = errors.New("attendance entry not found")
)
