package outingdb

import "errors"

var (
	ErrOutingNotFound = errors.New("outing not found")
)
