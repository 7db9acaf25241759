package postgres

import "github.com/pkg/errors"

// ErrNotFound is the repositories' shared missing-row error.
var ErrNotFound = errors.New("row not found")
