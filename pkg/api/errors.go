package api

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound – API ответил корректно, но песни нет.
	ErrNotFound = errors.New("song not found")
	// ErrUnavailable – песня есть, но у неё нет нужного поля (например, media_url).
	ErrUnavailable = errors.New("song media unavailable")

	errInvalidJSON = errors.New("invalid json response")
)

// LookupError – сбой транспорта или разбора ответа при обращении к API.
type LookupError struct {
	Op  string
	URL string
	Err error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }
