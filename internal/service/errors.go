package service

import (
	"fmt"

	"github.com/go-faster/errors"

	"github.com/Shahriar-Fardows/snowfye-server/internal/repository"
)

// Error kinds returned by the services. Anything that is none of these is a
// backend failure.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("concurrent modification")
)

type kindError struct {
	kind error
	err  error
}

func (e *kindError) Error() string   { return e.err.Error() }
func (e *kindError) Unwrap() []error { return []error{e.kind, e.err} }

func invalidArgument(format string, args ...interface{}) error {
	return &kindError{kind: ErrInvalidArgument, err: fmt.Errorf(format, args...)}
}

// translate maps repository errors onto the service error kinds.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrInvalidID):
		return &kindError{kind: ErrInvalidArgument, err: err}
	case errors.Is(err, repository.ErrNotFound):
		return &kindError{kind: ErrNotFound, err: err}
	default:
		return err
	}
}
