// Package service contains the business logic of the catalogue: the token
// gate, the create/delete cascade and one resource service per entity kind.
package service

import (
	"errors"
	"fmt"
)

var (
	// ErrTokenRequired is returned when no Authorization header was presented.
	ErrTokenRequired = errors.New("videominer calls require authorization")

	// ErrTokenInvalid is returned when the presented token is not registered.
	ErrTokenInvalid = errors.New("videominer doesn't allow calls without a valid token")

	// ErrIDRequired is returned when a create payload omits the entity id.
	ErrIDRequired = errors.New("id in the body request cannot be null")

	// ErrTokenValueRequired is returned when a token create payload omits the value.
	ErrTokenValueRequired = errors.New("token value cannot be null")
)

// NotFoundError reports a missing entity of a specific kind.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id '%s'", e.Entity, e.Key)
}

func notFound(entity, key string) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: key}
}

// IsNotFound reports whether err is a NotFoundError of any entity kind.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
