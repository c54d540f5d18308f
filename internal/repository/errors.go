package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Domain-level errors I prefer to bubble up from repository implementations.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrConflict      = errors.New("conflict")
)

// MapMongoError translates common driver errors to domain errors.
// I only map what I expect to handle explicitly at higher layers; everything
// else (connectivity, server selection, timeouts) passes through unchanged.
func MapMongoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrAlreadyExists
	}
	return err
}
