package database

import (
	"errors"

	"facemark.io/infrastructure/database/connection"
)

func SetUpDatabase() {
	connection.ConnectToDatabase()
}

type BaseModel interface {
	ParseModel() any
}

// Returned by Repository implementations when an insert collides with a
// unique index. Callers map it to their own domain outcome.
var ErrDuplicateKey = errors.New("duplicate key")

type FindOptions struct {
	Projection map[string]any
	Sort       map[string]any
	Skip       *int64
	Limit      *int64
}

// Repository is the storage contract every datastore implementation satisfies.
// The implementation is picked once at start up (DB_PROVIDER) and never
// swapped mid-flight.
type Repository[T BaseModel] interface {
	CreateOne(payload T) (*T, error)
	FindByID(id string) (*T, error)
	FindOneByFilter(filter map[string]any) (*T, error)
	FindMany(filter map[string]any, opts ...FindOptions) ([]T, error)
	CountDocs(filter map[string]any) (int64, error)
	UpdatePartialByID(id string, payload map[string]any) (int64, error)
	UpdatePartialByFilter(filter map[string]any, payload map[string]any) (int64, error)
	IncrementFields(filter map[string]any, fields map[string]int64) (int64, error)
	DeleteByID(id string) (int64, error)
}
