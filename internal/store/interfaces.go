package store

import (
	"context"

	"github.com/MKhiriev/go-site-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository reads site accounts.
type UserRepository interface {
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// ConfigRepository persists configuration entries. Values are JSON texts.
type ConfigRepository interface {
	// All returns every entry of the namespace.
	All(ctx context.Context, namespace models.Namespace) (map[string]string, error)
	// Get returns one entry or [ErrConfigNotFound].
	Get(ctx context.Context, namespace models.Namespace, key string) (string, error)
	// Upsert writes all entries in a single transaction. Concurrent calls for
	// the same namespace are serialized.
	Upsert(ctx context.Context, namespace models.Namespace, entries map[string]string) error
}

// FriendRepository persists the link directory.
type FriendRepository interface {
	List(ctx context.Context, filter models.FriendFilter) ([]models.Friend, error)
	Get(ctx context.Context, id int64) (models.Friend, error)
	CountByOwner(ctx context.Context, ownerUserID int64) (int, error)
	Create(ctx context.Context, friend models.Friend) (models.Friend, error)
	Update(ctx context.Context, friend models.Friend) (models.Friend, error)
	Delete(ctx context.Context, id int64) error
	UpdateHealth(ctx context.Context, id int64, health string) error
}

// ObjectRepository persists metadata of uploaded objects.
type ObjectRepository interface {
	Create(ctx context.Context, object models.StoredObject) error
	Get(ctx context.Context, key string) (models.StoredObject, error)
	// List returns the objects of ownerUserID, or every object when it is zero.
	List(ctx context.Context, ownerUserID int64) ([]models.StoredObject, error)
	Delete(ctx context.Context, key string) error
}
