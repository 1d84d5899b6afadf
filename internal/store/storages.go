package store

import "github.com/MKhiriev/go-site-keeper/internal/logger"

// Storages aggregates every repository backed by the same database.
type Storages struct {
	UserRepository   UserRepository
	ConfigRepository ConfigRepository
	FriendRepository FriendRepository
	ObjectRepository ObjectRepository
}

// NewStorages builds all repositories on top of db.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:   NewUserRepository(db, log),
		ConfigRepository: NewConfigRepository(db, log),
		FriendRepository: NewFriendRepository(db, log),
		ObjectRepository: NewObjectRepository(db, log),
	}
}
