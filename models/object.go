package models

import "time"

// StoredObject describes a file kept in the object store.
type StoredObject struct {
	Key         string    `json:"key"`
	OwnerUserID int64     `json:"uid"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
}

// ObjectContent is the payload of an object read back from the store.
type ObjectContent struct {
	Data        []byte
	ContentType string
}
