// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package policy

import (
	"errors"

	"github.com/MKhiriev/go-site-keeper/models"
)

var (
	// ErrUnauthenticated is returned when an operation needs an identity
	// and the caller is anonymous.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden is returned when the caller is known but lacks the
	// privilege.
	ErrForbidden = errors.New("permission denied")
)

// CanReadServerConfig: admins only.
func CanReadServerConfig(id *models.Identity) bool {
	return id.Admin()
}

// CanReadClientConfig: everyone, anonymous callers included.
func CanReadClientConfig(*models.Identity) bool {
	return true
}

// CanReadConfig dispatches on the namespace. Unknown namespaces are never
// readable.
func CanReadConfig(ns models.Namespace, id *models.Identity) bool {
	switch ns {
	case models.NamespaceServer:
		return CanReadServerConfig(id)
	case models.NamespaceClient:
		return CanReadClientConfig(id)
	}
	return false
}

// CanWriteConfig: admins only, for both namespaces.
func CanWriteConfig(_ models.Namespace, id *models.Identity) bool {
	return id.Admin()
}

// CanMutateOwnedResource: the owner or an admin.
func CanMutateOwnedResource(id *models.Identity, ownerUserID int64) bool {
	if id == nil {
		return false
	}
	return id.IsAdmin || id.UserID == ownerUserID
}

// CanSetAcceptance: admins only.
func CanSetAcceptance(id *models.Identity) bool {
	return id.Admin()
}

// RequireAuthenticated fails for anonymous callers.
func RequireAuthenticated(id *models.Identity) error {
	if id == nil {
		return ErrUnauthenticated
	}
	return nil
}

// RequireAdmin fails with ErrUnauthenticated for anonymous callers and
// ErrForbidden for non-admins.
func RequireAdmin(id *models.Identity) error {
	if err := RequireAuthenticated(id); err != nil {
		return err
	}
	if !id.IsAdmin {
		return ErrForbidden
	}
	return nil
}

// RequireOwnerOrAdmin fails unless the caller owns the resource or is an
// admin.
func RequireOwnerOrAdmin(id *models.Identity, ownerUserID int64) error {
	if err := RequireAuthenticated(id); err != nil {
		return err
	}
	if !CanMutateOwnedResource(id, ownerUserID) {
		return ErrForbidden
	}
	return nil
}

// RequireConfigRead applies the read rule of ns, telling anonymous callers
// apart from unprivileged ones.
func RequireConfigRead(ns models.Namespace, id *models.Identity) error {
	if CanReadConfig(ns, id) {
		return nil
	}
	if id == nil {
		return ErrUnauthenticated
	}
	return ErrForbidden
}

// RequireConfigWrite applies the write rule of ns.
func RequireConfigWrite(ns models.Namespace, id *models.Identity) error {
	if CanWriteConfig(ns, id) {
		return nil
	}
	if id == nil {
		return ErrUnauthenticated
	}
	return ErrForbidden
}
