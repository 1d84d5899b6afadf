package policy

import (
	"testing"

	"github.com/MKhiriev/go-site-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	anonymous *models.Identity
	admin     = &models.Identity{UserID: 1, IsAdmin: true}
	owner     = &models.Identity{UserID: 2}
	stranger  = &models.Identity{UserID: 3}
)

func TestConfigReadRules(t *testing.T) {
	assert.True(t, CanReadServerConfig(admin))
	assert.False(t, CanReadServerConfig(owner))
	assert.False(t, CanReadServerConfig(anonymous))

	for _, id := range []*models.Identity{anonymous, admin, owner} {
		assert.True(t, CanReadClientConfig(id))
		assert.NoError(t, RequireConfigRead(models.NamespaceClient, id))
	}

	assert.False(t, CanReadConfig(models.Namespace("bogus"), admin))
}

func TestRequireConfigRead_Server(t *testing.T) {
	require.NoError(t, RequireConfigRead(models.NamespaceServer, admin))
	require.ErrorIs(t, RequireConfigRead(models.NamespaceServer, anonymous), ErrUnauthenticated)
	require.ErrorIs(t, RequireConfigRead(models.NamespaceServer, owner), ErrForbidden)
}

func TestRequireConfigWrite(t *testing.T) {
	for _, ns := range []models.Namespace{models.NamespaceServer, models.NamespaceClient} {
		assert.True(t, CanWriteConfig(ns, admin))
		assert.False(t, CanWriteConfig(ns, owner))

		require.NoError(t, RequireConfigWrite(ns, admin))
		require.ErrorIs(t, RequireConfigWrite(ns, anonymous), ErrUnauthenticated)
		require.ErrorIs(t, RequireConfigWrite(ns, owner), ErrForbidden)
	}
}

func TestCanMutateOwnedResource(t *testing.T) {
	const ownerID = 2

	assert.True(t, CanMutateOwnedResource(owner, ownerID))
	assert.True(t, CanMutateOwnedResource(admin, ownerID))
	assert.False(t, CanMutateOwnedResource(stranger, ownerID))
	assert.False(t, CanMutateOwnedResource(anonymous, ownerID))

	require.NoError(t, RequireOwnerOrAdmin(owner, ownerID))
	require.NoError(t, RequireOwnerOrAdmin(admin, ownerID))
	require.ErrorIs(t, RequireOwnerOrAdmin(stranger, ownerID), ErrForbidden)
	require.ErrorIs(t, RequireOwnerOrAdmin(anonymous, ownerID), ErrUnauthenticated)
}

func TestCanSetAcceptance(t *testing.T) {
	assert.True(t, CanSetAcceptance(admin))
	assert.False(t, CanSetAcceptance(owner))
	assert.False(t, CanSetAcceptance(anonymous))
}

func TestRequireAdmin(t *testing.T) {
	require.NoError(t, RequireAdmin(admin))
	require.ErrorIs(t, RequireAdmin(owner), ErrForbidden)
	require.ErrorIs(t, RequireAdmin(anonymous), ErrUnauthenticated)
	require.ErrorIs(t, RequireAuthenticated(anonymous), ErrUnauthenticated)
	require.NoError(t, RequireAuthenticated(owner))
}
