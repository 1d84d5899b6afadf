// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_staticQueries_UsePostgresPlaceholders(t *testing.T) {
	queries := map[string]string{
		"findUserByID":        findUserByID,
		"getAllConfigs":       getAllConfigs,
		"getConfig":           getConfig,
		"lockConfigNamespace": lockConfigNamespace,
		"countFriendsByOwner": countFriendsByOwner,
		"updateFriendHealth":  updateFriendHealth,
		"deleteFriend":        deleteFriend,
		"deleteObject":        deleteObject,
	}

	for name, q := range queries {
		t.Run(name, func(t *testing.T) {
			require.Contains(t, q, "$1")
			require.NotContains(t, q, "?")
		})
	}
}

func Test_configQueries_ReadJSONAsText(t *testing.T) {
	require.Contains(t, getAllConfigs, "value::text")
	require.Contains(t, getConfig, "value::text")
	require.True(t, strings.HasPrefix(upsertConfigSuffix, "ON CONFLICT (namespace, key)"))
}

func Test_joinColumns(t *testing.T) {
	require.Equal(t, "key, uid, content_type, size, created_at", joinColumns(objectColumns))
}
