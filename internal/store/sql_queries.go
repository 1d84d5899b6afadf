package store

import (
	sq "github.com/Masterminds/squirrel"
)

// psql builds queries with PostgreSQL "$n" placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	findUserByID = `SELECT user_id, username, avatar, permission, created_at
    FROM users
    WHERE user_id = $1;`

	getAllConfigs = `SELECT key, value::text
    FROM configs
    WHERE namespace = $1;`

	getConfig = `SELECT value::text
    FROM configs
    WHERE namespace = $1 AND key = $2;`

	// lockConfigNamespace serializes writers of one namespace until the
	// surrounding transaction ends.
	lockConfigNamespace = `SELECT pg_advisory_xact_lock(hashtext('configs:' || $1));`

	upsertConfigSuffix = `ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`

	countFriendsByOwner = `SELECT COUNT(*) FROM friends WHERE uid = $1;`

	updateFriendHealth = `UPDATE friends SET health = $2 WHERE id = $1;`

	deleteFriend = `DELETE FROM friends WHERE id = $1;`

	deleteObject = `DELETE FROM objects WHERE key = $1;`
)

var (
	friendColumns = []string{
		"id", "name", "description", "avatar", "url", "uid",
		"accepted", "sort_order", "health", "created_at", "updated_at",
	}

	objectColumns = []string{"key", "uid", "content_type", "size", "created_at"}
)
