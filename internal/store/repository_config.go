// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-site-keeper/internal/logger"
	"github.com/MKhiriev/go-site-keeper/models"
)

// configRepository keeps configuration entries in the "configs" table keyed
// by (namespace, key). Values are jsonb and travel as JSON text.
type configRepository struct {
	*DB
	logger *logger.Logger
}

// NewConfigRepository constructs a [ConfigRepository] backed by db.
func NewConfigRepository(db *DB, logger *logger.Logger) ConfigRepository {
	return &configRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *configRepository) All(ctx context.Context, namespace models.Namespace) (map[string]string, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, getAllConfigs, namespace.String())
	if err != nil {
		log.Err(err).
			Str("func", "*configRepository.All").
			Str("namespace", namespace.String()).
			Msg("failed to query configs")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			log.Err(err).Str("func", "*configRepository.All").Msg("failed to scan config row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		entries[key] = value
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*configRepository.All").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

func (r *configRepository) Get(ctx context.Context, namespace models.Namespace, key string) (string, error) {
	var value string
	err := r.DB.QueryRowContext(ctx, getConfig, namespace.String(), key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrConfigNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*configRepository.Get").
			Str("namespace", namespace.String()).
			Str("key", key).
			Msg("failed to query config")
		return "", fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return value, nil
}

// Upsert writes every entry in one transaction holding the namespace's
// advisory lock. Transient failures restart the whole transaction.
func (r *configRepository) Upsert(ctx context.Context, namespace models.Namespace, entries map[string]string) error {
	if len(entries) == 0 {
		return nil
	}

	query, args, err := buildUpsertConfigsQuery(namespace, entries)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.withRetry(ctx, func() error {
		return r.upsertTx(ctx, namespace, query, args)
	})
}

func (r *configRepository) upsertTx(ctx context.Context, namespace models.Namespace, query string, args []any) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*configRepository.Upsert").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, lockConfigNamespace, namespace.String()); err != nil {
		log.Err(err).Str("func", "*configRepository.Upsert").Msg("failed to lock config namespace")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "*configRepository.Upsert").
			Str("namespace", namespace.String()).
			Int("entries_count", len(args)/3).
			Msg("failed to upsert configs")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "*configRepository.Upsert").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// buildUpsertConfigsQuery builds one multi-row INSERT ... ON CONFLICT with
// keys in sorted order, so concurrent writers touch rows in the same order.
func buildUpsertConfigsQuery(namespace models.Namespace, entries map[string]string) (string, []any, error) {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	insert := psql.Insert("configs").Columns("namespace", "key", "value")
	for _, k := range keys {
		insert = insert.Values(namespace.String(), k, entries[k])
	}

	return insert.Suffix(upsertConfigSuffix).ToSql()
}
