package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-site-keeper/internal/logger"
	"github.com/MKhiriev/go-site-keeper/models"
	"github.com/jackc/pgerrcode"
)

// objectRepository keeps the metadata of uploaded objects; the bytes live
// in the object store.
type objectRepository struct {
	*DB
	logger *logger.Logger
}

// NewObjectRepository constructs an [ObjectRepository] backed by db.
func NewObjectRepository(db *DB, logger *logger.Logger) ObjectRepository {
	return &objectRepository{
		DB:     db,
		logger: logger,
	}
}

func scanObject(row rowScanner) (models.StoredObject, error) {
	var o models.StoredObject
	err := row.Scan(&o.Key, &o.OwnerUserID, &o.ContentType, &o.Size, &o.CreatedAt)
	return o, err
}

func (r *objectRepository) Create(ctx context.Context, object models.StoredObject) error {
	query, args, err := psql.Insert("objects").
		Columns("key", "uid", "content_type", "size").
		Values(object.Key, object.OwnerUserID, object.ContentType, object.Size).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return ErrObjectAlreadyExists
		}
		logger.FromContext(ctx).Err(err).Str("func", "*objectRepository.Create").Str("key", object.Key).Msg("failed to save object")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *objectRepository) Get(ctx context.Context, key string) (models.StoredObject, error) {
	query, args, err := psql.Select(objectColumns...).From("objects").Where(sq.Eq{"key": key}).ToSql()
	if err != nil {
		return models.StoredObject{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	o, err := scanObject(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.StoredObject{}, ErrObjectNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*objectRepository.Get").Str("key", key).Msg("failed to get object")
		return models.StoredObject{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return o, nil
}

func (r *objectRepository) List(ctx context.Context, ownerUserID int64) ([]models.StoredObject, error) {
	builder := psql.Select(objectColumns...).From("objects").OrderBy("created_at DESC")
	if ownerUserID != 0 {
		builder = builder.Where(sq.Eq{"uid": ownerUserID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*objectRepository.List").Msg("failed to list objects")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	objects := make([]models.StoredObject, 0, 16)
	for rows.Next() {
		o, err := scanObject(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		objects = append(objects, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return objects, nil
}

func (r *objectRepository) Delete(ctx context.Context, key string) error {
	return r.execAffectingOne(ctx, "*objectRepository.Delete", ErrObjectNotFound, deleteObject, key)
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}
