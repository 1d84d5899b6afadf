package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-site-keeper/internal/logger"
	"github.com/MKhiriev/go-site-keeper/models"
)

// friendRepository is the PostgreSQL-backed implementation of
// [FriendRepository] over the "friends" table.
type friendRepository struct {
	*DB
	logger *logger.Logger
}

// NewFriendRepository constructs a [FriendRepository] backed by db.
func NewFriendRepository(db *DB, logger *logger.Logger) FriendRepository {
	return &friendRepository{
		DB:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFriend(row rowScanner) (models.Friend, error) {
	var f models.Friend
	err := row.Scan(
		&f.ID,
		&f.Name,
		&f.Description,
		&f.Avatar,
		&f.URL,
		&f.OwnerUserID,
		&f.Accepted,
		&f.SortOrder,
		&f.Health,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	return f, err
}

func buildListFriendsQuery(filter models.FriendFilter) (string, []any, error) {
	query := psql.Select(friendColumns...).From("friends")

	if filter.AcceptedOnly {
		if filter.IncludeOwner != 0 {
			query = query.Where(sq.Or{sq.Eq{"accepted": true}, sq.Eq{"uid": filter.IncludeOwner}})
		} else {
			query = query.Where(sq.Eq{"accepted": true})
		}
	}

	return query.OrderBy("sort_order DESC", "id ASC").ToSql()
}

func (r *friendRepository) List(ctx context.Context, filter models.FriendFilter) ([]models.Friend, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListFriendsQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*friendRepository.List").Msg("failed to query friends")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	friends := make([]models.Friend, 0, 16)
	for rows.Next() {
		f, err := scanFriend(rows)
		if err != nil {
			log.Err(err).Str("func", "*friendRepository.List").Msg("failed to scan friend row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		friends = append(friends, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return friends, nil
}

func (r *friendRepository) Get(ctx context.Context, id int64) (models.Friend, error) {
	query, args, err := psql.Select(friendColumns...).From("friends").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.Friend{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	f, err := scanFriend(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Friend{}, ErrFriendNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*friendRepository.Get").Int64("id", id).Msg("failed to get friend")
		return models.Friend{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return f, nil
}

func (r *friendRepository) CountByOwner(ctx context.Context, ownerUserID int64) (int, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx, countFriendsByOwner, ownerUserID).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*friendRepository.CountByOwner").Msg("failed to count friends")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count, nil
}

func (r *friendRepository) Create(ctx context.Context, friend models.Friend) (models.Friend, error) {
	query, args, err := psql.Insert("friends").
		Columns("name", "description", "avatar", "url", "uid", "accepted", "sort_order").
		Values(friend.Name, friend.Description, friend.Avatar, friend.URL, friend.OwnerUserID, friend.Accepted, friend.SortOrder).
		Suffix("RETURNING " + joinColumns(friendColumns)).
		ToSql()
	if err != nil {
		return models.Friend{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanFriend(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*friendRepository.Create").
			Int64("uid", friend.OwnerUserID).
			Msg("failed to create friend")
		return models.Friend{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

// Update overwrites every mutable column of the entry with friend.ID.
func (r *friendRepository) Update(ctx context.Context, friend models.Friend) (models.Friend, error) {
	query, args, err := psql.Update("friends").
		Set("name", friend.Name).
		Set("description", friend.Description).
		Set("avatar", friend.Avatar).
		Set("url", friend.URL).
		Set("accepted", friend.Accepted).
		Set("sort_order", friend.SortOrder).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": friend.ID}).
		Suffix("RETURNING " + joinColumns(friendColumns)).
		ToSql()
	if err != nil {
		return models.Friend{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanFriend(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Friend{}, ErrFriendNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*friendRepository.Update").Int64("id", friend.ID).Msg("failed to update friend")
		return models.Friend{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return updated, nil
}

func (r *friendRepository) Delete(ctx context.Context, id int64) error {
	return r.execAffectingOne(ctx, "*friendRepository.Delete", ErrFriendNotFound, deleteFriend, id)
}

func (r *friendRepository) UpdateHealth(ctx context.Context, id int64, health string) error {
	return r.execAffectingOne(ctx, "*friendRepository.UpdateHealth", ErrFriendNotFound, updateFriendHealth, id, health)
}

// execAffectingOne runs a statement that must touch a row; otherwise it
// returns notFound.
func (db *DB) execAffectingOne(ctx context.Context, funcName string, notFound error, query string, args ...any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("failed to execute statement")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return notFound
	}

	return nil
}
