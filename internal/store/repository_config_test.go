package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-site-keeper/internal/logger"
	"github.com/MKhiriev/go-site-keeper/models"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfigRepo(t *testing.T) (*configRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &configRepository{DB: db, logger: logger.Nop()}, mock
}

func TestConfigRepository_All(t *testing.T) {
	repo, mock := newTestConfigRepo(t)

	rows := sqlmock.NewRows([]string{"key", "value"}).
		AddRow("site.title", `"My Site"`).
		AddRow("ai_summary.enable", `true`)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT key, value::text")).
		WithArgs("client").
		WillReturnRows(rows)

	entries, err := repo.All(context.Background(), models.NamespaceClient)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"site.title":        `"My Site"`,
		"ai_summary.enable": `true`,
	}, entries)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfigRepository_All_QueryError(t *testing.T) {
	repo, mock := newTestConfigRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT key, value::text")).
		WithArgs("server").
		WillReturnError(errors.New("boom"))

	_, err := repo.All(context.Background(), models.NamespaceServer)
	require.ErrorIs(t, err, ErrExecutingQuery)
}

func TestConfigRepository_Get_NotFound(t *testing.T) {
	repo, mock := newTestConfigRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value::text")).
		WithArgs("server", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, err := repo.Get(context.Background(), models.NamespaceServer, "missing")
	require.ErrorIs(t, err, ErrConfigNotFound)
}

func TestConfigRepository_Get_Success(t *testing.T) {
	repo, mock := newTestConfigRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value::text")).
		WithArgs("server", "ai_summary.model").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`"gpt-4o-mini"`))

	value, err := repo.Get(context.Background(), models.NamespaceServer, "ai_summary.model")
	require.NoError(t, err)
	assert.Equal(t, `"gpt-4o-mini"`, value)
}

func TestBuildUpsertConfigsQuery_SortedKeys(t *testing.T) {
	query, args, err := buildUpsertConfigsQuery(models.NamespaceClient, map[string]string{
		"b.key": `2`,
		"a.key": `1`,
	})
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO configs (namespace,key,value)")
	assert.Contains(t, query, "VALUES ($1,$2,$3),($4,$5,$6)")
	assert.Contains(t, query, "ON CONFLICT (namespace, key) DO UPDATE")
	assert.Equal(t, []any{"client", "a.key", `1`, "client", "b.key", `2`}, args)
}

func TestConfigRepository_Upsert_Empty(t *testing.T) {
	repo, mock := newTestConfigRepo(t)

	require.NoError(t, repo.Upsert(context.Background(), models.NamespaceClient, nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfigRepository_Upsert_Success(t *testing.T) {
	repo, mock := newTestConfigRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("pg_advisory_xact_lock")).
		WithArgs("client").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO configs").
		WithArgs("client", "site.title", `"x"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Upsert(context.Background(), models.NamespaceClient, map[string]string{"site.title": `"x"`})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfigRepository_Upsert_RetriesSerializationFailure(t *testing.T) {
	repo, mock := newTestConfigRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("pg_advisory_xact_lock")).
		WithArgs("client").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO configs").
		WillReturnError(pgError(pgerrcode.SerializationFailure))
	mock.ExpectRollback()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("pg_advisory_xact_lock")).
		WithArgs("client").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO configs").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Upsert(context.Background(), models.NamespaceClient, map[string]string{"site.title": `"x"`})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfigRepository_Upsert_NonRetryableRollsBack(t *testing.T) {
	repo, mock := newTestConfigRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("pg_advisory_xact_lock")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO configs").
		WillReturnError(pgError(pgerrcode.InvalidTextRepresentation))
	mock.ExpectRollback()

	err := repo.Upsert(context.Background(), models.NamespaceServer, map[string]string{"k": `bad`})
	require.ErrorIs(t, err, ErrExecutingQuery)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfigRepository_Upsert_BeginError(t *testing.T) {
	repo, mock := newTestConfigRepo(t)

	mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

	err := repo.Upsert(context.Background(), models.NamespaceServer, map[string]string{"k": `1`})
	require.ErrorIs(t, err, ErrBeginningTransaction)
}
