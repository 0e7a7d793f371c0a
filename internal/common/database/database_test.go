package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// WithTx
// ==========================

func TestWithTx_Commits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE career_plans`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = WithTx(context.Background(), db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`UPDATE career_plans SET readiness_score = 1`)
		return err
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err = WithTx(context.Background(), db, func(tx *sql.Tx) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// JSON cache helpers
// ==========================

type cachedSignals struct {
	Skills []string `json:"skills"`
}

func setupMiniredis(t *testing.T) *redis.Client {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestJSONCache_RoundTrip(t *testing.T) {
	rdb := setupMiniredis(t)
	ctx := context.Background()

	var got cachedSignals
	found, err := GetJSON(ctx, rdb, "candidate:signals:c-1", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, rdb, "candidate:signals:c-1", cachedSignals{Skills: []string{"go"}}, time.Minute))

	found, err = GetJSON(ctx, rdb, "candidate:signals:c-1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"go"}, got.Skills)
}

func TestGetJSON_CorruptValue(t *testing.T) {
	rdb := setupMiniredis(t)
	ctx := context.Background()
	require.NoError(t, rdb.Set(ctx, "k", "{not json", 0).Err())

	var got cachedSignals
	found, err := GetJSON(ctx, rdb, "k", &got)
	assert.Error(t, err)
	assert.False(t, found)
}
