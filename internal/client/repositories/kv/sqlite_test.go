package kv

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv (
  namespace  TEXT NOT NULL DEFAULT '',
  key        TEXT NOT NULL,
  value      BLOB NOT NULL,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (namespace, key)
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet_InsertThenGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), "u1")
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "chatHistory_2025-03-10", []byte(`{"v":1}`)))

	v, err := r.Get(ctx, "chatHistory_2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"v":1}`), v)
	assert.Equal(t, "u1", r.Namespace())
}

func TestGet_NotExists_ReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), "u1")

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSet_UpsertOverwritesValue(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), "")
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "authToken", []byte("old")))
	require.NoError(t, r.Set(ctx, "authToken", []byte("new")))

	v, err := r.Get(ctx, "authToken")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestNamespaces_AreIsolated(t *testing.T) {
	db := setupDB(t)
	alice := NewSQLiteRepository(db, "alice")
	bob := NewSQLiteRepository(db, "bob")
	ctx := context.Background()

	require.NoError(t, alice.Set(ctx, "chatHistoryIndex", []byte(`["2025-03-10"]`)))

	v, err := bob.Get(ctx, "chatHistoryIndex")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, bob.Set(ctx, "chatHistoryIndex", []byte(`[]`)))
	require.NoError(t, bob.Clear(ctx))

	v, err = alice.Get(ctx, "chatHistoryIndex")
	require.NoError(t, err)
	assert.Equal(t, []byte(`["2025-03-10"]`), v, "clearing one namespace must not touch another")
}

func TestList_ReturnsAllPairs(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), "u1")
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", []byte{0xAA}))
	require.NoError(t, r.Set(ctx, "b", []byte{0xBB, 0xCC}))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Equal(t, []byte{0xAA}, m["a"])
	assert.Equal(t, []byte{0xBB, 0xCC}, m["b"])
}

func TestDelete_RemovesKey_AndIsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), "u1")
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", []byte{0x01}))
	require.NoError(t, r.Delete(ctx, "x"))

	v, err := r.Get(ctx, "x")
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, r.Delete(ctx, "x"))
}

func TestClear_RemovesAllKeys(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), "u1")
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", []byte{1}))
	require.NoError(t, r.Set(ctx, "b", []byte{2}))
	require.NoError(t, r.Clear(ctx))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestErrorsAreWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("disk full")
	r := NewSQLiteRepository(db, "u1")
	ctx := context.Background()

	mock.ExpectQuery(`SELECT value FROM kv`).WithArgs("u1", "k").WillReturnError(boom)
	_, err = r.Get(ctx, "k")
	require.ErrorIs(t, err, boom)
	require.ErrorContains(t, err, "failed to get kv[k]")

	mock.ExpectExec(`INSERT INTO kv`).WithArgs("u1", "k", []byte("v")).WillReturnError(boom)
	err = r.Set(ctx, "k", []byte("v"))
	require.ErrorContains(t, err, "failed to set kv[k]")

	mock.ExpectExec(`DELETE FROM kv WHERE namespace = \? AND key = \?`).WithArgs("u1", "k").WillReturnError(boom)
	err = r.Delete(ctx, "k")
	require.ErrorContains(t, err, "failed to delete kv[k]")

	mock.ExpectExec(`DELETE FROM kv WHERE namespace = \?$`).WithArgs("u1").WillReturnError(boom)
	err = r.Clear(ctx)
	require.ErrorContains(t, err, "failed to clear kv")

	mock.ExpectQuery(`SELECT key, value FROM kv`).WithArgs("u1").WillReturnError(boom)
	_, err = r.List(ctx)
	require.ErrorContains(t, err, "failed to list kv")

	require.NoError(t, mock.ExpectationsWereMet())
}
