package db

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDataStore(t *testing.T, ds DataStore) {
	t.Helper()

	require.NoError(t, ds.Ping())

	first := CreateRandomDocument()
	second := CreateRandomDocument()

	exists, err := ds.DoesDocumentExist(first.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = ds.GetDocument(first.ID)
	assert.True(t, errors.Is(err, ErrDocumentNotFound))

	require.NoError(t, ds.SaveDocument(first.ID, first.Content))
	require.NoError(t, ds.SaveDocument(second.ID, second.Content))

	exists, err = ds.DoesDocumentExist(first.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := ds.GetDocument(first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, first.Content, got.Content)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Nil(t, got.UpdatedAt)

	require.NoError(t, ds.SaveDocument(first.ID, "<p>changed</p>"))
	got, err = ds.GetDocument(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "<p>changed</p>", got.Content)
	assert.NotNil(t, got.UpdatedAt)

	ids, err := ds.GetDocumentIds()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{first.ID, second.ID}, ids)

	require.NoError(t, ds.RemoveDocument(first.ID))
	assert.True(t, errors.Is(ds.RemoveDocument(first.ID), ErrDocumentNotFound))

	ids, err = ds.GetDocumentIds()
	require.NoError(t, err)
	assert.Equal(t, []string{second.ID}, ids)
}

func TestMemoryDataStore(t *testing.T) {
	ds := NewMemoryDataStore()
	testDataStore(t, ds)
	assert.NoError(t, ds.Close())
}

func TestSQLiteDataStore(t *testing.T) {
	ds, err := NewSQLiteDB(filepath.Join(t.TempDir(), "todolist.db"), nil)
	require.NoError(t, err)
	defer ds.Close()

	testDataStore(t, ds)
}

func TestSQLiteMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todolist.db")

	ds, err := NewSQLiteDB(path, nil)
	require.NoError(t, err)
	require.NoError(t, ds.SaveDocument("doc", "<p>x</p>"))
	require.NoError(t, ds.Close())

	ds, err = NewSQLiteDB(path, nil)
	require.NoError(t, err)
	defer ds.Close()

	got, err := ds.GetDocument("doc")
	require.NoError(t, err)
	assert.Equal(t, "<p>x</p>", got.Content)
}
