package jsonstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/model"
)

func TestNewInDir(t *testing.T) {
	s := NewInDir("/tmp/tada")
	assert.Equal(t, "/tmp/tada/todos.json", s.Path())
}

func TestSlot_LoadMissing(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope.json"))
	items, err := s.Load()
	require.NoError(t, err)
	assert.Nil(t, items)
}

func TestSlot_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "todos.json")
	s := New(path)

	items := []model.Item{
		{ID: 1, Title: "Buy milk", Description: "2%"},
		{ID: 2, Title: "Call dentist", Description: "reschedule"},
	}
	require.NoError(t, s.Save(items))

	got, err := New(path).Load()
	require.NoError(t, err)
	assert.Equal(t, items, got)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestSlot_SaveReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	s := New(path)

	require.NoError(t, s.Save([]model.Item{{ID: 1, Title: "a", Description: "b"}, {ID: 2, Title: "c", Description: "d"}}))
	require.NoError(t, s.Save([]model.Item{{ID: 2, Title: "c", Description: "d"}}))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []model.Item{{ID: 2, Title: "c", Description: "d"}}, got)
}

func TestSlot_SaveEmptyWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	require.NoError(t, New(path).Save(nil))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(b))
}

func TestSlot_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	require.NoError(t, os.WriteFile(path, []byte("not valid json"), 0o644))

	items, err := New(path).Load()
	assert.Error(t, err)
	assert.Nil(t, items)
}
