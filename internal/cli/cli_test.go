package cli

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store/memstore"
)

type result struct {
	code           int
	stdout, stderr string
}

// run executes the tree against slot with an isolated config dir.
func run(t *testing.T, slot *memstore.Slot, args ...string) result {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var out, errOut bytes.Buffer
	opt := Options{Stdout: &out, Stderr: &errOut}
	if slot != nil {
		opt.Slot = slot
	}
	code := Execute(append([]string{"--theme", "mono"}, args...), opt)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func TestAdd_ScenariosAB(t *testing.T) {
	slot := memstore.New()

	r := run(t, slot, "add", "Buy milk", "2%")
	require.Equal(t, ExitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "added #1")

	r = run(t, slot, "add", "Call dentist", "reschedule")
	require.Equal(t, ExitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "added #2")

	items, err := slot.Load()
	require.NoError(t, err)
	assert.Equal(t, []model.Item{
		{ID: 1, Title: "Buy milk", Description: "2%"},
		{ID: 2, Title: "Call dentist", Description: "reschedule"},
	}, items)
}

func TestAdd_ValidationFailure(t *testing.T) {
	slot := memstore.NewWith([]model.Item{{ID: 1, Title: "a", Description: "b"}})

	r := run(t, slot, "add", "", "something")
	assert.Equal(t, ExitUsage, r.code)
	assert.Contains(t, r.stderr, model.FillAllInputs)
	assert.Zero(t, slot.Saves())
	assert.NotContains(t, r.stdout, "•", "no confetti on a rejected add")
}

func TestAdd_WrongArgCount(t *testing.T) {
	r := run(t, memstore.New(), "add", "only-title")
	assert.Equal(t, ExitUsage, r.code)
	assert.Contains(t, r.stderr, "accepts 2 arg(s)")
}

func TestAdd_NoIDLeft(t *testing.T) {
	slot := memstore.NewWith([]model.Item{{ID: math.MaxInt, Title: "a", Description: "b"}})
	r := run(t, slot, "add", "c", "d")
	assert.Equal(t, ExitError, r.code)
	assert.Contains(t, r.stderr, "no id left")
	assert.Zero(t, slot.Saves())
}

func TestFinish_ScenarioC(t *testing.T) {
	slot := memstore.NewWith([]model.Item{
		{ID: 1, Title: "Buy milk", Description: "2%"},
		{ID: 2, Title: "Call dentist", Description: "reschedule"},
	})

	r := run(t, slot, "finish", "1")
	require.Equal(t, ExitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "ok finished #1")

	items, err := slot.Load()
	require.NoError(t, err)
	assert.Equal(t, []model.Item{{ID: 2, Title: "Call dentist", Description: "reschedule"}}, items)
}

func TestFinish_UnknownIDIsNotAnError(t *testing.T) {
	slot := memstore.NewWith([]model.Item{{ID: 1, Title: "a", Description: "b"}})
	r := run(t, slot, "done", "7", "--no-celebrate")
	assert.Equal(t, ExitOK, r.code)
	assert.Contains(t, r.stdout, "no item with id 7")
	assert.Equal(t, 1, slot.Saves())
}

func TestFinish_NotANumber(t *testing.T) {
	r := run(t, memstore.New(), "rm", "abc")
	assert.Equal(t, ExitUsage, r.code)
	assert.Contains(t, r.stderr, "not a number: abc")
}

func TestList(t *testing.T) {
	slot := memstore.NewWith([]model.Item{
		{ID: 1, Title: "Buy milk", Description: "2%"},
		{ID: 3, Title: "Call dentist", Description: "reschedule"},
	})

	r := run(t, slot, "ls")
	require.Equal(t, ExitOK, r.code, r.stderr)
	assert.Contains(t, r.stdout, "#1 Buy milk")
	assert.Contains(t, r.stdout, "#3 Call dentist")
	assert.Contains(t, r.stdout, "reschedule")
}

func TestList_Empty(t *testing.T) {
	r := run(t, memstore.New(), "ls")
	require.Equal(t, ExitOK, r.code)
	assert.Contains(t, r.stdout, "Go ahead and add a new item")
}

func TestList_JSON(t *testing.T) {
	want := []model.Item{{ID: 1, Title: "Buy milk", Description: "2%"}}
	r := run(t, memstore.NewWith(want), "ls", "--json")
	require.Equal(t, ExitOK, r.code)

	var got []model.Item
	require.NoError(t, json.Unmarshal([]byte(r.stdout), &got))
	assert.Equal(t, want, got)
}

func TestList_CorruptSlotIsEmpty(t *testing.T) {
	slot := memstore.New()
	slot.SetRaw([]byte("not valid json"))
	r := run(t, slot, "ls", "--json")
	require.Equal(t, ExitOK, r.code)
	assert.JSONEq(t, "[]", r.stdout)
}

func TestFileBackend_PersistsAcrossRuns(t *testing.T) {
	dir := t.TempDir()

	r := run(t, nil, "--data-dir", dir, "add", "Buy milk", "2%")
	require.Equal(t, ExitOK, r.code, r.stderr)
	r = run(t, nil, "--data-dir", dir, "add", "Call dentist", "reschedule")
	require.Equal(t, ExitOK, r.code, r.stderr)
	r = run(t, nil, "--data-dir", dir, "--no-celebrate", "finish", "1")
	require.Equal(t, ExitOK, r.code, r.stderr)

	b, err := os.ReadFile(filepath.Join(dir, "todos.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":2,"title":"Call dentist","description":"reschedule"}]`, string(b))
}

func TestSQLiteBackend_PersistsAcrossRuns(t *testing.T) {
	dir := t.TempDir()

	r := run(t, nil, "--storage", "sqlite", "--data-dir", dir, "add", "Buy milk", "2%")
	require.Equal(t, ExitOK, r.code, r.stderr)

	r = run(t, nil, "--storage", "sqlite", "--data-dir", dir, "ls", "--json")
	require.Equal(t, ExitOK, r.code, r.stderr)
	assert.JSONEq(t, `[{"id":1,"title":"Buy milk","description":"2%"}]`, r.stdout)
	assert.FileExists(t, filepath.Join(dir, "tada.db"))
}

func TestBadConfigFile(t *testing.T) {
	r := run(t, memstore.New(), "--config", filepath.Join(t.TempDir(), "missing.yaml"), "ls")
	assert.Equal(t, ExitError, r.code)
	assert.Contains(t, r.stderr, "config file not found")
}

func TestUnknownSubcommand(t *testing.T) {
	r := run(t, memstore.New(), "frobnicate")
	assert.Equal(t, ExitUsage, r.code)
}

func TestVersion(t *testing.T) {
	r := run(t, nil, "--version")
	assert.Equal(t, ExitOK, r.code)
	assert.Contains(t, r.stdout, "tada dev")
}
