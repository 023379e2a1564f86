package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invest-sim/domain"
)

type fakeConfirmer struct {
	answer   bool
	question string
}

func (f *fakeConfirmer) Confirm(question string) (bool, error) {
	f.question = question
	return f.answer, nil
}

func useTempStorage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenarios.db")
	t.Setenv("INVEST_STORAGE_DRIVER", "sqlite")
	t.Setenv("INVEST_STORAGE_SQLITE_PATH", path)
	t.Setenv("INVEST_LOG_LEVEL", "error")
	return path
}

func run(t *testing.T, opts *RootOptions, args ...string) (string, error) {
	t.Helper()
	if opts == nil {
		opts = &RootOptions{}
	}
	cmd := newRootCommand(opts)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

var reservaArgs = []string{
	"--name", "Reserva", "--initial", "1000", "--contribution", "100",
	"--term", "12", "--term-unit", "months", "--rate", "12", "--rate-unit", "annual", "--tax", "15",
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"serve", "calc", "save", "list", "show", "delete", "export"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestInvalidFormat(t *testing.T) {
	useTempStorage(t)
	_, err := run(t, nil, "list", "--format", "xml")
	assert.ErrorContains(t, err, "invalid format")
}

func TestCalc_DoesNotSave(t *testing.T) {
	useTempStorage(t)

	out, err := run(t, nil, append([]string{"calc", "--format", "json"}, reservaArgs...)...)
	require.NoError(t, err)

	var result domain.ScenarioResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.InDelta(t, 2356.9523222100215, result.FinalNetValue.Amount, 1e-6)

	out, err = run(t, nil, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios saved yet.")
}

func TestSaveListShowDelete(t *testing.T) {
	useTempStorage(t)

	out, err := run(t, nil, append([]string{"save"}, reservaArgs...)...)
	require.NoError(t, err)
	assert.Contains(t, out, `Saved "Reserva" at index 0`)

	_, err = run(t, nil, "save", "--name", "Curto", "--initial", "500", "--term", "1", "--term-unit", "years")
	require.NoError(t, err)

	out, err = run(t, nil, "list", "--format", "json")
	require.NoError(t, err)
	var views []domain.ScenarioView
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	require.Len(t, views, 2)
	assert.Equal(t, "Reserva", views[0].Name)
	assert.Equal(t, "Curto", views[1].Name)

	_, err = run(t, nil, "save", "--index", "1", "--name", "Curto editado", "--initial", "700")
	require.NoError(t, err)

	out, err = run(t, nil, "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Curto editado")

	confirm := &fakeConfirmer{answer: false}
	out, err = run(t, &RootOptions{confirmer: confirm}, "delete", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")
	assert.Contains(t, confirm.question, "Reserva")

	confirm.answer = true
	_, err = run(t, &RootOptions{confirmer: confirm}, "delete", "0")
	require.NoError(t, err)

	out, err = run(t, nil, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Curto editado")
	assert.NotContains(t, out, "Reserva")
	assert.True(t, strings.Contains(out, "0  Curto editado"), out)
}

func TestSave_EmptyName(t *testing.T) {
	useTempStorage(t)

	_, err := run(t, nil, "save", "--initial", "100")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDelete_OutOfRange(t *testing.T) {
	useTempStorage(t)

	_, err := run(t, nil, "delete", "3", "--yes")
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
}

func TestExport(t *testing.T) {
	useTempStorage(t)
	_, err := run(t, nil, append([]string{"save"}, reservaArgs...)...)
	require.NoError(t, err)

	output := filepath.Join(t.TempDir(), "out.pdf")
	_, err = run(t, nil, "export", "-o", output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestCorruptStorageStartsEmpty(t *testing.T) {
	path := useTempStorage(t)
	_, err := run(t, nil, append([]string{"save"}, reservaArgs...)...)
	require.NoError(t, err)

	app, err := openApp(&RootOptions{})
	require.NoError(t, err)
	kv, err := app.openKeyValueStore(app.Config.Storage)
	require.NoError(t, err)
	require.NoError(t, kv.Set(app.Config.Storage.Key, "{not json"))
	app.Close()
	require.FileExists(t, path)

	out, err := run(t, nil, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios saved yet.")
}
