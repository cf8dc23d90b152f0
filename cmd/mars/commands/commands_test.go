package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"mars/internal/store"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.toml")}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestSendThenReceive(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "payload.json")

	out, err := run(t, "", "-f", path, "send", `{"name":"marvin","mission":"probe someone"}`)
	require.NoError(t, err)
	require.Equal(t, "1\n", out)

	out, err = run(t, "", "-f", path, "receive")
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"marvin","mission":"probe someone"}`, out)
}

func TestSendFromStdinWithSet(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "payload.json")

	_, err := run(t, `{"name":"marvin"}`, "-f", path, "send", "-", "--set", "crew=3", "--set", "mission=probe someone")
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	require.Equal(t, map[string]any{"name": "marvin", "crew": float64(3), "mission": "probe someone"}, got)
}

func TestSendNoArgsWritesEmptyObject(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "payload.json")

	_, err := run(t, "", "-f", path, "send")
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `{}`, string(b))
}

func TestSendNonObjectRejected(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "payload.json")

	_, err := run(t, "", "-f", path, "send", `["marvin"]`)
	var serr *store.Error
	require.ErrorAs(t, err, &serr)
	require.NoFileExists(t, path)
}

func TestSendBadSet(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "payload.json")

	_, err := run(t, "", "-f", path, "send", "--set", "novalue")
	require.ErrorContains(t, err, "want key=value")
}

func TestReceiveMissingFile(t *testing.T) {
	t.Parallel()
	_, err := run(t, "", "-f", filepath.Join(t.TempDir(), "payload.json"), "receive")
	var serr *store.Error
	require.ErrorAs(t, err, &serr)
}

func TestSealedRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "payload.sealed")

	_, err := run(t, "", "-f", path, "-p", "hunter2", "send", `{"name":"marvin"}`)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(b), "marvin")

	out, err := run(t, "", "-f", path, "-p", "hunter2", "receive")
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"marvin"}`, out)

	_, err = run(t, "", "-f", path, "-p", "wrong", "receive")
	require.ErrorIs(t, err, store.ErrWrongPassphrase)
}
