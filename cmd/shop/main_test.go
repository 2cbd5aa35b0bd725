package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SNAPSHOT_BACKEND", "json")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "console")
}

func TestRunVersion(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), []string{"-version"}, strings.NewReader(""), &out))
	assert.Equal(t, "coronas 1.0.0\n", out.String())
}

func TestRunRejectsUnknownFlag(t *testing.T) {
	var out bytes.Buffer

	assert.Error(t, run(context.Background(), []string{"-bogus"}, strings.NewReader(""), &out))
}

func TestRunCreatesEmptySnapshot(t *testing.T) {
	setEnv(t)
	path := filepath.Join(t.TempDir(), "db.json")
	var out bytes.Buffer

	err := run(context.Background(), []string{"-snapshot", path}, strings.NewReader("6\n"), &out)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"bienes": [], "mercaderes": [], "clientes": []}`, string(data))
	assert.Contains(t, out.String(), "Saliendo del sistema...")
}

func TestRunSeedsAndPersistsChanges(t *testing.T) {
	setEnv(t)
	path := filepath.Join(t.TempDir(), "db.json")
	var out bytes.Buffer

	input := strings.Join([]string{
		"1", "4", // Bienes > Ver
		"2", "2", "1", // Clientes > Eliminar > 1
		"6",
	}, "\n") + "\n"
	err := run(context.Background(), []string{"-snapshot", path, "-seed"}, strings.NewReader(input), &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Lámpara de Djinn")
	assert.Contains(t, out.String(), "Cliente eliminado con éxito.")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"bienes"`)
	assert.NotContains(t, string(data), "Geralt de Rivia")
}
