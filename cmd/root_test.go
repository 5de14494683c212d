package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		name string
		arg  string
		want interface{}
	}{
		{name: "number", arg: "7", want: float64(7)},
		{name: "bool", arg: "true", want: true},
		{name: "string", arg: `"dark"`, want: "dark"},
		{name: "object", arg: `{"theme":"dark"}`, want: map[string]interface{}{"theme": "dark"}},
		{name: "bare word falls back to string", arg: "dark", want: "dark"},
	}

	for _, tt := range tests {
		ttp := tt
		t.Run(ttp.name, func(t *testing.T) {
			assert.Equal(t, ttp.want, parseValue(ttp.arg))
		})
	}
}

func TestLoadStoreSpec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  prefix: "app:"
  backend:
    file:
      dir: ./data
`), 0600))

	spec, err := loadStoreSpec(path)
	require.NoError(t, err)
	assert.Equal(t, "app:", spec.Prefix)
	require.NotNil(t, spec.Backend.File)
	assert.Equal(t, "./data", spec.Backend.File.Dir)
	assert.Nil(t, spec.Backend.Memory)

	_, err = loadStoreSpec(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
