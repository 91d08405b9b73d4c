package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyFileGetString(t *testing.T) {
	path := filepath.Join(t.TempDir(), "properties.yaml")
	data := `
shroud_zones: |
  0xD2A80024 [100.684067 87.626068 20.004999] 0.015540 0.000000 0.000000 0.999879|10|40
  0x01010001 [5 5 0] 0 0 0 1|3|6
motd: hello
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	f := NewPropertyFile(path)
	ctx := context.Background()

	v, err := f.GetString(ctx, "shroud_zones", "")
	require.NoError(t, err)
	assert.Equal(t,
		"0xD2A80024 [100.684067 87.626068 20.004999] 0.015540 0.000000 0.000000 0.999879|10|40\n"+
			"0x01010001 [5 5 0] 0 0 0 1|3|6\n", v)

	v, err = f.GetString(ctx, "missing", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", v)
}

func TestPropertyFileMissingFile(t *testing.T) {
	f := NewPropertyFile(filepath.Join(t.TempDir(), "nope.yaml"))
	v, err := f.GetString(context.Background(), "shroud_zones", "")
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestPropertyFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "properties.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- not\n- a map\n"), 0o644))

	v, err := NewPropertyFile(path).GetString(context.Background(), "shroud_zones", "def")
	assert.Error(t, err)
	assert.Equal(t, "def", v)
}
