package trigger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/autotrig/pkg/brush"
	"github.com/chazu/autotrig/pkg/trigger"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "autotrig.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `materials:
  - dev
  - measure
offset: 8
categories:
  - floor
  - ramp
upward_only: true
prefix: surf_zone
tolerances:
  min_trigger_area: 2.5
`)
	c, err := trigger.LoadConfig(path)
	require.NoError(t, err)

	opts, err := c.Options()
	require.NoError(t, err)
	assert.Equal(t, []string{"dev", "measure"}, opts.Materials)
	assert.Equal(t, 8.0, opts.Offset)
	assert.True(t, opts.UpwardOnly)
	assert.Equal(t, "surf_zone", opts.Prefix)
	assert.Equal(t, 2.5, opts.Tolerances.MinArea)
	assert.Equal(t, map[brush.SurfaceCategory]bool{
		brush.CategoryFloor: true,
		brush.CategoryRamp:  true,
	}, opts.Categories)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "materials:\n  - dev\n")
	c, err := trigger.LoadConfig(path)
	require.NoError(t, err)

	opts, err := c.Options()
	require.NoError(t, err)
	assert.Zero(t, opts.Offset, "unset offset stays zero for the caller to default")
	assert.Nil(t, opts.Categories)
	assert.Empty(t, opts.Prefix)
}

func TestLoadConfigUnknownCategory(t *testing.T) {
	path := writeConfig(t, "categories:\n  - ceiling\n")
	c, err := trigger.LoadConfig(path)
	require.NoError(t, err)

	_, err = c.Options()
	assert.Error(t, err)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := trigger.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := writeConfig(t, "materials: [\n")
	_, err = trigger.LoadConfig(path)
	assert.Error(t, err)
}
