package cmd

import (
	"bytes"
	"io"
	"testing"

	"github.com/caffeine-storm/shipyard/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{"shipyard", "-data", "d", "-level", "l.yaml", "-path", "0,0:1,1", "-steps", "4", "-v"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, &options{datadir: "d", level: "l.yaml", path: "0,0:1,1", steps: 4, verbose: true}, opts)

	_, err = parseFlags([]string{"shipyard"}, io.Discard)
	assert.Error(t, err)
	_, err = parseFlags([]string{"shipyard", "-bogus"}, io.Discard)
	assert.Error(t, err)
}

func TestParseSegment(t *testing.T) {
	start, end, err := parseSegment("0,1: 4 ,2")
	require.NoError(t, err)
	assert.Equal(t, grid.Coord{X: 0, Y: 1}, start)
	assert.Equal(t, grid.Coord{X: 4, Y: 2}, end)

	for _, bad := range []string{"", "0,0", "0,0:1", "a,0:1,1", "0,0:1,b"} {
		_, _, err := parseSegment(bad)
		assert.Error(t, err, "%q", bad)
	}
}

func TestRun(t *testing.T) {
	opts := &options{datadir: "testdata/data", level: "testdata/dinghy.yaml"}

	t.Run("draws the level", func(t *testing.T) {
		out := &bytes.Buffer{}
		require.NoError(t, run(opts, out))
		assert.Equal(t, "Dinghy\n@.ff.\n..ff.\n.....\n", out.String())
	})

	t.Run("overlays a path", func(t *testing.T) {
		withPath := *opts
		withPath.path = "0,2:4,2"
		out := &bytes.Buffer{}
		require.NoError(t, run(&withPath, out))
		assert.Equal(t, "path (0,2) -> (4,2): Direct, 4 steps\nDinghy\n@.ff.\n..ff.\n.****\n", out.String())
	})

	t.Run("walks crew", func(t *testing.T) {
		walking := *opts
		walking.walk = "rower=4,0"
		out := &bytes.Buffer{}
		require.NoError(t, run(&walking, out))
		assert.Contains(t, out.String(), "rower at (4,0)")
		assert.Contains(t, out.String(), "..ff@\n")
	})

	t.Run("reports unknown crew", func(t *testing.T) {
		walking := *opts
		walking.walk = "captain=4,0"
		assert.Error(t, run(&walking, io.Discard))
	})

	t.Run("reports bad levels", func(t *testing.T) {
		missing := *opts
		missing.level = "testdata/nope.yaml"
		assert.Error(t, run(&missing, io.Discard))
	})
}
