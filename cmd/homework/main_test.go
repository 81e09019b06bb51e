package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExecute_LogsEveryFailure(t *testing.T) {
	cases := []struct {
		name string
		cmd  Run
		kind string
	}{
		{"missing config", Run{Name: "triangle", Config: filepath.Join(t.TempDir(), "absent.toml")}, `kind="resource load failed"`},
		{"bad level", Run{Name: "triangle", Level: "loud"}, "kind=error"},
		{"unknown homework", Run{Name: "teapot"}, "kind=error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var stderr bytes.Buffer

			err := tc.cmd.execute(&stderr)

			require.Error(t, err)
			assert.Contains(t, stderr.String(), `level=ERROR msg="homework failed"`)
			assert.Contains(t, stderr.String(), "homework="+tc.cmd.Name)
			assert.Contains(t, stderr.String(), tc.kind)
		})
	}
}
