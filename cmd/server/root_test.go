package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csg33k/staffdesk/internal/seed"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	t.Chdir(t.TempDir())
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		flagSeedFormat = "yaml"
	})
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersion(t *testing.T) {
	assert.Equal(t, "staffdesk dev\n", run(t, "version"))
}

func TestSeedJSON(t *testing.T) {
	out := run(t, "seed", "--format", "json")
	var d seed.Data
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Len(t, d.Employees, 3)
	assert.Equal(t, int64(3), d.ActivePhase)
}

func TestSeedYAMLRoundTrips(t *testing.T) {
	out := run(t, "seed")
	d, err := seed.Decode(bytes.NewBufferString(out))
	require.NoError(t, err)
	assert.Equal(t, seed.Default(), d)
}

func TestSeedUnknownFormat(t *testing.T) {
	t.Chdir(t.TempDir())
	rootCmd.SetArgs([]string{"seed", "--format", "xml"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		flagSeedFormat = "yaml"
	})
	assert.Error(t, rootCmd.Execute())
}
