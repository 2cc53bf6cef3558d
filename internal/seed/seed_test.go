package seed

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDerivedFields(t *testing.T) {
	d := Default()
	require.Len(t, d.Employees, 3)
	require.Len(t, d.Documents, 5)
	require.Len(t, d.Libraries, 4)
	require.Len(t, d.Trainings, 4)
	require.Len(t, d.Checklists, 3)
	require.Len(t, d.Notifications, 5)
	require.Len(t, d.Settings, 4)
	require.Len(t, d.Phases, 4)
	require.Len(t, d.Resources, 4)

	assert.Equal(t, 3, d.Libraries[0].DocumentCount)
	assert.Equal(t, 50, d.Checklists[0].Progress, "3 of 6 tasks done")
	assert.Equal(t, 40, d.Checklists[1].Progress)
	assert.Equal(t, 100, d.Phases[0].Progress)
	assert.Equal(t, 67, d.Phases[2].Progress)
	assert.Equal(t, 0, d.Phases[3].Progress)
	assert.Equal(t, int64(3), d.ActivePhase)
}

func TestDefaultIsFreshCopy(t *testing.T) {
	a := Default()
	a.Employees[0].Skills[0] = "changed"
	assert.Equal(t, "JavaScript", Default().Employees[0].Skills[0])
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Default().Encode(&buf))
	assert.Contains(t, buf.String(), "Alex Johnson")

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, Default(), got)
}

func TestDecodeOverridesSectionAndRecomputes(t *testing.T) {
	in := `
checklists:
  - id: 9
    title: Custom
    progress: 12
    tasks:
      - {id: 1, description: a, completed: true}
      - {id: 2, description: b}
`
	got, err := Decode(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, got.Checklists, 1)
	assert.Equal(t, 50, got.Checklists[0].Progress)
	assert.Len(t, got.Employees, 3, "absent sections keep defaults")
}

func TestDecodeEmpty(t *testing.T) {
	got, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Len(t, got.Trainings, 4)
}
