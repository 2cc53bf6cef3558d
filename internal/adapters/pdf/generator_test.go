package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csg33k/staffdesk/internal/ports"
	"github.com/csg33k/staffdesk/internal/seed"
)

var _ ports.ReportGenerator = (*Generator)(nil)

func TestGenerate(t *testing.T) {
	data := seed.Default()
	g := New("Acme Corp")
	g.Now = func() time.Time { return time.Date(2024, 8, 5, 9, 0, 0, 0, time.UTC) }

	var buf bytes.Buffer
	require.NoError(t, g.Generate(context.Background(), data.Employees, data.Progress, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "/Count 4", "roster plus one page per employee")
}

func TestGenerateEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New("").Generate(context.Background(), nil, nil, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	assert.ErrorIs(t, New("").Generate(ctx, nil, nil, &buf), context.Canceled)
	assert.Zero(t, buf.Len())
}

func TestClampPct(t *testing.T) {
	assert.Equal(t, 0, clampPct(-5))
	assert.Equal(t, 40, clampPct(40))
	assert.Equal(t, 100, clampPct(140))
}
