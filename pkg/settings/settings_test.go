package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCliParams(t *testing.T) {
	run := NewCliParams()
	assert.Equal(t, "auto", run.Theme)
	assert.Equal(t, 10, run.MaxDepth)
	assert.Equal(t, 4, run.Indent)
	assert.False(t, run.NoColor)
}

func TestContextRoundTrip(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	run := &Run{NoColor: true, Label: "stdin"}
	got, ok := FromContext(IntoContext(context.Background(), run))
	require.True(t, ok)
	assert.Same(t, run, got)
}
