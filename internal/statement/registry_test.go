package statement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finflow/internal/logging"
	"finflow/internal/models"
)

type stubParser struct {
	name   string
	result models.StatementResult
}

func (s *stubParser) Institution() string { return s.name }

func (s *stubParser) Parse(context.Context, []byte) models.StatementResult { return s.result }

func TestRegistryDispatch(t *testing.T) {
	reg := NewRegistry(logging.NewMockLogger())
	want := models.StatementResult{AccountNumber: "42"}
	reg.Register(&stubParser{name: "Chase", result: want})

	got := reg.ParseStatement(context.Background(), []byte("pdf"), "Chase")
	assert.Equal(t, "42", got.AccountNumber)
	assert.False(t, got.Failed())
}

func TestRegistryUnknownInstitution(t *testing.T) {
	reg := NewRegistry(logging.NewMockLogger())
	reg.Register(&stubParser{name: "Chase"})

	got := reg.ParseStatement(context.Background(), []byte("pdf"), "Acme Bank")
	assert.Empty(t, got.Transactions)
	require.Len(t, got.Errors, 1)
	assert.Equal(t, "No parser available for institution: Acme Bank", got.Errors[0])
	assert.True(t, got.Failed())
}

func TestRegistryHasAndAvailable(t *testing.T) {
	reg := NewRegistry(logging.NewMockLogger())
	reg.Register(&stubParser{name: "Zolve"})
	reg.Register(&stubParser{name: "Chase"})
	reg.Register(&stubParser{name: "HDFC"})

	assert.True(t, reg.Has("HDFC"))
	assert.False(t, reg.Has("hdfc"))
	assert.Equal(t, []string{"Chase", "HDFC", "Zolve"}, reg.Available())
}
