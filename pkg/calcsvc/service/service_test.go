package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiply(t *testing.T) {
	svc := New(log.NewNopLogger())

	tests := []struct {
		a, b, want float64
	}{
		{10, 5, 50},
		{2.5, 4.2, 10.5},
		{0.5, 0.5, 0.25},
	}
	for _, tt := range tests {
		rs, err := svc.Multiply(context.Background(), tt.a, tt.b)
		require.NoError(t, err)
		assert.Equal(t, tt.want, rs)
	}
}

func TestDivide(t *testing.T) {
	svc := New(log.NewNopLogger())

	tests := []struct {
		a, b, want float64
	}{
		{10, 5, 2},
		{10.5, 2.5, 4.2},
		{1, 4, 0.25},
	}
	for _, tt := range tests {
		rs, err := svc.Divide(context.Background(), tt.a, tt.b)
		require.NoError(t, err)
		assert.Equal(t, tt.want, rs)
	}
}

func TestDivideByZero(t *testing.T) {
	svc := New(log.NewNopLogger())

	rs, err := svc.Divide(context.Background(), 10, 0)
	assert.Equal(t, ErrZeroDivisor, err)
	assert.Zero(t, rs)
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	svc := New(log.NewLogfmtLogger(&buf))

	_, err := svc.Divide(context.Background(), 10, 0)
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "level=warn")
	assert.Contains(t, out, "method=Divide")
	assert.Contains(t, out, `err="cannot divide by zero"`)
}
