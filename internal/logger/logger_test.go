package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProdWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(true, &buf)
	l.Info("payment initiated", "tx_ref", "booking-abcd1234")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "payment initiated", rec["msg"])
	assert.Equal(t, "booking-abcd1234", rec["tx_ref"])
	assert.Equal(t, "staybook", rec["service"])
}

func TestNewDevSkipsNothingAtDebug(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(false, &buf).Debug("hello")
	assert.Contains(t, buf.String(), "hello")
}

func TestFromContext(t *testing.T) {
	fallback := Discard()
	assert.Same(t, fallback, FromContext(context.Background(), fallback))

	scoped := Discard()
	ctx := WithContext(context.Background(), scoped)
	assert.Same(t, scoped, FromContext(ctx, fallback))
}
