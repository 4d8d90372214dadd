package httpx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderRequest struct {
	ID     int
	Region string
}

func TestHydrate(t *testing.T) {
	t.Parallel()

	req := &orderRequest{}
	err := hydrate(req, map[string]string{"id": "42", "REGION": "eu-west"})
	require.NoError(t, err)
	assert.Equal(t, 42, req.ID)
	assert.Equal(t, "eu-west", req.Region)
}

func TestHydrate_UnknownVariableIgnored(t *testing.T) {
	t.Parallel()

	req := &orderRequest{}
	require.NoError(t, hydrate(req, map[string]string{"missing": "x"}))
	assert.Zero(t, *req)
}

func TestHydrate_BadInt(t *testing.T) {
	t.Parallel()

	err := hydrate(&orderRequest{}, map[string]string{"id": "forty-two"})
	assert.Error(t, err)
}

func TestHydrate_NonPointer(t *testing.T) {
	t.Parallel()

	assert.Error(t, hydrate(orderRequest{}, map[string]string{"id": "1"}))
}
