package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	id := NewID()

	assert.NotEmpty(t, id)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)

	assert.NotEqual(t, id, NewID())
}

func TestGenerateAPIKey(t *testing.T) {
	key := GenerateAPIKey()

	assert.NotEmpty(t, key)
	_, err := uuid.Parse(key)
	assert.NoError(t, err)
}
