package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateEventQRCode(t *testing.T) {
	png, err := GenerateEventQRCode("spring-olympiad", 128)
	require.NoError(t, err)

	// PNG magic bytes
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
