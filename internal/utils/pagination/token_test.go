package pagination_test

import (
	"testing"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeTokenRoundTrip(t *testing.T) {
	entryDate := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 1, 15, 10, 30, 45, 123456789, time.UTC)

	token := pagination.EncodeToken(entryDate, createdAt)
	gotEntryDate, gotCreatedAt, err := pagination.DecodeToken(token)

	require.NoError(t, err)
	assert.True(t, entryDate.Equal(gotEntryDate))
	assert.True(t, createdAt.Equal(gotCreatedAt))
}

func TestDecodeTokenRejectsGarbage(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!!")
	assert.Error(t, err)
}

func TestDecodeTokenRejectsMissingSeparator(t *testing.T) {
	// Valid base64, but no "|" separated pair inside.
	_, _, err := pagination.DecodeToken("aGVsbG8=")
	assert.Error(t, err)
}
