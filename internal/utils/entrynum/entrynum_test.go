package entrynum_test

import (
	"strings"
	"testing"
	"time"

	"github.com/bizbooks/bizbooks_backend/internal/utils/entrynum"
	"github.com/stretchr/testify/assert"
)

func TestGenerateFormat(t *testing.T) {
	entryDate := time.Date(2026, 1, 15, 14, 0, 0, 0, time.UTC)

	number := entrynum.Generate(entryDate)

	parts := strings.Split(number, "-")
	assert.Len(t, parts, 3)
	assert.Equal(t, "JE", parts[0])
	assert.Equal(t, "20260115", parts[1])
	assert.Len(t, parts[2], 8)
	assert.Equal(t, strings.ToUpper(parts[2]), parts[2])
}

func TestGenerateIsCollisionResistant(t *testing.T) {
	entryDate := time.Now()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		number := entrynum.Generate(entryDate)
		assert.False(t, seen[number], "duplicate entry number %s", number)
		seen[number] = true
	}
}
