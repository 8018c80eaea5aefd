package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ctabot/internal/domain"
)

func TestValidatePurgeCount(t *testing.T) {
	assert.NoError(t, ValidatePurgeCount(1))
	assert.NoError(t, ValidatePurgeCount(100))
	assert.ErrorIs(t, ValidatePurgeCount(0), domain.ErrInvalidPurgeCount)
	assert.ErrorIs(t, ValidatePurgeCount(101), domain.ErrInvalidPurgeCount)
	assert.ErrorIs(t, ValidatePurgeCount(-5), domain.ErrInvalidPurgeCount)
}
