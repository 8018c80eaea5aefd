package application

import "ctabot/internal/domain"

// MaxPurge is the Discord bulk-delete ceiling.
const MaxPurge = 100

// ValidatePurgeCount checks a /clear messages count.
func ValidatePurgeCount(n int) error {
	if n < 1 || n > MaxPurge {
		return domain.ErrInvalidPurgeCount
	}
	return nil
}
