package discord

import (
	"ctabot/internal/domain"
	"ctabot/internal/ports/output"
)

// DomainErrorMessage resolves err to a user-facing message: domain errors use
// "errors.<code>", anything else "errors.generic".
func DomainErrorMessage(tr output.T, locale string, err error, data map[string]any) string {
	if err == nil {
		return ""
	}
	if code := domain.Code(err); code != "" {
		return tr.T(locale, "errors."+code, data)
	}
	return tr.T(locale, "errors.generic", nil)
}
