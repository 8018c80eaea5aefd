package i18n

import (
	"embed"
	"slices"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"ctabot/internal/ports/output"
)

//go:embed active.*.toml
var localeFS embed.FS

var localeFiles = []string{"active.en.toml", "active.vi.toml"}

// Ensure Translator implements the output.T port.
var _ output.T = (*Translator)(nil)

// Translator is a thin wrapper around go-i18n's Bundle/Localizer.
type Translator struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
	logger          *zap.Logger
}

// NewTranslator builds a Translator over the embedded active.*.toml files,
// falling back to English when defaultLocale is not a valid tag.
func NewTranslator(defaultLocale string, logger *zap.Logger) *Translator {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.English
	}
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range localeFiles {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			logger.Warn("i18n: failed to load locale file", zap.String("file", file), zap.Error(err))
		}
	}

	return &Translator{
		bundle:          bundle,
		defaultLanguage: tag,
		logger:          logger,
	}
}

// T renders the message identified by key for the given locale.
// If the key/locale is not found, it falls back to the default locale,
// then to English, then finally to the key itself.
func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}

	languages := fallbackChain(locale, t.defaultLanguage.String())
	for _, lang := range languages {
		localizer := i18n.NewLocalizer(t.bundle, lang)
		msg, err := localizer.Localize(&i18n.LocalizeConfig{
			MessageID:    key,
			TemplateData: data,
		})
		if err == nil {
			return msg
		}
	}
	t.logger.Debug("i18n: message not found", zap.String("key", key), zap.Strings("locales", languages))
	return key
}

// fallbackChain lists the locales to try in order, ending with English.
func fallbackChain(locale, defaultLocale string) []string {
	english := language.English.String()
	chain := make([]string, 0, 3)
	for _, l := range []string{locale, defaultLocale, english} {
		if l != "" && !slices.Contains(chain, l) {
			chain = append(chain, l)
		}
	}
	return chain
}
