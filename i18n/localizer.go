package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Localizer resolves message keys for one locale. It satisfies core.Localizer.
type Localizer struct {
	bundle  *Bundle
	locale  string
	printer *message.Printer
}

// NewLocalizer returns a Localizer for locale, or BaseLocale when the bundle
// has no catalog for it. The bundle must already be registered.
func NewLocalizer(bundle *Bundle, locale string) *Localizer {
	locale = strings.TrimSpace(locale)
	if !bundle.HasLocale(locale) {
		locale = BaseLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	return &Localizer{bundle: bundle, locale: locale, printer: message.NewPrinter(tag)}
}

// Default loads and registers the embedded catalogs and returns a Localizer for locale.
func Default(locale string) (*Localizer, error) {
	bundle, err := LoadEmbedded()
	if err != nil {
		return nil, err
	}
	if err := bundle.Register(); err != nil {
		return nil, err
	}
	return NewLocalizer(bundle, locale), nil
}

// Locale returns the locale in use.
func (l *Localizer) Locale() string {
	return l.locale
}

// Has reports whether key has a message in this locale or the base locale.
func (l *Localizer) Has(key string) bool {
	_, ok := l.bundle.Message(l.locale, key)
	return ok
}

// Localize returns the message for key. Unknown keys are returned as is.
func (l *Localizer) Localize(key string) string {
	if _, ok := l.bundle.Message(l.locale, key); !ok {
		return key
	}
	if _, ok := l.bundle.locales[l.locale][key]; ok {
		return l.printer.Sprintf(key)
	}
	value, _ := l.bundle.Message(BaseLocale, key)
	return value
}

// Format localizes key and substitutes {name} placeholders from data.
// Placeholders without a value are left in place.
func (l *Localizer) Format(key string, data map[string]string) string {
	text := l.Localize(key)
	if len(data) == 0 {
		return text
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
