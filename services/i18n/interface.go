package i18n

// DefaultLocale is used whenever a booking participant has no locale set.
const DefaultLocale = "en"

// Translator renders a message key with optional format arguments.
type Translator func(key string, args ...any) string

// TranslatorResolver maps a BCP-47 locale tag to a Translator. Resolution
// never fails; unknown or empty tags resolve to the default locale.
type TranslatorResolver interface {
	Resolve(locale string) Translator
}
