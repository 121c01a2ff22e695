package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// DefaultTranslatorResolver resolves translators over the embedded JSON
// catalogs using language matching, so "fr-CA" still lands on "fr".
type DefaultTranslatorResolver struct {
	matcher  language.Matcher
	tags     []language.Tag
	catalogs map[string]map[string]string
}

// NewDefaultTranslatorResolver loads all embedded catalogs. The default
// locale catalog must exist.
func NewDefaultTranslatorResolver() (*DefaultTranslatorResolver, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded locales: %w", err)
	}

	catalogs := make(map[string]map[string]string)
	var names []string
	for _, e := range entries {
		name := e.Name()
		locale := name[:len(name)-len(".json")]
		raw, err := localeFS.ReadFile("locales/" + name)
		if err != nil {
			return nil, fmt.Errorf("failed to read locale %s: %w", locale, err)
		}
		var catalog map[string]string
		if err := json.Unmarshal(raw, &catalog); err != nil {
			return nil, fmt.Errorf("failed to parse locale %s: %w", locale, err)
		}
		catalogs[locale] = catalog
		names = append(names, locale)
	}

	if _, ok := catalogs[DefaultLocale]; !ok {
		return nil, fmt.Errorf("default locale %q catalog is missing", DefaultLocale)
	}

	// The default locale must come first so the matcher falls back to it.
	sort.Slice(names, func(i, j int) bool {
		if names[i] == DefaultLocale {
			return true
		}
		if names[j] == DefaultLocale {
			return false
		}
		return names[i] < names[j]
	})

	tags := make([]language.Tag, 0, len(names))
	for _, n := range names {
		tag, err := language.Parse(n)
		if err != nil {
			return nil, fmt.Errorf("invalid locale catalog name %q: %w", n, err)
		}
		tags = append(tags, tag)
	}

	return &DefaultTranslatorResolver{
		matcher:  language.NewMatcher(tags),
		tags:     tags,
		catalogs: catalogs,
	}, nil
}

// Resolve returns a Translator for the given locale tag. Unknown, empty or
// unparseable tags resolve to the default locale. Missing keys render as the
// key itself so a gap in a catalog never loses the notification.
func (r *DefaultTranslatorResolver) Resolve(locale string) Translator {
	catalog := r.catalogs[DefaultLocale]

	if locale != "" {
		if desired, err := language.Parse(locale); err == nil {
			_, idx, _ := r.matcher.Match(desired)
			base, _ := r.tags[idx].Base()
			if c, ok := r.catalogs[base.String()]; ok {
				catalog = c
			}
		}
	}

	return func(key string, args ...any) string {
		tmpl, ok := catalog[key]
		if !ok {
			tmpl, ok = r.catalogs[DefaultLocale][key]
			if !ok {
				return key
			}
		}
		if len(args) == 0 {
			return tmpl
		}
		return fmt.Sprintf(tmpl, args...)
	}
}
