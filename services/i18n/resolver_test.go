package i18n

import (
	"strings"
	"testing"
)

func newResolver(t *testing.T) *DefaultTranslatorResolver {
	t.Helper()
	r, err := NewDefaultTranslatorResolver()
	if err != nil {
		t.Fatalf("failed to build resolver: %v", err)
	}
	return r
}

func TestResolveKnownLocale(t *testing.T) {
	r := newResolver(t)
	tr := r.Resolve("fr")
	got := tr("pending_intro", "Démo")
	if !strings.Contains(got, "Démo") || !strings.Contains(got, "confirmation") {
		t.Errorf("fr translation = %q", got)
	}
}

func TestResolveRegionalVariantMatchesBase(t *testing.T) {
	r := newResolver(t)
	frCA := r.Resolve("fr-CA")("pending_action")
	fr := r.Resolve("fr")("pending_action")
	if frCA != fr {
		t.Errorf("fr-CA resolved to %q, want the fr catalog %q", frCA, fr)
	}
}

func TestResolveFallsBackToDefault(t *testing.T) {
	r := newResolver(t)
	def := r.Resolve("en")("pending_action")

	for _, locale := range []string{"", "xx", "not a locale!!"} {
		if got := r.Resolve(locale)("pending_action"); got != def {
			t.Errorf("locale %q resolved to %q, want default %q", locale, got, def)
		}
	}
}

func TestMissingKeyRendersKey(t *testing.T) {
	r := newResolver(t)
	if got := r.Resolve("en")("no_such_key"); got != "no_such_key" {
		t.Errorf("missing key rendered as %q", got)
	}
}

func TestTranslationFormatsArguments(t *testing.T) {
	r := newResolver(t)
	got := r.Resolve("en")("pending_subject", "Intro call")
	if !strings.Contains(got, "Intro call") {
		t.Errorf("subject = %q, want the title interpolated", got)
	}
}
