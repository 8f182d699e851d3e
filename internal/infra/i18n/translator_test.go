//go:build !integration

package i18n

import (
	"testing"
)

func TestTranslator(t *testing.T) {
	contentBytes := []byte("greeting: Hola\nwelcome_user: Hola %s")
	translator, err := newTranslatorFromBytes(contentBytes)
	if err != nil {
		t.Fatalf("newTranslatorFromBytes failed: %v", err)
	}

	t.Run("should translate a simple key", func(t *testing.T) {
		got := translator.T("greeting")
		want := "Hola"
		if got != want {
			t.Errorf("wanted '%s', got '%s'", want, got)
		}
	})

	t.Run("should return key if not found", func(t *testing.T) {
		got := translator.T("nonexistent_key")
		want := "nonexistent_key"
		if got != want {
			t.Errorf("wanted '%s', got '%s'", want, got)
		}
	})

	t.Run("should format arguments correctly", func(t *testing.T) {
		got := translator.T("welcome_user", "Ana")
		want := "Hola Ana"
		if got != want {
			t.Errorf("wanted '%s', got '%s'", want, got)
		}
	})
}

func TestEmbeddedLocalesShareKeys(t *testing.T) {
	es, err := NewTranslator(LocalesFS, "es")
	if err != nil {
		t.Fatalf("load es: %v", err)
	}
	en, err := NewTranslator(LocalesFS, "en")
	if err != nil {
		t.Fatalf("load en: %v", err)
	}
	for key := range es.translations {
		if _, ok := en.translations[key]; !ok {
			t.Errorf("key %q missing from en locale", key)
		}
	}
	if len(es.translations) != len(en.translations) {
		t.Errorf("locales differ in size: es=%d en=%d", len(es.translations), len(en.translations))
	}
}

func TestNewTranslator_UnknownLanguage(t *testing.T) {
	if _, err := NewTranslator(LocalesFS, "xx"); err == nil {
		t.Fatal("expected error for missing locale")
	}
}
