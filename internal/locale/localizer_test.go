package locale

import (
	"strings"
	"testing"
)

func TestAllKeysLocalizeInEveryLocale(t *testing.T) {
	for _, lang := range []string{En, Ru} {
		t.Run(lang, func(t *testing.T) {
			l, err := NewLocalizer(NewLocale(lang))
			if err != nil {
				t.Fatalf("Failed to create localizer: %v", err)
			}

			for _, key := range allKeys {
				func() {
					defer func() {
						if r := recover(); r != nil {
							t.Errorf("Key %q panicked in locale %s: %v", key, lang, r)
						}
					}()

					if msg := l.MustLocalize(key); msg == "" {
						t.Errorf("Key %q is empty in locale %s", key, lang)
					}
				}()
			}
		})
	}
}

func TestMustLocalizeWithTemplate(t *testing.T) {
	l, err := NewLocalizer(NewLocale(En))
	if err != nil {
		t.Fatalf("Failed to create localizer: %v", err)
	}

	msg := l.MustLocalizeWithTemplate(CategoryHeader, "up to 1000")
	if !strings.Contains(msg, "up to 1000") {
		t.Errorf("Expected category name in header, got %q", msg)
	}

	card := l.MustLocalizeWithTemplate(AdCard, "Bike", "up to 1000", "Old but solid", "120", "@userA")
	for _, field := range []string{"Bike", "up to 1000", "Old but solid", "120", "@userA"} {
		if !strings.Contains(card, field) {
			t.Errorf("Expected %q in ad card, got %q", field, card)
		}
	}
	if strings.Contains(card, "{{") {
		t.Errorf("Unfilled template fields in ad card: %q", card)
	}
}

func TestAdCardWithoutCategoryOmitsCategory(t *testing.T) {
	l, err := NewLocalizer(NewLocale(En))
	if err != nil {
		t.Fatalf("Failed to create localizer: %v", err)
	}

	card := l.MustLocalizeWithTemplate(AdCardNoCategory, "Bike", "Old but solid", "120", "@userA")
	if strings.Contains(card, "Category") {
		t.Errorf("Category line must be absent, got %q", card)
	}
	if strings.Contains(card, "{{") {
		t.Errorf("Unfilled template fields: %q", card)
	}
}

func TestLocaleSelection(t *testing.T) {
	en, err := NewLocalizer(NewLocale(En))
	if err != nil {
		t.Fatalf("Failed to create en localizer: %v", err)
	}
	ru, err := NewLocalizer(NewLocale(Ru))
	if err != nil {
		t.Fatalf("Failed to create ru localizer: %v", err)
	}

	if en.MustLocalize(WelcomeMessage) == ru.MustLocalize(WelcomeMessage) {
		t.Error("Expected different welcome copy per locale")
	}
	if en.GetLocale() != En || ru.GetLocale() != Ru {
		t.Error("GetLocale should report the configured locale")
	}
}
