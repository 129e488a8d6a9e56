package domain

import (
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestAdCreationContextRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	// The wizard serializes the context to JSON after every transition,
	// so the map must survive marshal -> unmarshal -> FromMap intact.
	properties.Property("context survives a JSON round trip", prop.ForAll(
		func(chatID int64, category, title, description, photoID, contact string, price float64) bool {
			original := &AdCreationContext{
				ChatID:      chatID,
				Category:    category,
				Title:       title,
				Description: description,
				PhotoID:     photoID,
				Price:       price,
				Contact:     contact,
			}

			raw, err := json.Marshal(original.ToMap())
			if err != nil {
				t.Logf("Failed to marshal: %v", err)
				return false
			}

			var data map[string]interface{}
			if err := json.Unmarshal(raw, &data); err != nil {
				t.Logf("Failed to unmarshal: %v", err)
				return false
			}

			restored := &AdCreationContext{}
			if err := restored.FromMap(data); err != nil {
				t.Logf("FromMap failed: %v", err)
				return false
			}

			if *restored != *original {
				t.Logf("Round trip mismatch: %+v != %+v", restored, original)
				return false
			}

			return true
		},
		gen.Int64Range(1, 1000000),
		gen.AlphaString(),
		gen.AlphaString(),
		gen.AlphaString(),
		gen.AlphaString(),
		gen.AlphaString(),
		gen.Float64Range(0, 1000000),
	))

	properties.TestingRun(t)
}

func TestAdCreationContextFromMapWithoutJSONRoundTrip(t *testing.T) {
	// Before serialization chat_id is still an int64
	data := map[string]interface{}{
		"chat_id": int64(42),
		"title":   "Bike",
	}

	wctx := &AdCreationContext{}
	if err := wctx.FromMap(data); err != nil {
		t.Fatalf("FromMap failed: %v", err)
	}

	if wctx.ChatID != 42 {
		t.Errorf("Expected ChatID 42, got %d", wctx.ChatID)
	}
	if wctx.Title != "Bike" {
		t.Errorf("Expected title %q, got %q", "Bike", wctx.Title)
	}
}

func TestAdCreationContextFromMapNil(t *testing.T) {
	wctx := &AdCreationContext{}
	if err := wctx.FromMap(nil); err != ErrInvalidContextData {
		t.Errorf("Expected ErrInvalidContextData for nil map, got: %v", err)
	}
}

func TestAdCreationContextFromMapPartial(t *testing.T) {
	// Early wizard states have only a subset of fields
	data := map[string]interface{}{
		"chat_id":  float64(100),
		"category": "up to 2000",
	}

	wctx := &AdCreationContext{}
	if err := wctx.FromMap(data); err != nil {
		t.Fatalf("FromMap failed: %v", err)
	}

	if wctx.ChatID != 100 {
		t.Errorf("Expected ChatID 100, got %d", wctx.ChatID)
	}
	if wctx.Category != "up to 2000" {
		t.Errorf("Expected category %q, got %q", "up to 2000", wctx.Category)
	}
	if wctx.Title != "" || wctx.PhotoID != "" || wctx.Price != 0 || wctx.Contact != "" {
		t.Errorf("Expected zero values for unset fields, got %+v", wctx)
	}
}
