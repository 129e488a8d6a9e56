package domain

import "errors"

// ErrInvalidContextData is returned when session context data is invalid
var ErrInvalidContextData = errors.New("invalid context data")

// AdCreationContext holds the partially built ad while the wizard runs.
// It is serialized into the wizard session row after every transition,
// so all fields must survive a JSON round trip.
type AdCreationContext struct {
	ChatID      int64   `json:"chat_id"`
	Category    string  `json:"category"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	PhotoID     string  `json:"photo_id"`
	Price       float64 `json:"price"`
	Contact     string  `json:"contact"`
}

// ToMap converts AdCreationContext to a map for JSON serialization
func (c *AdCreationContext) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"chat_id":     c.ChatID,
		"category":    c.Category,
		"title":       c.Title,
		"description": c.Description,
		"photo_id":    c.PhotoID,
		"price":       c.Price,
		"contact":     c.Contact,
	}
}

// FromMap populates AdCreationContext from a map after JSON deserialization
func (c *AdCreationContext) FromMap(data map[string]interface{}) error {
	if data == nil {
		return ErrInvalidContextData
	}

	// chat_id arrives as float64 after a JSON round trip, as int64 before
	if chatID, ok := data["chat_id"].(float64); ok {
		c.ChatID = int64(chatID)
	} else if chatID, ok := data["chat_id"].(int64); ok {
		c.ChatID = chatID
	}

	if category, ok := data["category"].(string); ok {
		c.Category = category
	}
	if title, ok := data["title"].(string); ok {
		c.Title = title
	}
	if description, ok := data["description"].(string); ok {
		c.Description = description
	}
	if photoID, ok := data["photo_id"].(string); ok {
		c.PhotoID = photoID
	}
	if price, ok := data["price"].(float64); ok {
		c.Price = price
	}
	if contact, ok := data["contact"].(string); ok {
		c.Contact = contact
	}

	return nil
}
