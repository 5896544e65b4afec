package domain

import "fmt"

// Item is one entry of a fetched feed snapshot. Any field may be empty,
// absent fields never cause errors downstream.
type Item struct {
	Title       string
	Link        string
	GUID        string
	Description string
}

// Notification carries the parts of a new item that reach the user.
// It knows nothing about formatting policy, that is applied at format
// time from the owning record.
type Notification struct {
	Title   string
	URL     string
	Content string
}

// NewNotification builds a notification from a fetched item.
func NewNotification(item Item) Notification {
	return Notification{
		Title:   item.Title,
		URL:     item.Link,
		Content: item.Description,
	}
}

// maxContentLen caps the notification body, counted in runes since chat
// messages are arbitrary UTF-8 and a byte cut could split a character.
const maxContentLen = 1024

const truncationMarker = " [..]"

// Format renders the notification as the three-line message sent to chat:
// a bracketed pin/title line, the extracted (possibly truncated) body,
// and the item URL. Extraction failure silently degrades to raw content.
func (n Notification) Format(pin int, rec *Record) string {
	content, ok := rec.Extract.Extract(n.Content)
	if !ok {
		content = n.Content
	}
	if runes := []rune(content); len(runes) > maxContentLen {
		content = string(runes[:maxContentLen]) + truncationMarker
	}
	return fmt.Sprintf("[%d] %s\n%s\n%s", pin, n.Title, content, n.URL)
}
