// Package tracker implements change detection between a record's stored
// cursor and a freshly fetched feed snapshot.
package tracker

import "github.com/AlvesR0/rss-telegram-bot/pkg/domain"

// Diff walks the fetched items, assumed newest-first, and returns the
// notifications for items published since the record's cursor plus the
// token the cursor should advance to.
//
// A record with no cursor yet produces no notifications: a freshly added
// feed starts tracking from its current latest item, never backfilling.
// If the cursor token is not found in the list, every item is reported as
// new; a burst is preferred over silent loss when the feed advanced by
// more than a page or rotated its content.
//
// The returned token is the identity token of the first fetched item, or
// empty with ok=false when the fetch list is empty (no cursor change).
func Diff(rec *domain.Record, items []domain.Item) (notifs []domain.Notification, token string, ok bool) {
	if rec.LastPost != nil {
		for _, item := range items {
			if rec.UniqueBy.Token(item) == *rec.LastPost {
				break
			}
			notifs = append(notifs, domain.NewNotification(item))
		}
	}

	if len(items) == 0 {
		return notifs, "", false
	}
	return notifs, rec.UniqueBy.Token(items[0]), true
}
