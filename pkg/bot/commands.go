package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pkgz/lgr"

	"github.com/AlvesR0/rss-telegram-bot/pkg/domain"
	"github.com/AlvesR0/rss-telegram-bot/pkg/store"
)

// add registers a feed for the user under a freshly generated pin. The
// record starts without a baseline, so the first poll establishes the
// cursor silently instead of replaying the feed's history.
func (b *Bot) add(ctx context.Context, userID int64, args string) string {
	url := strings.TrimSpace(args)
	if url == "" {
		return "Usage: /add <RSS url>"
	}

	pin := b.newPin()
	rec := &domain.Record{
		URL:      url,
		UniqueBy: domain.UniqueByLink,
		Extract:  domain.ExtractRaw,
		SendTo:   userID,
	}

	if err := b.store.Save(ctx, domain.Key{Owner: userID, Pin: pin}, rec); err != nil {
		lgr.Printf("[ERROR] failed to save feed %s for user %d: %v", url, userID, err)
		return "Could not save the feed, try again later."
	}

	lgr.Printf("[INFO] user %d added feed %s with pin %d", userID, url, pin)
	return fmt.Sprintf("Added %s with pin %d. Type /status %d for more information.", url, pin, pin)
}

// feedStatus answers /status <pin> with the record's configuration.
func (b *Bot) feedStatus(ctx context.Context, userID int64, args string) string {
	pin, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil {
		return "Usage: /status <PIN>\nYou can get the PIN by typing /list"
	}
	return b.statusLine(ctx, domain.Key{Owner: userID, Pin: pin})
}

// statusLine renders one feed's status block or "Not found".
func (b *Bot) statusLine(ctx context.Context, key domain.Key) string {
	rec, err := b.store.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			lgr.Printf("[ERROR] failed to load record %d-%d: %v", key.Owner, key.Pin, err)
		}
		return "Not found"
	}
	return fmt.Sprintf("[%d] %s\n - unique by %s\n - %s\n",
		key.Pin, rec.URL, rec.UniqueBy, rec.Extract.Describe())
}

// list renders the status of every feed the user owns plus the time
// until the next polling pass.
func (b *Bot) list(ctx context.Context, userID int64) string {
	keys, err := b.store.List(ctx)
	if err != nil {
		lgr.Printf("[ERROR] failed to list records: %v", err)
		return "Could not list your feeds, try again later."
	}

	var sb strings.Builder
	for _, key := range keys {
		if key.Owner != userID {
			continue
		}
		sb.WriteString(b.statusLine(ctx, key))
	}
	sb.WriteString("Checking for updates in " + humanDuration(b.status.TimeUntilNext()))
	return sb.String()
}

// edit rewrites the dedup strategy or the extraction policy of a feed.
func (b *Bot) edit(ctx context.Context, userID int64, args string) string {
	parts := strings.SplitN(args, " ", 3)
	if len(parts) < 3 {
		return "Usage: /edit <PIN> <unique|content> <args>"
	}
	pin, err := strconv.Atoi(parts[0])
	if err != nil {
		return "Usage: /edit <PIN> <unique|content> <args>"
	}

	key := domain.Key{Owner: userID, Pin: pin}
	rec, err := b.store.Load(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "PIN not found. You can list all your feeds by typing /list"
		}
		lgr.Printf("[ERROR] failed to load record %d-%d: %v", key.Owner, key.Pin, err)
		return "Could not load the feed, try again later."
	}

	switch sub, val := parts[1], parts[2]; {
	case sub == "unique" && val == "link":
		rec.UniqueBy = domain.UniqueByLink
	case sub == "unique" && val == "guid":
		rec.UniqueBy = domain.UniqueByGuid
	case sub == "unique":
		return "Usage: /edit <PIN> unique <link|guid>"
	case sub == "content" && val == "raw":
		rec.Extract = domain.ExtractRaw
	case sub == "content" && val == "find image":
		rec.Extract = domain.ExtractFindImage
	case sub == "content":
		return "Usage: /edit <PIN> content <raw|find image>"
	default:
		return "Usage: /edit <PIN> <unique|content> <args>"
	}

	if err := b.store.Save(ctx, key, rec); err != nil {
		lgr.Printf("[ERROR] failed to save record %d-%d: %v", key.Owner, key.Pin, err)
		return "Could not save the feed, try again later."
	}
	return "Saved! Next update will be in " + humanDuration(b.status.TimeUntilNext())
}

// delete removes a feed the user owns.
func (b *Bot) delete(ctx context.Context, userID int64, args string) string {
	pin, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil {
		return "Usage: /delete <PIN>\nYou can get the PIN by typing /list"
	}

	key := domain.Key{Owner: userID, Pin: pin}
	if err := b.store.Delete(ctx, key); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "PIN not found. You can list all your feeds by typing /list"
		}
		lgr.Printf("[ERROR] failed to delete record %d-%d: %v", key.Owner, key.Pin, err)
		return "Could not delete the feed, try again later."
	}

	lgr.Printf("[INFO] user %d deleted feed with pin %d", userID, pin)
	return fmt.Sprintf("Deleted feed with pin %d.", pin)
}

// latest fetches the feed right now and shows its newest item without
// touching the stored cursor. Failures come back as plain text, the
// user never sees raw error detail.
func (b *Bot) latest(ctx context.Context, userID int64, args string) string {
	pin, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil {
		return "Usage: /latest <PIN>\nYou can get the PIN by typing /list"
	}

	key := domain.Key{Owner: userID, Pin: pin}
	rec, err := b.store.Load(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "PIN not found. You can list all your feeds by typing /list"
		}
		lgr.Printf("[ERROR] failed to load record %d-%d: %v", key.Owner, key.Pin, err)
		return "Could not load the feed, try again later."
	}

	items, err := b.fetcher.Fetch(ctx, rec.URL)
	if err != nil {
		lgr.Printf("[WARN] failed to fetch feed %s for %d-%d: %v", rec.URL, key.Owner, key.Pin, err)
		return "Could not load the feed, try again later."
	}
	if len(items) == 0 {
		return "No posts found"
	}

	return domain.NewNotification(items[0]).Format(pin, rec)
}
