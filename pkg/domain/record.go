package domain

import "strings"

// UniqueBy selects which item field supplies the identity token
// used to recognize an item across polls.
type UniqueBy string

// supported dedup strategies, values match the persisted format
const (
	UniqueByGuid UniqueBy = "Guid"
	UniqueByLink UniqueBy = "Link"
)

// ExtractPolicy selects how a notification body is derived from
// an item's description.
type ExtractPolicy string

// supported extraction policies, values match the persisted format
const (
	ExtractRaw       ExtractPolicy = "Raw"
	ExtractFindImage ExtractPolicy = "FindImage"
)

// unknownToken marks items without the field the dedup strategy needs.
// Two such items are indistinguishable to the diff, an accepted limitation.
const unknownToken = "unknown"

// Record is the durable state of one tracked feed: its configuration
// plus the dedup cursor advanced on every successful poll.
type Record struct {
	URL      string        `json:"url" yaml:"url"`
	UniqueBy UniqueBy      `json:"unique_by" yaml:"unique_by"`
	Extract  ExtractPolicy `json:"extract_content" yaml:"extract_content"`
	LastPost *string       `json:"last_post" yaml:"last_post"`
	SendTo   int64         `json:"send_to" yaml:"send_to"`
}

// Key identifies a record by its owner and the short numeric handle
// chosen at creation time. Pin uniqueness is scoped per owner.
type Key struct {
	Owner int64
	Pin   int
}

// Token derives the identity token for an item according to the strategy.
// Items missing the selected field all map to the same "unknown" token.
func (u UniqueBy) Token(item Item) string {
	switch u {
	case UniqueByGuid:
		if item.GUID == "" {
			return unknownToken
		}
		return item.GUID
	case UniqueByLink:
		if item.Link == "" {
			return unknownToken
		}
		return item.Link
	}
	return unknownToken
}

// Valid reports whether the strategy is one of the supported values.
func (u UniqueBy) Valid() bool {
	return u == UniqueByGuid || u == UniqueByLink
}

// imgMarker is the literal scanned for by the FindImage policy. No HTML
// parsing happens here, the result is a best-effort fragment only.
const imgMarker = `img src="`

// Extract derives a display fragment from raw item content. The second
// return is false when the policy found nothing to extract, the caller
// must then fall back to the raw content itself.
func (e ExtractPolicy) Extract(content string) (string, bool) {
	switch e {
	case ExtractRaw:
		return content, true
	case ExtractFindImage:
		start := strings.Index(content, imgMarker)
		if start == -1 {
			return "", false
		}
		start += len(imgMarker)
		end := strings.Index(content[start:], `"`)
		if end == -1 {
			return "", false
		}
		return content[start : start+end], true
	}
	return "", false
}

// Describe returns the user-facing description of the policy.
func (e ExtractPolicy) Describe() string {
	switch e {
	case ExtractFindImage:
		return "showing first image"
	default:
		return "not parsing content"
	}
}

// Valid reports whether the policy is one of the supported values.
func (e ExtractPolicy) Valid() bool {
	return e == ExtractRaw || e == ExtractFindImage
}

// SetLastPost replaces the cursor with the given token.
func (r *Record) SetLastPost(token string) {
	r.LastPost = &token
}
