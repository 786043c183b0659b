// Package params normalizes query-string and path parameters into typed
// query constraints. Malformed numeric input fails with a validation error
// naming the parameter instead of silently falling back to a default.
package params

import (
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"reelbase/models"
)

// MaxLimit caps every page size; an unbounded limit against the remote
// store would let one request drag the whole result set over the network.
const MaxLimit = 100

// MinSearchLength is the shortest accepted search query, in runes.
const MinSearchLength = 2

// Limit parses the "limit" parameter, applying the endpoint's default when
// absent and capping the result at MaxLimit.
func Limit(values url.Values, def int) (int, error) {
	raw := values.Get("limit")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, models.Invalid("limit must be a positive integer")
	}
	if n > MaxLimit {
		n = MaxLimit
	}
	return n, nil
}

// Offset parses the "offset" parameter, defaulting to 0.
func Offset(values url.Values) (int, error) {
	raw := values.Get("offset")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, models.Invalid("offset must be a non-negative integer")
	}
	return n, nil
}

// IDList parses a mandatory comma-separated id list such as
// "providers=1,2,3". A missing or empty parameter is a validation error.
func IDList(values url.Values, key string) ([]int64, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, models.Invalid("%s is required", key)
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, models.Invalid("%s must be a comma-separated list of integer ids", key)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, models.Invalid("%s is required", key)
	}
	return ids, nil
}

// OptionalIDList parses a comma-separated id list that may be absent.
// A missing or empty parameter yields a nil list, not an error.
func OptionalIDList(values url.Values, key string) ([]int64, error) {
	if strings.TrimSpace(values.Get(key)) == "" {
		return nil, nil
	}
	return IDList(values, key)
}

// SearchQuery parses the "q" parameter, trimming whitespace and rejecting
// queries shorter than MinSearchLength.
func SearchQuery(values url.Values) (string, error) {
	q := strings.TrimSpace(values.Get("q"))
	if utf8.RuneCountInString(q) < MinSearchLength {
		return "", models.Invalid("q must be at least %d characters", MinSearchLength)
	}
	return q, nil
}

// ID parses a numeric path or query parameter value.
func ID(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id < 1 {
		return 0, models.Invalid("%s must be a positive integer id", name)
	}
	return id, nil
}
