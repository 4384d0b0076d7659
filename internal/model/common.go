// Package model defines the normalized records exchanged between the Zaif API
// facade and the MCP tool handlers, together with their wire conversions.
//
// Upstream payloads are loosely typed: numeric fields arrive as strings or
// bare numbers, keyed collections are objects keyed by stringified integer
// ids, and a few fields carry legacy names (see the wire structs' json tags,
// which double as the field-rename table). Every monetary or quantity value
// is parsed into decimal.Decimal from its original textual representation so
// no binary floating point ever touches a price, amount, fee, or balance.
package model

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Currency pairs the gateway exposes. Anything else is filtered out of
// responses or rejected at the tool boundary.
var SupportedPairs = map[string]bool{
	"btc_jpy": true,
	"eth_jpy": true,
	"xym_jpy": true,
}

// IsSupportedPair reports whether pair is one of the supported currency pairs.
func IsSupportedPair(pair string) bool {
	return SupportedPairs[pair]
}

// Order sides as Zaif spells them: a bid buys, an ask sells.
const (
	SideBid = "bid"
	SideAsk = "ask"
)

// Chart resolutions accepted by the chart API, keyed to their display labels.
var TimeframeNames = map[string]string{
	"1":   "1 minute",
	"5":   "5 minutes",
	"15":  "15 minutes",
	"30":  "30 minutes",
	"60":  "1 hour",
	"240": "4 hours",
	"480": "8 hours",
	"720": "12 hours",
	"D":   "1 day",
	"W":   "1 week",
}

// TimeframeName returns the display label for a chart resolution, falling
// back to the raw resolution string for values outside TimeframeNames.
func TimeframeName(timeframe string) string {
	if name, ok := TimeframeNames[timeframe]; ok {
		return name
	}
	return timeframe
}

// ParseSkip records one entry of a keyed collection that was dropped during
// normalization. A malformed entry never fails the whole collection; callers
// receive the skips alongside the successes and decide how to report them.
type ParseSkip struct {
	Key    string // collection key of the dropped entry
	Reason error  // why it could not be normalized
}

func (s ParseSkip) String() string {
	return fmt.Sprintf("entry %q skipped: %v", s.Key, s.Reason)
}

// boolFlag decodes Zaif's boolean-like wire values, which show up as JSON
// booleans on some endpoints and as 0/1 numbers on others.
type boolFlag bool

func (b *boolFlag) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true", "1", `"1"`:
		*b = true
	case "false", "0", `"0"`, "null":
		*b = false
	default:
		return fmt.Errorf("invalid boolean-like value %s", data)
	}
	return nil
}

func (b boolFlag) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatBool(bool(b))), nil
}

// flexInt decodes integer wire values that may arrive as numbers, quoted
// numbers, or an empty string (which Zaif uses for "no value" and which
// normalizes to zero).
type flexInt int64

func (n *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer value %s", data)
	}
	*n = flexInt(v)
	return nil
}

func (n flexInt) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(n), 10)), nil
}

// sortByID orders a normalized collection by ascending id so output is
// deterministic regardless of wire-object key order.
func sortByID[T any](items []T, id func(T) int64) {
	slices.SortFunc(items, func(a, b T) int { return cmp.Compare(id(a), id(b)) })
}
