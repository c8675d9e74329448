// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ranking

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ItemID identifies an item. It holds either an integer or a string and is
// comparable, so it can be used directly as a map key.
type ItemID struct {
	num   int64
	str   string
	isNum bool
}

// IntID returns an integer item ID.
func IntID(n int64) ItemID {
	return ItemID{num: n, isNum: true}
}

// StringID returns a text item ID. Numeric text is not converted; use
// ParseItemID for that.
func StringID(s string) ItemID {
	return ItemID{str: s}
}

// ParseItemID returns an integer ID when text is a base-10 integer and a
// string ID otherwise.
func ParseItemID(text string) ItemID {
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return IntID(n)
	}
	return StringID(text)
}

// Int returns the integer value and true for integer IDs.
func (id ItemID) Int() (int64, bool) {
	return id.num, id.isNum
}

// IsInt reports whether the ID is an integer.
func (id ItemID) IsInt() bool { return id.isNum }

func (id ItemID) String() string {
	if id.isNum {
		return strconv.FormatInt(id.num, 10)
	}
	return id.str
}

// MarshalJSON encodes integer IDs as JSON numbers and text IDs as strings.
func (id ItemID) MarshalJSON() ([]byte, error) {
	if id.isNum {
		return []byte(strconv.FormatInt(id.num, 10)), nil
	}
	return json.Marshal(id.str)
}

// UnmarshalJSON accepts a JSON number or string. Numeric strings become
// integer IDs, matching the import rules.
func (id *ItemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ParseItemID(s)
		return nil
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("item id must be an integer or string: %s", data)
	}
	*id = IntID(n)
	return nil
}

// Item is a thing being ranked. Items are never mutated once a session
// holds them.
type Item struct {
	ID          ItemID `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// Pair is an unordered pair of two distinct items. A and B keep the order in
// which GeneratePairs saw them.
type Pair struct {
	A Item `json:"a"`
	B Item `json:"b"`
}

// Contains reports whether id is one of the two members.
func (p Pair) Contains(id ItemID) bool {
	return p.A.ID == id || p.B.ID == id
}

// Scores maps item IDs to win counts.
type Scores map[ItemID]int

// Ranked is one row of a resolved ranking.
type Ranked struct {
	Rank  int  `json:"rank"`
	Item  Item `json:"item"`
	Score int  `json:"score"`
}

// CheckUnique returns ErrDuplicateItem when two items share an ID.
func CheckUnique(items []Item) error {
	seen := make(map[ItemID]struct{}, len(items))
	for _, item := range items {
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateItem, item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	return nil
}
