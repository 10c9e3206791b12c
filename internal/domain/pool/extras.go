package pool

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// ExtraType identifies a season-long outcome category.
type ExtraType int

const (
	ExtraSuperBowl ExtraType = iota + 1
	ExtraAFCChampion
	ExtraAFCNorth
	ExtraAFCSouth
	ExtraAFCEast
	ExtraAFCWest
	ExtraNFCChampion
	ExtraNFCNorth
	ExtraNFCSouth
	ExtraNFCEast
	ExtraNFCWest
	ExtraAFCWildcard
	ExtraNFCWildcard
)

// IsKnown reports whether t is one of the thirteen categories.
func (t ExtraType) IsKnown() bool {
	return t >= ExtraSuperBowl && t <= ExtraNFCWildcard
}

// IsWildcard reports whether several teams qualify for t.
func (t ExtraType) IsWildcard() bool {
	return t == ExtraAFCWildcard || t == ExtraNFCWildcard
}

// IsConferenceChampion reports whether t is the AFC or NFC title.
func (t ExtraType) IsConferenceChampion() bool {
	return t == ExtraAFCChampion || t == ExtraNFCChampion
}

// IsDivisionChampion reports whether t is one of the eight division titles.
func (t ExtraType) IsDivisionChampion() bool {
	switch t {
	case ExtraAFCNorth, ExtraAFCSouth, ExtraAFCEast, ExtraAFCWest,
		ExtraNFCNorth, ExtraNFCSouth, ExtraNFCEast, ExtraNFCWest:
		return true
	}
	return false
}

// Key returns the document key used for t.
func (t ExtraType) Key() string {
	return strconv.Itoa(int(t))
}

// ErrMalformedExtraPicks is returned when an extra-bet document has the wrong shape.
var ErrMalformedExtraPicks = errors.New("malformed extra picks document")

// ExtraPicks is a typed view of an extra-bet document. Single-team categories
// and wildcard categories are stored apart, so a value can never have the
// wrong shape for its type.
type ExtraPicks struct {
	singles   map[ExtraType]int
	wildcards map[ExtraType][]int
}

// NewExtraPicks returns an empty set of picks.
func NewExtraPicks() ExtraPicks {
	return ExtraPicks{
		singles:   make(map[ExtraType]int),
		wildcards: make(map[ExtraType][]int),
	}
}

// WithSingle returns a copy of p with teamID picked for the single-team type t.
// Unknown and wildcard types are ignored.
func (p ExtraPicks) WithSingle(t ExtraType, teamID int) ExtraPicks {
	if !t.IsKnown() || t.IsWildcard() {
		return p
	}
	c := p.clone()
	c.singles[t] = teamID
	return c
}

// WithWildcards returns a copy of p with the given teams picked for wildcard type t.
// Duplicate ids are collapsed.
func (p ExtraPicks) WithWildcards(t ExtraType, teamIDs ...int) ExtraPicks {
	if !t.IsWildcard() {
		return p
	}
	c := p.clone()
	c.wildcards[t] = uniqueIDs(teamIDs)
	return c
}

// Single returns the team picked for a single-team type.
func (p ExtraPicks) Single(t ExtraType) (int, bool) {
	id, ok := p.singles[t]
	return id, ok
}

// Wildcards returns the teams picked for a wildcard type.
func (p ExtraPicks) Wildcards(t ExtraType) []int {
	ids := p.wildcards[t]
	out := make([]int, len(ids))
	copy(out, ids)
	return out
}

// Types returns every type that holds a pick, in ascending order.
func (p ExtraPicks) Types() []ExtraType {
	types := make([]ExtraType, 0, len(p.singles)+len(p.wildcards))
	for t := range p.singles {
		types = append(types, t)
	}
	for t := range p.wildcards {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// IsEmpty reports whether no pick was made.
func (p ExtraPicks) IsEmpty() bool {
	return len(p.singles) == 0 && len(p.wildcards) == 0
}

func (p ExtraPicks) clone() ExtraPicks {
	c := NewExtraPicks()
	for t, id := range p.singles {
		c.singles[t] = id
	}
	for t, ids := range p.wildcards {
		c.wildcards[t] = append([]int(nil), ids...)
	}
	return c
}

// MarshalJSON writes the picks back in the document format.
func (p ExtraPicks) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(p.singles)+len(p.wildcards))
	for t, id := range p.singles {
		doc[t.Key()] = id
	}
	for t, ids := range p.wildcards {
		doc[t.Key()] = ids
	}
	return json.Marshal(doc)
}

// ParseExtraPicks validates an extra-bet JSON document.
//
// Keys that do not name a known category are dropped, as are null values.
// A wildcard key must hold an array of team ids, every other key a single id.
func ParseExtraPicks(raw []byte) (ExtraPicks, error) {
	picks := NewExtraPicks()

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return picks, nil
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ExtraPicks{}, fmt.Errorf("%w: %v", ErrMalformedExtraPicks, err)
	}

	for key, value := range doc {
		n, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		t := ExtraType(n)
		if !t.IsKnown() || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			continue
		}

		if t.IsWildcard() {
			var ids []int
			if err := json.Unmarshal(value, &ids); err != nil {
				return ExtraPicks{}, fmt.Errorf("%w: key %s must be a list of team ids", ErrMalformedExtraPicks, key)
			}
			picks.wildcards[t] = uniqueIDs(ids)
			continue
		}

		var id int
		if err := json.Unmarshal(value, &id); err != nil {
			return ExtraPicks{}, fmt.Errorf("%w: key %s must be a team id", ErrMalformedExtraPicks, key)
		}
		picks.singles[t] = id
	}

	return picks, nil
}

func uniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
