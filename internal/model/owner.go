package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OwnerRecord is one owner-of-record entry for a unit or lot.
type OwnerRecord struct {
	OwnershipCategory string `json:"posesnSeCodeNm"`
	ResidencyCategory string `json:"resdncSeCodeNm"`
	ChangeDate        string `json:"ownshipChgDe"`
	ChangeCause       string `json:"ownshipChgCauseCodeNm"`
	CoOwnerCount      Text   `json:"cnrsPsnCo"`
	Dong              string `json:"buldDongNm,omitempty"`
	Ho                string `json:"buldHoNm,omitempty"`
}

// CoOwners returns the co-owner count, zero when absent or malformed.
func (o OwnerRecord) CoOwners() int {
	n, ok := o.CoOwnerCount.Int64()
	if !ok || n < 0 {
		return 0
	}
	return int(n)
}

// OwnerGroups maps a unit key ("101동 1001호", "토지", ...) to its owner
// records. Keys keep the order in which they were added or decoded.
type OwnerGroups struct {
	groups map[string][]OwnerRecord
	keys   []string
}

// NewOwnerGroups returns an empty ordered group mapping.
func NewOwnerGroups() *OwnerGroups {
	return &OwnerGroups{groups: make(map[string][]OwnerRecord)}
}

// Add appends records to the group for key, creating it if needed.
func (g *OwnerGroups) Add(key string, records ...OwnerRecord) {
	if g.groups == nil {
		g.groups = make(map[string][]OwnerRecord)
	}
	if _, ok := g.groups[key]; !ok {
		g.keys = append(g.keys, key)
		g.groups[key] = []OwnerRecord{}
	}
	g.groups[key] = append(g.groups[key], records...)
}

// Keys returns unit keys in insertion order.
func (g *OwnerGroups) Keys() []string {
	if g == nil {
		return nil
	}
	return g.keys
}

// Get returns the records for a unit key.
func (g *OwnerGroups) Get(key string) []OwnerRecord {
	if g == nil {
		return nil
	}
	return g.groups[key]
}

// Len returns the number of unit groups.
func (g *OwnerGroups) Len() int {
	if g == nil {
		return 0
	}
	return len(g.keys)
}

// UnmarshalJSON decodes a JSON object while preserving key order.
func (g *OwnerGroups) UnmarshalJSON(data []byte) error {
	*g = OwnerGroups{groups: make(map[string][]OwnerRecord)}

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("owner groups: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("owner groups: expected key, got %v", tok)
		}

		var records []OwnerRecord
		if err := dec.Decode(&records); err != nil {
			return fmt.Errorf("owner groups: decoding %q: %w", key, err)
		}
		g.Add(key, records...)
	}

	_, err = dec.Token()
	return err
}

// MarshalJSON encodes the groups as a JSON object in key order.
func (g OwnerGroups) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range g.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(g.groups[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
