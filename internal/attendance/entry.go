package attendance

import (
	"encoding/json"

	"backend-roteirando/internal/group"
)

// Entry is the canonical attendance shape every reader works with. Stored
// entries come in two historical forms: a bare JSON array of member names
// (legacy) and a structured object with optional custom date and selected
// price tier. Normalize absorbs both; the union never travels past this
// boundary.
type Entry struct {
	Members    []string `json:"members"`
	CustomDate string   `json:"customDate,omitempty"`
	PriceKey   string   `json:"selectedPriceKey,omitempty"`
}

// Normalize converts a raw stored entry into the canonical shape. A missing
// entry, a malformed one, or any unrecognized shape normalizes to an empty
// entry; it never fails.
func Normalize(raw json.RawMessage) Entry {
	if len(raw) == 0 {
		return Entry{Members: []string{}}
	}

	var legacy []string
	if err := json.Unmarshal(raw, &legacy); err == nil {
		if legacy == nil {
			legacy = []string{}
		}
		return Entry{Members: legacy}
	}

	var current struct {
		Members    json.RawMessage `json:"members"`
		CustomDate string          `json:"customDate"`
		PriceKey   string          `json:"selectedPriceKey"`
	}
	if err := json.Unmarshal(raw, &current); err != nil {
		return Entry{Members: []string{}}
	}

	members := []string{}
	if len(current.Members) > 0 {
		_ = json.Unmarshal(current.Members, &members)
	}
	return Entry{Members: members, CustomDate: current.CustomDate, PriceKey: current.PriceKey}
}

// EntryFor returns the canonical entry a group holds for a tour.
func EntryFor(g group.Group, tourID string) Entry {
	return Normalize(g.Attendance[tourID])
}
