package franchise

import "fmt"

// Franchise is the persistent team identity across seasons. Identity is
// keyed by the provider's stable owner id; the season-scoped roster id is
// reused between unrelated franchises and must never be used as a key.
type Franchise struct {
	OwnerID        string
	CanonicalName  string
	RosterIDByYear map[int]int64
}

func (f Franchise) ValidateBasic() error {
	if f.OwnerID == "" {
		return fmt.Errorf("owner id is required")
	}
	if f.CanonicalName == "" {
		return fmt.Errorf("canonical name is required")
	}
	return nil
}

// RosterID returns the season-scoped roster id for the given year.
func (f Franchise) RosterID(year int) (int64, bool) {
	id, ok := f.RosterIDByYear[year]
	return id, ok
}

// IdentityTable joins stable owner ids with season-scoped roster ids,
// built once per season from the provider's roster listing.
type IdentityTable struct {
	byOwner map[string]*Franchise
	// ownerByYearRoster resolves (year, roster id) back to an owner id.
	ownerByYearRoster map[int]map[int64]string
}

func NewIdentityTable() *IdentityTable {
	return &IdentityTable{
		byOwner:           make(map[string]*Franchise),
		ownerByYearRoster: make(map[int]map[int64]string),
	}
}

// Register records one franchise's roster id for one season. The first
// non-empty name seen for an owner becomes the canonical name; later
// seasons never rename the franchise.
func (t *IdentityTable) Register(ownerID string, name string, year int, rosterID int64) error {
	if ownerID == "" {
		return fmt.Errorf("owner id is required")
	}
	if year <= 0 {
		return fmt.Errorf("season year must be greater than zero")
	}

	item, ok := t.byOwner[ownerID]
	if !ok {
		item = &Franchise{
			OwnerID:        ownerID,
			RosterIDByYear: make(map[int]int64),
		}
		t.byOwner[ownerID] = item
	}
	if item.CanonicalName == "" && name != "" {
		item.CanonicalName = name
	}
	item.RosterIDByYear[year] = rosterID

	rosters, ok := t.ownerByYearRoster[year]
	if !ok {
		rosters = make(map[int64]string)
		t.ownerByYearRoster[year] = rosters
	}
	rosters[rosterID] = ownerID

	return nil
}

// ResolveOwner maps a season-scoped roster id to its stable owner id.
func (t *IdentityTable) ResolveOwner(year int, rosterID int64) (string, bool) {
	rosters, ok := t.ownerByYearRoster[year]
	if !ok {
		return "", false
	}
	ownerID, ok := rosters[rosterID]
	return ownerID, ok
}

// Get returns the franchise for a stable owner id.
func (t *IdentityTable) Get(ownerID string) (Franchise, bool) {
	item, ok := t.byOwner[ownerID]
	if !ok {
		return Franchise{}, false
	}
	return *item, true
}

// Owners lists all known owner ids.
func (t *IdentityTable) Owners() []string {
	out := make([]string, 0, len(t.byOwner))
	for ownerID := range t.byOwner {
		out = append(out, ownerID)
	}
	return out
}
