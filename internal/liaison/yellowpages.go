package liaison

import "fmt"

// Well-known family names.
const (
	FamilyQuadrupoles               = "quadrupoles"
	FamilyTuneCorrectionQuadrupoles = "tune_correction_quadrupoles"
	FamilyQuadrupolePCs             = "quadrupole_pcs"
	FamilyMasterClock               = "master_clock"
)

// YellowPages maps a family name (e.g. "quadrupoles") to the identifiers
// of its members. The registry is immutable after construction.
type YellowPages struct {
	families map[string][]string
}

// NewYellowPages creates a YellowPages over the given family table.
// The map and member slices are copied.
func NewYellowPages(families map[string][]string) *YellowPages {
	fams := make(map[string][]string, len(families))
	for name, members := range families {
		m := make([]string, len(members))
		copy(m, members)
		fams[name] = m
	}
	return &YellowPages{families: fams}
}

// Get returns the members of a family. Unknown family names fail with
// ErrUnknownFamily.
func (yp *YellowPages) Get(familyName string) ([]string, error) {
	members, ok := yp.families[familyName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, familyName)
	}
	out := make([]string, len(members))
	copy(out, members)
	return out, nil
}

// Families returns the registered family names.
func (yp *YellowPages) Families() []string {
	names := make([]string, 0, len(yp.families))
	for name := range yp.families {
		names = append(names, name)
	}
	return names
}

// QuadrupoleNames returns the members of the quadrupole family, or nil if
// the family is not registered.
func (yp *YellowPages) QuadrupoleNames() []string {
	members, err := yp.Get(FamilyQuadrupoles)
	if err != nil {
		return nil
	}
	return members
}

// TuneCorrectionQuadrupoleNames returns the members of the tune-correction
// quadrupole family, or nil if the family is not registered.
func (yp *YellowPages) TuneCorrectionQuadrupoleNames() []string {
	members, err := yp.Get(FamilyTuneCorrectionQuadrupoles)
	if err != nil {
		return nil
	}
	return members
}
