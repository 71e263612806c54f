package liaison

import (
	"errors"
	"sort"
	"testing"

	"github.com/openaccel/accml-core/internal/model"
)

func latID(elem, prop string) model.LatticeElementPropertyID {
	return model.LatticeElementPropertyID{ElementName: elem, Property: prop}
}

func devID(dev, prop string) model.DevicePropertyID {
	return model.DevicePropertyID{DeviceName: dev, Property: prop}
}

func newTestManager() *Manager {
	return NewManager(
		map[model.LatticeElementPropertyID]model.DevicePropertyID{
			latID("quad1", "main_strength"):       devID("quad_pc", "set_current"),
			latID("quad1", "delta_main_strength"): devID("quad_pc", "delta_set_current"),
			latID("quad2", "main_strength"):       devID("quad_pc", "set_current"),
		},
		map[model.DevicePropertyID][]model.LatticeElementPropertyID{
			devID("quad_pc", "set_current"): {
				latID("quad1", "main_strength"),
				latID("quad2", "main_strength"),
			},
			devID("quad_pc", "delta_set_current"): {
				latID("quad1", "delta_main_strength"),
			},
		},
	)
}

func TestForwardReturnsExactlyOneTarget(t *testing.T) {
	m := newTestManager()

	dev, err := m.Forward(latID("quad1", "main_strength"))
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if dev != devID("quad_pc", "set_current") {
		t.Errorf("Forward = %v", dev)
	}
}

func TestForwardIsCaseSensitiveExactMatch(t *testing.T) {
	m := newTestManager()

	if _, err := m.Forward(latID("QUAD1", "main_strength")); !errors.Is(err, ErrNotFound) {
		t.Errorf("case-mangled lookup error = %v, want ErrNotFound", err)
	}
	if _, err := m.Forward(latID("quad1", "main_strengt")); !errors.Is(err, ErrNotFound) {
		t.Errorf("truncated property error = %v, want ErrNotFound", err)
	}
}

func TestForwardNotFoundCarriesCandidates(t *testing.T) {
	m := newTestManager()

	_, err := m.Forward(latID("quad1", "x_kick"))
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %T, want *NotFoundError", err)
	}
	if len(nf.Candidates) != 2 {
		t.Errorf("candidates = %v, want the two known quad1 entries", nf.Candidates)
	}
}

func TestInverseIsARelation(t *testing.T) {
	m := newTestManager()

	targets, err := m.Inverse(devID("quad_pc", "set_current"))
	if err != nil {
		t.Fatalf("Inverse: %v", err)
	}
	if len(targets) != 2 {
		t.Fatalf("Inverse returned %d targets, want 2", len(targets))
	}

	// Order-independent: both driven magnets must be present.
	names := []string{targets[0].ElementName, targets[1].ElementName}
	sort.Strings(names)
	if names[0] != "quad1" || names[1] != "quad2" {
		t.Errorf("Inverse targets = %v", names)
	}
}

func TestInverseUnknownDevice(t *testing.T) {
	m := newTestManager()

	_, err := m.Inverse(devID("sext_pc", "set_current"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %T, want *NotFoundError", err)
	}
	if len(nf.Candidates) != 0 {
		t.Errorf("candidates = %v, want none for an unrelated device", nf.Candidates)
	}

	// Known device, unknown property: candidates share the device name.
	_, err = m.Inverse(devID("quad_pc", "readback_current"))
	if !errors.As(err, &nf) {
		t.Fatalf("error = %T, want *NotFoundError", err)
	}
	if len(nf.Candidates) != 2 {
		t.Errorf("candidates = %v, want the two known quad_pc entries", nf.Candidates)
	}
}

func TestManagerCopiesTables(t *testing.T) {
	fwd := map[model.LatticeElementPropertyID]model.DevicePropertyID{
		latID("q", "p"): devID("d", "p"),
	}
	m := NewManager(fwd, nil)
	delete(fwd, latID("q", "p"))

	if _, err := m.Forward(latID("q", "p")); err != nil {
		t.Errorf("manager must not alias the caller's map: %v", err)
	}
}

func TestYellowPages(t *testing.T) {
	yp := NewYellowPages(map[string][]string{
		FamilyQuadrupoles:               {"quad1", "quad2"},
		FamilyTuneCorrectionQuadrupoles: {"quad2"},
	})

	quads, err := yp.Get(FamilyQuadrupoles)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(quads) != 2 {
		t.Errorf("quadrupoles = %v", quads)
	}

	if got := yp.TuneCorrectionQuadrupoleNames(); len(got) != 1 || got[0] != "quad2" {
		t.Errorf("TuneCorrectionQuadrupoleNames = %v", got)
	}

	if _, err := yp.Get("sextupoles"); !errors.Is(err, ErrUnknownFamily) {
		t.Errorf("unknown family error = %v, want ErrUnknownFamily", err)
	}
}
