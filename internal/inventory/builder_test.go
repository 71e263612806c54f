package inventory

import (
	"errors"
	"math"
	"testing"

	"github.com/openaccel/accml-core/internal/conversion"
	"github.com/openaccel/accml-core/internal/liaison"
	"github.com/openaccel/accml-core/internal/model"
)

func testMagnets() []MagnetRecord {
	return []MagnetRecord{
		{
			ElemID:           "QF1C01A",
			DevID:            "QF1C01A",
			Type:             "quadrupole",
			FamilyMember:     []string{"tune_correction"},
			PowerConverterID: "QF1PC",
			Conversion:       ConversionRecord{Slope: 0.5, Intercept: 0.1, Type: "linear"},
		},
		{
			ElemID:           "QD2C01A",
			DevID:            "QD2C01A",
			Type:             "quadrupole",
			PowerConverterID: "QD2PC",
			Conversion:       ConversionRecord{Slope: 2.0, Intercept: 0.0, Type: "linear"},
		},
		{
			ElemID:           "BM1C01A",
			DevID:            "BM1C01A",
			Type:             "bend",
			PowerConverterID: "BM1PC",
			Conversion:       ConversionRecord{Slope: 1.0, Type: "linear"},
		},
	}
}

func testPCs() []PowerConverterRecord {
	return []PowerConverterRecord{
		{
			ID:        "QF1PC",
			Interface: InterfaceRecord{Setpoint: "CHANNEL:QF1C01A:SP", Readback: "CHANNEL:QF1C01A:RB"},
			Response:  ResponseRecord{Timeout: 0.5, SettleTime: 2.0},
		},
	}
}

const testBrho = 5.67229387129245

func TestBuildYellowPages(t *testing.T) {
	cat, err := Build(testMagnets(), testPCs(), Params{Brho: testBrho})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	quads := cat.YellowPages.QuadrupoleNames()
	if len(quads) != 2 {
		t.Fatalf("quadrupoles = %v, want 2 entries", quads)
	}

	tc := cat.YellowPages.TuneCorrectionQuadrupoleNames()
	if len(tc) != 1 || tc[0] != "QF1C01A" {
		t.Errorf("tune correction quadrupoles = %v", tc)
	}

	pcs, err := cat.YellowPages.Get(liaison.FamilyQuadrupolePCs)
	if err != nil {
		t.Fatalf("Get(%s) error: %v", liaison.FamilyQuadrupolePCs, err)
	}
	if len(pcs) != 2 || pcs[0] != "QD2PC" || pcs[1] != "QF1PC" {
		t.Errorf("quadrupole pcs = %v, want sorted [QD2PC QF1PC]", pcs)
	}
}

func TestBuildLiaisonWiring(t *testing.T) {
	cat, err := Build(testMagnets(), testPCs(), Params{Brho: testBrho})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	// Absolute pair.
	dev, err := cat.Liaison.Forward(model.LatticeElementPropertyID{
		ElementName: "QF1C01A", Property: PropertyMainStrength,
	})
	if err != nil {
		t.Fatalf("Forward(main_strength) error: %v", err)
	}
	want := model.DevicePropertyID{DeviceName: "QF1PC", Property: PropertySetCurrent}
	if dev != want {
		t.Errorf("Forward(main_strength) = %v, want %v", dev, want)
	}

	// Delta pair.
	dev, err = cat.Liaison.Forward(model.LatticeElementPropertyID{
		ElementName: "QF1C01A", Property: "delta_" + PropertyMainStrength,
	})
	if err != nil {
		t.Fatalf("Forward(delta_main_strength) error: %v", err)
	}
	if dev.Property != "delta_"+PropertySetCurrent {
		t.Errorf("delta forward property = %q", dev.Property)
	}

	// Tune addresses itself in both spaces.
	dev, err = cat.Liaison.Forward(model.LatticeElementPropertyID{
		ElementName: TuneElementName, Property: TuneProperty,
	})
	if err != nil {
		t.Fatalf("Forward(tune) error: %v", err)
	}
	if dev.DeviceName != TuneElementName || dev.Property != TuneProperty {
		t.Errorf("Forward(tune) = %v", dev)
	}

	// Non-quadrupoles are not wired.
	_, err = cat.Liaison.Forward(model.LatticeElementPropertyID{
		ElementName: "BM1C01A", Property: PropertyMainStrength,
	})
	if !errors.Is(err, liaison.ErrNotFound) {
		t.Errorf("Forward(bend) error = %v, want ErrNotFound", err)
	}

	// Inverse round trip.
	lats, err := cat.Liaison.Inverse(model.DevicePropertyID{DeviceName: "QF1PC", Property: PropertySetCurrent})
	if err != nil {
		t.Fatalf("Inverse() error: %v", err)
	}
	if len(lats) != 1 || lats[0].ElementName != "QF1C01A" {
		t.Errorf("Inverse() = %v", lats)
	}
}

func TestBuildConversions(t *testing.T) {
	cat, err := Build(testMagnets(), testPCs(), Params{Brho: testBrho})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	latMain := model.LatticeElementPropertyID{ElementName: "QF1C01A", Property: PropertyMainStrength}
	devMain := model.DevicePropertyID{DeviceName: "QF1PC", Property: PropertySetCurrent}

	conv, err := cat.Translator.Get(model.ConversionID{Lattice: latMain, Device: devMain})
	if err != nil {
		t.Fatalf("Get(main) error: %v", err)
	}

	// slope 0.5 inverted to 2, scaled by brho; intercept 0.1 scaled by
	// brho.
	got, err := conv.Forward(model.Scalar(3))
	if err != nil {
		t.Fatalf("Forward() error: %v", err)
	}
	want := 0.1*testBrho + (1.0/0.5)*testBrho*3
	if math.Abs(float64(got.(model.Scalar))-want) > 1e-9 {
		t.Errorf("Forward(3) = %v, want %v", got, want)
	}

	// Delta conversion drops the intercept.
	latDelta := model.LatticeElementPropertyID{ElementName: "QF1C01A", Property: "delta_" + PropertyMainStrength}
	devDelta := model.DevicePropertyID{DeviceName: "QF1PC", Property: "delta_" + PropertySetCurrent}
	deltaConv, err := cat.Translator.Get(model.ConversionID{Lattice: latDelta, Device: devDelta})
	if err != nil {
		t.Fatalf("Get(delta) error: %v", err)
	}
	got, err = deltaConv.Forward(model.Scalar(3))
	if err != nil {
		t.Fatalf("delta Forward() error: %v", err)
	}
	want = (1.0 / 0.5) * testBrho * 3
	if math.Abs(float64(got.(model.Scalar))-want) > 1e-9 {
		t.Errorf("delta Forward(3) = %v, want %v", got, want)
	}
}

func TestBuildTuneConversionRoundTrip(t *testing.T) {
	cat, err := Build(testMagnets(), testPCs(), Params{Brho: testBrho})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	id := model.ConversionID{
		Lattice: model.LatticeElementPropertyID{ElementName: TuneElementName, Property: TuneProperty},
		Device:  model.DevicePropertyID{DeviceName: TuneElementName, Property: TuneProperty},
	}
	conv, err := cat.Translator.Get(id)
	if err != nil {
		t.Fatalf("Get(tune) error: %v", err)
	}

	in := model.Tune{X: 0.12, Y: -0.34}
	fwd, err := conv.Forward(in)
	if err != nil {
		t.Fatalf("Forward() error: %v", err)
	}
	tune := fwd.(model.Tune)
	if math.Abs(tune.X-0.12*DefaultFloquetToFrequency) > 1e-9 {
		t.Errorf("Forward().X = %v", tune.X)
	}

	back, err := conv.Inverse(fwd)
	if err != nil {
		t.Fatalf("Inverse() error: %v", err)
	}
	out := back.(model.Tune)
	if math.Abs(out.X-in.X) > 1e-9 || math.Abs(out.Y-in.Y) > 1e-9 {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}

func TestBuildDuplicateDevice(t *testing.T) {
	magnets := testMagnets()
	magnets = append(magnets, magnets[0])

	if _, err := Build(magnets, nil, Params{Brho: testBrho}); !errors.Is(err, ErrDuplicateDevice) {
		t.Errorf("Build() error = %v, want ErrDuplicateDevice", err)
	}
}

func TestBuildZeroSlope(t *testing.T) {
	magnets := testMagnets()
	magnets[0].Conversion.Slope = 0

	if _, err := Build(magnets, nil, Params{Brho: testBrho}); !errors.Is(err, conversion.ErrZeroSlope) {
		t.Errorf("Build() error = %v, want ErrZeroSlope", err)
	}
}

func TestBuildUnsupportedConversionType(t *testing.T) {
	magnets := testMagnets()
	magnets[0].Conversion.Type = "spline"

	if _, err := Build(magnets, nil, Params{Brho: testBrho}); !errors.Is(err, ErrUnsupportedConversion) {
		t.Errorf("Build() error = %v, want ErrUnsupportedConversion", err)
	}
}

func TestBuildPowerConverterIndex(t *testing.T) {
	cat, err := Build(testMagnets(), testPCs(), Params{Brho: testBrho})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	pc, ok := cat.PowerConverters["QF1PC"]
	if !ok {
		t.Fatal("QF1PC missing from power converter index")
	}
	if pc.Response.Timeout != 0.5 {
		t.Errorf("timeout = %v", pc.Response.Timeout)
	}
}
