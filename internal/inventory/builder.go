package inventory

import (
	"fmt"
	"sort"

	"github.com/openaccel/accml-core/internal/backend/delta"
	"github.com/openaccel/accml-core/internal/conversion"
	"github.com/openaccel/accml-core/internal/liaison"
	"github.com/openaccel/accml-core/internal/model"
	"github.com/openaccel/accml-core/internal/translator"
)

// Well-known property and element names wired by Build.
const (
	// PropertyMainStrength is the lattice-space property of a magnet.
	PropertyMainStrength = "main_strength"

	// PropertySetCurrent is the device-space property of a power
	// converter.
	PropertySetCurrent = "set_current"

	// TuneElementName addresses the machine tune in both identifier
	// spaces.
	TuneElementName = "tune"

	// TuneProperty is the transversal tune property.
	TuneProperty = "transversal"

	// ConversionTypeLinear is the only calibration curve type supported.
	ConversionTypeLinear = "linear"

	// MagnetTypeQuadrupole is the record type of a quadrupole magnet.
	MagnetTypeQuadrupole = "quadrupole"

	// FamilyMemberTuneCorrection tags a magnet as part of the tune
	// correction scheme.
	FamilyMemberTuneCorrection = "tune_correction"
)

// DefaultFloquetToFrequency converts a fractional tune to a kicker
// frequency: 500 kHz revolution frequency over 400 bunches.
const DefaultFloquetToFrequency = 500e3 / 400.0

// Params are the facility constants Build needs beyond the records.
type Params struct {
	// Brho is the magnetic rigidity the calibration curves are scaled
	// with.
	Brho float64

	// FloquetToFrequency scales tune units. Zero selects
	// DefaultFloquetToFrequency.
	FloquetToFrequency float64
}

// Catalogue is the assembled mediation triad plus the raw records it was
// built from.
type Catalogue struct {
	YellowPages *liaison.YellowPages
	Liaison     *liaison.Manager
	Translator  *translator.Service

	Magnets         []MagnetRecord
	PowerConverters map[string]PowerConverterRecord
}

// Build assembles the catalogue from magnet and power converter records.
//
// For every quadrupole it wires the main_strength -> set_current pair and
// its delta twin: the absolute pair keeps the calibration intercept, the
// delta pair drops it since offsets have no origin. Slopes are stored as
// current per strength, so the lattice-to-device conversion uses the
// reciprocal, scaled by rigidity. The machine tune is wired per axis with
// the floquet-to-frequency factor.
func Build(magnets []MagnetRecord, pcs []PowerConverterRecord, params Params) (*Catalogue, error) {
	seen := make(map[string]struct{}, len(magnets))
	for _, m := range magnets {
		if _, ok := seen[m.DevID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateDevice, m.DevID)
		}
		seen[m.DevID] = struct{}{}
	}

	floquet := params.FloquetToFrequency
	if floquet == 0 {
		floquet = DefaultFloquetToFrequency
	}

	yp := buildYellowPages(magnets)
	quads := make(map[string]struct{})
	for _, name := range yp.QuadrupoleNames() {
		quads[name] = struct{}{}
	}

	forward := make(map[model.LatticeElementPropertyID]model.DevicePropertyID)
	inverse := make(map[model.DevicePropertyID][]model.LatticeElementPropertyID)
	conversions := make(map[model.ConversionID]conversion.Conversion)

	for _, m := range magnets {
		if _, ok := quads[m.DevID]; !ok {
			continue
		}
		if m.Conversion.Type != "" && m.Conversion.Type != ConversionTypeLinear {
			return nil, fmt.Errorf("%w: %q on magnet %q", ErrUnsupportedConversion, m.Conversion.Type, m.DevID)
		}
		if m.Conversion.Slope == 0 {
			return nil, fmt.Errorf("%w: magnet %q", conversion.ErrZeroSlope, m.DevID)
		}

		latMain := model.LatticeElementPropertyID{ElementName: m.DevID, Property: PropertyMainStrength}
		devMain := model.DevicePropertyID{DeviceName: m.PowerConverterID, Property: PropertySetCurrent}
		latDelta := model.LatticeElementPropertyID{ElementName: m.DevID, Property: delta.Prefix + PropertyMainStrength}
		devDelta := model.DevicePropertyID{DeviceName: m.PowerConverterID, Property: delta.Prefix + PropertySetCurrent}

		forward[latMain] = devMain
		forward[latDelta] = devDelta
		inverse[devMain] = append(inverse[devMain], latMain)
		inverse[devDelta] = append(inverse[devDelta], latDelta)

		// Calibration stores current per strength; lattice-to-device goes
		// the other way.
		slope := 1.0 / m.Conversion.Slope

		main, err := conversion.NewEnergyScaledLinear(slope, m.Conversion.Intercept, params.Brho)
		if err != nil {
			return nil, fmt.Errorf("magnet %q: %w", m.DevID, err)
		}
		conversions[model.ConversionID{Lattice: latMain, Device: devMain}] = main

		// Deltas are intercept-free: a linear curve shifts offsets
		// unchanged.
		deltaConv, err := conversion.NewEnergyScaledLinear(slope, 0, params.Brho)
		if err != nil {
			return nil, fmt.Errorf("magnet %q: %w", m.DevID, err)
		}
		conversions[model.ConversionID{Lattice: latDelta, Device: devDelta}] = deltaConv
	}

	latTune := model.LatticeElementPropertyID{ElementName: TuneElementName, Property: TuneProperty}
	devTune := model.DevicePropertyID{DeviceName: TuneElementName, Property: TuneProperty}
	forward[latTune] = devTune
	inverse[devTune] = []model.LatticeElementPropertyID{latTune}

	tuneLinear, err := conversion.NewLinear(floquet, 0)
	if err != nil {
		return nil, fmt.Errorf("tune conversion: %w", err)
	}
	conversions[model.ConversionID{Lattice: latTune, Device: devTune}] = conversion.NewPerAxis(tuneLinear)

	pcIndex := make(map[string]PowerConverterRecord, len(pcs))
	for _, p := range pcs {
		pcIndex[p.ID] = p
	}

	return &Catalogue{
		YellowPages:     yp,
		Liaison:         liaison.NewManager(forward, inverse),
		Translator:      translator.NewService(conversions),
		Magnets:         magnets,
		PowerConverters: pcIndex,
	}, nil
}

// buildYellowPages derives the family listing from the magnet records.
func buildYellowPages(magnets []MagnetRecord) *liaison.YellowPages {
	var quadrupoles, tuneCorrection []string
	pcSet := make(map[string]struct{})

	for _, m := range magnets {
		if m.Type != MagnetTypeQuadrupole {
			continue
		}
		quadrupoles = append(quadrupoles, m.DevID)
		if m.InFamily(FamilyMemberTuneCorrection) {
			tuneCorrection = append(tuneCorrection, m.DevID)
		}
		pcSet[m.PowerConverterID] = struct{}{}
	}

	pcs := make([]string, 0, len(pcSet))
	for id := range pcSet {
		pcs = append(pcs, id)
	}
	sort.Strings(pcs)

	return liaison.NewYellowPages(map[string][]string{
		liaison.FamilyQuadrupoles:               quadrupoles,
		liaison.FamilyTuneCorrectionQuadrupoles: tuneCorrection,
		liaison.FamilyQuadrupolePCs:             pcs,
		liaison.FamilyMasterClock:               {"master_clock"},
	})
}
