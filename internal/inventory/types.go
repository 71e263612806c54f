package inventory

// ConversionRecord is the calibration curve attached to a magnet record.
// Slope and intercept describe current as a function of strength at the
// reference rigidity; Build inverts the slope when wiring conversions.
type ConversionRecord struct {
	Slope     float64 `yaml:"slope" json:"slope"`
	Intercept float64 `yaml:"intercept" json:"intercept"`
	Type      string  `yaml:"conversion_type" json:"conversion_type"`
}

// MagnetRecord describes one installed magnet.
type MagnetRecord struct {
	// ElemID is the lattice element this magnet realises, e.g. "QF1C01A".
	ElemID string `yaml:"elem_id" json:"elem_id"`

	// DevID is the device identifier. Unique across the inventory.
	DevID string `yaml:"dev_id" json:"dev_id"`

	// Type is the magnet class, e.g. "quadrupole".
	Type string `yaml:"type" json:"type"`

	// FamilyMember lists extra family tags, e.g. "tune_correction".
	FamilyMember []string `yaml:"family_member" json:"family_member"`

	// PowerConverterID references the feeding PowerConverterRecord.
	PowerConverterID string `yaml:"power_converter_id" json:"power_converter_id"`

	Conversion ConversionRecord `yaml:"conversion" json:"conversion"`
}

// InFamily reports whether the magnet carries the given family tag.
func (m MagnetRecord) InFamily(tag string) bool {
	for _, f := range m.FamilyMember {
		if f == tag {
			return true
		}
	}
	return false
}

// InterfaceRecord names the control-system channels of a power
// converter.
type InterfaceRecord struct {
	Setpoint string `yaml:"setpoint" json:"setpoint"`
	Readback string `yaml:"readback" json:"readback"`
}

// ResponseRecord describes how a power converter reacts to a setpoint
// change. Timeout is how long the device may take to answer, SettleTime
// how long until it is expected to be stable. Both in seconds.
type ResponseRecord struct {
	Timeout    float64 `yaml:"timeout" json:"timeout"`
	SettleTime float64 `yaml:"settle_time" json:"settle_time"`
}

// PowerConverterRecord describes one power converter.
type PowerConverterRecord struct {
	ID        string          `yaml:"id" json:"id"`
	Interface InterfaceRecord `yaml:"interface" json:"interface"`
	Response  ResponseRecord  `yaml:"response" json:"response"`
}
