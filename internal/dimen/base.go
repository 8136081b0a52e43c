package dimen

// Base identifies one axis of the unit system.
// The declared order is the slot order of every Vector and the token order of
// the text form; it must not change.
type Base int

const (
	Mass Base = iota
	Quantity
	Length
	Time
	Temperature
	Currency
	ElectricCurrent
	LuminousIntensity
	PlaneAngle
	SolidAngle

	// NumBase is the number of base dimensions.
	NumBase int = iota
)

var baseCodes = [NumBase]string{
	Mass:              "M",
	Quantity:          "Q",
	Length:            "L",
	Time:              "T",
	Temperature:       "TMP",
	Currency:          "C",
	ElectricCurrent:   "E",
	LuminousIntensity: "LUM",
	PlaneAngle:        "P",
	SolidAngle:        "S",
}

var baseNames = [NumBase]string{
	Mass:              "mass",
	Quantity:          "quantity",
	Length:            "length",
	Time:              "time",
	Temperature:       "temperature",
	Currency:          "currency",
	ElectricCurrent:   "electric current",
	LuminousIntensity: "luminous intensity",
	PlaneAngle:        "plane angle",
	SolidAngle:        "solid angle",
}

// Code returns the short code used in the text form, e.g. "L" or "TMP".
// Out-of-range values return "".
func (b Base) Code() string {
	if !b.valid() {
		return ""
	}
	return baseCodes[b]
}

// String returns the human-readable name.
func (b Base) String() string {
	if !b.valid() {
		return "unknown"
	}
	return baseNames[b]
}

func (b Base) valid() bool {
	return b >= 0 && int(b) < NumBase
}

// BaseByCode returns the base dimension with the given code.
func BaseByCode(code string) (Base, bool) {
	for i, c := range baseCodes {
		if c == code {
			return Base(i), true
		}
	}
	return 0, false
}

// Bases returns all base dimensions in declared order.
func Bases() []Base {
	out := make([]Base, NumBase)
	for i := range out {
		out[i] = Base(i)
	}
	return out
}
