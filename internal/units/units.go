package units

import "strings"

// Liters per unit.
var volumeUnits = map[string]float64{
	"tbsp": 0.0147868,
	"tsp":  0.00492892,
	"cup":  0.236588,
	"oz":   0.0295735,
}

// Kilograms per unit.
var massUnits = map[string]float64{
	"g":  1e-3,
	"kg": 1.0,
	"lb": 0.453592,
	"oz": 0.0283495,
}

// Factor returns the multiplier that converts a quantity expressed in the
// source unit into the target unit. Unit names are case-insensitive.
// Identical unit strings always convert with a factor of 1.0, even for
// "oz", which appears in both tables with different constants: the equality
// check fires before any table lookup, so a volume-oz to mass-oz conversion
// is indistinguishable from a same-unit one. ok is false when the two units
// do not share a dimension (or either is unrecognized).
func Factor(target, source string) (factor float64, ok bool) {
	target = strings.ToLower(target)
	source = strings.ToLower(source)

	if target == source {
		return 1.0, true
	}
	if t, okT := volumeUnits[target]; okT {
		if s, okS := volumeUnits[source]; okS {
			return s / t, true
		}
	}
	if t, okT := massUnits[target]; okT {
		if s, okS := massUnits[source]; okS {
			return s / t, true
		}
	}
	return 0, false
}
