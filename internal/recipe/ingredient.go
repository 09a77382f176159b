package recipe

// Ingredient is one ingredient line within one recipe. Name is the identity
// key: the cart builder merges ingredients across recipes by name alone,
// regardless of quantity, unit, location, or shelf life.
type Ingredient struct {
	Name     string
	Quantity float64
	Unit     string
	Location string
	// Duration is the shelf life in days. Indefinite marks items that never
	// expire (pantry staples); Duration is meaningless when Indefinite is set.
	Duration   float64
	Indefinite bool
}
