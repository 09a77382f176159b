package recipe

import (
	"fmt"
	"strconv"
	"strings"
)

// columnCount is the expected width of every ingredient row:
// recipe, ingredient, quantity, unit, location, duration.
const columnCount = 6

// Table is the parsed form of the ingredient spreadsheet: recipe name to its
// ingredient lines in sheet order, plus the set of ingredient names with an
// indefinite shelf life.
type Table struct {
	Recipes map[string][]Ingredient
	Bulk    map[string]struct{}
}

// IsBulk reports whether the named ingredient is a pantry staple.
func (t *Table) IsBulk(name string) bool {
	_, ok := t.Bulk[name]
	return ok
}

// ParseTable converts raw sheet rows into a Table. The first row is a header
// and is skipped. A non-empty first cell starts a new recipe section; rows
// with an empty first cell belong to the most recent section (the sheet uses
// merged cells for the recipe column). An ingredient whose duration cell is
// the literal "indefinite" is marked Indefinite and added to the bulk set.
func ParseTable(rows [][]string) (*Table, error) {
	table := &Table{
		Recipes: make(map[string][]Ingredient),
		Bulk:    make(map[string]struct{}),
	}

	currentRecipe := ""
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) < columnCount {
			return nil, fmt.Errorf("row %d: expected %d cells, got %d", i+1, columnCount, len(row))
		}

		if name := strings.TrimSpace(row[0]); name != "" {
			currentRecipe = name
		}

		quantity, err := parseQuantity(row[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid quantity %q: %w", i+1, row[2], err)
		}

		duration, indefinite, err := parseDuration(row[5])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid duration %q: %w", i+1, row[5], err)
		}

		ingredient := Ingredient{
			Name:       strings.ToLower(strings.TrimSpace(row[1])),
			Quantity:   quantity,
			Unit:       strings.TrimSpace(row[3]),
			Location:   strings.TrimSpace(row[4]),
			Duration:   duration,
			Indefinite: indefinite,
		}

		table.Recipes[currentRecipe] = append(table.Recipes[currentRecipe], ingredient)

		if indefinite {
			table.Bulk[ingredient.Name] = struct{}{}
		}
	}

	return table, nil
}

func parseQuantity(cell string) (float64, error) {
	if len(cell) == 0 {
		return 0, nil
	}
	return strconv.ParseFloat(strings.TrimSpace(cell), 64)
}

func parseDuration(cell string) (duration float64, indefinite bool, err error) {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "indefinite" {
		return 0, true, nil
	}
	if len(trimmed) == 0 {
		return 0, false, nil
	}
	duration, err = strconv.ParseFloat(trimmed, 64)
	return duration, false, err
}
