// Package cart merges the ingredient lists of the requested recipes into a
// single shopping-cart table, splitting fresh purchases from pantry staples.
package cart

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"ingredient-finder/internal/recipe"
	"ingredient-finder/internal/units"
)

// Cart is the built shopping-cart table. Rows are cell strings ready to be
// joined for display; Warnings carries non-fatal merge diagnostics
// (incompatible-unit drops).
type Cart struct {
	Rows     [][]string
	Warnings []string
}

// Build merges the ingredients of the queried recipes, in query order, into
// a formatted cart table. Duplicate ingredients (same name, across or within
// recipes) are summed into the first-seen entry, converting quantities into
// that entry's unit. A quantity whose unit cannot be converted is dropped
// with a warning. An unknown recipe name fails the whole build.
func Build(query []string, table *recipe.Table) (*Cart, error) {
	cart := &Cart{Rows: [][]string{{"Plan 0"}}}

	var list []recipe.Ingredient
	index := make(map[string]int)

	for _, name := range query {
		ingredients, ok := table.Recipes[name]
		if !ok {
			return nil, fmt.Errorf("unknown recipe %q", name)
		}
		cart.Rows = append(cart.Rows, []string{name})

		for _, ing := range ingredients {
			pos, seen := index[ing.Name]
			if !seen {
				index[ing.Name] = len(list)
				list = append(list, ing)
				continue
			}

			stored := &list[pos]
			factor, ok := units.Factor(stored.Unit, ing.Unit)
			if !ok {
				cart.Warnings = append(cart.Warnings, fmt.Sprintf(
					"incompatible units for %s: cannot add %s to %s, quantity dropped",
					ing.Name, ing.Unit, stored.Unit))
				continue
			}

			added := ing.Quantity
			if factor != 1.0 {
				added = round2(ing.Quantity * factor)
			}
			stored.Quantity += added
		}
	}

	cart.Rows = append(cart.Rows, []string{})
	cart.Rows = append(cart.Rows, []string{"Ingredients", "", "", "Pantry"})

	var fresh, pantry [][]string
	for _, ing := range list {
		if table.IsBulk(ing.Name) {
			pantry = append(pantry, ingredientCells(ing))
		} else {
			fresh = append(fresh, ingredientCells(ing))
		}
	}

	for i := 0; i < len(fresh) || i < len(pantry); i++ {
		row := make([]string, 0, 6)
		if i < len(fresh) {
			row = append(row, fresh[i]...)
		} else {
			row = append(row, "", "", "")
		}
		if i < len(pantry) {
			row = append(row, pantry[i]...)
		} else {
			row = append(row, "", "", "")
		}
		cart.Rows = append(cart.Rows, row)
	}

	return cart, nil
}

// ingredientCells renders one cart entry. An ingredient without a unit is a
// bare name; "count" quantities are shown as whole numbers.
func ingredientCells(ing recipe.Ingredient) []string {
	if strings.TrimSpace(ing.Unit) == "" {
		return []string{ing.Name}
	}
	if ing.Unit == "count" {
		return []string{ing.Name, strconv.Itoa(int(ing.Quantity)), ing.Unit}
	}
	return []string{ing.Name, strconv.FormatFloat(ing.Quantity, 'f', -1, 64), ing.Unit}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
