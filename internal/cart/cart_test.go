package cart

import (
	"reflect"
	"strings"
	"testing"

	"ingredient-finder/internal/recipe"
)

func tableOf(recipes map[string][]recipe.Ingredient, bulk ...string) *recipe.Table {
	table := &recipe.Table{
		Recipes: recipes,
		Bulk:    make(map[string]struct{}),
	}
	for _, name := range bulk {
		table.Bulk[name] = struct{}{}
	}
	return table
}

func TestBuildMergesAcrossRecipes(t *testing.T) {
	// 1 cup of flour plus 2 tbsp of flour merges into the first-seen unit
	// (cup) as 1 + round(2*0.0147868/0.236588, 2) = 1 + 0.13.
	table := tableOf(map[string][]recipe.Ingredient{
		"A": {{Name: "flour", Quantity: 1, Unit: "cup", Location: "pantry", Indefinite: true}},
		"B": {{Name: "flour", Quantity: 2, Unit: "tbsp", Location: "pantry", Indefinite: true}},
		"C": {},
	}, "flour")

	cart, err := Build([]string{"A", "B"}, table)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(cart.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", cart.Warnings)
	}

	want := [][]string{
		{"Plan 0"},
		{"A"},
		{"B"},
		{},
		{"Ingredients", "", "", "Pantry"},
		{"", "", "", "flour", "1.13", "cup"},
	}
	if !reflect.DeepEqual(cart.Rows, want) {
		t.Errorf("Rows = %v, want %v", cart.Rows, want)
	}
}

func TestBuildDoublesOnRepeatedQuery(t *testing.T) {
	table := tableOf(map[string][]recipe.Ingredient{
		"Stir Fry": {
			{Name: "rice", Quantity: 1.5, Unit: "cup"},
			{Name: "soy sauce", Quantity: 2, Unit: "tbsp"},
		},
	})

	once, err := Build([]string{"Stir Fry"}, table)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	twice, err := Build([]string{"Stir Fry", "Stir Fry"}, table)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	// Skip the two extra marker rows: compare the ingredient rows only.
	onceRows := once.Rows[4:]
	twiceRows := twice.Rows[5:]
	wantOnce := [][]string{
		{"rice", "1.5", "cup", "", "", ""},
		{"soy sauce", "2", "tbsp", "", "", ""},
	}
	wantTwice := [][]string{
		{"rice", "3", "cup", "", "", ""},
		{"soy sauce", "4", "tbsp", "", "", ""},
	}
	if !reflect.DeepEqual(onceRows, wantOnce) {
		t.Errorf("Single query rows = %v, want %v", onceRows, wantOnce)
	}
	if !reflect.DeepEqual(twiceRows, wantTwice) {
		t.Errorf("Double query rows = %v, want %v", twiceRows, wantTwice)
	}
}

func TestBuildUnknownRecipe(t *testing.T) {
	table := tableOf(map[string][]recipe.Ingredient{"A": {}})

	cart, err := Build([]string{"A", "Nonexistent"}, table)
	if err == nil {
		t.Fatal("Expected an error for unknown recipe, got nil")
	}
	if !strings.Contains(err.Error(), "Nonexistent") {
		t.Errorf("Expected error to name the recipe, got: %v", err)
	}
	if cart != nil {
		t.Errorf("Expected nil cart on error, got %v", cart)
	}
}

func TestBuildIncompatibleUnits(t *testing.T) {
	table := tableOf(map[string][]recipe.Ingredient{
		"A": {{Name: "butter", Quantity: 100, Unit: "g"}},
		"B": {{Name: "butter", Quantity: 2, Unit: "tbsp"}},
	})

	cart, err := Build([]string{"A", "B"}, table)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(cart.Warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %v", cart.Warnings)
	}
	if !strings.Contains(cart.Warnings[0], "butter") {
		t.Errorf("Expected warning to name the ingredient, got: %s", cart.Warnings[0])
	}

	// The stored quantity and unit are unchanged; the tbsp quantity is dropped.
	last := cart.Rows[len(cart.Rows)-1]
	want := []string{"butter", "100", "g", "", "", ""}
	if !reflect.DeepEqual(last, want) {
		t.Errorf("Ingredient row = %v, want %v", last, want)
	}
}

func TestBuildKeepsFirstSeenUnit(t *testing.T) {
	table := tableOf(map[string][]recipe.Ingredient{
		"A": {{Name: "milk", Quantity: 1, Unit: "cup"}},
		"B": {{Name: "milk", Quantity: 3, Unit: "tsp"}},
		"C": {{Name: "milk", Quantity: 2, Unit: "tbsp"}},
	})

	cart, err := Build([]string{"A", "B", "C"}, table)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	// 1 + round(3*0.00492892/0.236588, 2) + round(2*0.0147868/0.236588, 2)
	// = 1 + 0.06 + 0.13, still in cups.
	last := cart.Rows[len(cart.Rows)-1]
	want := []string{"milk", "1.19", "cup", "", "", ""}
	if !reflect.DeepEqual(last, want) {
		t.Errorf("Ingredient row = %v, want %v", last, want)
	}
}

func TestBuildPartition(t *testing.T) {
	table := tableOf(map[string][]recipe.Ingredient{
		"Bake Day": {
			{Name: "flour", Quantity: 3, Unit: "cup", Indefinite: true},
			{Name: "eggs", Quantity: 3.7, Unit: "count"},
			{Name: "salt", Quantity: 1, Unit: "tsp", Indefinite: true},
			{Name: "parsley", Quantity: 0, Unit: " "},
			{Name: "milk", Quantity: 2, Unit: "cup"},
		},
	}, "flour", "salt")

	cart, err := Build([]string{"Bake Day"}, table)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	want := [][]string{
		{"Plan 0"},
		{"Bake Day"},
		{},
		{"Ingredients", "", "", "Pantry"},
		// "count" truncates to a whole number; a blank unit renders the
		// name alone; pantry columns run out after two entries.
		{"eggs", "3", "count", "flour", "3", "cup"},
		{"parsley", "salt", "1", "tsp"},
		{"milk", "2", "cup", "", "", ""},
	}
	if !reflect.DeepEqual(cart.Rows, want) {
		t.Errorf("Rows = %v, want %v", cart.Rows, want)
	}
}

func TestBuildEmptyQuery(t *testing.T) {
	table := tableOf(map[string][]recipe.Ingredient{"A": {}})

	cart, err := Build(nil, table)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	want := [][]string{
		{"Plan 0"},
		{},
		{"Ingredients", "", "", "Pantry"},
	}
	if !reflect.DeepEqual(cart.Rows, want) {
		t.Errorf("Rows = %v, want %v", cart.Rows, want)
	}
}
