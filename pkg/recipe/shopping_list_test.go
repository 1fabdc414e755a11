package recipe

import (
	"testing"
	"time"

	"foodgram-backend/domain"

	"github.com/stretchr/testify/assert"
)

func TestBuildShoppingList(t *testing.T) {
	date := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	items := []domain.ShoppingItem{
		{Name: "eggs", MeasurementUnit: "pcs", Amount: 2},
		{Name: "flour", MeasurementUnit: "g", Amount: 300},
		{Name: "milk", MeasurementUnit: "cup", Amount: 1},
	}

	got := BuildShoppingList("chef", date, items)

	want := "chef, your shopping list is ready!\n" +
		"Date: 2024-03-15\n\n" +
		"- eggs (pcs) - 2\n" +
		"- flour (g) - 300\n" +
		"- milk (cup) - 1"
	assert.Equal(t, want, got)
}

func TestBuildShoppingListEmptyCart(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	got := BuildShoppingList("chef", date, nil)

	assert.Equal(t, "chef, your shopping list is ready!\nDate: 2024-03-15\n\n", got)
}

func TestBuildShoppingListDeterministic(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	items := []domain.ShoppingItem{
		{Name: "flour", MeasurementUnit: "g", Amount: 300},
		{Name: "flour", MeasurementUnit: "kg", Amount: 2},
	}

	first := BuildShoppingList("chef", date, items)
	second := BuildShoppingList("chef", date, items)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "- flour (g) - 300")
	assert.Contains(t, first, "- flour (kg) - 2")
}

func TestShoppingListFilename(t *testing.T) {
	assert.Equal(t, "chef_shopping.txt", shoppingListFilename("chef"))
}
