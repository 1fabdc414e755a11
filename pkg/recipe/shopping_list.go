package recipe

import (
	"fmt"
	"strings"
	"time"

	"foodgram-backend/domain"
)

// BuildShoppingList renders the aggregated cart as the plain-text document
// served as a download. One line per distinct (name, unit) pair; an empty
// cart produces the header only.
func BuildShoppingList(username string, date time.Time, items []domain.ShoppingItem) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s, your shopping list is ready!\n", username)
	fmt.Fprintf(&b, "Date: %s\n\n", date.Format("2006-01-02"))

	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf(
			"- %s (%s) - %d",
			item.Name, item.MeasurementUnit, item.Amount,
		))
	}
	b.WriteString(strings.Join(lines, "\n"))

	return b.String()
}

func shoppingListFilename(username string) string {
	return fmt.Sprintf("%s_shopping.txt", username)
}
