package seed

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"foodgram-backend/pkg/catalog"

	"gorm.io/gorm"
)

// LoadIngredients bulk-loads the ingredient reference data from a CSV of
// "name,measurement_unit" rows. Rows already present are skipped, so the
// load can be re-run safely.
func LoadIngredients(ctx context.Context, db *gorm.DB, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	repository := catalog.NewCatalogRepository(db)
	reader := csv.NewReader(file)
	loaded := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(record) < 2 {
			continue
		}

		if err := repository.UpsertIngredient(ctx, record[0], record[1]); err != nil {
			return err
		}
		loaded++
	}

	fmt.Printf("Ingredient seed complete: %d rows processed\n", loaded)
	return nil
}
