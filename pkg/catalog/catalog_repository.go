package catalog

import (
	"context"
	"errors"
	"strings"

	"foodgram-backend/entities"

	"gorm.io/gorm"
)

type (
	CatalogRepository interface {
		CreateTag(ctx context.Context, tag *entities.Tag) error
		GetTags(ctx context.Context) ([]*entities.Tag, error)
		GetTagByID(ctx context.Context, id string) (*entities.Tag, error)
		GetTagBySlug(ctx context.Context, slug string) (*entities.Tag, error)
		GetTagsByIDs(ctx context.Context, ids []string) ([]*entities.Tag, error)
		CreateIngredient(ctx context.Context, ingredient *entities.Ingredient) error
		UpsertIngredient(ctx context.Context, name, measurementUnit string) error
		GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error)
		GetIngredientsByIDs(ctx context.Context, ids []string) ([]*entities.Ingredient, error)
		SearchIngredients(ctx context.Context, namePrefix string) ([]*entities.Ingredient, error)
	}

	catalogRepository struct {
		db *gorm.DB
	}
)

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) CreateTag(ctx context.Context, tag *entities.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *catalogRepository) GetTags(ctx context.Context) ([]*entities.Tag, error) {
	var tags []*entities.Tag
	if err := r.db.WithContext(ctx).Order("name asc").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *catalogRepository) GetTagByID(ctx context.Context, id string) (*entities.Tag, error) {
	var tag entities.Tag
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *catalogRepository) GetTagBySlug(ctx context.Context, slug string) (*entities.Tag, error) {
	var tag entities.Tag
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *catalogRepository) GetTagsByIDs(ctx context.Context, ids []string) ([]*entities.Tag, error) {
	var tags []*entities.Tag
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *catalogRepository) CreateIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	return r.db.WithContext(ctx).Create(ingredient).Error
}

// UpsertIngredient backs the CSV bulk load; reference rows are keyed by
// (name, measurement unit) so re-running the load is idempotent.
func (r *catalogRepository) UpsertIngredient(ctx context.Context, name, measurementUnit string) error {
	var existing entities.Ingredient
	err := r.db.WithContext(ctx).
		Where("name = ? AND measurement_unit = ?", name, measurementUnit).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.db.WithContext(ctx).Create(&entities.Ingredient{
		Name:            name,
		MeasurementUnit: measurementUnit,
	}).Error
}

func (r *catalogRepository) GetIngredientByID(ctx context.Context, id string) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *catalogRepository) GetIngredientsByIDs(ctx context.Context, ids []string) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE wildcards in caller input so a prefix such
// as "100%" matches literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// SearchIngredients powers the autocomplete lookup: case-insensitive
// prefix match on name, unpaginated.
func (r *catalogRepository) SearchIngredients(ctx context.Context, namePrefix string) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient
	query := r.db.WithContext(ctx).Order("name asc")
	if namePrefix != "" {
		query = query.Where("name ILIKE ?", escapeLike(namePrefix)+"%")
	}
	if err := query.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}
