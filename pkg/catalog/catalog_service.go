package catalog

import (
	"context"
	"errors"

	"foodgram-backend/domain"
	"foodgram-backend/entities"

	"gorm.io/gorm"
)

type (
	CatalogService interface {
		CreateTag(ctx context.Context, req domain.CreateTagRequest, actor domain.Actor) (domain.TagResponse, error)
		GetTags(ctx context.Context) ([]domain.TagResponse, error)
		GetTag(ctx context.Context, id string) (domain.TagResponse, error)
		CreateIngredient(ctx context.Context, req domain.CreateIngredientRequest, actor domain.Actor) (domain.IngredientResponse, error)
		GetIngredient(ctx context.Context, id string) (domain.IngredientResponse, error)
		SearchIngredients(ctx context.Context, namePrefix string) ([]domain.IngredientResponse, error)
	}

	catalogService struct {
		catalogRepository CatalogRepository
	}
)

func NewCatalogService(catalogRepository CatalogRepository) CatalogService {
	return &catalogService{catalogRepository: catalogRepository}
}

func (s *catalogService) CreateTag(ctx context.Context, req domain.CreateTagRequest, actor domain.Actor) (domain.TagResponse, error) {
	if !actor.IsAdmin() {
		return domain.TagResponse{}, domain.ErrUserNotAllowed
	}

	if _, err := s.catalogRepository.GetTagBySlug(ctx, req.Slug); err == nil {
		return domain.TagResponse{}, domain.ErrTagSlugExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.TagResponse{}, err
	}

	tag := &entities.Tag{
		Name:  req.Name,
		Color: req.Color,
		Slug:  req.Slug,
	}
	if err := s.catalogRepository.CreateTag(ctx, tag); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.TagResponse{}, domain.ErrTagSlugExists
		}
		return domain.TagResponse{}, err
	}

	return tagResponse(tag), nil
}

func (s *catalogService) GetTags(ctx context.Context) ([]domain.TagResponse, error) {
	tags, err := s.catalogRepository.GetTags(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.TagResponse, 0, len(tags))
	for _, tag := range tags {
		result = append(result, tagResponse(tag))
	}
	return result, nil
}

func (s *catalogService) GetTag(ctx context.Context, id string) (domain.TagResponse, error) {
	tag, err := s.catalogRepository.GetTagByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TagResponse{}, domain.ErrTagNotFound
		}
		return domain.TagResponse{}, err
	}
	return tagResponse(tag), nil
}

func (s *catalogService) CreateIngredient(ctx context.Context, req domain.CreateIngredientRequest, actor domain.Actor) (domain.IngredientResponse, error) {
	if !actor.IsAdmin() {
		return domain.IngredientResponse{}, domain.ErrUserNotAllowed
	}

	ingredient := &entities.Ingredient{
		Name:            req.Name,
		MeasurementUnit: req.MeasurementUnit,
	}
	if err := s.catalogRepository.CreateIngredient(ctx, ingredient); err != nil {
		return domain.IngredientResponse{}, err
	}

	return ingredientResponse(ingredient), nil
}

func (s *catalogService) GetIngredient(ctx context.Context, id string) (domain.IngredientResponse, error) {
	ingredient, err := s.catalogRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.IngredientResponse{}, domain.ErrIngredientNotFound
		}
		return domain.IngredientResponse{}, err
	}
	return ingredientResponse(ingredient), nil
}

func (s *catalogService) SearchIngredients(ctx context.Context, namePrefix string) ([]domain.IngredientResponse, error) {
	ingredients, err := s.catalogRepository.SearchIngredients(ctx, namePrefix)
	if err != nil {
		return nil, err
	}

	result := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		result = append(result, ingredientResponse(ingredient))
	}
	return result, nil
}

func tagResponse(tag *entities.Tag) domain.TagResponse {
	return domain.TagResponse{
		ID:    tag.ID.String(),
		Name:  tag.Name,
		Color: tag.Color,
		Slug:  tag.Slug,
	}
}

func ingredientResponse(ingredient *entities.Ingredient) domain.IngredientResponse {
	return domain.IngredientResponse{
		ID:              ingredient.ID.String(),
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	}
}
