package domain

import (
	"errors"
)

var (
	MessageSuccessGetTags          = "success get tags"
	MessageSuccessGetTagDetail     = "success get tag detail"
	MessageSuccessCreateTag        = "tag created successfully"
	MessageSuccessGetIngredients   = "success get ingredients"
	MessageSuccessGetIngredient    = "success get ingredient detail"
	MessageSuccessCreateIngredient = "ingredient created successfully"

	MessageFailedGetTags          = "failed to get tags"
	MessageFailedCreateTag        = "failed to create tag"
	MessageFailedGetIngredients   = "failed to get ingredients"
	MessageFailedCreateIngredient = "failed to create ingredient"

	ErrTagNotFound        = errors.New("tag not found")
	ErrTagSlugExists      = errors.New("tag slug already exists")
	ErrIngredientNotFound = errors.New("ingredient not found")
)

type (
	CreateTagRequest struct {
		Name  string `json:"name" validate:"required,max=200"`
		Color string `json:"color" validate:"required,hexcolor"`
		Slug  string `json:"slug" validate:"required,max=200"`
	}

	TagResponse struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
		Slug  string `json:"slug"`
	}

	CreateIngredientRequest struct {
		Name            string `json:"name" validate:"required,max=200"`
		MeasurementUnit string `json:"measurement_unit" validate:"required,max=10"`
	}

	IngredientResponse struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	}
)
