package services

import (
	stderrors "errors"

	"github.com/abrezinsky/cubeplan/internal/errors"
	"github.com/abrezinsky/cubeplan/internal/models"
	"github.com/abrezinsky/cubeplan/internal/repository"
)

// Service errors
var (
	ErrNameRequired        = errors.Validation("competition name is required")
	ErrTooFewCompetitors   = errors.Validation("total competitors must be at least 1")
	ErrTooManyCompetitors  = errors.Validationf("total competitors must be at most %d", models.MaxCompetitors)
	ErrCategoryNotSelected = errors.Validation("category is not selected for this competition")
	ErrMainEventNotChosen  = errors.Validation("main event must be one of the selected categories")
)

// competitionError translates a repository miss into a not-found error
// naming the competition. Other errors pass through unchanged.
func competitionError(err error, id string) error {
	if stderrors.Is(err, repository.ErrNotFound) {
		return errors.NotFoundf("competition %q not found", id)
	}
	return err
}
