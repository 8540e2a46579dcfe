// Package services holds the business rules of both backends. Handlers
// bind requests and map errors; repositories only persist.
package services

import (
	"github.com/joshua-takyi/agenda/internal/apperrors"
	"github.com/joshua-takyi/agenda/internal/models"
)

func validateEmails(emails ...string) error {
	for _, email := range emails {
		if err := models.Validate.Var(email, "required,email"); err != nil {
			return apperrors.BadRequest("invalid email %q", email)
		}
	}
	return nil
}

// matched turns a zero-match update into a not-found error for resource.
func matched(res *models.UpdateResult, err error) func(resource string) (*models.UpdateResult, error) {
	return func(resource string) (*models.UpdateResult, error) {
		if err != nil {
			return nil, err
		}
		if res.Matched == 0 {
			return nil, apperrors.NotFound(resource)
		}
		return res, nil
	}
}
