package moderation

import (
	"fmt"

	"github.com/orris-inc/moderation/internal/shared/errors"
)

func ErrUserNotFound(id string) error {
	return errors.NewNotFoundError("user not found", id)
}

func ErrSanctionNotFound(id string) error {
	return errors.NewNotFoundError("sanction not found", id)
}

func ErrReportNotFound(id string) error {
	return errors.NewNotFoundError("report not found", id)
}

func ErrContentNotFound(id string) error {
	return errors.NewNotFoundError("content not found", id)
}

func ErrTicketNotFound(id string) error {
	return errors.NewNotFoundError("ticket not found", id)
}

func ErrAppealNotFound(id string) error {
	return errors.NewNotFoundError("appeal not found", id)
}

func ErrRuleNotFound(id string) error {
	return errors.NewNotFoundError("ai rule not found", id)
}

// ErrInvalidValue wraps a value object parse failure as a validation error.
func ErrInvalidValue(field string, err error) error {
	return errors.NewValidationError(fmt.Sprintf("invalid %s", field), err.Error())
}

func ErrRequired(field string) error {
	return errors.NewValidationError(fmt.Sprintf("%s is required", field))
}
