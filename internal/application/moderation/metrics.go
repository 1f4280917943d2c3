package moderation

import (
	"github.com/orris-inc/moderation/internal/shared/errors"
)

const (
	OutcomeSuccess    = "success"
	OutcomeNotFound   = "not_found"
	OutcomeValidation = "validation_error"
	OutcomeError      = "error"
)

// Recorder receives operational counters from the service.
type Recorder interface {
	RecordOperation(operation, outcome string)
	RecordPersistenceFailure(stage string)
	RecordRepositoryFallback(repository, operation string)
	RecordSanctionIssued(sanctionType string)
	RecordAutoBan()
}

// NopRecorder discards every measurement.
type NopRecorder struct{}

func (NopRecorder) RecordOperation(string, string)          {}
func (NopRecorder) RecordPersistenceFailure(string)         {}
func (NopRecorder) RecordRepositoryFallback(string, string) {}
func (NopRecorder) RecordSanctionIssued(string)             {}
func (NopRecorder) RecordAutoBan()                          {}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.IsNotFoundError(err):
		return OutcomeNotFound
	case errors.IsValidationError(err):
		return OutcomeValidation
	default:
		return OutcomeError
	}
}
