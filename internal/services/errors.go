package services

import (
	"errors"

	domainagg "github.com/careerpath/careerpath-backend/internal/domain/aggregates"
	"github.com/careerpath/careerpath-backend/internal/platform/apierr"
)

// mapAggregateError translates aggregate failure codes into API errors. Errors that
// already carry an API code pass through.
func mapAggregateError(err error) error {
	if err == nil {
		return nil
	}
	if apierr.From(err) != nil {
		return err
	}
	var aggErr *domainagg.Error
	if !errors.As(err, &aggErr) {
		return apierr.Internal(err)
	}
	switch aggErr.Code {
	case domainagg.CodeValidation:
		return apierr.Validation(err)
	case domainagg.CodeNotFound:
		return apierr.New(404, apierr.CodeNotFound, err)
	case domainagg.CodeConflict:
		return apierr.New(409, apierr.CodeConflict, err)
	case domainagg.CodeQuotaExceeded:
		return apierr.QuotaExceeded(aggErr.Message)
	case domainagg.CodeRetryable:
		return apierr.Unavailable(err)
	default:
		return apierr.Internal(err)
	}
}
