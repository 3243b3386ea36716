package service

import (
	"errors"
	"fmt"

	"github.com/utafrali/storefront-api/internal/repository"
	apperrors "github.com/utafrali/storefront-api/pkg/errors"
)

// storeError maps a DocumentStore failure to the error handlers render.
func storeError(op string, err error) error {
	if errors.Is(err, repository.ErrUnavailable) {
		return apperrors.StoreUnavailable()
	}
	return apperrors.Internal(fmt.Errorf("%s: %w", op, err))
}
