package handlers

import (
	"errors"
	"net/http"

	domainerrors "idrx-gate.backend/internal/domain/errors"
)

// mapProviderError translates provider sentinel errors into client-facing
// statuses: upstream credential and transport problems are gateway failures,
// business-rule rejections surface as unprocessable.
func mapProviderError(err error) *domainerrors.AppError {
	switch {
	case errors.Is(err, domainerrors.ErrProviderAuth):
		return domainerrors.NewAppError(http.StatusBadGateway, domainerrors.CodeProviderAuth, "provider rejected our credentials", err)
	case errors.Is(err, domainerrors.ErrProviderRejected):
		return domainerrors.NewAppError(http.StatusUnprocessableEntity, domainerrors.CodeProviderRejected, "provider rejected the request", err)
	case errors.Is(err, domainerrors.ErrProviderUnavailable):
		return domainerrors.NewAppError(http.StatusServiceUnavailable, domainerrors.CodeProviderUnavailable, "provider is unavailable", err)
	case errors.Is(err, domainerrors.ErrProviderTransport):
		return domainerrors.NewAppError(http.StatusBadGateway, domainerrors.CodeProviderTransport, "provider is unreachable", err)
	}
	return nil
}
