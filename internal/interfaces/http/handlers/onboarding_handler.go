package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"idrx-gate.backend/internal/domain/entities"
	domainerrors "idrx-gate.backend/internal/domain/errors"
	"idrx-gate.backend/internal/interfaces/http/middleware"
	"idrx-gate.backend/internal/interfaces/http/response"
	"idrx-gate.backend/internal/usecases"
)

type onboardingService interface {
	Onboard(ctx context.Context, userID string) (*entities.UserProfile, error)
}

// OnboardingHandler handles the provider registration trigger
type OnboardingHandler struct {
	onboardingUsecase onboardingService
}

// NewOnboardingHandler creates a new onboarding handler
func NewOnboardingHandler(onboardingUsecase *usecases.OnboardingUsecase) *OnboardingHandler {
	return &OnboardingHandler{onboardingUsecase: onboardingUsecase}
}

// Onboard registers the caller with the provider
// POST /api/v1/users/me/onboarding
func (h *OnboardingHandler) Onboard(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	profile, err := h.onboardingUsecase.Onboard(c.Request.Context(), userID)
	if err != nil {
		if appErr := mapProviderError(err); appErr != nil {
			response.Error(c, appErr)
			return
		}
		switch {
		case errors.Is(err, domainerrors.ErrAlreadyOnboarded):
			response.Error(c, domainerrors.NewAppError(http.StatusConflict, domainerrors.CodeAlreadyOnboarded, "User is already onboarded", err))
		case errors.Is(err, domainerrors.ErrOnboardingInProgress):
			response.Error(c, domainerrors.NewAppError(http.StatusConflict, domainerrors.CodeAlreadyOnboarded, "Onboarding already in progress", err))
		case errors.Is(err, domainerrors.ErrInvalidInput):
			response.Error(c, domainerrors.BadRequest("Profile must be complete before onboarding"))
		case errors.Is(err, domainerrors.ErrNotFound):
			response.Error(c, domainerrors.NotFound("User not found"))
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Onboarding completed",
		"user":    profile,
	})
}
