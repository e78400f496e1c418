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

type userService interface {
	CreateUser(ctx context.Context, input *entities.CreateUserInput) (*entities.UserProfile, error)
	GetProfile(ctx context.Context, userID string) (*entities.UserProfile, error)
	UpdateProfile(ctx context.Context, userID string, input *entities.UpdateProfileInput) (*entities.UserProfile, error)
}

// UserHandler handles user registration and profile endpoints
type UserHandler struct {
	userUsecase userService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUsecase *usecases.UserUsecase) *UserHandler {
	return &UserHandler{userUsecase: userUsecase}
}

// Register registers a wallet user
// POST /api/v1/users
func (h *UserHandler) Register(c *gin.Context) {
	var input entities.CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	profile, err := h.userUsecase.CreateUser(c.Request.Context(), &input)
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			response.Error(c, domainerrors.Conflict(domainerrors.CodeAlreadyExists, "User already registered"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": profile})
}

// GetMe returns the caller's profile
// GET /api/v1/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	profile, err := h.userUsecase.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("User not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": profile})
}

// UpdateMe applies a partial profile update
// PATCH /api/v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	profile, err := h.userUsecase.UpdateProfile(c.Request.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrImmutableField):
			response.Error(c, domainerrors.NewAppError(http.StatusConflict, domainerrors.CodeImmutableField, "Identity fields are locked once set", err))
		case errors.Is(err, domainerrors.ErrInvalidInput):
			response.Error(c, domainerrors.BadRequest("Identity fields must be provided together and non-empty"))
		case errors.Is(err, domainerrors.ErrAlreadyExists):
			response.Error(c, domainerrors.Conflict(domainerrors.CodeAlreadyExists, "Email already in use"))
		case errors.Is(err, domainerrors.ErrNotFound):
			response.Error(c, domainerrors.NotFound("User not found"))
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": profile})
}
