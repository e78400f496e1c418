package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"idrx-gate.backend/internal/domain/entities"
	domainerrors "idrx-gate.backend/internal/domain/errors"
	"idrx-gate.backend/internal/infrastructure/idrx"
	"idrx-gate.backend/internal/interfaces/http/middleware"
	"idrx-gate.backend/internal/interfaces/http/response"
	"idrx-gate.backend/internal/usecases"
)

type transactionService interface {
	GetRates(ctx context.Context) (json.RawMessage, error)
	Mint(ctx context.Context, userID string, input *entities.MintInput) (*idrx.MintData, error)
}

// TransactionHandler handles rate lookups and mint requests
type TransactionHandler struct {
	transactionUsecase transactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionUsecase *usecases.TransactionUsecase) *TransactionHandler {
	return &TransactionHandler{transactionUsecase: transactionUsecase}
}

// GetRates returns current provider exchange rates
// GET /api/v1/rates
func (h *TransactionHandler) GetRates(c *gin.Context) {
	rates, err := h.transactionUsecase.GetRates(c.Request.Context())
	if err != nil {
		if appErr := mapProviderError(err); appErr != nil {
			response.Error(c, appErr)
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"rates": rates})
}

// Mint submits a mint request on the caller's behalf
// POST /api/v1/mint
func (h *TransactionHandler) Mint(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.MintInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	data, err := h.transactionUsecase.Mint(c.Request.Context(), userID, &input)
	if err != nil {
		if appErr := mapProviderError(err); appErr != nil {
			response.Error(c, appErr)
			return
		}
		switch {
		case errors.Is(err, domainerrors.ErrNotOnboarded):
			response.Error(c, domainerrors.NewAppError(http.StatusForbidden, domainerrors.CodeNotOnboarded, "Complete onboarding before minting", err))
		case errors.Is(err, domainerrors.ErrNotFound):
			response.Error(c, domainerrors.NotFound("User not found"))
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"transaction": data})
}
