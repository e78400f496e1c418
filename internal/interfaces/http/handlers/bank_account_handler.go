package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"idrx-gate.backend/internal/domain/entities"
	domainerrors "idrx-gate.backend/internal/domain/errors"
	"idrx-gate.backend/internal/infrastructure/idrx"
	"idrx-gate.backend/internal/interfaces/http/middleware"
	"idrx-gate.backend/internal/interfaces/http/response"
	"idrx-gate.backend/internal/usecases"
)

type bankAccountService interface {
	ListBanks(ctx context.Context) ([]idrx.BankInfo, error)
	ListAccounts(ctx context.Context, userID string) ([]*entities.BankAccount, error)
	LinkAccount(ctx context.Context, userID string, input *entities.LinkBankAccountInput) (*entities.BankAccount, error)
	UnlinkAccount(ctx context.Context, userID string, accountID uuid.UUID) error
}

// BankAccountHandler handles bank catalog and bank account link endpoints
type BankAccountHandler struct {
	bankAccountUsecase bankAccountService
}

// NewBankAccountHandler creates a new bank account handler
func NewBankAccountHandler(bankAccountUsecase *usecases.BankAccountUsecase) *BankAccountHandler {
	return &BankAccountHandler{bankAccountUsecase: bankAccountUsecase}
}

// ListBanks returns the provider's bank catalog
// GET /api/v1/banks
func (h *BankAccountHandler) ListBanks(c *gin.Context) {
	banks, err := h.bankAccountUsecase.ListBanks(c.Request.Context())
	if err != nil {
		if appErr := mapProviderError(err); appErr != nil {
			response.Error(c, appErr)
			return
		}
		response.Error(c, err)
		return
	}

	if banks == nil {
		banks = []idrx.BankInfo{}
	}
	response.Success(c, http.StatusOK, gin.H{"banks": banks})
}

// ListAccounts lists the caller's linked bank accounts
// GET /api/v1/users/me/bank-accounts
func (h *BankAccountHandler) ListAccounts(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	accounts, err := h.bankAccountUsecase.ListAccounts(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("User not found"))
			return
		}
		response.Error(c, err)
		return
	}

	if accounts == nil {
		accounts = []*entities.BankAccount{}
	}
	response.Success(c, http.StatusOK, gin.H{"bankAccounts": accounts})
}

// LinkAccount links a bank account to the caller
// POST /api/v1/users/me/bank-accounts
func (h *BankAccountHandler) LinkAccount(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.LinkBankAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	account, err := h.bankAccountUsecase.LinkAccount(c.Request.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domainerrors.ErrDuplicateLink):
			response.Error(c, domainerrors.Conflict(domainerrors.CodeDuplicateLink, "Bank account already linked"))
		case errors.Is(err, domainerrors.ErrNotFound):
			response.Error(c, domainerrors.NotFound("User not found"))
		default:
			response.Error(c, err)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"bankAccount": account})
}

// UnlinkAccount removes one of the caller's bank account links
// DELETE /api/v1/users/me/bank-accounts/:id
func (h *BankAccountHandler) UnlinkAccount(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid bank account ID"))
		return
	}

	if err := h.bankAccountUsecase.UnlinkAccount(c.Request.Context(), userID, accountID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("Bank account not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Bank account unlinked"})
}
