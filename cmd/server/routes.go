package main

import (
	"github.com/gin-gonic/gin"

	"idrx-gate.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	userHandler        *handlers.UserHandler
	onboardingHandler  *handlers.OnboardingHandler
	bankAccountHandler *handlers.BankAccountHandler
	transactionHandler *handlers.TransactionHandler
	authMiddleware     gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Registration (public): the wallet backend creates the user record
		// before any session token exists for it.
		users := v1.Group("/users")
		{
			users.POST("", d.userHandler.Register)
		}

		// Profile and onboarding routes (protected)
		me := v1.Group("/users/me")
		me.Use(d.authMiddleware)
		{
			me.GET("", d.userHandler.GetMe)
			me.PATCH("", d.userHandler.UpdateMe)
			me.POST("/onboarding", d.onboardingHandler.Onboard)

			me.GET("/bank-accounts", d.bankAccountHandler.ListAccounts)
			me.POST("/bank-accounts", d.bankAccountHandler.LinkAccount)
			me.DELETE("/bank-accounts/:id", d.bankAccountHandler.UnlinkAccount)
		}

		// Bank catalog (protected; served with app credentials)
		banks := v1.Group("/banks")
		banks.Use(d.authMiddleware)
		{
			banks.GET("", d.bankAccountHandler.ListBanks)
		}

		// Rates (public): quote data carries nothing user-specific
		rates := v1.Group("/rates")
		{
			rates.GET("", d.transactionHandler.GetRates)
		}

		// Mint relay (protected; signed with the caller's own credentials)
		mint := v1.Group("/mint")
		mint.Use(d.authMiddleware)
		{
			mint.POST("", d.transactionHandler.Mint)
		}
	}
}
