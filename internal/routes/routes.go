package routes

import (
	"aptbillmanager/internal/handlers"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	billHandler *handlers.BillHandler,
	authGuard gin.HandlerFunc,
) *gin.Engine {
	v1 := r.Group("/api/v1")

	// ---- public
	v1.GET("/status", billHandler.Status)
	v1.POST("/auth/otp/request", authHandler.RequestOTP)
	v1.POST("/auth/otp/verify", authHandler.VerifyOTP)
	v1.POST("/bill/telegram/register", billHandler.RegisterTelegram)

	// ---- protected (bearer token)
	auth := v1.Group("/auth", authGuard)
	{
		auth.GET("/me", authHandler.Me)
		auth.GET("/members", authHandler.ListMembers)
		auth.POST("/members", authHandler.AddMember)
		auth.DELETE("/members/:id", authHandler.RemoveMember)
	}

	bill := v1.Group("/bill", authGuard)
	{
		bill.POST("/generate", billHandler.GenerateBills)
	}

	return r
}
