package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cfascholars/backend/internal/app/controllers"
	"github.com/cfascholars/backend/internal/app/models/dto"
	"github.com/cfascholars/backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	userController *controllers.UserController,
	adminUserController *controllers.AdminUserController,
	applicationController *controllers.ApplicationController,
	checklistController *controllers.ChecklistController,
	reimbursementController *controllers.ReimbursementController,
	acceptanceController *controllers.AcceptanceController,
	fileController *controllers.FileController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// Every request gets an identity; the guards below decide access.
	router.Use(authMiddleware.Identity())

	// --- Account routes ---
	users := router.Group("/users")
	{
		users.POST("/register", userController.Register)
		users.POST("/login", userController.Login)
		users.POST("/logout", userController.Logout)
		users.GET("/status", userController.Status)

		usersAuthenticated := users.Group("")
		usersAuthenticated.Use(authMiddleware.RequireAuthenticated())
		{
			usersAuthenticated.PUT("/change-email", userController.ChangeEmail)
			usersAuthenticated.PUT("/change-password", userController.ChangePassword)
			usersAuthenticated.PUT("/profile", userController.UpdateProfile)
			usersAuthenticated.DELETE("/delete-user", userController.DeleteAccount)
		}
	}

	api := router.Group("/api")

	api.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
	})

	// --- Scholarship applications ---
	applications := api.Group("/applications")
	applications.Use(authMiddleware.RequireAuthenticated())
	{
		applications.POST("/new", authMiddleware.RequireOwnerOrAdmin("userId"), applicationController.CreateNew)
		applications.POST("/renewal", authMiddleware.RequireOwnerOrAdmin("userId"), applicationController.CreateRenewal)
		applications.GET("/:id", applicationController.GetByID)

		applicationsAdmin := applications.Group("")
		applicationsAdmin.Use(authMiddleware.RequireAdmin())
		{
			applicationsAdmin.GET("", applicationController.GetAll)
			applicationsAdmin.PATCH("/:id/status", applicationController.UpdateStatus)
			applicationsAdmin.POST("/:id/notes", applicationController.AddNote)
			applicationsAdmin.DELETE("/:id", applicationController.Delete)
		}
	}

	// --- Renewal checklists ---
	checklists := api.Group("/renewal-checklists")
	checklists.Use(authMiddleware.RequireAuthenticated())
	{
		checklists.POST("", checklistController.Create)
		checklists.GET("/:id", checklistController.GetByID)

		checklistsAdmin := checklists.Group("")
		checklistsAdmin.Use(authMiddleware.RequireAdmin())
		{
			checklistsAdmin.GET("", checklistController.GetAll)
			checklistsAdmin.PATCH("/:id/review", checklistController.Review)
			checklistsAdmin.DELETE("/:id", checklistController.Delete)
		}
	}

	// --- Reimbursement requests ---
	reimbursements := api.Group("/reimbursements")
	reimbursements.Use(authMiddleware.RequireAuthenticated())
	{
		reimbursements.POST("", reimbursementController.Create)
		reimbursements.GET("/:id", reimbursementController.GetByID)

		reimbursementsAdmin := reimbursements.Group("")
		reimbursementsAdmin.Use(authMiddleware.RequireAdmin())
		{
			reimbursementsAdmin.GET("", reimbursementController.GetAll)
			reimbursementsAdmin.PATCH("/:id/status", reimbursementController.UpdateStatus)
			reimbursementsAdmin.DELETE("/:id", reimbursementController.Delete)
		}
	}

	// --- Acceptance forms ---
	acceptances := api.Group("/acceptance-forms")
	acceptances.Use(authMiddleware.RequireAuthenticated())
	{
		acceptances.POST("", acceptanceController.Create)
		acceptances.GET("/:id", acceptanceController.GetByID)
		acceptances.GET("", authMiddleware.RequireAdmin(), acceptanceController.GetAll)
	}

	// --- Files ---
	files := api.Group("/files")
	files.Use(authMiddleware.RequireAuthenticated())
	{
		files.POST("/upload", authMiddleware.RequireOwnerOrAdmin("userId"), fileController.Upload)
		files.GET("/:fileId", fileController.GetByID)
		files.GET("/entity/:entityType/:entityId", fileController.GetByEntity)
		files.DELETE("/:fileId", fileController.Delete)
	}

	// --- Admin user management ---
	adminUsers := api.Group("/admin/users")
	adminUsers.Use(authMiddleware.RequireAdmin())
	{
		adminUsers.GET("", adminUserController.ListUsers)
		adminUsers.GET("/:id", adminUserController.GetUser)
		adminUsers.POST("", adminUserController.CreateUser)
		adminUsers.PUT("/:id", adminUserController.UpdateUser)
		adminUsers.DELETE("/:id", adminUserController.DeleteUser)
	}
}
