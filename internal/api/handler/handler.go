// Package handler maps the REST surface onto the auth and complaint
// services and enforces the coarse role gates per route group.
package handler

import (
	"lapor/backend/internal/auth"
	"lapor/backend/internal/complaint"
	"lapor/backend/internal/models"
	"lapor/backend/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	Auth       *auth.Service
	Complaints *complaint.Service
	Sessions   session.Store
	Log        *zap.SugaredLogger
}

func NewHandler(authSvc *auth.Service, complaintSvc *complaint.Service, sessions session.Store, log *zap.SugaredLogger) *Handler {
	return &Handler{
		Auth:       authSvc,
		Complaints: complaintSvc,
		Sessions:   sessions,
		Log:        log,
	}
}

// RegisterRoutes wires all endpoints under /api.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Register)
	authGroup.POST("/login", h.Login)
	authGroup.POST("/logout", h.AuthRequired(), h.Logout)

	users := api.Group("/users", h.AuthRequired())
	users.GET("/me", h.GetProfile)
	users.PUT("/me", h.UpdateProfile)

	complaints := api.Group("/complaints", h.AuthRequired())
	complaints.POST("", h.CreateComplaint)
	complaints.GET("", h.GetComplaintHistory)
	complaints.GET("/:id", h.GetComplaintDetail)
	complaints.GET("/:id/history", h.GetStatusHistory)
	complaints.PATCH("/:id/status", h.RequireRole(models.RoleTeknisi, models.RoleAdmin), h.UpdateComplaintStatus)

	teknisi := api.Group("/teknisi", h.AuthRequired(), h.RequireRole(models.RoleTeknisi))
	teknisi.GET("/dashboard/stats", h.GetDashboardStats)
	teknisi.GET("/complaints/ready", h.GetReadyComplaints)
	teknisi.GET("/complaints/progress", h.GetProgressComplaints)
	teknisi.GET("/complaints/completed", h.GetCompletedComplaints)
	teknisi.PATCH("/complaints/:id/take", h.TakeComplaint)
	teknisi.PATCH("/complaints/:id/status", h.UpdateComplaintStatus)
}
