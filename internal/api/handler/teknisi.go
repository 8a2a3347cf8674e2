package handler

import (
	"net/http"

	"lapor/backend/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetDashboardStats(c *gin.Context) {
	stats, err := h.Complaints.DashboardStats(sessionFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Statistik dashboard berhasil diambil", stats)
}

func (h *Handler) GetReadyComplaints(c *gin.Context) {
	page, err := h.Complaints.ReadyQueue(sessionFrom(c), queryFilter(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Daftar komplain berhasil diambil", page)
}

func (h *Handler) GetProgressComplaints(c *gin.Context) {
	page, err := h.Complaints.TechnicianQueue(sessionFrom(c), models.StatusInProgress, queryFilter(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Daftar komplain berhasil diambil", page)
}

func (h *Handler) GetCompletedComplaints(c *gin.Context) {
	page, err := h.Complaints.TechnicianQueue(sessionFrom(c), models.StatusCompleted, queryFilter(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Daftar komplain berhasil diambil", page)
}

func (h *Handler) TakeComplaint(c *gin.Context) {
	detail, err := h.Complaints.Take(sessionFrom(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Komplain berhasil diambil", detail)
}
