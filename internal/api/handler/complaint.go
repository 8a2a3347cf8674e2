package handler

import (
	"net/http"
	"strconv"

	"lapor/backend/internal/complaint"

	"github.com/gin-gonic/gin"
)

type createComplaintRequest struct {
	Title        string   `json:"judul"`
	Category     string   `json:"kategori"`
	Description  string   `json:"deskripsi"`
	Address      string   `json:"alamat"`
	City         string   `json:"kota"`
	District     string   `json:"kecamatan"`
	AddressPhone string   `json:"telepon_alamat"`
	AddressNotes string   `json:"catatan_alamat"`
	Photos       []string `json:"foto"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"alasan"`
}

// queryFilter reads the shared listing query parameters. Engine-side
// normalization still clamps the values.
func queryFilter(c *gin.Context) complaint.Filter {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return complaint.Filter{
		Status:   c.Query("status"),
		Category: c.Query("kategori"),
		Page:     page,
		Limit:    limit,
	}
}

func (h *Handler) CreateComplaint(c *gin.Context) {
	var req createComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Data komplain tidak valid", err.Error())
		return
	}

	created, err := h.Complaints.Create(sessionFrom(c), complaint.CreateInput{
		Title:        req.Title,
		Category:     req.Category,
		Description:  req.Description,
		Address:      req.Address,
		City:         req.City,
		District:     req.District,
		AddressPhone: req.AddressPhone,
		AddressNotes: req.AddressNotes,
		Photos:       req.Photos,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, "Komplain berhasil dibuat", created)
}

func (h *Handler) GetComplaintHistory(c *gin.Context) {
	page, err := h.Complaints.GetHistory(sessionFrom(c), queryFilter(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "History komplain berhasil diambil", page)
}

func (h *Handler) GetComplaintDetail(c *gin.Context) {
	detail, err := h.Complaints.GetDetail(sessionFrom(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Detail komplain berhasil diambil", detail)
}

func (h *Handler) GetStatusHistory(c *gin.Context) {
	entries, err := h.Complaints.GetStatusHistory(sessionFrom(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Riwayat status berhasil diambil", gin.H{"status_history": entries})
}

func (h *Handler) UpdateComplaintStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Status wajib diisi", err.Error())
		return
	}

	detail, err := h.Complaints.TransitionStatus(sessionFrom(c), c.Param("id"), req.Status, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Status komplain berhasil diupdate", detail)
}
