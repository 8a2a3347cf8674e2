package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type updateProfileRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.Auth.GetProfile(sessionFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Profile berhasil diambil", user)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Data tidak valid", err.Error())
		return
	}
	if req.FullName == "" && req.Phone == "" {
		respondError(c, http.StatusBadRequest, "Minimal satu field harus diisi", nil)
		return
	}

	user, err := h.Auth.UpdateProfile(sessionFrom(c), req.FullName, req.Phone)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondSuccess(c, http.StatusOK, "Profile berhasil diupdate", user)
}
