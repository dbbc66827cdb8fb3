package handlers

import (
	"net/http"
	"strings"

	"abinterior/models"
	"abinterior/repository"
)

// ProfileHandler manages the business details printed on statements.
type ProfileHandler struct {
	Repo repository.ProfileRepository
}

func (h *ProfileHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.BusinessProfile
	if !decodeJSON(w, r, &profile) {
		return
	}

	profile.CompanyName = strings.TrimSpace(profile.CompanyName)
	if profile.CompanyName == "" {
		ve := models.NewValidationError()
		ve.Add("company_name", "Company name is required.")
		writeError(w, r, ve)
		return
	}

	if err := h.Repo.SaveProfile(r.Context(), &profile); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ApiResponse{Success: true, Message: "Profile saved successfully", Data: profile})
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Repo.GetProfile(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if profile == nil {
		writeJSON(w, http.StatusNotFound, ApiResponse{Success: false, Message: "Business profile not found"})
		return
	}
	writeJSON(w, http.StatusOK, ApiResponse{Success: true, Data: profile})
}
