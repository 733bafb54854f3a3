package server

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/inclureach/inclureach/internal/db"
	"github.com/inclureach/inclureach/internal/types"
	"github.com/inclureach/inclureach/internal/uploads"
)

// maxProfileFormMemory bounds in-memory multipart parsing; larger file
// parts spill to disk.
const maxProfileFormMemory = 32 << 20

// handleUpdateProfile replaces the caller's profile document from a
// multipart form. Text fields overwrite the stored profile; file fields are
// kept unless a replacement is uploaded, in which case the old file is
// removed.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxProfileFormMemory); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	form := r.MultipartForm
	fileCount := 0
	for _, headers := range form.File {
		fileCount += len(headers)
	}
	if fileCount > uploads.MaxFilesPerRequest {
		writeMessage(w, http.StatusBadRequest, "Too many files")
		return
	}
	if len(form.File["certificationFiles"]) > uploads.MaxCertifications {
		writeMessage(w, http.StatusBadRequest, "Too many certification files")
		return
	}

	req := types.ProfileUpdateFromForm(url.Values(form.Value))
	if err := req.Validate(); err != nil {
		writeMessage(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	user, err := s.store.GetUser(r.Context(), userID)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get user")
		writeMessage(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	if user == nil {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}

	profile := db.Profile{
		DisabilityType:            req.DisabilityType,
		DisabilitySeverity:        req.DisabilitySeverity,
		DisabilityDescription:     req.DisabilityDescription,
		NeedsAccommodation:        req.NeedsAccommodation,
		AccommodationRequirements: req.AccommodationRequirements,
		ProfessionType:            req.ProfessionType,
		Skills:                    req.Skills,
		ExperienceLevel:           req.ExperienceLevel,
		EducationLevel:            req.EducationLevel,
		PreferredContactMethods:   req.PreferredContactMethods,
		RequiresSignLanguage:      req.RequiresSignLanguage,
		RequiresCaptioning:        req.RequiresCaptioning,
		RequiresAltText:           req.RequiresAltText,

		// File fields carry over until replaced below.
		ProfileImage:       user.Profile.ProfileImage,
		ResumeFile:         user.Profile.ResumeFile,
		PortfolioFile:      user.Profile.PortfolioFile,
		CertificationFiles: user.Profile.CertificationFiles,
	}

	if headers := form.File["profileImage"]; len(headers) > 0 {
		path, err := s.uploads.Save("profileImage", headers[0])
		if err != nil {
			s.writeUploadError(w, err)
			return
		}
		s.uploads.Remove(user.Profile.ProfileImage)
		profile.ProfileImage = path
	}

	if headers := form.File["resumeFile"]; len(headers) > 0 {
		path, err := s.uploads.Save("resumeFile", headers[0])
		if err != nil {
			s.writeUploadError(w, err)
			return
		}
		s.uploads.Remove(user.Profile.ResumeFile)
		profile.ResumeFile = path
	}

	if headers := form.File["certificationFiles"]; len(headers) > 0 {
		certPaths := make([]string, 0, len(headers))
		for _, fh := range headers {
			path, err := s.uploads.Save("certificationFiles", fh)
			if err != nil {
				s.writeUploadError(w, err)
				return
			}
			certPaths = append(certPaths, path)
		}
		for _, old := range user.Profile.CertificationFiles {
			s.uploads.Remove(old)
		}
		profile.CertificationFiles = certPaths
	}

	profile.ProfileCompletion = profile.CompletionPercent()

	if err := s.store.UpdateProfile(r.Context(), userID, profile); err != nil {
		s.logger.Error().Err(err).Msg("failed to update profile")
		writeMessage(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	if err := s.store.LogActivity(r.Context(), userID, db.ActivityProfileUpdate,
		"Updated profile information"); err != nil {
		s.logger.Warn().Err(err).Msg("failed to log profile activity")
	}

	writeJSON(w, http.StatusOK, types.ProfileResponse{
		Success: true,
		Message: "Profile updated successfully",
		Profile: &profile,
	})
}

// writeUploadError maps storage validation errors to 400 responses.
func (s *Server) writeUploadError(w http.ResponseWriter, err error) {
	if errors.Is(err, uploads.ErrInvalidFileType) || errors.Is(err, uploads.ErrFileTooLarge) {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Error().Err(err).Msg("failed to store upload")
	writeMessage(w, http.StatusInternalServerError, "Failed to store uploaded file")
}
