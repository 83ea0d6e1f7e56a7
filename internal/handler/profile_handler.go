package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/errors"
	"storefront/internal/service"
)

// ProfileHandler handles the authenticated user's profile endpoints.
type ProfileHandler struct {
	profileService service.ProfileService
	authService    service.AuthService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService, authService service.AuthService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, authService: authService}
}

// UpdateProfileRequest represents a profile update. Empty fields are left
// unchanged.
type UpdateProfileRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email" validate:"omitempty,email"`
	PictureURL string `json:"picture_url" validate:"omitempty,url"`
}

// ChangePasswordRequest represents a password rotation request.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// Get returns the caller's profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	user, err := h.profileService.Get(c.Request().Context(), claims.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, errors.ErrorResponse{
			Error: "profile not found",
			Code:  "PROFILE_NOT_FOUND",
		})
	}
	return c.JSON(http.StatusOK, user)
}

// Update applies profile changes and returns the stored profile.
func (h *ProfileHandler) Update(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.profileService.Update(c.Request().Context(), claims.UserID, req.Username, req.Email, req.PictureURL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to update profile",
			Code:  "PROFILE_UPDATE_FAILED",
		})
	}
	return c.JSON(http.StatusOK, user)
}

// ChangePassword rotates the caller's password.
func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ChangePassword(c.Request().Context(), claims.UserID, req.OldPassword, req.NewPassword); err != nil {
		if err == service.ErrInvalidCredentials {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_CREDENTIALS",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to change password",
			Code:  "PASSWORD_CHANGE_FAILED",
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"message": "password changed"})
}
