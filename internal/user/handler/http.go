// Package handler exposes the user endpoints: registration, password reset,
// and the authenticated user's own detail.
package handler

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"account-service/internal/apperr"
	"account-service/internal/server/middleware"
	"account-service/internal/server/respond"
	"account-service/internal/user/service"
)

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10,11}$`)
	codePattern  = regexp.MustCompile(`^[0-9]{4}$`)
)

// Handler serves the user endpoints.
type Handler struct {
	users *service.Service
	log   *zap.Logger
}

// NewHandler returns a Handler over the user service.
func NewHandler(users *service.Service, log *zap.Logger) *Handler {
	return &Handler{users: users, log: log}
}

type createUserRequest struct {
	Username             string `json:"username"`
	Email                string `json:"email"`
	PhoneNumber          string `json:"phoneNumber"`
	Password             string `json:"password"`
	Name                 string `json:"name"`
	Nickname             string `json:"nickname"`
	AuthenticationNumber string `json:"authenticationNumber"`
}

func (r createUserRequest) validate() error {
	for field, value := range map[string]string{
		"username": r.Username,
		"email":    r.Email,
		"password": r.Password,
		"name":     r.Name,
		"nickname": r.Nickname,
	} {
		if strings.TrimSpace(value) == "" {
			return apperr.Newf(apperr.CodeInvalidParameter, "%s must not be blank", field)
		}
	}
	if !phonePattern.MatchString(r.PhoneNumber) {
		return apperr.New(apperr.CodeInvalidParameter, "phone number must be 10 or 11 digits")
	}
	if !codePattern.MatchString(r.AuthenticationNumber) {
		return apperr.New(apperr.CodeInvalidParameter, "authentication number must be 4 digits")
	}
	return nil
}

// CreateUser handles POST /api/v1/users.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fail(w, apperr.New(apperr.CodeInvalidParameter, "malformed request body"), h.log)
		return
	}
	if err := req.validate(); err != nil {
		respond.Fail(w, err, h.log)
		return
	}

	info, err := h.users.CreateUser(r.Context(), service.CreateUserCommand{
		Username:             req.Username,
		Email:                req.Email,
		PhoneNumber:          req.PhoneNumber,
		Password:             req.Password,
		Name:                 req.Name,
		Nickname:             req.Nickname,
		AuthenticationNumber: req.AuthenticationNumber,
	})
	if err != nil {
		respond.Fail(w, err, h.log)
		return
	}
	respond.OK(w, info)
}

type resetPasswordRequest struct {
	PhoneNumber          string `json:"phoneNumber"`
	NewPassword          string `json:"newPassword"`
	AuthenticationNumber string `json:"authenticationNumber"`
}

// ResetPassword handles POST /api/v1/users/reset-password.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fail(w, apperr.New(apperr.CodeInvalidParameter, "malformed request body"), h.log)
		return
	}
	if strings.TrimSpace(req.NewPassword) == "" {
		respond.Fail(w, apperr.New(apperr.CodeInvalidParameter, "newPassword must not be blank"), h.log)
		return
	}
	if !phonePattern.MatchString(req.PhoneNumber) {
		respond.Fail(w, apperr.New(apperr.CodeInvalidParameter, "phone number must be 10 or 11 digits"), h.log)
		return
	}
	if !codePattern.MatchString(req.AuthenticationNumber) {
		respond.Fail(w, apperr.New(apperr.CodeInvalidParameter, "authentication number must be 4 digits"), h.log)
		return
	}

	err := h.users.ResetPassword(r.Context(), service.ResetPasswordCommand{
		PhoneNumber:          req.PhoneNumber,
		NewPassword:          req.NewPassword,
		AuthenticationNumber: req.AuthenticationNumber,
	})
	if err != nil {
		respond.Fail(w, err, h.log)
		return
	}
	respond.OK(w, true)
}

// My handles GET /api/v1/users/my for the authenticated principal.
func (h *Handler) My(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		respond.Fail(w, apperr.ErrInvalidToken, h.log)
		return
	}

	detail, err := h.users.FindDetail(r.Context(), p.Username)
	if err != nil {
		respond.Fail(w, err, h.log)
		return
	}
	respond.OK(w, detail)
}
