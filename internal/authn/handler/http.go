// Package handler exposes the authentication endpoints: challenge request
// and check, and credential login.
package handler

import (
	"encoding/json"
	"net/http"
	"regexp"

	"go.uber.org/zap"

	"account-service/internal/apperr"
	"account-service/internal/authn"
	"account-service/internal/server/respond"
)

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10,11}$`)
	codePattern  = regexp.MustCompile(`^[0-9]{4}$`)
)

// Handler serves the challenge and login endpoints.
type Handler struct {
	challenges *authn.Manager
	login      *authn.LoginService
	log        *zap.Logger
}

// NewHandler returns a Handler over the challenge manager and login service.
func NewHandler(challenges *authn.Manager, login *authn.LoginService, log *zap.Logger) *Handler {
	return &Handler{challenges: challenges, login: login, log: log}
}

type challengeRequest struct {
	Type        string `json:"type"`
	PhoneNumber string `json:"phoneNumber"`
}

type challengeCheckRequest struct {
	Type                 string `json:"type"`
	PhoneNumber          string `json:"phoneNumber"`
	AuthenticationNumber string `json:"authenticationNumber"`
}

type challengeResponse struct {
	AuthenticationNumber string `json:"authenticationNumber"`
}

// RequestChallenge handles POST /api/v1/users/authentication/request. It
// issues a fresh authentication number for the operation and phone number
// and echoes it in the response.
func (h *Handler) RequestChallenge(w http.ResponseWriter, r *http.Request) {
	var req challengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fail(w, apperr.New(apperr.CodeInvalidParameter, "malformed request body"), h.log)
		return
	}
	typ, err := authn.ParseOperationType(req.Type)
	if err != nil {
		respond.Fail(w, err, h.log)
		return
	}
	if !phonePattern.MatchString(req.PhoneNumber) {
		respond.Fail(w, apperr.New(apperr.CodeInvalidParameter, "phone number must be 10 or 11 digits"), h.log)
		return
	}

	code, err := h.challenges.RequestChallenge(r.Context(), typ, req.PhoneNumber)
	if err != nil {
		respond.Fail(w, err, h.log)
		return
	}
	respond.OK(w, challengeResponse{AuthenticationNumber: code})
}

// CheckChallenge handles POST /api/v1/users/authentication/check. It
// verifies the submitted number without consuming it.
func (h *Handler) CheckChallenge(w http.ResponseWriter, r *http.Request) {
	var req challengeCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fail(w, apperr.New(apperr.CodeInvalidParameter, "malformed request body"), h.log)
		return
	}
	typ, err := authn.ParseOperationType(req.Type)
	if err != nil {
		respond.Fail(w, err, h.log)
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

	if err := h.challenges.VerifyChallenge(r.Context(), typ, req.PhoneNumber, req.AuthenticationNumber); err != nil {
		respond.Fail(w, err, h.log)
		return
	}
	respond.OK(w, true)
}

type loginResponse struct {
	AccessToken string   `json:"accessToken"`
	Username    string   `json:"username"`
	Roles       []string `json:"roles"`
}

// Login handles POST /api/v1/login with form fields loginType, loginId, and
// password. The issued token's issuer claim is the request URI.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respond.Fail(w, apperr.New(apperr.CodeInvalidParameter, "malformed form body"), h.log)
		return
	}
	loginType := r.PostFormValue("loginType")
	loginID := r.PostFormValue("loginId")
	password := r.PostFormValue("password")
	if loginType == "" || loginID == "" || password == "" {
		respond.Fail(w, apperr.New(apperr.CodeInvalidParameter, "loginType, loginId, and password are required"), h.log)
		return
	}

	res, err := h.login.Login(r.Context(), loginType+":"+loginID, password, r.RequestURI)
	if err != nil {
		respond.Fail(w, err, h.log)
		return
	}
	respond.OK(w, loginResponse{
		AccessToken: res.AccessToken,
		Username:    res.Principal.Username,
		Roles:       res.Principal.Roles,
	})
}
