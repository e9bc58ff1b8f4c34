package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/slice-of-life/backend/internal/apierr"
	"github.com/slice-of-life/backend/internal/service"
	"github.com/slice-of-life/backend/pkg/validator"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, apierr.New(apierr.BadRequest, "invalid request body"))
		return
	}

	if errs := validator.ValidateNewAccount(input.Handle, input.Email, input.Password, input.FirstName, input.LastName); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	msg, err := h.authService.Register(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"msg": msg})
}

func (h *AuthHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var input service.AuthenticateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, apierr.New(apierr.BadRequest, "invalid request body"))
		return
	}

	if errs := validator.ValidateAuthenticate(input.Handle, input.Password); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	resp, err := h.authService.Authenticate(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
