package httpx

import (
	"github.com/go-chi/chi/v5"
	"github.com/shopfront/shopfront-api/internal/auth"
	"github.com/shopfront/shopfront-api/internal/users"
	"net/http"
	"time"
)

type AuthHandler struct {
	Auth        *auth.Service
	ReportCache ReportEvictor
	Timeout     time.Duration
	Service     string
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

type meResp struct {
	User users.User `json:"user"`
}

func (h *AuthHandler) Register(r chi.Router, gate func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.login)
		r.With(evictReports(h.ReportCache, h.Service)).Post("/register", h.register)
		r.With(gate).Get("/me", h.me)
		r.With(gate).Post("/logout", h.logout)
	})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := decodeJSON(r, &req); err != nil {
		writeAuthError(w, r, h.Service, err)
		return
	}

	ctx, cancel := withTimeout(r, h.Timeout)
	defer cancel()

	token, err := h.Auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		writeAuthError(w, r, h.Service, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResp{Success: true, Token: token})
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterInput
	if err := decodeJSON(r, &req); err != nil {
		writeAuthError(w, r, h.Service, err)
		return
	}

	ctx, cancel := withTimeout(r, h.Timeout)
	defer cancel()

	if _, err := h.Auth.Register(ctx, req); err != nil {
		writeAuthError(w, r, h.Service, err)
		return
	}
	writeOK(w, "User registered.")
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r, h.Timeout)
	defer cancel()

	u, err := h.Auth.Me(ctx, callerID(r))
	if err != nil {
		writeAuthError(w, r, h.Service, err)
		return
	}
	writeJSON(w, http.StatusOK, meResp{User: u})
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFrom(r.Context())

	ctx, cancel := withTimeout(r, h.Timeout)
	defer cancel()

	if err := h.Auth.Logout(ctx, claims); err != nil {
		writeAuthError(w, r, h.Service, err)
		return
	}
	writeOK(w, "Logged out.")
}
