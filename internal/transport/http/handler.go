package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"loyalty/internal/domain"
	"loyalty/internal/dto"
	"loyalty/internal/observability/metrics"
	obsmw "loyalty/internal/observability/middleware"
	"loyalty/internal/service"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	links   service.UniqueLinkService
	partner service.PartnerService
	auth    service.AuthService
	tokens  service.TokenService

	frontendBase string
	accessTTL    time.Duration
	refreshTTL   time.Duration
	production   bool
}

type Options struct {
	FrontendBaseURL string
	AccessTTL       time.Duration
	RefreshTTL      time.Duration
	Production      bool
}

func NewHandler(links service.UniqueLinkService, partner service.PartnerService, auth service.AuthService, tokens service.TokenService, opts Options) *Handler {
	return &Handler{
		links:        links,
		partner:      partner,
		auth:         auth,
		tokens:       tokens,
		frontendBase: strings.TrimRight(opts.FrontendBaseURL, "/"),
		accessTTL:    opts.AccessTTL,
		refreshTTL:   opts.RefreshTTL,
		production:   opts.Production,
	}
}

// ===== Admin: link issuance =====

func (h *Handler) createBenefitLink(w http.ResponseWriter, r *http.Request) {
	h.createLink(w, r, "benefit")
}

func (h *Handler) createBusinessLink(w http.ResponseWriter, r *http.Request) {
	h.createLink(w, r, "business")
}

func (h *Handler) createLink(w http.ResponseWriter, r *http.Request, kind string) {
	var req dto.IssueLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}

	actor, _ := actorFromContext(r.Context())
	var adminID domain.UserID
	if actor.User != nil {
		adminID = actor.User.ID
	}

	link, err := h.links.Issue(r.Context(), adminID, req.ExpirationHours)
	if err != nil {
		metrics.LinksIssuedTotal.WithLabelValues(kind, "failure").Inc()
		h.logServerError(r, "link issuance failed", err)
		writeError(w, http.StatusInternalServerError, "could not create link")
		return
	}
	metrics.LinksIssuedTotal.WithLabelValues(kind, "success").Inc()

	writeData(w, http.StatusCreated, h.linkResponse(link, kind), "link created successfully")
}

func (h *Handler) linkResponse(link *domain.UniqueLink, kind string) dto.UniqueLinkResponse {
	path := "/partner/upload/"
	if kind == "business" {
		path = "/business/upload/"
	}
	uploadURL := h.frontendBase + path + link.Token

	message := fmt.Sprintf(
		"Hi! Use this link to upload to our loyalty platform:\n\n%s\n\nIt expires on: %s\n\nThanks for being a partner!",
		uploadURL, link.ExpiresAt.Format(time.RFC1123),
	)

	return dto.UniqueLinkResponse{
		ID:           link.ID,
		Token:        link.Token,
		ExpiresAt:    link.ExpiresAt,
		CreatedAt:    link.CreatedAt,
		UploadURL:    uploadURL,
		WhatsappLink: "https://wa.me/?text=" + url.QueryEscape(message),
	}
}

// ===== Guarded actions (behind withValidLink) =====

func (h *Handler) validateLink(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, linkFromContext(r.Context()), "")
}

func (h *Handler) registerBusiness(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterBusinessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}

	created, err := h.partner.RegisterBusiness(r.Context(), req)
	if err != nil {
		h.writeActionError(w, r, err, "could not register business")
		return
	}
	writeData(w, http.StatusCreated, created,
		"business registered successfully; a verification email will follow")
}

func (h *Handler) uploadBusiness(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterBusinessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}

	created, err := h.partner.CreateBusiness(r.Context(), req)
	if err != nil {
		h.writeActionError(w, r, err, "could not create business")
		return
	}
	writeData(w, http.StatusCreated, created, "business created successfully")
}

func (h *Handler) uploadBenefit(w http.ResponseWriter, r *http.Request) {
	var req dto.UploadBenefitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}

	benefit, err := h.partner.UploadBenefit(r.Context(), req)
	if err != nil {
		h.writeActionError(w, r, err, "could not upload benefit")
		return
	}
	writeData(w, http.StatusCreated, benefit, "benefit uploaded successfully")
}

func (h *Handler) listBusinesses(w http.ResponseWriter, r *http.Request) {
	businesses, err := h.partner.ListBusinesses(r.Context())
	if err != nil {
		h.logServerError(r, "business listing failed", err)
		writeError(w, http.StatusInternalServerError, "could not list businesses")
		return
	}
	writeData(w, http.StatusOK, businesses, "")
}

func (h *Handler) checkEmail(w http.ResponseWriter, r *http.Request) {
	exists, err := h.partner.CheckEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		h.logServerError(r, "email check failed", err)
		writeError(w, http.StatusInternalServerError, "could not check email")
		return
	}
	writeJSON(w, http.StatusOK, envelope{OK: true, Exists: &exists})
}

// ===== Auth =====

func (h *Handler) loginUser(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.auth.LoginUser)
}

func (h *Handler) loginBusiness(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, h.auth.LoginBusiness)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, req dto.LoginRequest, ip, ua string) (*dto.TokenPair, error)) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad request")
		return
	}

	pair, err := fn(r.Context(), req, clientIP(r), r.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error())
		case errors.Is(err, domain.ErrAccountSuspended):
			writeError(w, http.StatusForbidden, domain.ErrAccountSuspended.Error())
		case errors.Is(err, domain.ErrEmailNotVerified):
			writeError(w, http.StatusForbidden, domain.ErrEmailNotVerified.Error())
		default:
			h.logServerError(r, "login failed", err)
			writeError(w, http.StatusInternalServerError, "could not log in")
		}
		return
	}

	h.setAuthCookies(w, pair)
	writeJSON(w, http.StatusOK, envelope{OK: true, Message: "login successful"})
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(refreshCookieName)
	if err != nil || c.Value == "" {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	pair, err := h.tokens.Refresh(r.Context(), c.Value, clientIP(r), r.UserAgent())
	if err != nil {
		if errors.Is(err, domain.ErrNotAuthenticated) {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		h.logServerError(r, "token refresh failed", err)
		writeError(w, http.StatusInternalServerError, "could not refresh session")
		return
	}

	h.setAuthCookies(w, pair)
	writeJSON(w, http.StatusOK, envelope{OK: true, Message: "session refreshed"})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(refreshCookieName); err == nil {
		if err := h.auth.Logout(r.Context(), c.Value); err != nil {
			h.logServerError(r, "logout failed", err)
			writeError(w, http.StatusInternalServerError, "could not log out")
			return
		}
	}
	h.clearAuthCookies(w)
	writeJSON(w, http.StatusOK, envelope{OK: true, Message: "logged out"})
}

func (h *Handler) businessMe(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFromContext(r.Context())
	b := actor.Business
	if b == nil {
		writeError(w, http.StatusNotFound, "business not found")
		return
	}
	writeData(w, http.StatusOK, dto.BusinessResponse{
		ID:            b.ID,
		Name:          b.Name,
		Email:         b.Email,
		EmailVerified: b.EmailVerified,
		IsActive:      b.IsActive,
		Location:      b.Location,
		URLImage:      b.URLImage,
		CreatedAt:     b.CreatedAt,
	}, "")
}

// ===== Helpers =====

// writeActionError maps domain validation errors to a 400 with their
// message; anything else is a storage-level failure that stays in the
// server log and reaches the client as a fixed string.
func (h *Handler) writeActionError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrPasswordTooShort):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logServerError(r, "guarded action failed", err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

func (h *Handler) logServerError(r *http.Request, msg string, err error) {
	slog.Error(msg,
		"error", err,
		"request_id", obsmw.RequestIDFromContext(r.Context()),
		"trace_id", obsmw.TraceIDFromContext(r.Context()),
	)
}

func (h *Handler) setAuthCookies(w http.ResponseWriter, pair *dto.TokenPair) {
	sameSite := http.SameSiteLaxMode
	if h.production {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     accessCookieName,
		Value:    pair.AccessToken,
		Path:     "/",
		MaxAge:   int(h.accessTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.production,
		SameSite: sameSite,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    pair.RefreshToken,
		Path:     "/api",
		MaxAge:   int(h.refreshTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.production,
		SameSite: sameSite,
	})
}

func (h *Handler) clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: accessCookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})
	http.SetCookie(w, &http.Cookie{Name: refreshCookieName, Value: "", Path: "/api", MaxAge: -1, HttpOnly: true})
}

func clientIP(r *http.Request) string {
	// chi middleware.RealIP has already folded X-Forwarded-For /
	// X-Real-IP into RemoteAddr when the proxy is trusted.
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i > 0 && strings.Count(host, ":") == 1 {
		host = host[:i]
	}
	return strings.Trim(host, "[]")
}
