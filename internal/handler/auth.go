package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dojoroom/room-booking/internal/config"
	"github.com/dojoroom/room-booking/internal/repository"
	"github.com/dojoroom/room-booking/internal/utils"
)

// AuthHandler bundles dependencies for the auth endpoints. Accounts are
// plain email/password pairs; the display name derived from the email is
// what appears on the schedule and travels inside the access token.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t}
}

// ----- DTOs -----

type credentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
type authResp struct {
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

func (h *AuthHandler) issuePair(ctx context.Context, userID uint64, email string) (authResp, error) {
	name := utils.DisplayName(email)
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, userID, name, h.Cfg.AccessTTLMin)
	if err != nil {
		return authResp{}, err
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return authResp{}, err
	}
	if err := h.Tokens.StoreRefresh(ctx, userID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return authResp{}, err
	}
	return authResp{
		User:    userPart{ID: userID, Email: email, Name: name},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
	}, nil
}

// Register creates a user and returns tokens immediately. When
// AUTH_EMAIL_DOMAIN is configured, only addresses in that domain may sign
// up, mirroring the membership gate of the community the rooms belong to.
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}
	if d := h.Cfg.AuthEmailDomain; d != "" && !strings.HasSuffix(req.Email, "@"+d) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "email domain not allowed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Email, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	resp, err := h.issuePair(ctx, uid, req.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusCreated, resp)
}

// Login verifies credentials and returns a new token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	resp, err := h.issuePair(ctx, u.ID, u.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Refresh validates a refresh token by hash, revokes it, and issues a new
// pair (token rotation).
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
	}
	_ = h.Tokens.RevokeByHash(ctx, hash)

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}

	resp, err := h.issuePair(ctx, u.ID, u.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue tokens failed"})
	}
	return c.JSON(http.StatusOK, resp)
}

// Logout revokes the refresh token supplied in the body, ending that
// session. Access tokens are short-lived and simply expire.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}
	hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Tokens.ValidateRefresh(ctx, hash); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
	}
	if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// LogoutAll revokes every refresh token belonging to the caller, ending
// all sessions across devices. Unlike Logout it needs no refresh token in
// the body, only a valid access token.
func (h *AuthHandler) LogoutAll(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Tokens.RevokeAllForUser(ctx, uid); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// currentUserID coerces the JWT subject stored by the middleware into a
// user ID. Numeric JWT claims decode as float64; string subjects from
// other issuers are parsed as a fallback.
func currentUserID(c echo.Context) (uint64, bool) {
	switch v := c.Get("user_id").(type) {
	case float64:
		return uint64(v), true
	case uint64:
		return v, true
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// Me is a simple protected endpoint returning the caller's identity.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"user_id": c.Get("user_id"),
		"name":    c.Get("name"),
	})
}
