package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/haneul-dev/virtual-gallery/internal/config"
	"github.com/haneul-dev/virtual-gallery/internal/model"
	"github.com/haneul-dev/virtual-gallery/internal/repository"
	"github.com/haneul-dev/virtual-gallery/internal/utils"
)

// UserStore is the account persistence contract, implemented by
// repository.UserRepo.
type UserStore interface {
	Create(ctx context.Context, email, password, nickname, contact string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uint64) (*model.User, error)
}

// TokenStore persists refresh tokens, implemented by repository.TokenRepo.
type TokenStore interface {
	StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error
	ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
}

// AuthHandler bundles dependencies for the account endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  UserStore
	Tokens TokenStore
}

func NewAuthHandler(cfg config.Config, users UserStore, tokens TokenStore) *AuthHandler {
	if users == nil || tokens == nil {
		panic("nil store passed to NewAuthHandler")
	}
	return &AuthHandler{Cfg: cfg, Users: users, Tokens: tokens}
}

type registerReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Nickname string `json:"nickname" validate:"required"`
	Contact  string `json:"contact"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshReq struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type userPart struct {
	ID       uint64 `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Contact  string `json:"contact"`
}

type authResp struct {
	User    userPart  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

// issuePair signs an access token and mints + stores a refresh token.
func (h *AuthHandler) issuePair(ctx context.Context, userID uint64, nickname string) (*authResp, error) {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, userID, nickname, h.Cfg.AccessTTLMin)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return nil, err
	}
	if err := h.Tokens.StoreRefresh(ctx, userID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return nil, err
	}
	return &authResp{
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
		Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw goes back to the client
	}, nil
}

// Register handles POST /auth/register: create the account and return a
// token pair immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Email, req.Password, req.Nickname, req.Contact, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return fail(c, http.StatusConflict, "email already exists")
		}
		log.Error().Err(err).Msg("create user failed")
		return fail(c, http.StatusBadRequest, "failed to register")
	}

	resp, err := h.issuePair(ctx, uid, req.Nickname)
	if err != nil {
		log.Error().Err(err).Msg("issue tokens failed")
		return fail(c, http.StatusBadRequest, "failed to register")
	}
	resp.User = userPart{ID: uid, Email: req.Email, Nickname: req.Nickname, Contact: req.Contact}
	return c.JSON(http.StatusCreated, Response{Success: true, Message: "registered", Data: resp})
}

// Login handles POST /auth/login: verify credentials and return a new
// token pair.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return fail(c, http.StatusUnauthorized, "invalid credentials")
		}
		log.Error().Err(err).Msg("user lookup failed")
		return fail(c, http.StatusBadRequest, "failed to login")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return fail(c, http.StatusUnauthorized, "invalid credentials")
	}

	resp, err := h.issuePair(ctx, u.ID, u.Nickname)
	if err != nil {
		log.Error().Err(err).Msg("issue tokens failed")
		return fail(c, http.StatusBadRequest, "failed to login")
	}
	resp.User = userPart{ID: u.ID, Email: u.Email, Nickname: u.Nickname, Contact: u.Contact}
	return ok(c, "logged in", resp)
}

// Refresh handles POST /auth/refresh: validate the refresh token by
// hash, revoke it and issue a fresh pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hash := utils.HashRefreshRaw(req.RefreshToken)
	uid, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "invalid refresh token")
	}
	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", uid).Msg("user lookup failed")
		return fail(c, http.StatusBadRequest, "failed to refresh")
	}
	if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
		log.Error().Err(err).Msg("revoke refresh failed")
		return fail(c, http.StatusBadRequest, "failed to refresh")
	}

	resp, err := h.issuePair(ctx, u.ID, u.Nickname)
	if err != nil {
		log.Error().Err(err).Msg("issue tokens failed")
		return fail(c, http.StatusBadRequest, "failed to refresh")
	}
	resp.User = userPart{ID: u.ID, Email: u.Email, Nickname: u.Nickname, Contact: u.Contact}
	return ok(c, "refreshed", resp)
}

// Logout handles POST /auth/logout: revoke the presented refresh token.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if req.RefreshToken == "" {
		return fail(c, http.StatusBadRequest, "refreshToken required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Tokens.RevokeByHash(ctx, utils.HashRefreshRaw(req.RefreshToken)); err != nil {
		log.Error().Err(err).Msg("revoke refresh failed")
		return fail(c, http.StatusBadRequest, "failed to logout")
	}
	return ok(c, "logged out", nil)
}

// Me handles GET /auth/me and returns the caller's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	u, err := h.Users.GetByID(c.Request().Context(), uid)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", uid).Msg("user lookup failed")
		return fail(c, http.StatusBadRequest, "failed to get profile")
	}
	return ok(c, "get profile success", userPart{ID: u.ID, Email: u.Email, Nickname: u.Nickname, Contact: u.Contact})
}
