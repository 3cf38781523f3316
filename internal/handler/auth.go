package handler

import (
    "context"      // request-scoped timeouts for DB and dispatch calls
    "database/sql" // sentinel for missing rows
    "log/slog"     // structured logging
    "net/http"     // HTTP status codes
    "strings"      // input normalization
    "time"         // DB call timeouts

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/iliyamo/user-auth-service/internal/config"     // app configuration
    "github.com/iliyamo/user-auth-service/internal/model"      // user row type
    "github.com/iliyamo/user-auth-service/internal/notify"     // reset-code delivery gateway
    "github.com/iliyamo/user-auth-service/internal/repository" // sentinel errors
    "github.com/iliyamo/user-auth-service/internal/utils"      // hashing and token issuing
    "github.com/iliyamo/user-auth-service/internal/validation" // field-error collection
)

// UserStore is the credential-store surface the handler needs. It is
// satisfied by *repository.UserRepo and by fakes in tests.
type UserStore interface {
	Create(ctx context.Context, email, phone, passwordHash string) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByPhone(ctx context.Context, phone string) (model.User, error)
	GetByEmailOrPhone(ctx context.Context, identifier string) (model.User, error)
	SetResetCode(ctx context.Context, userID uint64, code string) error
	ConsumeResetCode(ctx context.Context, userID uint64, code, newPasswordHash string) error
}

// TokenStore persists and revokes issued bearer tokens. Satisfied by
// *repository.TokenRepo.
type TokenStore interface {
	Store(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error
	RevokeByHash(ctx context.Context, tokenHash string) error
}

// AuthHandler bundles dependencies for the auth endpoints and owns the
// reset-code state machine: no pending reset -> pending (forgot-password,
// overwriting any earlier code) -> no pending reset (successful reset).
type AuthHandler struct {
	Cfg     config.Config
	Users   UserStore
	Tokens  TokenStore
	Gateway notify.Notifier
	Logger  *slog.Logger
	// Codes produces a fresh 4-digit reset code. Tests replace it with a
	// fixed sequence.
	Codes func() (string, error)
}

func NewAuthHandler(cfg config.Config, u UserStore, t TokenStore, g notify.Notifier, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t, Gateway: g, Logger: logger, Codes: utils.NewResetCode}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type forgotReq struct {
	Via   string `json:"via"` // email | sms
	Email string `json:"email"`
	Phone string `json:"phone"`
}
type resetReq struct {
	EmailOrPhone string `json:"email_or_phone"`
	Code         string `json:"code"`
	NewPassword  string `json:"new_password"`
}

type tokenResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register: create user and return a bearer token immediately.
// Every violated field is reported at once in the 422 body.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	verrs := validation.New()
	if verrs.Required("email", req.Email) {
		verrs.Email("email", req.Email)
	}
	verrs.Required("phone", req.Phone)
	if verrs.Required("password", req.Password) {
		verrs.MinLen("password", req.Password, 6)
	}
	// Uniqueness pre-checks so that both a taken email and a taken phone
	// show up together. The insert below stays the race-safe authority.
	if len(verrs["email"]) == 0 {
		if _, err := h.Users.GetByEmail(ctx, req.Email); err == nil {
			verrs.Taken("email")
		} else if err != sql.ErrNoRows {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
	}
	if len(verrs["phone"]) == 0 {
		if _, err := h.Users.GetByPhone(ctx, req.Phone); err == nil {
			verrs.Taken("phone")
		} else if err != sql.ErrNoRows {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
	}
	if verrs.Any() {
		return c.JSON(http.StatusUnprocessableEntity, verrs)
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}

	uid, err := h.Users.Create(ctx, req.Email, req.Phone, hash)
	if err != nil {
		// A concurrent register can slip past the pre-checks; the unique
		// index reports it here.
		switch err {
		case repository.ErrEmailExists:
			verrs.Taken("email")
			return c.JSON(http.StatusUnprocessableEntity, verrs)
		case repository.ErrPhoneExists:
			verrs.Taken("phone")
			return c.JSON(http.StatusUnprocessableEntity, verrs)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	h.Logger.Info("user registered", slog.String("email", req.Email), slog.Uint64("user_id", uid))
	return h.issueToken(ctx, c, uid)
}

// Login: verify credentials and return a fresh token. Unknown email and
// wrong password answer identically so callers cannot enumerate accounts.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid credentials"})
	}

	h.Logger.Info("user logged in", slog.String("email", req.Email))
	return h.issueToken(ctx, c, u.ID)
}

// ForgotPassword: store a fresh 4-digit code on the account and dispatch it
// over the requested channel. A new call while a reset is already pending
// overwrites the previous code. The code is stored before dispatch and is
// not rolled back when the gateway fails; the failure itself is surfaced.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)

	verrs := validation.New()
	if verrs.Required("via", req.Via) {
		verrs.OneOf("via", req.Via, "email", "sms")
	}
	if req.Via == "email" {
		verrs.Required("email", req.Email)
	}
	if req.Via == "sms" {
		verrs.Required("phone", req.Phone)
	}
	if verrs.Any() {
		return c.JSON(http.StatusUnprocessableEntity, verrs)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var (
		u   model.User
		err error
	)
	if req.Via == "email" {
		u, err = h.Users.GetByEmail(ctx, req.Email)
	} else {
		u, err = h.Users.GetByPhone(ctx, req.Phone)
	}
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	code, err := h.Codes()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "generate code failed"})
	}
	if err := h.Users.SetResetCode(ctx, u.ID, code); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "store code failed"})
	}

	channel := notify.ChannelEmail
	address := u.Email
	if req.Via == "sms" {
		channel = notify.ChannelSMS
		address = u.Phone
	}
	dctx, dcancel := context.WithTimeout(c.Request().Context(), h.Cfg.NotifyTimeout)
	defer dcancel()
	if err := h.Gateway.SendResetCode(dctx, channel, address, code); err != nil {
		h.Logger.Error("reset code dispatch failed",
			slog.String("channel", string(channel)), slog.String("error", err.Error()))
		return c.JSON(http.StatusBadGateway, echo.Map{"message": "Failed to send reset code"})
	}

	h.Logger.Info("reset code dispatched",
		slog.String("channel", string(channel)), slog.Uint64("user_id", u.ID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Code has been sent."})
}

// ResetPassword: consume a pending code exactly once and install the new
// password. Unknown identifier, no pending reset and a wrong code all map
// to the same 400 answer. Existing tokens stay valid.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.EmailOrPhone = strings.TrimSpace(req.EmailOrPhone)
	req.Code = strings.TrimSpace(req.Code)

	verrs := validation.New()
	verrs.Required("email_or_phone", req.EmailOrPhone)
	if verrs.Required("code", req.Code) {
		verrs.Digits("code", req.Code, 4)
	}
	if verrs.Required("new_password", req.NewPassword) {
		verrs.MinLen("new_password", req.NewPassword, 6)
	}
	if verrs.Any() {
		return c.JSON(http.StatusUnprocessableEntity, verrs)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmailOrPhone(ctx, req.EmailOrPhone)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid code or unknown user"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	hash, err := utils.HashPassword(req.NewPassword, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
	}
	if err := h.Users.ConsumeResetCode(ctx, u.ID, req.Code, hash); err != nil {
		if err == repository.ErrInvalidResetCode {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid code or unknown user"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reset failed"})
	}

	h.Logger.Info("password reset", slog.Uint64("user_id", u.ID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Password has been reset."})
}

// Logout: revoke exactly the token the caller presented. Other tokens the
// same user holds keep working. The middleware put the token's hash into
// the context after validating it.
func (h *AuthHandler) Logout(c echo.Context) error {
	hash, ok := c.Get("token_hash").(string)
	if !ok || hash == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out"})
}

// Me: simple protected endpoint.
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"user_id": c.Get("user_id")})
}

// issueToken signs a fresh access token for the user, stores its hash for
// later revocation and writes the spec'd token payload. Prior tokens are
// untouched; several sessions may coexist.
func (h *AuthHandler) issueToken(ctx context.Context, c echo.Context, userID uint64) error {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, userID, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	if err := h.Tokens.Store(ctx, userID, utils.HashTokenRaw(access.Token), access.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save token failed"})
	}
	return c.JSON(http.StatusOK, tokenResp{AccessToken: access.Token, TokenType: "Bearer"})
}
