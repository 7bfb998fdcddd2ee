// internal/app/features/authfeature/handler.go

// Package authfeature serves registration, login, and the current-user
// endpoint. Login exchanges email+password for a signed bearer token;
// everything else in the API authenticates with that token.
package authfeature

import (
	"net/http"

	appErrors "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/features/errors"
	userstore "github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/store/users"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/auth"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/httpjson"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/ratelimit"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/app/system/timeouts"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/apperr"
	"github.com/burakpoyraz/Disaster-Response-Logistics-System/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Handler struct {
	Users      *userstore.Store
	Tokens     *auth.TokenManager
	Limiter    *ratelimit.LoginLimiter
	ErrLog     *appErrors.ErrorLogger
	Log        *zap.Logger
	BcryptCost int
}

func NewHandler(users *userstore.Store, tokens *auth.TokenManager, limiter *ratelimit.LoginLimiter, logger *zap.Logger, bcryptCost int) *Handler {
	return &Handler{
		Users:      users,
		Tokens:     tokens,
		Limiter:    limiter,
		ErrLog:     appErrors.NewErrorLogger(logger),
		Log:        logger,
		BcryptCost: bcryptCost,
	}
}

// Register handles POST /auth/register. New accounts always start with the
// unassigned role; the password is hashed before it reaches the store.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		h.ErrLog.LogError(w, r, "decode register payload", err)
		return
	}

	if len(req.Password) < 8 {
		appErrors.RenderShape(w, r, map[string]string{"password": "Password must be at least 8 characters"})
		return
	}
	hash, err := auth.HashPassword(req.Password, h.BcryptCost)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hash password", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "register user")
	defer cancel()

	created, err := h.Users.Create(ctx, models.User{
		Name:                req.Name,
		Surname:             req.Surname,
		Email:               req.Email,
		Phone:               req.Phone,
		Password:            hash,
		DeclaredAffiliation: req.DeclaredAffiliation,
	})
	if err != nil {
		h.ErrLog.LogError(w, r, "create user", err)
		return
	}

	httpjson.Write(w, http.StatusCreated, created)
}

// Login handles POST /auth/login. Failed attempts are rate limited per IP
// and per email; a wrong password and an unknown email are
// indistinguishable in the response.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(w, r, &req); err != nil {
		h.ErrLog.LogError(w, r, "decode login payload", err)
		return
	}

	if allowed, reason := h.Limiter.Check(r, req.Email); !allowed {
		h.Log.Warn("login rate limited",
			zap.String("reason", reason),
			zap.String("ip", ratelimit.ClientIP(r)),
		)
		httpjson.Write(w, http.StatusTooManyRequests, map[string]string{
			"error": "too many login attempts, try again later",
		})
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "login lookup")
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err == apperr.ErrNotFound {
		appErrors.RenderUnauthorizedMsg(w, r, "invalid email or password")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "look up user for login", err)
		return
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		appErrors.RenderUnauthorizedMsg(w, r, "invalid email or password")
		return
	}

	h.Limiter.ResetEmail(req.Email)

	su := auth.SessionUser{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
	if user.OrganizationID != nil {
		su.OrgID = user.OrganizationID.Hex()
	}
	token, err := h.Tokens.Issue(su)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "issue token", err)
		return
	}

	httpjson.Write(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresIn: int64(h.Tokens.TTL().Seconds()),
		User:      *user,
	})
}

// Me handles GET /auth/me: the full record behind the presented token.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		appErrors.RenderUnauthorized(w, r)
		return
	}
	uid, err := primitive.ObjectIDFromHex(su.ID)
	if err != nil {
		appErrors.RenderUnauthorized(w, r)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "load current user")
	defer cancel()

	user, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		h.ErrLog.LogError(w, r, "load current user", err)
		return
	}
	httpjson.Write(w, http.StatusOK, user)
}
