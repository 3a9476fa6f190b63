package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fintrack/backend/auth"
	"github.com/fintrack/backend/logging"
	"github.com/fintrack/backend/models"
	"github.com/fintrack/backend/notify"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// Storage is the persistence the handlers need. *db.Storage implements it.
type Storage interface {
	CreateUser(ctx context.Context, userName, email, passwordHash string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUserName(ctx context.Context, userName string) (*models.User, error)

	GetCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id int) (*models.Category, error)

	CreateTransaction(ctx context.Context, t *models.Transaction) error
	GetTransactions(ctx context.Context, userName string, f models.TransactionFilter) ([]models.Transaction, error)
	GetTransaction(ctx context.Context, id int, userName string) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, t *models.Transaction) (bool, error)
	DeleteTransaction(ctx context.Context, id int, userName string) (bool, error)
	GetTotals(ctx context.Context, userName string, f models.TransactionFilter) (*models.Totals, error)

	GetProperties(ctx context.Context, userName string) (*models.UserProperties, error)
	UpdateCurrentProperty(ctx context.Context, userName string, amount decimal.Decimal) (bool, error)
	SetGoal(ctx context.Context, userName string, goal *models.Goal) (*models.UserProperties, error)

	Ping(ctx context.Context) error
}

type Handler struct {
	storage   Storage
	auth      *auth.Service
	limiter   *auth.LoginLimiter
	publisher notify.Publisher

	env     string
	port    string
	started time.Time
	now     func() time.Time
}

type Option func(*Handler)

// WithLoginLimiter enables per-email throttling of failed logins.
func WithLoginLimiter(l *auth.LoginLimiter) Option {
	return func(h *Handler) { h.limiter = l }
}

func WithPublisher(p notify.Publisher) Option {
	return func(h *Handler) { h.publisher = p }
}

// WithEnvironment sets the values reported by the health check.
func WithEnvironment(env, port string) Option {
	return func(h *Handler) { h.env, h.port = env, port }
}

func NewHandler(s Storage, authService *auth.Service, opts ...Option) *Handler {
	h := &Handler{
		storage:   s,
		auth:      authService,
		publisher: notify.Nop{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.started = h.now()
	return h
}

func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{Success: false, Error: msg})
}

// internalError logs err and answers 500 with msg, never with err itself.
func internalError(c *gin.Context, msg string, err error) {
	_ = c.Error(err)
	logging.FromContext(c).Error().Err(err).Msg(msg)
	fail(c, http.StatusInternalServerError, msg)
}

// badRequest answers 400 with the message of a validation error, or with
// fallback for anything else.
func badRequest(c *gin.Context, err error, fallback string) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		fail(c, http.StatusBadRequest, verr.Message)
		return
	}
	fail(c, http.StatusBadRequest, fallback)
}

// ownsUserName aborts with 400 or 403 unless userName is the caller's own.
func ownsUserName(c *gin.Context, userName string) bool {
	if userName == "" {
		fail(c, http.StatusBadRequest, "User Name is required")
		return false
	}
	if claims := currentClaims(c); claims == nil || claims.UserName != userName {
		fail(c, http.StatusForbidden, "Access denied - you can only access your own data")
		return false
	}
	return true
}
