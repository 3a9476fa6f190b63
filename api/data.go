package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fintrack/backend/db"
	"github.com/fintrack/backend/logging"
	"github.com/fintrack/backend/models"
	"github.com/fintrack/backend/notify"
	"github.com/gin-gonic/gin"
)

var errBadFilter = errors.New("bad filter")

func parseFilter(c *gin.Context) (models.TransactionFilter, error) {
	var f models.TransactionFilter
	f.Type = c.Query("type")
	if f.Type != "" && !models.ValidType(f.Type) {
		return f, errBadFilter
	}
	if s := c.Query("categoryId"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil || id <= 0 {
			return f, errBadFilter
		}
		f.CategoryID = id
	}
	for _, p := range []struct {
		key string
		dst **time.Time
	}{{"from", &f.From}, {"to", &f.To}} {
		s := c.Query(p.key)
		if s == "" {
			continue
		}
		t, err := models.ParseDate(s)
		if err != nil {
			return f, errBadFilter
		}
		*p.dst = &t
	}
	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		return f, errBadFilter
	}
	return f, nil
}

// checkCategory answers 400 unless categoryID names a category of typ.
func (h *Handler) checkCategory(c *gin.Context, categoryID int, typ string) bool {
	category, err := h.storage.GetCategory(c.Request.Context(), categoryID)
	if err != nil {
		internalError(c, "Internal server error", err)
		return false
	}
	if category == nil {
		fail(c, http.StatusBadRequest, "Invalid category")
		return false
	}
	if category.Type != typ {
		fail(c, http.StatusBadRequest, "Category does not match transaction type")
		return false
	}
	return true
}

// FetchData lists the caller's transactions.
// @Summary Fetch transactions
// @Tags data
// @Produce json
// @Security ApiKeyAuth
// @Param userName query string true "User name"
// @Param type query string false "income or expense"
// @Param categoryId query int false "Category ID"
// @Param from query string false "Inclusive start date"
// @Param to query string false "Exclusive end date"
// @Success 200 {object} models.FetchResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/data/fetch [get]
func (h *Handler) FetchData(c *gin.Context) {
	userName := c.Query("userName")
	if !ownsUserName(c, userName) {
		return
	}
	filter, err := parseFilter(c)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid filter")
		return
	}

	transactions, err := h.storage.GetTransactions(c.Request.Context(), userName, filter)
	if errors.Is(err, db.ErrInvalidFilter) {
		fail(c, http.StatusBadRequest, "Invalid filter")
		return
	}
	if err != nil {
		internalError(c, "Failed to fetch data", err)
		return
	}
	c.JSON(http.StatusOK, models.FetchResponse{
		Success:  true,
		Message:  "Data fetched successfully",
		UserName: userName,
		Data:     transactions,
	})
}

// Summary returns income, expense and per-category totals.
// @Summary Transaction totals
// @Tags data
// @Produce json
// @Security ApiKeyAuth
// @Param userName query string true "User name"
// @Param type query string false "income or expense"
// @Param categoryId query int false "Category ID"
// @Param from query string false "Inclusive start date"
// @Param to query string false "Exclusive end date"
// @Success 200 {object} models.SummaryResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/data/summary [get]
func (h *Handler) Summary(c *gin.Context) {
	userName := c.Query("userName")
	if !ownsUserName(c, userName) {
		return
	}
	filter, err := parseFilter(c)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid filter")
		return
	}

	totals, err := h.storage.GetTotals(c.Request.Context(), userName, filter)
	if errors.Is(err, db.ErrInvalidFilter) {
		fail(c, http.StatusBadRequest, "Invalid filter")
		return
	}
	if err != nil {
		internalError(c, "Failed to fetch totals", err)
		return
	}
	c.JSON(http.StatusOK, models.SummaryResponse{Success: true, UserName: userName, Totals: *totals})
}

// AddTransaction records a new income or expense.
// @Summary Add transaction
// @Tags data
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.TransactionRequest true "Transaction"
// @Success 201 {object} models.TransactionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/data/add [post]
func (h *Handler) AddTransaction(c *gin.Context) {
	var req models.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Required fields are missing")
		return
	}
	t, err := req.Transaction()
	if err != nil {
		badRequest(c, err, "Required fields are missing")
		return
	}
	if !ownsUserName(c, t.UserName) || !h.checkCategory(c, t.CategoryID, t.Type) {
		return
	}
	t.ID = 0

	err = h.storage.CreateTransaction(c.Request.Context(), t)
	if errors.Is(err, db.ErrUnknownCategory) {
		fail(c, http.StatusBadRequest, "Invalid category")
		return
	}
	if err != nil {
		internalError(c, "To add data was failed", err)
		return
	}

	if t.Type == models.TypeExpense {
		h.checkMonthlyGoal(c, t.UserName)
	}
	c.JSON(http.StatusCreated, models.TransactionResponse{
		Success: true,
		Message: "Transaction created successfully",
		Data:    *t,
	})
}

// checkMonthlyGoal publishes a notification when this month's savings fall
// below the user's monthly goal. Failures are only logged.
func (h *Handler) checkMonthlyGoal(c *gin.Context, userName string) {
	ctx := c.Request.Context()
	log := logging.FromContext(c)

	props, err := h.storage.GetProperties(ctx, userName)
	if err != nil {
		log.Warn().Err(err).Msg("monthly goal check: load properties")
		return
	}
	if props == nil || !props.MonthlyGoal.Valid {
		return
	}

	now := h.now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	totals, err := h.storage.GetTotals(ctx, userName, models.TransactionFilter{From: &from, To: &to})
	if err != nil {
		log.Warn().Err(err).Msg("monthly goal check: load totals")
		return
	}

	n, atRisk := notify.MonthlyGoalAtRisk(userName, totals.Income, totals.Expense, props.MonthlyGoal.Decimal)
	if !atRisk {
		return
	}
	if err := h.publisher.Publish(ctx, n); err != nil {
		log.Error().Err(err).Msg("failed to publish monthly goal notification")
		return
	}
	log.Info().Str("user", userName).Msg("monthly goal notification published")
}

// UpdateTransaction overwrites one of the caller's transactions.
// @Summary Update transaction
// @Tags data
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.TransactionRequest true "Transaction"
// @Success 200 {object} models.TransactionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/data/update/transactionData [put]
func (h *Handler) UpdateTransaction(c *gin.Context) {
	var req models.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Required fields are missing")
		return
	}
	t, err := req.Transaction()
	if err != nil {
		badRequest(c, err, "Required fields are missing")
		return
	}
	if t.ID <= 0 {
		fail(c, http.StatusBadRequest, "Required fields are missing")
		return
	}
	if !ownsUserName(c, t.UserName) || !h.checkCategory(c, t.CategoryID, t.Type) {
		return
	}

	updated, err := h.storage.UpdateTransaction(c.Request.Context(), t)
	if errors.Is(err, db.ErrUnknownCategory) {
		fail(c, http.StatusBadRequest, "Invalid category")
		return
	}
	if err != nil {
		internalError(c, "To update data was failed", err)
		return
	}
	if !updated {
		fail(c, http.StatusNotFound, "Transaction not found")
		return
	}
	c.JSON(http.StatusOK, models.TransactionResponse{Success: true, Data: *t})
}

// DeleteTransaction removes one of the caller's transactions.
// @Summary Delete transaction
// @Tags data
// @Produce json
// @Security ApiKeyAuth
// @Param transactionId path int true "Transaction ID"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/data/delete/{transactionId} [delete]
func (h *Handler) DeleteTransaction(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("transactionId"))
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "Invalid transaction ID")
		return
	}

	deleted, err := h.storage.DeleteTransaction(c.Request.Context(), id, currentClaims(c).UserName)
	if err != nil {
		internalError(c, "Failed to delete transaction", err)
		return
	}
	if !deleted {
		fail(c, http.StatusNotFound, "Transaction not found")
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Success: true, Message: "Transaction deleted successfully"})
}

// FetchCategories lists all categories grouped by type.
// @Summary Fetch categories
// @Tags data
// @Produce json
// @Success 200 {object} models.CategoriesResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/data/fetchCategories [get]
func (h *Handler) FetchCategories(c *gin.Context) {
	categories, err := h.storage.GetCategories(c.Request.Context())
	if err != nil {
		internalError(c, "Failed to fetch categories", err)
		return
	}

	resp := models.CategoriesResponse{Income: []models.Category{}, Expense: []models.Category{}}
	for _, category := range categories {
		switch category.Type {
		case models.TypeIncome:
			resp.Income = append(resp.Income, category)
		case models.TypeExpense:
			resp.Expense = append(resp.Expense, category)
		}
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateCurrentProperty sets the caller's current total assets.
// @Summary Update current property
// @Tags data
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.PropertyRequest true "Current property"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/data/editProperty/updateCurrentProperty [post]
func (h *Handler) UpdateCurrentProperty(c *gin.Context) {
	var req models.PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid currentProperty")
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err, "Invalid currentProperty")
		return
	}

	updated, err := h.storage.UpdateCurrentProperty(c.Request.Context(), currentClaims(c).UserName, *req.CurrentProperty)
	if err != nil {
		internalError(c, "Failed to update current property", err)
		return
	}
	if !updated {
		fail(c, http.StatusNotFound, "User properties not found")
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Success: true})
}
