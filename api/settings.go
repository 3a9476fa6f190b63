package api

import (
	"net/http"

	"github.com/fintrack/backend/models"
	"github.com/gin-gonic/gin"
)

// SetGoal stores the caller's savings goals.
// @Summary Set goal
// @Tags settings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.GoalRequest true "Goal"
// @Success 201 {object} models.SetGoalResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/settings/setGoal [post]
func (h *Handler) SetGoal(c *gin.Context) {
	var req models.GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request")
		return
	}
	goal, err := req.Goal()
	if err != nil {
		badRequest(c, err, "Invalid request")
		return
	}
	if !ownsUserName(c, req.UserName) {
		return
	}

	props, err := h.storage.SetGoal(c.Request.Context(), req.UserName, goal)
	if err != nil {
		internalError(c, "To set goal was failed", err)
		return
	}
	if props == nil {
		fail(c, http.StatusNotFound, "User properties not found")
		return
	}
	c.JSON(http.StatusCreated, models.SetGoalResponse{
		Success: true,
		Message: "Set goal successfully",
		Data:    models.SetGoalData{UserName: req.UserName, GoalData: props},
	})
}

// GetGoals returns the caller's savings goals and assets.
// @Summary Get goals
// @Tags settings
// @Produce json
// @Security ApiKeyAuth
// @Param userName query string true "User name"
// @Success 200 {object} models.GoalsResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/settings/getGoals [get]
func (h *Handler) GetGoals(c *gin.Context) {
	userName := c.Query("userName")
	if !ownsUserName(c, userName) {
		return
	}

	props, err := h.storage.GetProperties(c.Request.Context(), userName)
	if err != nil {
		internalError(c, "Failed to get goal", err)
		return
	}
	if props == nil {
		fail(c, http.StatusNotFound, "User properties not found")
		return
	}
	c.JSON(http.StatusOK, models.GoalsResponse{
		Success:  true,
		Message:  "Get goals successfully",
		UserName: userName,
		GoalData: props,
	})
}
