package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/slot-scheduler/internal/middleware"
	ucAvailability "github.com/BruksfildServices01/slot-scheduler/internal/usecase/availability"
)

// ======================================================
// HANDLER
// ======================================================

type AvailabilityHandler struct {
	create *ucAvailability.CreateRule
	update *ucAvailability.UpdateRule
	delete *ucAvailability.DeleteRule
	list   *ucAvailability.ListRules
	log    *zap.Logger
}

func NewAvailabilityHandler(
	create *ucAvailability.CreateRule,
	update *ucAvailability.UpdateRule,
	delete *ucAvailability.DeleteRule,
	list *ucAvailability.ListRules,
	log *zap.Logger,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		create: create,
		update: update,
		delete: delete,
		list:   list,
		log:    log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type createRuleRequest struct {
	DayOfWeek *int   `json:"day_of_week" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type updateRuleRequest struct {
	DayOfWeek *int    `json:"day_of_week"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Active    *bool   `json:"active"`
}

// ======================================================
// GET /operators/:id/availability
// ======================================================

func (h *AvailabilityHandler) List(c *gin.Context) {
	operatorID, ok := pathID(c, "id")
	if !ok {
		return
	}

	activeOnly := c.Query("active") == "true"

	rules, err := h.list.Execute(c.Request.Context(), middleware.ScopeFrom(c), operatorID, activeOnly)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, rules)
}

// ======================================================
// POST /operators/:id/availability
// ======================================================

func (h *AvailabilityHandler) Create(c *gin.Context) {
	operatorID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req createRuleRequest
	if !bindJSON(c, &req) {
		return
	}

	rule, err := h.create.Execute(c.Request.Context(), middleware.ScopeFrom(c), ucAvailability.CreateRuleInput{
		OperatorID: operatorID,
		DayOfWeek:  *req.DayOfWeek,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, rule)
}

// ======================================================
// PATCH /availability/:id
// ======================================================

func (h *AvailabilityHandler) Update(c *gin.Context) {
	ruleID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req updateRuleRequest
	if !bindJSON(c, &req) {
		return
	}

	rule, err := h.update.Execute(c.Request.Context(), middleware.ScopeFrom(c), ruleID, domain.RulePatch{
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Active:    req.Active,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, rule)
}

// ======================================================
// DELETE /availability/:id
// ======================================================

// Delete deactivates the rule; rules are never hard-deleted.
func (h *AvailabilityHandler) Delete(c *gin.Context) {
	ruleID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), middleware.ScopeFrom(c), ruleID); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
