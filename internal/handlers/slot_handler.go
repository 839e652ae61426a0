package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/slot-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/slot-scheduler/internal/dto"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/slot-scheduler/internal/middleware"
	ucSlot "github.com/BruksfildServices01/slot-scheduler/internal/usecase/slot"
)

// ======================================================
// HANDLER
// ======================================================

type SlotHandler struct {
	generate     *ucSlot.GenerateSlots
	list         *ucSlot.ListSlots
	updateStatus *ucSlot.UpdateSlotStatus
	delete       *ucSlot.DeleteSlot
	log          *zap.Logger
}

func NewSlotHandler(
	generate *ucSlot.GenerateSlots,
	list *ucSlot.ListSlots,
	updateStatus *ucSlot.UpdateSlotStatus,
	delete *ucSlot.DeleteSlot,
	log *zap.Logger,
) *SlotHandler {
	return &SlotHandler{
		generate:     generate,
		list:         list,
		updateStatus: updateStatus,
		delete:       delete,
		log:          log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type generateSlotsRequest struct {
	DateFrom        string `json:"date_from" binding:"required"`
	DateTo          string `json:"date_to" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required"`
}

type updateSlotStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// GET /operators/:id/slots
// ======================================================

func (h *SlotHandler) List(c *gin.Context) {
	operatorID, ok := pathID(c, "id")
	if !ok {
		return
	}

	f := domain.ListFilter{
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
		Status:   domain.Status(strings.ToUpper(c.Query("status"))),
	}

	slots, err := h.list.Execute(c.Request.Context(), middleware.ScopeFrom(c), operatorID, f)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, dto.Slots(slots))
}

// ======================================================
// POST /operators/:id/slots/generate
// ======================================================

func (h *SlotHandler) Generate(c *gin.Context) {
	operatorID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req generateSlotsRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.generate.Execute(c.Request.Context(), middleware.ScopeFrom(c), ucSlot.GenerateSlotsInput{
		OperatorID:      operatorID,
		DateFrom:        req.DateFrom,
		DateTo:          req.DateTo,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, gin.H{"created": created})
}

// ======================================================
// PATCH /slots/:id/status
// ======================================================

func (h *SlotHandler) UpdateStatus(c *gin.Context) {
	slotID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req updateSlotStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.updateStatus.Execute(c.Request.Context(), middleware.ScopeFrom(c), slotID, domain.Status(strings.ToUpper(req.Status)))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.Slot(s))
}

// ======================================================
// DELETE /slots/:id
// ======================================================

func (h *SlotHandler) Delete(c *gin.Context) {
	slotID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), middleware.ScopeFrom(c), slotID); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
