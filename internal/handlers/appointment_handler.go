package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/slot-scheduler/internal/dto"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/slot-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/slot-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create   *ucAppointment.CreateAppointment
	cancel   *ucAppointment.CancelAppointment
	confirm  *ucAppointment.ChangeStatus
	complete *ucAppointment.ChangeStatus
	noShow   *ucAppointment.ChangeStatus
	get      *ucAppointment.GetAppointment
	list     *ucAppointment.ListAppointments
	log      *zap.Logger
}

// AppointmentUseCases groups the use cases the handler serves.
type AppointmentUseCases struct {
	Create   *ucAppointment.CreateAppointment
	Cancel   *ucAppointment.CancelAppointment
	Confirm  *ucAppointment.ChangeStatus
	Complete *ucAppointment.ChangeStatus
	NoShow   *ucAppointment.ChangeStatus
	Get      *ucAppointment.GetAppointment
	List     *ucAppointment.ListAppointments
}

func NewAppointmentHandler(uc AppointmentUseCases, log *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		create:   uc.Create,
		cancel:   uc.Cancel,
		confirm:  uc.Confirm,
		complete: uc.Complete,
		noShow:   uc.NoShow,
		get:      uc.Get,
		list:     uc.List,
		log:      log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type createAppointmentRequest struct {
	SlotID    uint   `json:"slot_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	UserID    uint   `json:"user_id"`
	Notes     string `json:"notes"`
}

type cancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// POST /appointments
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req createAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), middleware.ScopeFrom(c), ucAppointment.CreateAppointmentInput{
		SlotID:    req.SlotID,
		ServiceID: req.ServiceID,
		UserID:    req.UserID,
		Notes:     req.Notes,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, dto.Appointment(ap))
}

// ======================================================
// GET /appointments
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	operatorID, ok := queryUint(c, "operator_id")
	if !ok {
		return
	}
	businessID, ok := queryUint(c, "business_id")
	if !ok {
		return
	}

	res, err := h.list.Execute(c.Request.Context(), middleware.ScopeFrom(c), ucAppointment.ListAppointmentsInput{
		Status:     c.Query("status"),
		OperatorID: operatorID,
		BusinessID: businessID,
		DateFrom:   c.Query("date_from"),
		DateTo:     c.Query("date_to"),
		Page:       queryInt(c, "page"),
		Limit:      queryInt(c, "limit"),
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Page(c, dto.Appointments(res.Items), res.Total, res.Page, res.Limit)
}

// ======================================================
// GET /appointments/:id
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), middleware.ScopeFrom(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.Appointment(ap))
}

// ======================================================
// PATCH /appointments/:id/cancel
// ======================================================

// Cancel accepts an optional body with a reason.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req cancelAppointmentRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), middleware.ScopeFrom(c), id, req.Reason)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.Appointment(ap))
}

// ======================================================
// PATCH /appointments/:id/{confirm,complete,no-show}
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.changeStatus(c, h.confirm)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.changeStatus(c, h.complete)
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	h.changeStatus(c, h.noShow)
}

func (h *AppointmentHandler) changeStatus(c *gin.Context, uc *ucAppointment.ChangeStatus) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ap, err := uc.Execute(c.Request.Context(), middleware.ScopeFrom(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.Appointment(ap))
}
