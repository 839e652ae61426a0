package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/slot-scheduler/internal/audit"
	"github.com/BruksfildServices01/slot-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/slot-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/slot-scheduler/internal/middleware"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
)

// ServiceCatalog is the storage the catalog endpoints need.
type ServiceCatalog interface {
	GetBusiness(ctx context.Context, id uint) (*models.Business, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)
	ListServices(ctx context.Context, businessID uint) ([]models.Service, error)
	CreateService(ctx context.Context, svc *models.Service) error
	SaveService(ctx context.Context, svc *models.Service) error
}

// ======================================================
// HANDLER
// ======================================================

type ServiceHandler struct {
	catalog ServiceCatalog
	audit   *audit.Dispatcher
	log     *zap.Logger
}

func NewServiceHandler(catalog ServiceCatalog, audit *audit.Dispatcher, log *zap.Logger) *ServiceHandler {
	return &ServiceHandler{catalog: catalog, audit: audit, log: log}
}

// ======================================================
// REQUESTS
// ======================================================

type createServiceRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes" binding:"required"`
	PriceCents      int64  `json:"price_cents"`
}

type updateServiceRequest struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	DurationMinutes *int    `json:"duration_minutes"`
	PriceCents      *int64  `json:"price_cents"`
	Active          *bool   `json:"active"`
}

func validateService(svc *models.Service) error {
	if strings.TrimSpace(svc.Name) == "" || len(svc.Name) > 100 {
		return httperr.Validation("invalid_service_name")
	}
	if len(svc.Description) > 255 {
		return httperr.Validation("invalid_service_description")
	}
	if err := slot.ValidateDuration(svc.DurationMinutes); err != nil {
		return err
	}
	if svc.PriceCents < 0 {
		return httperr.Validation("invalid_price")
	}
	return nil
}

// ======================================================
// GET /businesses/:id/services
// ======================================================

// List shows the whole catalog to whoever manages the business and only
// active services to everyone else.
func (h *ServiceHandler) List(c *gin.Context) {
	businessID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	b, err := h.catalog.GetBusiness(ctx, businessID)
	if err != nil {
		httperr.Respond(c, h.log, httperr.FromLookup(err, "business_not_found", "get business"))
		return
	}

	list, err := h.catalog.ListServices(ctx, b.ID)
	if err != nil {
		httperr.Respond(c, h.log, httperr.Storage("list services", err))
		return
	}

	if access.CheckBusiness(b, middleware.ScopeFrom(c)) != nil {
		active := list[:0]
		for _, svc := range list {
			if svc.Active {
				active = append(active, svc)
			}
		}
		list = active
	}

	httpresp.List(c, list)
}

// ======================================================
// POST /businesses/:id/services
// ======================================================

func (h *ServiceHandler) Create(c *gin.Context) {
	businessID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req createServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	scope := middleware.ScopeFrom(c)

	b, err := h.catalog.GetBusiness(ctx, businessID)
	if err != nil {
		httperr.Respond(c, h.log, httperr.FromLookup(err, "business_not_found", "get business"))
		return
	}
	if err := access.CheckBusiness(b, scope); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	svc := &models.Service{
		BusinessID:      b.ID,
		Name:            strings.TrimSpace(req.Name),
		Description:     strings.TrimSpace(req.Description),
		DurationMinutes: req.DurationMinutes,
		PriceCents:      req.PriceCents,
		Active:          true,
	}
	if err := validateService(svc); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if err := h.catalog.CreateService(ctx, svc); err != nil {
		httperr.Respond(c, h.log, httperr.Storage("create service", err))
		return
	}

	h.record(scope, b.ID, "service_created", svc)
	httpresp.Created(c, svc)
}

// ======================================================
// PATCH /services/:id
// ======================================================

func (h *ServiceHandler) Update(c *gin.Context) {
	serviceID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req updateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	scope := middleware.ScopeFrom(c)

	svc, err := h.catalog.GetService(ctx, serviceID)
	if err != nil {
		httperr.Respond(c, h.log, httperr.FromLookup(err, "service_not_found", "get service"))
		return
	}

	b, err := h.catalog.GetBusiness(ctx, svc.BusinessID)
	if err != nil {
		httperr.Respond(c, h.log, httperr.FromLookup(err, "business_not_found", "get business"))
		return
	}
	if err := access.CheckBusiness(b, scope); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		svc.Description = strings.TrimSpace(*req.Description)
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.PriceCents != nil {
		svc.PriceCents = *req.PriceCents
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := validateService(svc); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if err := h.catalog.SaveService(ctx, svc); err != nil {
		httperr.Respond(c, h.log, httperr.Storage("update service", err))
		return
	}

	h.record(scope, b.ID, "service_updated", svc)
	httpresp.OK(c, svc)
}

func (h *ServiceHandler) record(scope access.Scope, businessID uint, action string, svc *models.Service) {
	var userID *uint
	if scope.UserID != 0 {
		id := scope.UserID
		userID = &id
	}
	id := svc.ID
	h.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		UserID:     userID,
		Action:     action,
		Entity:     "service",
		EntityID:   &id,
		Metadata: map[string]any{
			"name":             svc.Name,
			"duration_minutes": svc.DurationMinutes,
			"price_cents":      svc.PriceCents,
			"active":           svc.Active,
		},
	})
}
