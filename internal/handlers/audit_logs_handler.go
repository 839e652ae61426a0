package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/slot-scheduler/internal/audit"
	"github.com/BruksfildServices01/slot-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/slot-scheduler/internal/middleware"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
	"github.com/BruksfildServices01/slot-scheduler/internal/timezone"
)

// BusinessLookup resolves the business an audit query is scoped to.
type BusinessLookup interface {
	GetBusiness(ctx context.Context, id uint) (*models.Business, error)
}

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs       *audit.Logger
	businesses BusinessLookup
	log        *zap.Logger
}

func NewAuditLogsHandler(logs *audit.Logger, businesses BusinessLookup, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, businesses: businesses, log: log}
}

// ======================================================
// GET /businesses/:id/audit-logs
// ======================================================

func (h *AuditLogsHandler) List(c *gin.Context) {
	businessID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()

	b, err := h.businesses.GetBusiness(ctx, businessID)
	if err != nil {
		httperr.Respond(c, h.log, httperr.FromLookup(err, "business_not_found", "get business"))
		return
	}
	if err := access.CheckBusiness(b, middleware.ScopeFrom(c)); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	f := audit.ListFilter{
		BusinessID: b.ID,
		Action:     c.Query("action"),
		Entity:     c.Query("entity"),
		Page:       queryInt(c, "page"),
		Limit:      queryInt(c, "limit"),
	}

	// --------------------------------------------------
	// Date bounds (business calendar days)
	// --------------------------------------------------
	loc := timezone.Location(b.Timezone)

	if raw := c.Query("from"); raw != "" {
		from, err := time.ParseInLocation(timezone.DateLayout, raw, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_from", "invalid from")
			return
		}
		f.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.ParseInLocation(timezone.DateLayout, raw, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_to", "invalid to")
			return
		}
		end := to.AddDate(0, 0, 1)
		f.To = &end
	}

	logs, total, err := h.logs.List(ctx, f)
	if err != nil {
		httperr.Respond(c, h.log, httperr.Storage("list audit logs", err))
		return
	}

	page, limit := audit.NormalizePage(f.Page, f.Limit)
	httpresp.Page(c, logs, total, page, limit)
}
