package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/slot-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/slot-scheduler/internal/httperr"
	"github.com/BruksfildServices01/slot-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/slot-scheduler/internal/middleware"
	"github.com/BruksfildServices01/slot-scheduler/internal/models"
	"github.com/BruksfildServices01/slot-scheduler/internal/notification"
)

// MeDirectory is what /me reads about the caller.
type MeDirectory interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetOperatorByUserID(ctx context.Context, userID uint) (*models.Operator, error)
}

type MeHandler struct {
	dir    MeDirectory
	notify *notification.Dispatcher
	log    *zap.Logger
}

func NewMeHandler(dir MeDirectory, notify *notification.Dispatcher, log *zap.Logger) *MeHandler {
	return &MeHandler{dir: dir, notify: notify, log: log}
}

// GetMe echoes the resolved scope plus the caller's user record and, for
// operators, the calendar they own.
func (h *MeHandler) GetMe(c *gin.Context) {
	ctx := c.Request.Context()
	scope := middleware.ScopeFrom(c)

	resp := gin.H{
		"scope": gin.H{
			"role":      scope.Role,
			"tenant_id": scope.TenantID,
			"user_id":   scope.UserID,
		},
	}

	user, err := h.dir.GetUser(ctx, scope.UserID)
	switch {
	case err == nil:
		resp["user"] = gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"phone": user.Phone,
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		httperr.Respond(c, h.log, httperr.Storage("get user", err))
		return
	}

	if scope.Role == access.RoleOperator {
		op, err := h.dir.GetOperatorByUserID(ctx, scope.UserID)
		switch {
		case err == nil:
			resp["operator"] = op
		case !errors.Is(err, gorm.ErrRecordNotFound):
			httperr.Respond(c, h.log, httperr.Storage("get operator", err))
			return
		}
	}

	httpresp.OK(c, resp)
}

// Notifications lists the caller's notifications, newest first.
func (h *MeHandler) Notifications(c *gin.Context) {
	scope := middleware.ScopeFrom(c)

	list, err := h.notify.List(c.Request.Context(), scope.UserID, c.Query("unread") == "true")
	if err != nil {
		httperr.Respond(c, h.log, httperr.Storage("list notifications", err))
		return
	}

	httpresp.List(c, list)
}
