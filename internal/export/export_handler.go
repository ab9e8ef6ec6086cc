package export

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dhruv2311-dot/odoo-gcet/internal/attendance"
	attendanceerrors "github.com/dhruv2311-dot/odoo-gcet/internal/attendance/errors"
	"github.com/dhruv2311-dot/odoo-gcet/internal/middleware"
	"github.com/dhruv2311-dot/odoo-gcet/internal/shared/apperror"
	"github.com/dhruv2311-dot/odoo-gcet/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("export.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("export.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("export request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) ExportAttendance(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	f := attendance.Filter{
		UserID: c.Query("user_id"),
		Status: c.Query("status"),
	}
	from, to, err := dateRangeFromQuery(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	f.From = from
	f.To = to

	file, err := h.service.ExportAttendance(c.Request.Context(), identity, f, c.DefaultQuery("format", FormatCSV))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	writeFile(c, file)
}

func (h *Handler) ExportLeaves(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized", nil)
		return
	}

	f := LeaveFilter{
		UserID:    c.Query("user_id"),
		Status:    c.Query("status"),
		LeaveType: c.Query("leave_type"),
	}
	from, to, err := dateRangeFromQuery(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	f.From = from
	f.To = to

	file, err := h.service.ExportLeaves(c.Request.Context(), identity, f, c.DefaultQuery("format", FormatCSV))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	writeFile(c, file)
}

func dateRangeFromQuery(c *gin.Context) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, nil, attendanceerrors.ErrInvalidDateFormat
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, nil, attendanceerrors.ErrInvalidDateFormat
		}
		to = &t
	}
	return from, to, nil
}

func writeFile(c *gin.Context, file File) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
