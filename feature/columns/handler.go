package columns

import (
	"bytes"

	"column-sync/core/logger"
	"column-sync/core/reconcile"
	"column-sync/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for columns.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the column routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/columns")
	group.Get("/", h.HandleList)
	group.Post("/sync", h.HandleSync)
}

// HandleSync runs a sync. The input is, in order of precedence, a multipart
// "file" upload, the bucket object named by ?object=, the raw request body,
// or the configured CSV path. ?delete_missing=true enables deletion.
// Precondition failures answer 422 with the plain message.
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	opts := h.service.Options()
	if v := c.Query("delete_missing"); v != "" {
		opts.DeleteMissing = utils.ToBool(v)
	}

	ctx := c.UserContext()
	var (
		res *Result
		err error
	)
	if fh, ferr := c.FormFile("file"); ferr == nil {
		f, oerr := fh.Open()
		if oerr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": oerr.Error()})
		}
		defer f.Close()
		res, err = h.service.SyncReader(ctx, f, opts)
	} else if object := c.Query("object"); object != "" {
		res, err = h.service.SyncObject(ctx, object, opts)
	} else if body := c.Body(); len(body) > 0 {
		res, err = h.service.SyncReader(ctx, bytes.NewReader(body), opts)
	} else {
		res, err = h.service.SyncFile(ctx, h.service.cfg.CSVPath, opts)
	}

	if msg, ok := reconcile.PreconditionMessage(err); ok {
		l.Warn("Column sync precondition failed", zap.Error(err))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": msg,
		})
	}
	if err != nil {
		l.Error("Column sync failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	l.Info("Column sync complete", zap.String("summary", res.Summary))
	return c.JSON(res)
}

// HandleList returns the placed columns. ?limit= caps the number returned.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	views, err := h.service.List(c.UserContext())
	if err != nil {
		l.Error("Column listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if limit := utils.ToInt(c.Query("limit")); limit > 0 && limit < len(views) {
		views = views[:limit]
	}
	return c.JSON(fiber.Map{
		"count":   len(views),
		"columns": views,
	})
}
