package integrity

import (
	"column-sync/core/logger"
	"column-sync/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/structure", h.HandleStructureCheck)
	group.Get("/schema", h.HandleSchemaCheck)
}

// HandleIntegrityCheck runs every check concurrently without fixing anything.
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	var structure, schema any
	var g errgroup.Group

	g.Go(func() error {
		if report, err := h.service.CheckStructure(c.Context()); err != nil {
			structure = fiber.Map{"status": "error", "error": err.Error()}
		} else {
			structure = report
		}
		return nil
	})

	g.Go(func() error {
		if report, err := h.service.CheckSchema(); err != nil {
			schema = fiber.Map{"status": "error", "error": err.Error()}
		} else {
			schema = report
		}
		return nil
	})

	_ = g.Wait()

	return c.JSON(fiber.Map{
		"structure": structure,
		"schema":    schema,
	})
}

// HandleStructureCheck checks and, with ?fix=true, repairs the bucket layout.
func (h *Handler) HandleStructureCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := utils.ToBool(c.Query("fix"))

	report, err := h.service.CheckStructure(c.Context())
	if err != nil {
		l.Error("Structure check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(report.Missing) > 0 || !report.BucketExists {
		l.Warn("Missing structure detected",
			zap.Bool("bucket_exists", report.BucketExists),
			zap.Strings("missing", report.Missing))

		if fix {
			l.Info("Attempting to fix missing structure")
			if err := h.service.FixStructure(c.Context(), report); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to fix structure",
					"details": err.Error(),
					"missing": report.Missing,
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"fixed":  report.Missing,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":        "checked",
		"bucket_exists": report.BucketExists,
		"missing":       report.Missing,
	})
}

// HandleSchemaCheck checks and, with ?fix=true, migrates the column store.
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting schema check")

	if utils.ToBool(c.Query("fix")) {
		if err := h.service.FixSchema(c.Context()); err != nil {
			l.Error("Schema migration failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to fix schema",
				"details": err.Error(),
			})
		}
		l.Info("Schema migrated")
	}

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(report)
}
