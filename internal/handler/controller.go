package handler

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"

	"ytdiff-go/pkg/differ"
	"ytdiff-go/pkg/extractor"
	"ytdiff-go/pkg/logger"
	"ytdiff-go/pkg/parser"
	"ytdiff-go/pkg/storage"
)

// Controller exposes extraction and comparison over a local HTTP API for
// interactive use. Extracted records are kept in the store, keyed by source
// label, so two uploads can be diffed without round-tripping files.
type Controller struct {
	extractor *extractor.ChannelExtractor
	differ    differ.Comparator
	store     storage.RecordStore
	log       *logger.Logger
}

// NewController wires the API handlers.
func NewController(ext *extractor.ChannelExtractor, cmp differ.Comparator, store storage.RecordStore) *Controller {
	return &Controller{
		extractor: ext,
		differ:    cmp,
		store:     store,
		log:       logger.GetLogger().WithField("component", "api_controller"),
	}
}

// Register mounts all routes on the app.
func (c *Controller) Register(app *fiber.App) {
	api := app.Group("/api/v1")
	api.Post("/extract", c.handleExtract)
	api.Post("/diff", c.handleDiff)
	api.Get("/records/:source", c.handleGetRecord)
	app.Get("/healthz", c.handleHealth)
}

// handleExtract takes raw HTML in the request body and returns the record.
// The ?source= query parameter labels the snapshot.
func (c *Controller) handleExtract(ctx *fiber.Ctx) error {
	source := ctx.Query("source", "upload")

	record, err := c.extractor.Extract(ctx.Context(), bytes.NewReader(ctx.Body()), source)
	if err != nil {
		if errors.Is(err, parser.ErrMalformedHTML) {
			return fiberError(ctx, fiber.StatusBadRequest, err)
		}
		c.log.WithError(err).Error("Extraction failed")
		return fiberError(ctx, fiber.StatusInternalServerError, err)
	}

	if err := c.store.SaveRecord(ctx.Context(), source, record); err != nil {
		c.log.WithError(err).Error("Failed to store record")
		return fiberError(ctx, fiber.StatusInternalServerError, err)
	}

	return ctx.JSON(record)
}

type diffRequest struct {
	First  *extractor.ExtractionRecord `json:"first"`
	Second *extractor.ExtractionRecord `json:"second"`
}

// handleDiff compares two records. They come either inline in the body, or
// by reference to stored sources via ?first= and ?second=.
func (c *Controller) handleDiff(ctx *fiber.Ctx) error {
	opts := differ.Options{Quiet: ctx.QueryBool("quiet")}

	var first, second *extractor.ExtractionRecord
	if firstSrc, secondSrc := ctx.Query("first"), ctx.Query("second"); firstSrc != "" || secondSrc != "" {
		if firstSrc == "" || secondSrc == "" {
			return fiberError(ctx, fiber.StatusBadRequest, errors.New("both first and second sources are required"))
		}
		var err error
		if first, err = c.store.LoadRecord(ctx.Context(), firstSrc); err != nil {
			return storeError(ctx, err)
		}
		if second, err = c.store.LoadRecord(ctx.Context(), secondSrc); err != nil {
			return storeError(ctx, err)
		}
	} else {
		var req diffRequest
		if err := ctx.BodyParser(&req); err != nil {
			return fiberError(ctx, fiber.StatusBadRequest, err)
		}
		if err := storage.ValidateRecord(req.First); err != nil {
			return fiberError(ctx, fiber.StatusBadRequest, err)
		}
		if err := storage.ValidateRecord(req.Second); err != nil {
			return fiberError(ctx, fiber.StatusBadRequest, err)
		}
		first, second = req.First, req.Second
	}

	result, err := c.differ.Compare(ctx.Context(), first, second, opts)
	if err != nil {
		return fiberError(ctx, fiber.StatusInternalServerError, err)
	}
	return ctx.JSON(result)
}

// handleGetRecord returns a previously extracted record by source label.
func (c *Controller) handleGetRecord(ctx *fiber.Ctx) error {
	record, err := c.store.LoadRecord(ctx.Context(), ctx.Params("source"))
	if err != nil {
		return storeError(ctx, err)
	}
	return ctx.JSON(record)
}

func (c *Controller) handleHealth(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "ok"})
}

func storeError(ctx *fiber.Ctx, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fiberError(ctx, fiber.StatusNotFound, err)
	}
	if errors.Is(err, storage.ErrRecordFormat) {
		return fiberError(ctx, fiber.StatusBadRequest, err)
	}
	return fiberError(ctx, fiber.StatusInternalServerError, err)
}

func fiberError(ctx *fiber.Ctx, status int, err error) error {
	return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
}
