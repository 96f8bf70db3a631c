package listing

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"estate-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MediaField is the multipart field carrying uploaded files.
const MediaField = "media"

// Response is the envelope of every listing endpoint.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Handler handles HTTP requests for listings.
type Handler struct {
	service    *Service
	uploadDir  string
	production bool
}

// NewHandler creates a new HTTP handler. Uploaded files are written to uploadDir.
func NewHandler(service *Service, uploadDir string, production bool) *Handler {
	return &Handler{service: service, uploadDir: uploadDir, production: production}
}

// RegisterRoutes registers the listing routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/listings")
	group.Post("/", h.HandleCreateListing)
	group.Get("/:id", h.HandleGetListing)
	group.Put("/:id", h.HandleUpdateListing)
	group.Delete("/:id", h.HandleDeleteListing)
}

// HandleUpdateListing updates a listing and reconciles its media.
// @Summary Update Listing
// @Description Update listing fields and media in one transaction. Files go in the "media" field.
// @Tags listings
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Listing ID"
// @Param title formData string false "Title"
// @Param description formData string false "Description"
// @Param propertyType formData string false "JSON object"
// @Param location formData string false "JSON object"
// @Param price formData string false "JSON object"
// @Param details formData string false "JSON object"
// @Param amenities formData string false "JSON array"
// @Param removedMediaIds formData string false "JSON array of public ids"
// @Param mediaOrder formData string false "JSON array of public ids and new-* markers"
// @Param mediaTempIds formData string false "JSON array aligned with the uploaded files"
// @Param coverMediaPublicId formData string false "Cover public id"
// @Param media formData file false "Images or videos"
// @Success 200 {object} Response "Listing updated"
// @Failure 400 {object} Response "Invalid request"
// @Failure 404 {object} Response "Listing not found"
// @Failure 500 {object} Response "Internal Server Error"
// @Router /listings/{id} [put]
func (h *Handler) HandleUpdateListing(c *fiber.Ctx) error {
	id := c.Params("id")
	l := logger.WithRayID(h.service.Logger(), c).With(zap.String("listing_id", id))

	form, err := c.MultipartForm()
	if err != nil {
		return h.fail(c, fmt.Errorf("%w: expected multipart form: %v", ErrValidation, err))
	}

	files, err := h.saveUploads(c, form.File[MediaField])
	if err != nil {
		l.Error("Failed to store uploads", zap.Error(err))
		return h.fail(c, err)
	}

	result, err := h.service.UpdateListing(c.UserContext(), id, RawUpdateFromForm(form.Value), files)
	if err != nil {
		if StatusOf(err) >= fiber.StatusInternalServerError {
			l.Error("Listing update failed", zap.Error(err))
		}
		return h.fail(c, err)
	}

	l.Info("Listing updated", zap.Int("media_count", result.MediaCount))
	return c.JSON(Response{
		Success: true,
		Message: "Listing updated successfully",
		Data:    result,
	})
}

// HandleCreateListing creates a listing without media.
// @Summary Create Listing
// @Tags listings
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Success 201 {object} Response "Listing created"
// @Failure 400 {object} Response "Invalid request"
// @Router /listings [post]
func (h *Handler) HandleCreateListing(c *fiber.Ctx) error {
	values := map[string][]string{}
	if form, err := c.MultipartForm(); err == nil {
		values = form.Value
	} else {
		c.Request().PostArgs().VisitAll(func(k, v []byte) {
			values[string(k)] = append(values[string(k)], string(v))
		})
	}

	listing, err := h.service.CreateListing(c.UserContext(), RawUpdateFromForm(values))
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Message: "Listing created successfully",
		Data:    listing,
	})
}

// HandleGetListing returns a listing.
// @Summary Get Listing
// @Tags listings
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} Response "Listing"
// @Failure 404 {object} Response "Listing not found"
// @Router /listings/{id} [get]
func (h *Handler) HandleGetListing(c *fiber.Ctx) error {
	listing, err := h.service.GetListing(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(Response{Success: true, Message: "OK", Data: listing})
}

// HandleDeleteListing deletes a listing and its media.
// @Summary Delete Listing
// @Tags listings
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} Response "Listing deleted"
// @Failure 404 {object} Response "Listing not found"
// @Router /listings/{id} [delete]
func (h *Handler) HandleDeleteListing(c *fiber.Ctx) error {
	if err := h.service.DeleteListing(c.UserContext(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(Response{Success: true, Message: "Listing deleted successfully"})
}

// saveUploads writes multipart files to the upload directory. Limits are
// checked before anything touches disk.
func (h *Handler) saveUploads(c *fiber.Ctx, headers []*multipart.FileHeader) ([]PendingUpload, error) {
	opts := h.service.opts
	if len(headers) > opts.MaxFiles {
		return nil, fmt.Errorf("%w: at most %d files per request", ErrValidation, opts.MaxFiles)
	}
	for _, fh := range headers {
		if opts.MaxFileSize > 0 && fh.Size > opts.MaxFileSize {
			return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrValidation, fh.Filename, opts.MaxFileSize)
		}
	}

	files := make([]PendingUpload, 0, len(headers))
	for _, fh := range headers {
		dst := filepath.Join(h.uploadDir, uuid.NewString()+strings.ToLower(filepath.Ext(fh.Filename)))
		if err := c.SaveFile(fh, dst); err != nil {
			h.service.cleanup(files)
			return nil, fmt.Errorf("failed to save %s: %w", fh.Filename, err)
		}
		files = append(files, PendingUpload{
			LocalPath:    dst,
			MimeType:     fh.Header.Get(fiber.HeaderContentType),
			OriginalName: fh.Filename,
			Size:         fh.Size,
		})
	}
	return files, nil
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	err = Classify(err)
	resp := Response{Success: false, Message: MessageOf(err)}
	if !h.production {
		resp.Error = err.Error()
	}
	return c.Status(StatusOf(err)).JSON(resp)
}
