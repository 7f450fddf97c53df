package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clintwin/clintwin-backend/internal/http/response"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
	"github.com/clintwin/clintwin-backend/internal/services"
)

// ImageHandler exposes image-based identification.
type ImageHandler struct {
	log   *logger.Logger
	image *services.ImageService
}

func NewImageHandler(image *services.ImageService, log *logger.Logger) *ImageHandler {
	return &ImageHandler{log: log.With("Handler", "ImageHandler"), image: image}
}

func (h *ImageHandler) validFormat(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	for _, f := range h.image.SupportedFormats() {
		if ext == f {
			return true
		}
	}
	return false
}

func parseHints(raw string) ([]services.ClassifierHint, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var hints []services.ClassifierHint
	if err := json.Unmarshal([]byte(raw), &hints); err != nil {
		return nil, fmt.Errorf("classifier_hints: %w", err)
	}
	return hints, nil
}

// Identify handles a multipart upload. Optional form fields: barcode and
// classifier_hints (JSON array of {name, confidence}).
func (h *ImageHandler) Identify(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "missing_image", errors.New("multipart field 'image' is required"))
		return
	}
	defer file.Close()

	if !h.validFormat(header.Filename) {
		response.RespondError(c, http.StatusUnsupportedMediaType, "unsupported_format",
			fmt.Errorf("unsupported image format, accepted: %s", strings.Join(h.image.SupportedFormats(), ", ")))
		return
	}
	if header.Size > int64(h.image.MaxImageSize()) {
		response.RespondError(c, http.StatusRequestEntityTooLarge, "image_too_large",
			fmt.Errorf("image exceeds %dMB limit", h.image.MaxImageSize()/(1024*1024)))
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, int64(h.image.MaxImageSize())+1))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "unreadable_image", err)
		return
	}
	hints, err := parseHints(c.PostForm("classifier_hints"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	response.RespondOK(c, h.image.Identify(c.Request.Context(), data, c.PostForm("barcode"), hints))
}

type identifyBase64Request struct {
	ImageBase64     string                    `json:"image_base64" binding:"required"`
	Barcode         string                    `json:"barcode"`
	ClassifierHints []services.ClassifierHint `json:"classifier_hints"`
}

func (h *ImageHandler) IdentifyBase64(c *gin.Context) {
	var req identifyBase64Request
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	// Tolerate data-url prefixes from mobile clients.
	payload := req.ImageBase64
	if i := strings.Index(payload, ","); i != -1 && strings.HasPrefix(payload, "data:") {
		payload = payload[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_base64", err)
		return
	}
	if len(data) > h.image.MaxImageSize() {
		response.RespondError(c, http.StatusRequestEntityTooLarge, "image_too_large",
			fmt.Errorf("image exceeds %dMB limit", h.image.MaxImageSize()/(1024*1024)))
		return
	}

	response.RespondOK(c, h.image.Identify(c.Request.Context(), data, req.Barcode, req.ClassifierHints))
}

// ExtractInfo reads package text without identifying the medicine.
func (h *ImageHandler) ExtractInfo(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "missing_image", errors.New("multipart field 'image' is required"))
		return
	}
	defer file.Close()

	if !h.validFormat(header.Filename) {
		response.RespondError(c, http.StatusUnsupportedMediaType, "unsupported_format",
			fmt.Errorf("unsupported image format, accepted: %s", strings.Join(h.image.SupportedFormats(), ", ")))
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, int64(h.image.MaxImageSize())+1))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "unreadable_image", err)
		return
	}

	info, err := h.image.ExtractInfo(c.Request.Context(), data)
	if err != nil {
		response.RespondError(c, http.StatusBadGateway, "ocr_failed", err)
		return
	}
	response.RespondOK(c, info)
}

// Formats documents upload constraints for clients.
func (h *ImageHandler) Formats(c *gin.Context) {
	response.RespondOK(c, gin.H{
		"success":           true,
		"supported_formats": h.image.SupportedFormats(),
		"max_size_mb":       h.image.MaxImageSize() / (1024 * 1024),
	})
}
