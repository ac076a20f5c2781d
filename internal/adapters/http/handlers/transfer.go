package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotebook/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotebook/internal/app"
)

// DefaultMaxImportBytes caps the size of an import upload.
const DefaultMaxImportBytes int64 = 1 << 20

// importFormField is the multipart field carrying the import file.
const importFormField = "file"

// TransferHandler serves export and import of the whole list.
type TransferHandler struct {
	service  *app.QuoteService
	maxBytes int64
	onImport func(int)
}

// TransferHandlerConfig contains the options of the transfer handler.
type TransferHandlerConfig struct {
	// MaxImportBytes caps the request body. Defaults to DefaultMaxImportBytes.
	MaxImportBytes int64

	// OnImport is called with the record count of every successful import.
	OnImport func(int)
}

// NewTransferHandler creates a new transfer handler.
func NewTransferHandler(service *app.QuoteService, cfg TransferHandlerConfig) *TransferHandler {
	maxBytes := cfg.MaxImportBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImportBytes
	}

	return &TransferHandler{
		service:  service,
		maxBytes: maxBytes,
		onImport: cfg.OnImport,
	}
}

// ExportQuotes handles GET /api/v1/quotes/export
// Downloads the list as an indented JSON file.
//
// @Summary Export quotes
// @Tags transfer
// @Produce json
// @Success 200 {file} file
// @Router /api/v1/quotes/export [get]
func (h *TransferHandler) ExportQuotes(c *gin.Context) {
	data, err := h.service.Export(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": app.ExportFilename})
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, "application/json", data)
}

// ImportQuotes handles POST /api/v1/quotes/import
// Appends the valid records of an uploaded file. The file is read from the
// multipart field "file", or from the raw body for any other content type.
//
// @Summary Import quotes
// @Tags transfer
// @Accept json,mpfd
// @Produce json
// @Success 200 {object} dto.ImportResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Router /api/v1/quotes/import [post]
func (h *TransferHandler) ImportQuotes(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)

	contents, err := h.readUpload(c)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			dto.RespondWithCode(c, dto.ErrorCodePayloadTooLarge,
				fmt.Sprintf("import file exceeds %d bytes", tooLarge.Limit))
			return
		}

		dto.RespondWithCode(c, dto.ErrorCodeBadRequest, err.Error())

		return
	}

	n, err := h.service.Import(c.Request.Context(), contents)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if h.onImport != nil {
		h.onImport(n)
	}

	c.JSON(http.StatusOK, dto.ImportResponse{
		Imported: n,
		Message:  app.ImportSummary(n),
	})
}

func (h *TransferHandler) readUpload(c *gin.Context) ([]byte, error) {
	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		contents, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, fmt.Errorf("reading body: %w", err)
		}

		return contents, nil
	}

	header, err := c.FormFile(importFormField)
	if err != nil {
		return nil, fmt.Errorf("reading form field %q: %w", importFormField, err)
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload: %w", err)
	}
	defer file.Close()

	contents, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	return contents, nil
}

// RegisterTransferRoutes registers export and import on the given router group.
// guard runs before the import route.
func (h *TransferHandler) RegisterTransferRoutes(rg *gin.RouterGroup, guard ...gin.HandlerFunc) {
	quotes := rg.Group("/quotes")
	quotes.GET("/export", h.ExportQuotes)
	quotes.POST("/import", guarded(guard, h.ImportQuotes)...)
}
