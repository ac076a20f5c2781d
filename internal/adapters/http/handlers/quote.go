package handlers

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotebook/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotebook/internal/app"
)

// QuoteHandler handles quote-related HTTP endpoints.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		service: service,
	}
}

// ListQuotes handles GET /api/v1/quotes
// Returns one page of the quote list in insertion order.
//
// @Summary List quotes
// @Tags quotes
// @Produce json
// @Param cursor query string false "Cursor from a previous page"
// @Param limit query int false "Page size (1-100)"
// @Success 200 {object} dto.PaginatedResponse[dto.QuoteResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	var req dto.PaginationRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	offset, err := req.Offset()
	if err != nil {
		dto.RespondWithCode(c, dto.ErrorCodeBadRequest, err.Error())
		return
	}

	quotes, hasMore := h.service.Page(c.Request.Context(), offset, req.GetLimit())

	c.JSON(http.StatusOK, dto.NewPaginatedResponse(dto.NewQuoteResponses(quotes), offset, hasMore))
}

// CreateQuote handles POST /api/v1/quotes
// Appends a quote and persists the list.
//
// @Summary Add a quote
// @Tags quotes
// @Accept json
// @Produce json
// @Param quote body dto.CreateQuoteRequest true "Quote"
// @Success 201 {object} dto.QuoteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quotes [post]
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var req dto.CreateQuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	quote, err := h.service.Add(c.Request.Context(), req.Text, req.Category)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuoteResponse(quote))
}

// GetRandomQuote handles GET /api/v1/quotes/random
// Draws a quote from the requested category and remembers the selection.
//
// @Summary Get a random quote
// @Tags quotes
// @Produce json
// @Param category query string false "Category name or all"
// @Success 200 {object} dto.DisplayResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/quotes/random [get]
func (h *QuoteHandler) GetRandomQuote(c *gin.Context) {
	var req dto.RandomQuoteRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	display := h.service.ShowRandom(c.Request.Context(), req.Category)

	c.JSON(http.StatusOK, dto.NewDisplayResponse(display))
}

// GetCurrentQuote handles GET /api/v1/quotes/current
// Returns the quote shown last in this process, or a fresh draw.
//
// @Summary Get the current quote
// @Tags quotes
// @Produce json
// @Success 200 {object} dto.DisplayResponse
// @Router /api/v1/quotes/current [get]
func (h *QuoteHandler) GetCurrentQuote(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewDisplayResponse(h.service.Current(c.Request.Context())))
}

// GetCategories handles GET /api/v1/categories
//
// @Summary List categories
// @Tags quotes
// @Produce json
// @Success 200 {object} dto.RosterResponse
// @Router /api/v1/categories [get]
func (h *QuoteHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewRosterResponse(h.service.Categories(c.Request.Context())))
}

// RegisterQuoteRoutes registers quote routes on the given router group.
// guard runs before every route that mutates the list.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup, guard ...gin.HandlerFunc) {
	rg.GET("/categories", h.GetCategories)

	quotes := rg.Group("/quotes")
	quotes.GET("", h.ListQuotes)
	quotes.POST("", guarded(guard, h.CreateQuote)...)
	quotes.GET("/random", h.GetRandomQuote)
	quotes.GET("/current", h.GetCurrentQuote)
}

// respondBindError answers a request that failed binding or validation.
func respondBindError(c *gin.Context, err error) {
	if dto.IsValidationError(err) {
		dto.RespondWithValidationErrors(c, dto.ValidationErrors(err))
		return
	}

	dto.RespondWithCode(c, dto.ErrorCodeBadRequest, "malformed request")
}

// guarded returns guard followed by handler without sharing guard's backing array.
func guarded(guard []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	return slices.Concat(guard, []gin.HandlerFunc{handler})
}
