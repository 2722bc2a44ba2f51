// internal/handlers/quote.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/quote-manager/internal/i18n"
	"github.com/javajoker/quote-manager/internal/services"
	"github.com/javajoker/quote-manager/internal/utils"
)

type QuoteHandler struct {
	quoteService *services.QuoteService
}

func NewQuoteHandler(quoteService *services.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
	}
}

// POST /quotes
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	created, err := h.quoteService.CreateQuote(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrKitComponentNotFound):
			utils.NotFoundResponse(c, "kit_component")
		case errors.Is(err, services.ErrProductNotFound):
			utils.NotFoundResponse(c, "product")
		case errors.Is(err, services.ErrInvalidQuantity):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyQuoteInvalidQuantity), err.Error())
		case errors.Is(err, services.ErrInvalidColor):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyQuoteInvalidColor), err.Error())
		default:
			c.Error(err)
			utils.InternalErrorResponse(c, "")
		}
		return
	}

	utils.CreatedResponse(c, created)
}

// GET /quotes/:id
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	quote, err := h.quoteService.GetQuote(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrQuoteNotFound) {
			utils.NotFoundResponse(c, "quote")
			return
		}
		c.Error(err)
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, quote)
}
