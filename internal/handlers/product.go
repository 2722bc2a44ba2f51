// internal/handlers/product.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/quote-manager/internal/i18n"
	"github.com/javajoker/quote-manager/internal/services"
	"github.com/javajoker/quote-manager/internal/utils"
)

type ProductHandler struct {
	catalogService *services.CatalogService
}

func NewProductHandler(catalogService *services.CatalogService) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
	}
}

// GET /products
//
// Without page or limit the full catalog is returned in creation order.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	if !utils.IsPaginated(c) && c.Query("search") == "" && c.Query("is_kit") == "" {
		products, err := h.catalogService.ListProducts(c.Request.Context())
		if err != nil {
			utils.InternalErrorResponse(c, err.Error())
			return
		}
		utils.SuccessResponse(c, products)
		return
	}

	params := utils.GetPaginationParams(c)
	searchParams := services.ProductSearchParams{
		PaginationParams: params,
	}

	if isKitStr := c.Query("is_kit"); isKitStr != "" {
		if isKit, err := strconv.ParseBool(isKitStr); err == nil {
			searchParams.IsKit = &isKit
		}
	}

	products, total, err := h.catalogService.SearchProducts(c.Request.Context(), searchParams)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(products, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c, "product")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, product)
}

// POST /seed
func (h *ProductHandler) Seed(c *gin.Context) {
	seeded, err := h.catalogService.Seed(c.Request.Context())
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	logrus.WithField("seeded", seeded).Debug("Seed requested")
	utils.NoContentResponse(c)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "id"), nil)
		return 0, false
	}
	return uint(id), true
}
