package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/javajoker/quote-manager/internal/config"
	"github.com/javajoker/quote-manager/internal/database"
	"github.com/javajoker/quote-manager/internal/handlers"
	"github.com/javajoker/quote-manager/internal/middleware"
	"github.com/javajoker/quote-manager/internal/models"
	"github.com/javajoker/quote-manager/internal/services"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
	Meta json.RawMessage `json:"meta"`
}

type HandlersTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := database.Initialize(config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		SQLitePath:   "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	})
	suite.Require().NoError(err)
	suite.Require().NoError(database.RunMigrations(db))
	suite.T().Cleanup(func() { database.Close(db) })
	suite.db = db

	catalogService := services.NewCatalogService(db)
	productHandler := handlers.NewProductHandler(catalogService)
	quoteHandler := handlers.NewQuoteHandler(services.NewQuoteService(db, false))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.I18nMiddleware("en"))
	r.POST("/seed", productHandler.Seed)
	r.GET("/products", productHandler.GetProducts)
	r.GET("/products/:id", productHandler.GetProduct)
	r.POST("/quotes", quoteHandler.CreateQuote)
	r.GET("/quotes/:id", quoteHandler.GetQuote)
	suite.router = r
}

func (suite *HandlersTestSuite) perform(method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var reqBody []byte
	switch b := body.(type) {
	case nil:
	case string:
		reqBody = []byte(b)
	default:
		var err error
		reqBody, err = json.Marshal(b)
		suite.Require().NoError(err)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var resp envelope
	if w.Body.Len() > 0 {
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w, resp
}

func (suite *HandlersTestSuite) seed() []models.Product {
	w, _ := suite.perform(http.MethodPost, "/seed", nil)
	suite.Require().Equal(http.StatusNoContent, w.Code)

	w, resp := suite.perform(http.MethodGet, "/products", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var products []models.Product
	suite.Require().NoError(json.Unmarshal(resp.Data, &products))
	return products
}

func (suite *HandlersTestSuite) TestListProductsEmpty() {
	w, resp := suite.perform(http.MethodGet, "/products", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.True(suite.T(), resp.Success)
	assert.JSONEq(suite.T(), `[]`, string(resp.Data))
}

func (suite *HandlersTestSuite) TestSeedAndListProducts() {
	products := suite.seed()
	suite.Require().Len(products, 5)

	// Seeding again leaves the catalog unchanged.
	suite.Len(suite.seed(), 5)

	w, resp := suite.perform(http.MethodGet, "/products", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var raw []map[string]interface{}
	suite.Require().NoError(json.Unmarshal(resp.Data, &raw))
	first := raw[0]
	suite.Equal("ACME Basic AC", first["name"])
	suite.Equal(float64(100), first["price"])
	suite.Equal([]interface{}{}, first["colors"])
	suite.Equal([]interface{}{}, first["kit_components"])
	suite.Equal(false, first["has_colors"])
	suite.Equal(false, first["is_kit"])
}

func (suite *HandlersTestSuite) TestListProductsPaginated() {
	suite.seed()

	w, resp := suite.perform(http.MethodGet, "/products?page=2&limit=2", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal("5", w.Header().Get("X-Total-Count"))

	var products []models.Product
	suite.Require().NoError(json.Unmarshal(resp.Data, &products))
	suite.Require().Len(products, 2)
	suite.Equal("ACME Wall Bracket", products[0].Name)

	w, resp = suite.perform(http.MethodGet, "/products?is_kit=true", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Require().NoError(json.Unmarshal(resp.Data, &products))
	suite.Require().Len(products, 1)
	suite.True(products[0].IsKit)
}

func (suite *HandlersTestSuite) TestGetProduct() {
	products := suite.seed()

	w, resp := suite.perform(http.MethodGet, "/products/2", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var product models.Product
	suite.Require().NoError(json.Unmarshal(resp.Data, &product))
	suite.Equal(products[1].Name, product.Name)

	w, resp = suite.perform(http.MethodGet, "/products/999", nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("NOT_FOUND", resp.Error.Code)

	w, _ = suite.perform(http.MethodGet, "/products/abc", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestCreateAndGetQuote() {
	products := suite.seed()
	basic, pro, bracket, kit := products[0], products[1], products[2], products[4]

	w, resp := suite.perform(http.MethodPost, "/quotes", map[string]interface{}{
		"customer": "John Doe",
		"items": []map[string]interface{}{
			{"product_id": basic.ID, "quantity": 2},
			{"product_id": pro.ID, "quantity": 1, "color": "black"},
			{"product_id": kit.ID, "quantity": 1, "kit_order": []uint{bracket.ID, pro.ID}},
		},
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID    uint    `json:"id"`
		Total float64 `json:"total"`
	}
	suite.Require().NoError(json.Unmarshal(resp.Data, &created))
	suite.Equal(float64(200+180+25+180), created.Total)

	w, resp = suite.perform(http.MethodGet, "/quotes/"+jsonNumber(created.ID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{
		"id": `+jsonNumber(created.ID)+`,
		"customer": "John Doe",
		"total": 585,
		"items": [
			{"product_id": 1, "product_name": "ACME Basic AC", "quantity": 2, "color": null, "order": 0, "is_kit_component": false},
			{"product_id": 3, "product_name": "ACME Wall Bracket", "quantity": 1, "color": null, "order": 0, "is_kit_component": true},
			{"product_id": 2, "product_name": "ACME Pro AC", "quantity": 1, "color": "black", "order": 1, "is_kit_component": false},
			{"product_id": 2, "product_name": "ACME Pro AC", "quantity": 1, "color": null, "order": 1, "is_kit_component": true}
		]
	}`, string(resp.Data))
}

func (suite *HandlersTestSuite) TestCreateQuoteValidation() {
	w, resp := suite.perform(http.MethodPost, "/quotes", map[string]interface{}{
		"items": []map[string]interface{}{},
	})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("VALIDATION_ERROR", resp.Error.Code)
	suite.Contains(string(resp.Error.Details), `"customer"`)

	w, resp = suite.perform(http.MethodPost, "/quotes", map[string]interface{}{"customer": "X"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(string(resp.Error.Details), `"items"`)

	w, resp = suite.perform(http.MethodPost, "/quotes", map[string]interface{}{
		"customer": "X",
		"items":    []map[string]interface{}{{"quantity": 1}},
	})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(string(resp.Error.Details), `items[0].product_id`)

	w, resp = suite.perform(http.MethodPost, "/quotes", `{"customer":`)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("BAD_REQUEST", resp.Error.Code)
}

func (suite *HandlersTestSuite) TestCreateQuoteNotFound() {
	products := suite.seed()
	kit := products[4]

	w, resp := suite.perform(http.MethodPost, "/quotes", map[string]interface{}{
		"customer": "X",
		"items":    []map[string]interface{}{{"product_id": 999}},
	})
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("product.not_found", resp.Error.Message)

	w, resp = suite.perform(http.MethodPost, "/quotes", map[string]interface{}{
		"customer": "X",
		"items":    []map[string]interface{}{{"product_id": kit.ID, "kit_order": []uint{999}}},
	})
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("kit_component.not_found", resp.Error.Message)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Quote{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *HandlersTestSuite) TestGetQuoteNotFound() {
	w, resp := suite.perform(http.MethodGet, "/quotes/42", nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.False(resp.Success)

	w, _ = suite.perform(http.MethodGet, "/quotes/0", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func jsonNumber(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func TestHandlersSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func TestQuoteItemRequestDistinguishesMissingKitOrder(t *testing.T) {
	var req services.CreateQuoteRequest
	require.NoError(t, json.Unmarshal([]byte(`{"customer":"X","items":[{"product_id":5},{"product_id":5,"kit_order":[]}]}`), &req))

	assert.Nil(t, req.Items[0].KitOrder)
	assert.NotNil(t, req.Items[1].KitOrder)
	assert.Nil(t, req.Items[0].Quantity)
}
