package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The router here carries only routes whose tested paths return before any
// database call: input validation rejections and the DB-free query endpoints.
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handlers{}

	router := gin.New()
	router.POST("/categories", h.CreateCategory)
	router.POST("/floors", h.CreateFloor)
	router.POST("/shops", h.CreateShop)
	router.POST("/offers", h.CreateOffer)
	router.POST("/products", h.CreateProduct)
	router.PATCH("/products/:id/info", h.UpdateProductInfo)
	router.GET("/offers/compare", h.CompareOffers)
	router.GET("/offers/discount-preview", h.DiscountPreview)
	router.GET("/search", h.GlobalSearch)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	msg, _ := body["error"].(string)
	return msg
}

func TestCreateCategoryRejectsShortName(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/categories", `{"name": "F"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Category name must be at least 2 characters long", errorMessage(t, w))
}

func TestCreateCategoryRejectsMalformedJSON(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/categories", `{"name": `)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateFloorRejectsOutOfRangeLevel(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodPost, "/floors", `{"name": "Sky Deck", "level": 51}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Floor level must be between -5 and 50", errorMessage(t, w))
}

func TestCreateFloorRequiresLevel(t *testing.T) {
	router := newTestRouter()

	// Level is a pointer binding so an absent level fails fast, while a
	// legitimate level 0 still passes.
	w := doJSON(t, router, http.MethodPost, "/floors", `{"name": "Ground Floor"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateShopRejectsBlankOwner(t *testing.T) {
	router := newTestRouter()

	// Whitespace passes the required binding but not the trim check.
	body := `{
		"name": "TechTrend Mobile Store", "owner": "   ",
		"email": "techtrend@supermall.com", "phone": "+1-555-0101",
		"categoryId": "cat-1", "floorId": "floor-1"
	}`
	w := doJSON(t, router, http.MethodPost, "/shops", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Owner name is required", errorMessage(t, w))
}

func TestCreateOfferRejectsInvertedPrices(t *testing.T) {
	router := newTestRouter()

	body := `{
		"title": "Big Sale", "shopId": "shop-1",
		"originalPrice": 50, "discountedPrice": 80,
		"startDate": "2024-01-01", "endDate": "2024-12-31"
	}`
	w := doJSON(t, router, http.MethodPost, "/offers", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Discounted price must be less than original price", errorMessage(t, w))
}

func TestCreateOfferRejectsBadDates(t *testing.T) {
	router := newTestRouter()

	body := `{
		"title": "Big Sale", "shopId": "shop-1",
		"originalPrice": 100, "discountedPrice": 80,
		"startDate": "2024-12-31", "endDate": "2024-01-01"
	}`
	w := doJSON(t, router, http.MethodPost, "/offers", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "End date must be after start date", errorMessage(t, w))
}

func TestCreateProductRejectsZeroPrice(t *testing.T) {
	router := newTestRouter()

	body := `{"name": "Freebie", "price": 0, "shopId": "shop-1", "categoryId": "cat-1"}`
	w := doJSON(t, router, http.MethodPost, "/products", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Product price must be greater than zero", errorMessage(t, w))
}

func TestUpdateProductInfoRejectsEmptyPatch(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodPatch, "/products/p-1/info", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Nothing to update", errorMessage(t, w))
}

func TestCompareOffersWithNoIDs(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodGet, "/offers/compare?ids=", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Rows []any `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Rows)
}

func TestDiscountPreview(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodGet, "/offers/discount-preview?originalPrice=100&discountedPrice=75", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		DiscountPercentage float64 `json:"discountPercentage"`
		Savings            float64 `json:"savings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 25.0, body.DiscountPercentage)
	assert.Equal(t, 25.0, body.Savings)
}

func TestDiscountPreviewRejectsBadInput(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name  string
		query string
	}{
		{"blank", "originalPrice=&discountedPrice=75"},
		{"not a number", "originalPrice=abc&discountedPrice=75"},
		{"zero original", "originalPrice=0&discountedPrice=0"},
		{"discount above original", "originalPrice=100&discountedPrice=150"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodGet, "/offers/discount-preview?"+tt.query, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGlobalSearchEmptyQuery(t *testing.T) {
	router := newTestRouter()

	w := doJSON(t, router, http.MethodGet, "/search?q=", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Results []any `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotNil(t, body.Results)
	assert.Empty(t, body.Results)
}
