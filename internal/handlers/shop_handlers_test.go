package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	h := &Handlers{DB: db}
	router := gin.New()
	router.GET("/shops", h.GetAllShops)
	router.PUT("/shops/:id", h.UpdateShop)
	return router, mock
}

const validShopBody = `{
	"name": "TechTrend Mobile Store", "owner": "Sarah Johnson",
	"email": "techtrend@supermall.com", "phone": "+1-555-0101",
	"categoryId": "cat-1", "floorId": "floor-new"
}`

func TestUpdateShopRejectsUnknownCategory(t *testing.T) {
	router, mock := newMockRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM categories WHERE id = ?")).
		WithArgs("cat-1").
		WillReturnError(sql.ErrNoRows)

	w := doJSON(t, router, http.MethodPut, "/shops/shop-1", validShopBody)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Selected category does not exist", errorMessage(t, w))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateShopMovesStoreCountBetweenFloors(t *testing.T) {
	router, mock := newMockRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM categories WHERE id = ?")).
		WithArgs("cat-1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT level FROM floors WHERE id = ?")).
		WithArgs("floor-new").
		WillReturnRows(sqlmock.NewRows([]string{"level"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT floor_id FROM shops WHERE id = ?")).
		WithArgs("shop-1").
		WillReturnRows(sqlmock.NewRows([]string{"floor_id"}).AddRow("floor-old"))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE shops SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE floors SET store_count = GREATEST(store_count - 1, 0) WHERE id = ?")).
		WithArgs("floor-old").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE floors SET store_count = store_count + 1 WHERE id = ?")).
		WithArgs("floor-new").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := doJSON(t, router, http.MethodPut, "/shops/shop-1", validShopBody)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateShopOnSameFloorLeavesCountersAlone(t *testing.T) {
	router, mock := newMockRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM categories WHERE id = ?")).
		WithArgs("cat-1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT level FROM floors WHERE id = ?")).
		WithArgs("floor-new").
		WillReturnRows(sqlmock.NewRows([]string{"level"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT floor_id FROM shops WHERE id = ?")).
		WithArgs("shop-1").
		WillReturnRows(sqlmock.NewRows([]string{"floor_id"}).AddRow("floor-new"))

	// Same floor: the shop row is updated and the counters stay untouched.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE shops SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := doJSON(t, router, http.MethodPut, "/shops/shop-1", validShopBody)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateShopMissingShopReturns404(t *testing.T) {
	router, mock := newMockRouter(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM categories WHERE id = ?")).
		WithArgs("cat-1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT level FROM floors WHERE id = ?")).
		WithArgs("floor-new").
		WillReturnRows(sqlmock.NewRows([]string{"level"}).AddRow(3))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT floor_id FROM shops WHERE id = ?")).
		WithArgs("shop-ghost").
		WillReturnError(sql.ErrNoRows)

	w := doJSON(t, router, http.MethodPut, "/shops/shop-ghost", validShopBody)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Shop not found", errorMessage(t, w))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func shopRow(rows *sqlmock.Rows, id, name string, created any) *sqlmock.Rows {
	return rows.AddRow(id, name, "Owner", "o@supermall.com", "+1-555-0000", "", "desc",
		"cat-1", "floor-1", 1, "MM-01", 4.5, `{}`, true, created, created)
}

func TestGetAllShopsSkipsUnreadableRow(t *testing.T) {
	router, mock := newMockRouter(t)

	columns := []string{"id", "name", "owner", "email", "phone", "address", "description",
		"category_id", "floor_id", "floor_level", "shop_number", "rating", "business_hours",
		"is_active", "created_at", "updated_at"}
	rows := sqlmock.NewRows(columns)
	rows = shopRow(rows, "shop-1", "Good Shop", time.Now())
	// created_at that cannot scan into time.Time poisons only this row.
	rows = shopRow(rows, "shop-2", "Bad Shop", "not-a-time")
	rows = shopRow(rows, "shop-3", "Other Good Shop", time.Now())

	mock.ExpectQuery(regexp.QuoteMeta("FROM shops")).WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM categories")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("cat-1", "Electronics & Gadgets"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM floors")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("floor-1", "Main Marketplace"))

	w := doJSON(t, router, http.MethodGet, "/shops", "")

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Shops []struct {
			ID string `json:"id"`
		} `json:"shops"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Shops, 2)
	assert.Equal(t, "shop-1", body.Shops[0].ID)
	assert.Equal(t, "shop-3", body.Shops[1].ID)
}
