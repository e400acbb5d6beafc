package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/KingDev1404/freshbulk/internal/database"
	"github.com/KingDev1404/freshbulk/internal/guard"
	"github.com/KingDev1404/freshbulk/internal/hash"
	"github.com/KingDev1404/freshbulk/internal/models"
	"github.com/KingDev1404/freshbulk/internal/repo"
	"github.com/KingDev1404/freshbulk/internal/service"
)

var (
	testJWTSecret     = []byte("http-test-access-secret")
	testRefreshSecret = []byte("http-test-refresh-secret")
)

type testEnv struct {
	repo     *repo.GormRepo
	auth     *AuthHTTP
	products *ProductHTTP
	orders   *OrderHTTP
}

// newTestEnv wires the full handler stack against an in-memory database.
// Kafka and Elasticsearch stay nil; both paths are no-ops without them.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))

	r := repo.New(db)
	return &testEnv{
		repo:     r,
		auth:     &AuthHTTP{Svc: &service.AuthService{Repo: r, JWTSecret: testJWTSecret, RefreshSecret: testRefreshSecret}},
		products: &ProductHTTP{Svc: &service.CatalogService{Repo: r}},
		orders:   &OrderHTTP{Svc: &service.OrderService{Repo: r}},
	}
}

func (env *testEnv) seedUser(t *testing.T, email, role string) *models.User {
	t.Helper()
	pwHash, err := hash.HashPassword("secret123")
	require.NoError(t, err)
	user := &models.User{Name: "Test User", Email: email, PasswordHash: pwHash, Role: role}
	require.NoError(t, env.repo.CreateUser(t.Context(), user))
	return user
}

func (env *testEnv) seedProduct(t *testing.T, name, price string) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        name,
		Description: "test description",
		Price:       decimal.RequireFromString(price),
		ImageURL:    "https://example.com/p.jpg",
		Category:    "Vegetables",
	}
	require.NoError(t, env.repo.CreateProduct(t.Context(), product))
	return product
}

func identityOf(u *models.User) guard.Identity {
	return guard.Identity{UserID: u.ID, Role: u.Role}
}

func idParam(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func newContext(t *testing.T, method, target string, body any) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func httpErrorCode(t *testing.T, err error) int {
	t.Helper()
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr.Code
}
