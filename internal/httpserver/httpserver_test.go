package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/carecraft/storefront/internal/cart"
	"github.com/carecraft/storefront/internal/config"
	mwauth "github.com/carecraft/storefront/internal/middleware/auth"
	"github.com/carecraft/storefront/internal/models"
	"github.com/carecraft/storefront/internal/repo"
	"github.com/carecraft/storefront/internal/service"
	"github.com/carecraft/storefront/internal/token"
)

var testSecret = []byte("test-jwt-secret")

type testEnv struct {
	t    *testing.T
	e    *echo.Echo
	repo *repo.GormRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	r := repo.New(db)
	cookieAuth := &mwauth.CookieAuth{Secret: testSecret}
	accountSvc := &service.AccountService{Repo: r}
	catalogSvc := &service.CatalogService{Repo: r}
	sellerSvc := &service.SellerService{Repo: r}
	categorySvc := &service.CategoryService{Repo: r}
	reviewSvc := &service.ReviewService{Repo: r}

	e := echo.New()
	Register(e, &Deps{
		Auth:      cookieAuth,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		AuthH:     &AuthHandler{Svc: accountSvc, JWTSecret: testSecret, Auth: cookieAuth},
		AccountH:  &AccountHandler{Svc: accountSvc, JWTSecret: testSecret},
		ProductH:  &ProductHandler{Svc: catalogSvc, SellerSvc: sellerSvc},
		SellerH:   &SellerHandler{Svc: sellerSvc},
		CategoryH: &CategoryHandler{Svc: categorySvc},
		ReviewH:   &ReviewHandler{Svc: reviewSvc},
		CartH:     &CartHandler{Store: cart.NewGormStore(db), Catalog: catalogSvc},
		SearchH:   &SearchHandler{},
	})

	return &testEnv{t: t, e: e, repo: r}
}

// do sends a request through the full router; a non-nil user is attached as a
// session cookie.
func (env *testEnv) do(method, path string, body any, user *models.User) *httptest.ResponseRecorder {
	env.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if user != nil {
		signed, err := token.Issue(testSecret, user)
		require.NoError(env.t, err)
		req.AddCookie(&http.Cookie{Name: mwauth.CookieName, Value: signed})
	}

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) decode(rec *httptest.ResponseRecorder, dst any) {
	env.t.Helper()
	require.NoError(env.t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func (env *testEnv) seller(name, email string) *models.Seller {
	env.t.Helper()

	seller := &models.Seller{Name: name, Contact: models.SellerContact{Email: email}}
	_, err := env.repo.CreateSeller(context.Background(), seller)
	require.NoError(env.t, err)
	return seller
}

func (env *testEnv) category(name string) *models.Category {
	env.t.Helper()

	cat := &models.Category{Name: name}
	_, err := env.repo.CreateCategory(context.Background(), cat)
	require.NoError(env.t, err)
	return cat
}

func (env *testEnv) product(seller *models.Seller, cat *models.Category, name string, price float64) *models.Product {
	env.t.Helper()

	prod := &models.Product{
		Name:       name,
		Price:      price,
		Category:   cat.Name,
		CategoryID: cat.ID,
		SellerID:   seller.ID,
		SellerName: seller.Name,
		InStock:    true,
	}
	_, err := env.repo.CreateProduct(context.Background(), prod)
	require.NoError(env.t, err)
	return prod
}

func (env *testEnv) user(name, email, role string) *models.User {
	env.t.Helper()

	user := &models.User{ID: uuid.New(), Name: name, Email: email, PasswordHash: "x", Role: role}
	_, err := env.repo.CreateUser(context.Background(), user)
	require.NoError(env.t, err)
	return user
}
