package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"poshak-storefront/internal/auth"
	"poshak-storefront/internal/cart"
	"poshak-storefront/internal/catalog"
	"poshak-storefront/internal/order"
	"poshak-storefront/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type productsMock struct {
	items   []catalog.Product
	listErr error
	seq     int
}

func (m *productsMock) List(ctx context.Context) ([]catalog.Product, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]catalog.Product(nil), m.items...), nil
}

func (m *productsMock) Get(ctx context.Context, id string) (catalog.Product, error) {
	for _, p := range m.items {
		if p.ID == id {
			return p, nil
		}
	}
	return catalog.Product{}, fmt.Errorf("mock: %w", storage.ErrNotFound)
}

func (m *productsMock) Create(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	m.seq++
	p.ID = fmt.Sprintf("new-%d", m.seq)
	m.items = append(m.items, p)
	return p, nil
}

func (m *productsMock) Update(ctx context.Context, id string, p catalog.Product) (catalog.Product, error) {
	for i := range m.items {
		if m.items[i].ID == id {
			p.ID = id
			m.items[i] = p
			return p, nil
		}
	}
	return catalog.Product{}, fmt.Errorf("mock: %w", storage.ErrNotFound)
}

func (m *productsMock) Delete(ctx context.Context, id string) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("mock: %w", storage.ErrNotFound)
}

type adminsMock struct {
	byName map[string]storage.Admin
}

func (m *adminsMock) FindByUsername(ctx context.Context, username string) (storage.Admin, error) {
	a, ok := m.byName[username]
	if !ok {
		return storage.Admin{}, fmt.Errorf("mock: %w", storage.ErrNotFound)
	}
	return a, nil
}

func (m *adminsMock) Create(ctx context.Context, username, passwordHash string) (storage.Admin, error) {
	if _, ok := m.byName[username]; ok {
		return storage.Admin{}, fmt.Errorf("mock: %w", storage.ErrDuplicate)
	}
	a := storage.Admin{ID: primitive.NewObjectID(), Username: username, Password: passwordHash}
	m.byName[username] = a
	return a, nil
}

type testEnv struct {
	router   *gin.Engine
	products *productsMock
	admins   *adminsMock
	issuer   auth.Issuer
}

func seedCatalog() []catalog.Product {
	return []catalog.Product{
		{ID: "p1", Name: "Poshak A", Description: "d", Category: "poshak", Sizes: []catalog.Variant{{Size: "S", Price: 1200}, {Size: "M", Price: 1800}, {Size: "L", Price: 3200}}, Images: []string{"a.jpg", "a2.jpg"}, Featured: true},
		{ID: "p2", Name: "Mukut Gold", Description: "d", Category: "mukut", Sizes: []catalog.Variant{{Size: "Free", Price: 900}}, Images: []string{"m.jpg"}},
		{ID: "p3", Name: "Poshak Royal", Description: "d", Category: "poshak", Sizes: []catalog.Variant{{Size: "M", Price: 2500}}, Images: []string{}, Featured: true},
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	carts, err := cart.NewStore(16)
	require.NoError(t, err)

	env := &testEnv{
		products: &productsMock{items: seedCatalog()},
		admins:   &adminsMock{byName: map[string]storage.Admin{}},
		issuer:   auth.NewIssuer("test-secret", time.Hour),
	}
	h := NewHandler(Options{
		Products:      env.products,
		Admins:        env.admins,
		Issuer:        env.issuer,
		Carts:         carts,
		Composer:      order.NewComposer("Hello Kunj Creation, I want to purchase the following products:"),
		WhatsAppPhone: "918504866930",
		FeaturedLimit: 6,
	})
	env.router = NewRouter(h, []string{"*"})
	return env
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	tok, err := e.issuer.Issue(primitive.NewObjectID().Hex())
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, path, &buf)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, r)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func assertStatus(t *testing.T, want int, w *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, want, w.Code, w.Body.String())
}
