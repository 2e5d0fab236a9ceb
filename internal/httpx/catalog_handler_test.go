package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sky-yttr/final-exam-devops-soumaya-khady/internal/catalog"
)

type mockService struct{ mock.Mock }

func (m *mockService) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if p, ok := args.Get(0).([]catalog.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) PlaceOrder(ctx context.Context, in catalog.PlaceOrderInput) (catalog.PlacedOrder, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(catalog.PlacedOrder), args.Error(1)
}

func newTestServer(svc CatalogService) *httptest.Server {
	r := NewRouter()
	h := &CatalogHandler{Svc: svc}
	h.Register(r)
	return httptest.NewServer(r)
}

func TestListProductsOK(t *testing.T) {
	svc := new(mockService)
	svc.On("ListProducts", mock.Anything).Return([]catalog.Product{
		{ID: 1, Name: "Wireless Mouse", Price: decimal.RequireFromString("29.99"), Stock: 50},
	}, nil).Once()

	ts := newTestServer(svc)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/products")
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var got []map[string]any
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Len(t, got, 1)
	assert.Equal(t, float64(1), got[0]["id"])
	assert.Equal(t, 29.99, got[0]["price"]) // JSON number, not a quoted string
}

func TestListProductsEmptyIsArray(t *testing.T) {
	svc := new(mockService)
	svc.On("ListProducts", mock.Anything).Return(nil, nil).Once()

	ts := newTestServer(svc)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/products")
	assert.NoError(t, err)
	defer resp.Body.Close()

	var got []catalog.Product
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListProductsStoreFailure(t *testing.T) {
	svc := new(mockService)
	svc.On("ListProducts", mock.Anything).Return(nil, errors.New("pg down")).Once()

	ts := newTestServer(svc)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/products")
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestCreateOrderOK(t *testing.T) {
	svc := new(mockService)
	svc.On("PlaceOrder", mock.Anything, mock.MatchedBy(func(in catalog.PlaceOrderInput) bool {
		return in.UserID == 7 && len(in.Items) == 1 && in.Items[0].ProductID == 1 && in.Items[0].Quantity == 3
	})).Return(catalog.PlacedOrder{OrderID: 42, Total: decimal.RequireFromString("89.97")}, nil).Once()

	ts := newTestServer(svc)
	defer ts.Close()

	body := `{"user_id":7,"items":[{"product_id":1,"quantity":3}]}`
	resp, err := http.Post(ts.URL+"/orders", "application/json", strings.NewReader(body))
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var got map[string]any
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, float64(42), got["orderId"])
	assert.Equal(t, 89.97, got["total"])
	svc.AssertExpectations(t)
}

func TestCreateOrderBadJSON(t *testing.T) {
	svc := new(mockService)
	ts := newTestServer(svc)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/orders", "application/json", strings.NewReader("{not json"))
	assert.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	svc.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
}

func TestCreateOrderErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"unknown product", catalog.ErrProductNotFound, http.StatusNotFound},
		{"insufficient stock", catalog.ErrInsufficientStock, http.StatusConflict},
		{"empty order", catalog.ErrEmptyOrder, http.StatusBadRequest},
		{"bad quantity", catalog.ErrInvalidQuantity, http.StatusBadRequest},
		{"missing user", catalog.ErrInvalidUser, http.StatusBadRequest},
		{"store down", errors.New("pg down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On("PlaceOrder", mock.Anything, mock.Anything).
				Return(catalog.PlacedOrder{}, tc.err).Once()

			ts := newTestServer(svc)
			defer ts.Close()

			body := `{"user_id":7,"items":[{"product_id":1,"quantity":1}]}`
			resp, err := http.Post(ts.URL+"/orders", "application/json", strings.NewReader(body))
			assert.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.code, resp.StatusCode)

			var got map[string]string
			assert.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
			if tc.code == http.StatusInternalServerError {
				assert.Equal(t, "internal error", got["error"])
			} else {
				assert.NotEmpty(t, got["error"])
			}
		})
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(new(mockService))
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	assert.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
