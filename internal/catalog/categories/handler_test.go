package categories

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeleteConflictMapsTo409(t *testing.T) {
	svc := newTestService(map[string]int{"Beverages": 2})
	handler := NewHandler(svc)

	c, err := svc.Create(context.Background(), CreateInput{Name: "Beverages"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/"+c.ID, nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "2 product(s)")
}

func TestCreateValidatesName(t *testing.T) {
	handler := NewHandler(newTestService(nil))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"color":"bg-blue-500"}`))
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetMissingCategoryMapsTo404(t *testing.T) {
	handler := NewHandler(newTestService(nil))

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateAndListRoundTrip(t *testing.T) {
	handler := NewHandler(newTestService(nil))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Snacks","color":"bg-yellow-500"}`))
	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Snacks")
}
