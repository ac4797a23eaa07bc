// internal/app/routes_test.go

package app_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	apppkg "github.com/denilsonjj/sistema-erp-sub001/internal/app"
)

// Garante que /admin/* fica atrás do JWT (sem credencial não pode dar 200)
func TestAdminRoutesProtected(t *testing.T) {
	r := mux.NewRouter()
	apppkg.RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/admin/maquinas", nil)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	if rec.Code == http.StatusOK {
		t.Fatalf("expected non-200 for protected admin route, got 200")
	}
}

func TestHealthz(t *testing.T) {
	r := mux.NewRouter()
	apppkg.RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("healthz: expected 200, got %d", rec.Code)
	}
}

// Sem repo configurado os endpoints de dados respondem 503, não 500
func TestDataRoutesWithoutRepo(t *testing.T) {
	r := mux.NewRouter()
	apppkg.RegisterRoutes(r)

	for _, path := range []string{
		"/api/frota/paradas",
		"/api/frota/linha-do-tempo",
		"/api/maquinas",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("%s: expected 503, got %d", path, rec.Code)
		}
	}
}
