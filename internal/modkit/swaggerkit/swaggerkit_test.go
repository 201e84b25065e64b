package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "bankingops/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestMount_ServesDocWithOperationEnum(t *testing.T) {
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), true, []string{"ValidateTransaction", "CheckCreditLimit"})

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var doc document
	if err := json.Unmarshal(rr.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	post, ok := doc.Paths["/api/v1/operations/{operation}"]["post"]
	if !ok || len(post.Parameters) != 1 {
		t.Fatalf("invoke path missing: %+v", doc.Paths)
	}
	enum, _ := post.Parameters[0].Schema["enum"].([]any)
	if len(enum) != 2 || enum[0] != "CheckCreditLimit" {
		t.Fatalf("enum = %v, want sorted operation names", enum)
	}

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	if rr.Code != http.StatusPermanentRedirect || rr.Header().Get("Location") != "/api/docs/" {
		t.Fatalf("redirect = %d %q", rr.Code, rr.Header().Get("Location"))
	}
}

func TestMount_Disabled(t *testing.T) {
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), false, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}
