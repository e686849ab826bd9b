package sessions

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestDeleteSessionRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store, clock := newTestStore(t)
	id := store.Create(sampleRecord(clock.Now()))

	router := gin.New()
	NewHandler(store).RegisterRoutes(router.Group("/api"))

	for i, want := range []bool{true, false} {
		req := httptest.NewRequest(http.MethodDelete, "/api/sessions/"+id, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)

		if resp.Code != http.StatusOK {
			t.Fatalf("call %d: expected 200, got %d", i, resp.Code)
		}
		var body struct {
			Success bool `json:"success"`
			Deleted bool `json:"deleted"`
		}
		if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !body.Success || body.Deleted != want {
			t.Fatalf("call %d: expected deleted=%v, got %+v", i, want, body)
		}
	}
	if _, ok := store.Get(id); ok {
		t.Fatalf("expected session to be gone")
	}
}
