package users

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/mlazarev/foodgram/internal/api/token"
	"github.com/mlazarev/foodgram/internal/env"
)

// subscribeRequest builds a subscription request for the given route
// parameter, authenticated as viewerID.
func subscribeRequest(t *testing.T, viewerID int64, param string) *http.Request {
	t.Helper()

	r := httptest.NewRequest(http.MethodPost, "/api/users/"+param+"/subscribe", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("userID", param)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	ctx = env.WithCtx(ctx, env.Null())
	ctx = token.UserIDWithCtx(ctx, viewerID)
	return r.WithContext(ctx)
}

func TestHandleSubscribeSelf(t *testing.T) {
	w := httptest.NewRecorder()
	HandleSubscribe(w, subscribeRequest(t, 5, "5"))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected %d", w.Code, http.StatusBadRequest)
	}
	if body := w.Body.String(); !strings.Contains(body, "self_subscription") {
		t.Fatalf("body = %q, expected self_subscription error code", body)
	}
}

func TestHandleSubscribeBadID(t *testing.T) {
	w := httptest.NewRecorder()
	HandleSubscribe(w, subscribeRequest(t, 5, "abc"))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected %d", w.Code, http.StatusBadRequest)
	}
}
