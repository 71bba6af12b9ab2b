package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"flex_reviews/internal/adapters/google"
	"flex_reviews/internal/adapters/hostaway"
	server "flex_reviews/internal/adapters/http_server"
	redisad "flex_reviews/internal/adapters/redis"
	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
	filestore "flex_reviews/internal/storage/file"
)

const dataset = `{
  "status": "success",
  "result": [
    {
      "id": 7453,
      "type": "guest-review",
      "status": "published",
      "rating": null,
      "publicReview": "Great location, decent value.",
      "reviewCategory": [
        {"category": "location", "rating": 10},
        {"category": "value", "rating": 8}
      ],
      "submittedAt": "2021-03-12 09:30:00",
      "guestName": "Shane",
      "listingName": "29 Shoreditch Heights"
    }
  ]
}`

const placePayload = `{
  "reviews": [
    {
      "rating": 5,
      "publishTime": "2023-05-01T12:00:00Z",
      "authorAttribution": {"displayName": "Jo"},
      "text": {"text": "Wonderful gallery"}
    }
  ]
}`

// buildStack wires the full service over a temp dataset file, a fake Places
// upstream and miniredis, and returns the HTTP handler.
func buildStack(t *testing.T, placesStatus int) http.Handler {
	t.Helper()

	path := filepath.Join(t.TempDir(), "reviews.json")
	if err := os.WriteFile(path, []byte(dataset), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}

	places := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if placesStatus != http.StatusOK {
			w.WriteHeader(placesStatus)
			return
		}
		_, _ = w.Write([]byte(placePayload))
	}))
	t.Cleanup(places.Close)

	mr := miniredis.RunT(t)
	vis := redisad.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "hiddenReviews")

	internal := hostaway.New(filestore.New(path))
	external := google.New(places.URL, "test-key", "place-1", "Art Gallery of New South Wales", 100)
	svc := app.NewReviewService(internal, external, vis)

	srv := server.New()
	srv.MountHandlers(&server.Handlers{Svc: svc})
	return srv.Mux()
}

func get(t *testing.T, h http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, url, nil))
	return rr
}

func decodeReviews(t *testing.T, rr *httptest.ResponseRecorder) []domain.Review {
	t.Helper()
	var out []domain.Review
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode reviews: %v", err)
	}
	return out
}

func TestEndToEnd_AggregationAndRatingFilter(t *testing.T) {
	h := buildStack(t, http.StatusOK)

	// Both adapters contribute, internal first.
	rr := get(t, h, "/api/reviews")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	var view domain.DashboardView
	if err := json.NewDecoder(rr.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(view.Reviews) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(view.Reviews))
	}
	// default newest-first puts the 2023 Google review ahead
	if view.Reviews[0].ID != 9000 || view.Reviews[0].Rating != 10 {
		t.Fatalf("google review: %+v", view.Reviews[0])
	}
	if view.Reviews[1].ID != 7453 || view.Reviews[1].Rating != 9.0 {
		t.Fatalf("hostaway review: %+v", view.Reviews[1])
	}

	// rating=10 keeps exactly the Google review
	rr = get(t, h, "/api/reviews?rating=10")
	view = domain.DashboardView{}
	if err := json.NewDecoder(rr.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(view.Reviews) != 1 || view.Reviews[0].ID != 9000 {
		t.Fatalf("rating filter: %+v", view.Reviews)
	}
	if len(view.Stats) != 1 || view.Stats[0].Count != 1 || view.Stats[0].Sources.Google != 1 {
		t.Fatalf("stats follow filter: %+v", view.Stats)
	}
}

func TestEndToEnd_InternalEndpoint(t *testing.T) {
	h := buildStack(t, http.StatusOK)
	rr := get(t, h, "/api/reviews/internal")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	out := decodeReviews(t, rr)
	if len(out) != 1 || out[0].Source != domain.SourceHostaway {
		t.Fatalf("internal endpoint: %+v", out)
	}
	if out[0].Date != "2021-03-12 09:30:00" {
		t.Fatalf("submittedAt must pass through verbatim: %q", out[0].Date)
	}
}

func TestEndToEnd_ThirdPartyEndpoint(t *testing.T) {
	h := buildStack(t, http.StatusOK)

	rr := get(t, h, "/api/reviews/thirdparty?placeId=place-1")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	out := decodeReviews(t, rr)
	if len(out) != 1 || out[0].ID != 9000 || out[0].Rating != 10 {
		t.Fatalf("thirdparty endpoint: %+v", out)
	}

	// missing placeId: exact error body, client-error status
	rr = get(t, h, "/api/reviews/thirdparty")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", rr.Code)
	}
	var e map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if e["error"] != "placeId is required" {
		t.Fatalf("error body: %v", e)
	}
}

func TestEndToEnd_UpstreamDownDegradesAggregationOnly(t *testing.T) {
	h := buildStack(t, http.StatusServiceUnavailable)

	// the dedicated endpoint surfaces the failure
	rr := get(t, h, "/api/reviews/thirdparty?placeId=place-1")
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("thirdparty status: %d", rr.Code)
	}

	// the aggregated view degrades to the surviving source
	rr = get(t, h, "/api/reviews")
	if rr.Code != http.StatusOK {
		t.Fatalf("dashboard status: %d", rr.Code)
	}
	var view domain.DashboardView
	if err := json.NewDecoder(rr.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(view.Reviews) != 1 || view.Reviews[0].Source != domain.SourceHostaway {
		t.Fatalf("expected hostaway-only aggregation: %+v", view.Reviews)
	}
}

func TestEndToEnd_VisibilityToggleAndPublicPage(t *testing.T) {
	h := buildStack(t, http.StatusOK)
	slugURL := "/api/properties/29-shoreditch-heights/reviews"

	if out := decodeReviews(t, get(t, h, slugURL)); len(out) != 1 {
		t.Fatalf("public page before hide: %+v", out)
	}

	// hide the hostaway review
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/reviews/7453/visibility", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("toggle status: %d", rr.Code)
	}
	var tr struct {
		ID     int64 `json:"id"`
		Hidden bool  `json:"hidden"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&tr); err != nil {
		t.Fatalf("decode toggle: %v", err)
	}
	if tr.ID != 7453 || !tr.Hidden {
		t.Fatalf("toggle response: %+v", tr)
	}

	if out := decodeReviews(t, get(t, h, slugURL)); len(out) != 0 {
		t.Fatalf("hidden review still on public page: %+v", out)
	}

	// dashboard still shows it, flagged hidden
	var view domain.DashboardView
	if err := json.NewDecoder(get(t, h, "/api/reviews?property=29+Shoreditch+Heights").Body).Decode(&view); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if len(view.Reviews) != 1 || !view.Reviews[0].Hidden {
		t.Fatalf("dashboard hidden flag: %+v", view.Reviews)
	}

	// unhide restores the public page
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/reviews/7453/visibility", nil))
	if out := decodeReviews(t, get(t, h, slugURL)); len(out) != 1 {
		t.Fatalf("public page after unhide: %+v", out)
	}
}

func TestEndToEnd_DatasetUnreadable(t *testing.T) {
	places := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(placePayload))
	}))
	t.Cleanup(places.Close)

	mr := miniredis.RunT(t)
	vis := redisad.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "hiddenReviews")
	internal := hostaway.New(filestore.New(filepath.Join(t.TempDir(), "missing.json")))
	external := google.New(places.URL, "k", "place-1", "Art Gallery of New South Wales", 100)
	svc := app.NewReviewService(internal, external, vis)

	srv := server.New()
	srv.MountHandlers(&server.Handlers{Svc: svc})
	h := srv.Mux()

	rr := get(t, h, "/api/reviews/internal")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("internal status: %d", rr.Code)
	}
	var e map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&e); err != nil || e["error"] == "" {
		t.Fatalf("error body: %v %v", e, err)
	}

	// aggregation degrades to the google source
	rr = get(t, h, "/api/reviews")
	var view domain.DashboardView
	if err := json.NewDecoder(rr.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(view.Reviews) != 1 || view.Reviews[0].Source != domain.SourceGoogle {
		t.Fatalf("expected google-only aggregation: %+v", view.Reviews)
	}
}
