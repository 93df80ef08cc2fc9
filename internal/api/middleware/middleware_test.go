package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

func TestActor(t *testing.T) {
	var got *domain.Creator
	h := Actor(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetActor(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
	req.Header.Set(HeaderActorType, "agent")
	req.Header.Set(HeaderActorID, "12")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	assert.Equal(t, domain.CreatorAgent, got.Kind)
	assert.Equal(t, int64(12), got.ID)
}

func TestActor_Optional(t *testing.T) {
	called := false
	h := Actor(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := GetActor(r.Context())
		assert.False(t, ok)
		called = true
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/catalog", nil))

	assert.True(t, called)
}

func TestActor_Invalid(t *testing.T) {
	h := Actor(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be called")
	}))

	for _, headers := range []map[string]string{
		{HeaderActorType: "robot", HeaderActorID: "1"},
		{HeaderActorType: "admin"},
		{HeaderActorType: "admin", HeaderActorID: "-3"},
	} {
		req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestRequestID(t *testing.T) {
	var inContext string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inContext = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, inContext)
	assert.Equal(t, inContext, rec.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc", inContext)
}

type observation struct {
	method, route, status string
}

type fakeHTTPMetrics struct {
	observed []observation
}

func (f *fakeHTTPMetrics) ObserveHTTPRequest(method, route, status string, _ time.Duration) {
	f.observed = append(f.observed, observation{method, route, status})
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	m := &fakeHTTPMetrics{}
	router := mux.NewRouter()
	router.Use(Metrics(m))
	router.HandleFunc("/bookings/{bookingId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/bookings/42", nil))

	require.Len(t, m.observed, 1)
	assert.Equal(t, observation{"GET", "/bookings/{bookingId}", "404"}, m.observed[0])
}
