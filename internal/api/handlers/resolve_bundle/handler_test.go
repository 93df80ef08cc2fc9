package resolve_bundle

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	resolveBundle "github.com/m04kA/SMC-SpaBookingService/internal/usecase/resolve_bundle"
	"github.com/m04kA/SMC-SpaBookingService/pkg/logger"
)

type fakeUseCase struct {
	got  *resolveBundle.Request
	resp *resolveBundle.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *resolveBundle.Request) (*resolveBundle.Response, error) {
	f.got = req
	return f.resp, f.err
}

const relaxBody = `{"services":[{"category":"relax","duration":60,"quantity":1}]}`

func serve(uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	h := NewHandler(uc, logger.NewNop())
	r := httptest.NewRequest(http.MethodPost, "/api/v1/bundles/resolve", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, r)
	return rec
}

func relaxBundle() *domain.Bundle {
	return &domain.Bundle{
		ID:    7,
		Name:  "1× Relax 60",
		Price: decimal.RequireFromString("30"),
		Lines: []domain.BundleLine{{Key: domain.CatalogKey{Category: domain.CategoryRelax, Duration: domain.Duration60}, Quantity: 1}},
	}
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{resp: &resolveBundle.Response{Bundle: relaxBundle(), Created: true}}

	rec := serve(uc, relaxBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"created":true`)
	assert.Contains(t, rec.Body.String(), `"price":"30.00"`)

	require.NotNil(t, uc.got)
	assert.Equal(t, []domain.ServiceLine{{Category: domain.CategoryRelax, Duration: domain.Duration60, Quantity: 1}}, uc.got.Lines)
}

func TestHandle_Reused(t *testing.T) {
	uc := &fakeUseCase{resp: &resolveBundle.Response{Bundle: relaxBundle()}}

	rec := serve(uc, relaxBody)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"created":false`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
		called bool
	}{
		{"invalid body", `{"services":[`, nil, http.StatusBadRequest, false},
		{"unknown field", `{"lines":[]}`, nil, http.StatusBadRequest, false},
		{"invalid services", `{"services":[]}`, resolveBundle.ErrInvalidInput, http.StatusBadRequest, true},
		{"catalog incomplete", relaxBody, resolveBundle.ErrCatalogIncomplete, http.StatusUnprocessableEntity, true},
		{"race conflict", relaxBody, resolveBundle.ErrBundleRaceConflict, http.StatusConflict, true},
		{"internal", relaxBody, resolveBundle.ErrInternal, http.StatusInternalServerError, true},
		{"unexpected", relaxBody, errors.New("boom"), http.StatusInternalServerError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{err: tt.err}

			rec := serve(uc, tt.body)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.called, uc.got != nil)
		})
	}
}
