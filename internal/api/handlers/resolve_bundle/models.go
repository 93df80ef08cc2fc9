package resolve_bundle

import (
	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/bookings/models"
	resolveBundle "github.com/m04kA/SMC-SpaBookingService/internal/usecase/resolve_bundle"
)

// ResolveBundleRequest HTTP request model
type ResolveBundleRequest struct {
	Services []handlers.ServiceLineRequest `json:"services"`
}

// ResolveBundleResponse HTTP response model
type ResolveBundleResponse struct {
	Bundle  *models.BundleResponse `json:"bundle"`
	Created bool                   `json:"created"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ResolveBundleRequest) ToUseCaseRequest() *resolveBundle.Request {
	return &resolveBundle.Request{Lines: handlers.ToDomainLines(r.Services)}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *resolveBundle.Response) *ResolveBundleResponse {
	return &ResolveBundleResponse{
		Bundle:  models.FromDomainBundle(resp.Bundle),
		Created: resp.Created,
	}
}
