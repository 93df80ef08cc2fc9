package resolve_bundle

import (
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

// Request модель запроса на поиск или создание пакета
type Request struct {
	Lines []domain.ServiceLine
}

// Response найденный или созданный пакет
type Response struct {
	Bundle  *domain.Bundle
	Created bool // false - переиспользован существующий пакет
}
