package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SpaBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
)

const (
	// HeaderActorType тип автора изменения: admin | agent | gift_voucher | web_booking
	HeaderActorType = "X-Actor-Type"
	// HeaderActorID ID автора изменения
	HeaderActorID = "X-Actor-ID"

	msgInvalidActor = "некорректные заголовки автора запроса"
)

type actorKey struct{}

// Actor извлекает автора запроса из заголовков и кладет его в контекст
// Заголовки необязательны; если указан один из них, должны быть указаны оба
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		kind := r.Header.Get(HeaderActorType)
		rawID := r.Header.Get(HeaderActorID)
		if kind == "" && rawID == "" {
			next.ServeHTTP(w, r)
			return
		}

		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidActor)
			return
		}
		actor := domain.Creator{Kind: domain.CreatorKind(kind), ID: id}
		if err := actor.Validate(); err != nil {
			handlers.RespondBadRequest(w, msgInvalidActor)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey{}, &actor)))
	})
}

// GetActor возвращает автора запроса из контекста
func GetActor(ctx context.Context) (*domain.Creator, bool) {
	actor, ok := ctx.Value(actorKey{}).(*domain.Creator)
	return actor, ok
}
