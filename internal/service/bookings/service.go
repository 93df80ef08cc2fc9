package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SpaBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/booking"
	bundleRepo "github.com/m04kA/SMC-SpaBookingService/internal/infra/storage/bundle"
	"github.com/m04kA/SMC-SpaBookingService/internal/service/bookings/models"
)

// Service сервис чтения бронирований и их журнала
type Service struct {
	bookingRepo BookingRepository
	bundleRepo  BundleRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	bundleRepo BundleRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		bundleRepo:  bundleRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID вместе с пакетом услуг
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	bundle, err := s.bundleRepo.GetByID(ctx, booking.BundleID)
	if err != nil {
		if errors.Is(err, bundleRepo.ErrBundleNotFound) {
			s.logger.Error("GetByID: bundle id=%d of booking id=%d not found", booking.BundleID, id)
			return nil, ErrBundleNotFound
		}
		s.logger.Error("GetByID: bundle repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - bundle repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking, bundle), nil
}

// ListByDate возвращает бронирования на дату, упорядоченные по времени
func (s *Service) ListByDate(ctx context.Context, rawDate string) (*models.BookingListResponse, error) {
	date, err := domain.ParseDate(rawDate)
	if err != nil {
		s.logger.Warn("ListByDate: invalid date %q", rawDate)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.ListByDate(ctx, date)
	if err != nil {
		s.logger.Error("ListByDate: repository error for date=%s: %v", rawDate, err)
		return nil, fmt.Errorf("%w: ListByDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByDate: fetched %d bookings for date=%s", len(bookings), rawDate)
	return models.FromDomainBookingList(bookings), nil
}

// GetLogs возвращает журнал изменений бронирования, новые записи первыми
func (s *Service) GetLogs(ctx context.Context, bookingID int64) (*models.LogListResponse, error) {
	if _, err := s.getBooking(ctx, "GetLogs", bookingID); err != nil {
		return nil, err
	}

	logs, err := s.bookingRepo.GetLogs(ctx, bookingID)
	if err != nil {
		s.logger.Error("GetLogs: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetLogs - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLogs(bookingID, logs), nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}
