package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	bookingserrors "carrental/internal/bookings/errors"
	"carrental/internal/bookings/repository"
	"carrental/internal/bookings/validator"
	carserrors "carrental/internal/cars/errors"
	"carrental/pkg/config"
	apperrors "carrental/pkg/errors"
	"carrental/pkg/events"
	"carrental/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

// dateLayouts are accepted request date formats, tried in order.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

type BookingService interface {
	CheckAvailability(ctx context.Context, req *model.AvailabilityRequest) (bool, error)
	Create(ctx context.Context, renterID string, req *model.BookingRequest) (*model.Booking, error)
	ChangeStatus(ctx context.Context, ownerID string, req *model.StatusChangeRequest) (*model.Booking, []*model.Booking, error)
	ListForRenter(ctx context.Context, userID string) ([]*model.Booking, error)
	ListForOwner(ctx context.Context, ownerID string) ([]*model.Booking, error)
}

// CarFinder is the slice of the cars repository the booking flow needs.
type CarFinder interface {
	FindByID(ctx context.Context, id string) (*model.Car, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	cars      CarFinder
	validator *validator.BookingValidator
	events    events.Publisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	cars CarFinder,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		cars:      cars,
		validator: validator,
		events:    publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) CheckAvailability(ctx context.Context, req *model.AvailabilityRequest) (bool, error) {
	pickup, returnDate, err := s.parseRange(req.CarID, req.PickupDate, req.ReturnDate)
	if err != nil {
		return false, err
	}

	available, err := s.isAvailable(ctx, req.CarID, pickup, returnDate)
	if err != nil {
		return false, err
	}

	return available, nil
}

func (s *bookingService) Create(ctx context.Context, renterID string, req *model.BookingRequest) (*model.Booking, error) {
	pickup, returnDate, err := s.parseRange(req.CarID, req.PickupDate, req.ReturnDate)
	if err != nil {
		return nil, err
	}

	car, err := s.findCar(ctx, req.CarID)
	if err != nil {
		return nil, err
	}

	booking := &model.Booking{
		CarID:      req.CarID,
		UserID:     renterID,
		OwnerID:    car.OwnerID,
		PickupDate: pickup,
		ReturnDate: returnDate,
		Price:      car.PricePerDay * float64(billedDays(pickup, returnDate)),
		Status:     model.StatusPending,
	}

	if err := s.validate(booking); err != nil {
		return nil, err
	}

	// Acquire advisory lock to prevent race conditions
	lockID, err := s.acquireCarLock(ctx, req.CarID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseCarLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		available, err := s.isAvailable(sessCtx, req.CarID, pickup, returnDate)
		if err != nil {
			return err
		}
		if !available {
			return apperrors.Conflict("Car is not available for the selected dates")
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "car_id", req.CarID, "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"car_id", booking.CarID,
		"user_id", booking.UserID,
		"pickup_date", booking.PickupDate,
		"return_date", booking.ReturnDate,
		"price", booking.Price,
	)

	if s.events != nil {
		s.events.BookingCreated(ctx, booking)
	}
	return booking, nil
}

func (s *bookingService) ChangeStatus(ctx context.Context, ownerID string, req *model.StatusChangeRequest) (*model.Booking, []*model.Booking, error) {
	if req.BookingID == "" || req.Status == "" {
		return nil, nil, apperrors.InvalidInput("booking_id and status are required")
	}
	if !validStatus(req.Status) {
		return nil, nil, apperrors.InvalidInput("status must be one of: pending, confirmed, cancelled")
	}

	booking, err := s.repo.FindByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, nil, apperrors.NotFoundWithID("Booking", req.BookingID)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	if booking.OwnerID != ownerID {
		return nil, nil, apperrors.Forbidden("Only the car owner can change this booking")
	}

	// Repeating the current status is a no-op, so retried confirmations succeed.
	if booking.Status != req.Status {
		if !canTransition(booking.Status, req.Status) {
			return nil, nil, apperrors.InvalidTransition(booking.Status, req.Status)
		}

		previous := booking.Status
		if _, err := s.repo.UpdateStatus(ctx, req.BookingID, req.Status); err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return nil, nil, apperrors.NotFoundWithID("Booking", req.BookingID)
			}
			return nil, nil, apperrors.Internal("Failed to update booking status", err)
		}
		booking.Status = req.Status

		s.cfg.Log.Info("Booking status changed",
			"id", booking.ID,
			"from", previous,
			"to", booking.Status,
		)

		if s.events != nil {
			s.events.BookingStatusChanged(ctx, booking, previous)
		}
	}

	ownerBookings, err := s.ListForOwner(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}

	return booking, ownerBookings, nil
}

func (s *bookingService) ListForRenter(ctx context.Context, userID string) ([]*model.Booking, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	bookings, err := s.repo.FindByRenter(ctx, userID)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings for renter", "user_id", userID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) ListForOwner(ctx context.Context, ownerID string) ([]*model.Booking, error) {
	if ownerID == "" {
		return nil, apperrors.InvalidInput("Owner ID cannot be empty")
	}

	bookings, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings for owner", "owner_id", ownerID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

// --- Helpers ---

// parseRange validates presence, format and ordering of a requested date
// range, in that order, so the first failure is the one reported.
func (s *bookingService) parseRange(carID, pickupStr, returnStr string) (time.Time, time.Time, error) {
	var zero time.Time

	if carID == "" || pickupStr == "" || returnStr == "" {
		return zero, zero, apperrors.InvalidInput("car_id, pickup_date and return_date are required")
	}

	pickup, err := parseDate(pickupStr)
	if err != nil {
		return zero, zero, apperrors.InvalidInput("pickup_date is not a valid date")
	}
	returnDate, err := parseDate(returnStr)
	if err != nil {
		return zero, zero, apperrors.InvalidInput("return_date is not a valid date")
	}

	if !returnDate.After(pickup) {
		return zero, zero, apperrors.Validation("return_date must be after pickup_date", map[string]any{
			"pickup_date": pickupStr,
			"return_date": returnStr,
		})
	}

	return pickup, returnDate, nil
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format: %s", value)
}

// billedDays rounds a partial rental day up to a full one.
func billedDays(pickup, returnDate time.Time) int64 {
	return int64(math.Ceil(returnDate.Sub(pickup).Hours() / 24))
}

func (s *bookingService) findCar(ctx context.Context, carID string) (*model.Car, error) {
	car, err := s.cars.FindByID(ctx, carID)
	if err != nil {
		if errors.Is(err, carserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Car", carID)
		}
		if errors.Is(err, carserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid car ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve car", err)
	}
	return car, nil
}

// isAvailable reports whether no booking blocks the requested closed date
// range. Cancelled bookings keep blocking when BlockCancelledBookings is set.
func (s *bookingService) isAvailable(ctx context.Context, carID string, pickup, returnDate time.Time) (bool, error) {
	includeCancelled := s.cfg.BlockCancelledBookings
	overlapping, err := s.repo.FindOverlapping(ctx, carID, pickup, returnDate, includeCancelled)
	if err != nil {
		return false, apperrors.Internal("Failed to check existing bookings", err)
	}
	return len(overlapping) == 0, nil
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func validStatus(status string) bool {
	switch status {
	case model.StatusPending, model.StatusConfirmed, model.StatusCancelled:
		return true
	}
	return false
}

// canTransition encodes the booking lifecycle. Pending bookings can be
// confirmed or cancelled, confirmed bookings can only be cancelled, and
// cancelled is terminal.
func canTransition(from, to string) bool {
	switch from {
	case model.StatusPending:
		return to == model.StatusConfirmed || to == model.StatusCancelled
	case model.StatusConfirmed:
		return to == model.StatusCancelled
	}
	return false
}

// acquireCarLock creates an advisory lock to prevent concurrent booking
// creation for the same car. Returns the lock ID if successful, or conflict
// error if lock already exists.
func (s *bookingService) acquireCarLock(ctx context.Context, carID string) (string, error) {
	lockID := fmt.Sprintf("booking_lock_%s", carID)

	lock := &model.BookingLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(10 * time.Second), // Auto-expire after 10 seconds
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This car is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire booking lock", err)
	}

	return lockID, nil
}

func (s *bookingService) releaseCarLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
