package service

import (
	"context"
	"sync"

	"carrental/pkg/config"
	apperrors "carrental/pkg/errors"
	"carrental/pkg/model"
)

// Dashboard aggregates an owner's fleet and booking activity.
type Dashboard struct {
	TotalCars         int              `json:"total_cars"`
	TotalBookings     int              `json:"total_bookings"`
	PendingBookings   int              `json:"pending_bookings"`
	ConfirmedBookings int              `json:"confirmed_bookings"`
	RecentBookings    []*model.Booking `json:"recent_bookings"`
	MonthlyRevenue    float64          `json:"monthly_revenue"`
}

const recentBookingsLimit = 3

type DashboardService interface {
	ForOwner(ctx context.Context, ownerID string) (*Dashboard, error)
}

// CarLister is the slice of the cars repository the dashboard needs.
type CarLister interface {
	FindByOwner(ctx context.Context, ownerID string) ([]*model.Car, error)
}

// BookingLister is the slice of the bookings repository the dashboard needs.
type BookingLister interface {
	FindByOwner(ctx context.Context, ownerID string) ([]*model.Booking, error)
}

type dashboardService struct {
	cars     CarLister
	bookings BookingLister
	cfg      *config.Config
}

func NewDashboardService(cars CarLister, bookings BookingLister, cfg *config.Config) DashboardService {
	return &dashboardService{
		cars:     cars,
		bookings: bookings,
		cfg:      cfg,
	}
}

func (s *dashboardService) ForOwner(ctx context.Context, ownerID string) (*Dashboard, error) {
	if ownerID == "" {
		return nil, apperrors.InvalidInput("Owner ID cannot be empty")
	}

	var cars []*model.Car
	var bookings []*model.Booking
	var errCars, errBookings error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		cars, errCars = s.cars.FindByOwner(ctx, ownerID)
		if errCars != nil {
			s.cfg.Log.Error("Failed to list cars for dashboard", "owner_id", ownerID, "error", errCars)
			errCars = apperrors.Internal("Failed to retrieve cars", errCars)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errBookings = s.bookings.FindByOwner(ctx, ownerID)
		if errBookings != nil {
			s.cfg.Log.Error("Failed to list bookings for dashboard", "owner_id", ownerID, "error", errBookings)
			errBookings = apperrors.Internal("Failed to retrieve bookings", errBookings)
		}
	}()

	wg.Wait()
	if errCars != nil {
		return nil, errCars
	}
	if errBookings != nil {
		return nil, errBookings
	}

	dashboard := &Dashboard{
		TotalCars:      len(cars),
		TotalBookings:  len(bookings),
		RecentBookings: []*model.Booking{},
	}

	for _, b := range bookings {
		switch b.Status {
		case model.StatusPending:
			dashboard.PendingBookings++
		case model.StatusConfirmed:
			dashboard.ConfirmedBookings++
			dashboard.MonthlyRevenue += b.Price
		}
	}

	// Bookings arrive newest first, so the recent slice is a prefix.
	if len(bookings) > recentBookingsLimit {
		dashboard.RecentBookings = bookings[:recentBookingsLimit]
	} else {
		dashboard.RecentBookings = bookings
	}

	return dashboard, nil
}
