package service

import (
	"context"
	"errors"
	"testing"
	"time"

	bookingserrors "carrental/internal/bookings/errors"
	"carrental/internal/bookings/validator"
	carserrors "carrental/internal/cars/errors"
	"carrental/pkg/config"
	mongotx "carrental/pkg/db/mongo"
	apperrors "carrental/pkg/errors"
	"carrental/pkg/logger"
	"carrental/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	testCarID   = "507f1f77bcf86cd799439011"
	testOwnerID = "507f1f77bcf86cd799439012"
	testUserID  = "507f1f77bcf86cd799439013"
	testBookID  = "507f1f77bcf86cd799439014"
)

// Mock repositories for testing

type mockBookingRepository struct {
	createFunc          func(ctx context.Context, booking *model.Booking) error
	findByIDFunc        func(ctx context.Context, id string) (*model.Booking, error)
	findOverlappingFunc func(ctx context.Context, carID string, pickup, returnDate time.Time, includeCancelled bool) ([]*model.Booking, error)
	findByRenterFunc    func(ctx context.Context, userID string) ([]*model.Booking, error)
	findByOwnerFunc     func(ctx context.Context, ownerID string) ([]*model.Booking, error)
	updateStatusFunc    func(ctx context.Context, id string, status string) (*mongo.UpdateResult, error)
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	booking.ID = testBookID
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindOverlapping(ctx context.Context, carID string, pickup, returnDate time.Time, includeCancelled bool) ([]*model.Booking, error) {
	if m.findOverlappingFunc != nil {
		return m.findOverlappingFunc(ctx, carID, pickup, returnDate, includeCancelled)
	}
	return nil, nil
}

func (m *mockBookingRepository) FindByRenter(ctx context.Context, userID string) ([]*model.Booking, error) {
	if m.findByRenterFunc != nil {
		return m.findByRenterFunc(ctx, userID)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) FindByOwner(ctx context.Context, ownerID string) ([]*model.Booking, error) {
	if m.findByOwnerFunc != nil {
		return m.findByOwnerFunc(ctx, ownerID)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id string, status string) (*mongo.UpdateResult, error) {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

type mockLockRepository struct {
	createFunc func(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error)
	deleteFunc func(ctx context.Context, lockID string) error
}

func (m *mockLockRepository) Create(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, lock)
	}
	return lock, nil
}

func (m *mockLockRepository) Delete(ctx context.Context, lockID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, lockID)
	}
	return nil
}

type mockCarFinder struct {
	findByIDFunc func(ctx context.Context, id string) (*model.Car, error)
}

func (m *mockCarFinder) FindByID(ctx context.Context, id string) (*model.Car, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return testCar(100), nil
}

func testCar(pricePerDay float64) *model.Car {
	return &model.Car{
		ID:          testCarID,
		OwnerID:     testOwnerID,
		Brand:       "Toyota",
		Model:       "Corolla",
		PricePerDay: pricePerDay,
		IsAvailable: true,
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:     "error",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
		ReadTimeout:            5 * time.Second,
		WriteTimeout:           5 * time.Second,
		BlockCancelledBookings: true,
	}
}

func newTestService(repo *mockBookingRepository, locks *mockLockRepository, cars *mockCarFinder, cfg *config.Config) *bookingService {
	if cfg == nil {
		cfg = testConfig()
	}
	return &bookingService{
		repo:      repo,
		lockRepo:  locks,
		cars:      cars,
		validator: validator.NewBookingValidator(cfg.Log),
		cfg:       cfg,
	}
}

// overlapFilter replays the repository query semantics in memory: stored
// pickup <= requested return AND stored return >= requested pickup, with
// cancelled bookings filtered out unless includeCancelled is set.
func overlapFilter(stored []*model.Booking) func(ctx context.Context, carID string, pickup, returnDate time.Time, includeCancelled bool) ([]*model.Booking, error) {
	return func(ctx context.Context, carID string, pickup, returnDate time.Time, includeCancelled bool) ([]*model.Booking, error) {
		var matched []*model.Booking
		for _, b := range stored {
			if b.CarID != carID {
				continue
			}
			if !includeCancelled && b.Status == model.StatusCancelled {
				continue
			}
			if !b.PickupDate.After(returnDate) && !b.ReturnDate.Before(pickup) {
				matched = append(matched, b)
			}
		}
		return matched, nil
	}
}

func storedBooking(status string, pickup, returnDate string) *model.Booking {
	return &model.Booking{
		ID:         testBookID,
		CarID:      testCarID,
		UserID:     testUserID,
		OwnerID:    testOwnerID,
		PickupDate: mustDate(pickup),
		ReturnDate: mustDate(returnDate),
		Price:      150,
		Status:     status,
	}
}

func mustDate(s string) time.Time {
	t, err := parseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func assertCode(t *testing.T, err error, wantCode string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", wantCode)
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != wantCode {
		t.Fatalf("expected error code %s, got %s (%v)", wantCode, appErr.Code, err)
	}
}

func TestCreate_PartialDayBilledAsFullDay(t *testing.T) {
	var created *model.Booking
	repo := &mockBookingRepository{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			booking.ID = testBookID
			created = booking
			return nil
		},
	}
	cars := &mockCarFinder{
		findByIDFunc: func(ctx context.Context, id string) (*model.Car, error) {
			return testCar(100), nil
		},
	}
	svc := newTestService(repo, &mockLockRepository{}, cars, nil)

	// 36 hours is 1.5 days, billed as 2.
	booking, err := svc.Create(context.Background(), testUserID, &model.BookingRequest{
		CarID:      testCarID,
		PickupDate: "2024-03-01T10:00:00Z",
		ReturnDate: "2024-03-02T22:00:00Z",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.Price != 200 {
		t.Errorf("expected price 200, got %v", booking.Price)
	}
	if created == nil {
		t.Fatal("expected booking to be persisted")
	}
	if created.Status != model.StatusPending {
		t.Errorf("expected new booking status pending, got %s", created.Status)
	}
	if created.OwnerID != testOwnerID {
		t.Errorf("expected owner denormalized from car, got %s", created.OwnerID)
	}
}

func TestCreate_WholeDayRangePrice(t *testing.T) {
	repo := &mockBookingRepository{}
	cars := &mockCarFinder{
		findByIDFunc: func(ctx context.Context, id string) (*model.Car, error) {
			return testCar(50), nil
		},
	}
	svc := newTestService(repo, &mockLockRepository{}, cars, nil)

	booking, err := svc.Create(context.Background(), testUserID, &model.BookingRequest{
		CarID:      testCarID,
		PickupDate: "2024-03-01",
		ReturnDate: "2024-03-04",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if booking.Price != 150 {
		t.Errorf("expected price 150 for 3 days at 50/day, got %v", booking.Price)
	}
}

func TestCreate_ValidationFailsFast(t *testing.T) {
	overlapCalls := 0
	carLookups := 0
	repo := &mockBookingRepository{
		findOverlappingFunc: func(ctx context.Context, carID string, pickup, returnDate time.Time, includeCancelled bool) ([]*model.Booking, error) {
			overlapCalls++
			return nil, nil
		},
	}
	cars := &mockCarFinder{
		findByIDFunc: func(ctx context.Context, id string) (*model.Car, error) {
			carLookups++
			return testCar(100), nil
		},
	}
	svc := newTestService(repo, &mockLockRepository{}, cars, nil)

	tests := []struct {
		name     string
		req      *model.BookingRequest
		wantCode string
	}{
		{
			name:     "missing car_id",
			req:      &model.BookingRequest{PickupDate: "2024-03-01", ReturnDate: "2024-03-04"},
			wantCode: apperrors.CodeInvalidInput,
		},
		{
			name:     "missing pickup_date",
			req:      &model.BookingRequest{CarID: testCarID, ReturnDate: "2024-03-04"},
			wantCode: apperrors.CodeInvalidInput,
		},
		{
			name:     "missing return_date",
			req:      &model.BookingRequest{CarID: testCarID, PickupDate: "2024-03-01"},
			wantCode: apperrors.CodeInvalidInput,
		},
		{
			name:     "malformed pickup_date",
			req:      &model.BookingRequest{CarID: testCarID, PickupDate: "not-a-date", ReturnDate: "2024-03-04"},
			wantCode: apperrors.CodeInvalidInput,
		},
		{
			name:     "malformed return_date",
			req:      &model.BookingRequest{CarID: testCarID, PickupDate: "2024-03-01", ReturnDate: "03/04/2024"},
			wantCode: apperrors.CodeInvalidInput,
		},
		{
			name:     "return equals pickup",
			req:      &model.BookingRequest{CarID: testCarID, PickupDate: "2024-03-01", ReturnDate: "2024-03-01"},
			wantCode: apperrors.CodeValidation,
		},
		{
			name:     "return before pickup",
			req:      &model.BookingRequest{CarID: testCarID, PickupDate: "2024-03-04", ReturnDate: "2024-03-01"},
			wantCode: apperrors.CodeValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), testUserID, tt.req)
			assertCode(t, err, tt.wantCode)
		})
	}

	if carLookups != 0 {
		t.Errorf("expected no car lookups on invalid input, got %d", carLookups)
	}
	if overlapCalls != 0 {
		t.Errorf("expected no availability checks on invalid input, got %d", overlapCalls)
	}
}

func TestCreate_CarNotFound(t *testing.T) {
	cars := &mockCarFinder{
		findByIDFunc: func(ctx context.Context, id string) (*model.Car, error) {
			return nil, carserrors.ErrNotFound
		},
	}
	svc := newTestService(&mockBookingRepository{}, &mockLockRepository{}, cars, nil)

	_, err := svc.Create(context.Background(), testUserID, &model.BookingRequest{
		CarID:      testCarID,
		PickupDate: "2024-03-01",
		ReturnDate: "2024-03-04",
	})
	assertCode(t, err, apperrors.CodeNotFound)
}

func TestCreate_OverlapConflict(t *testing.T) {
	existing := []*model.Booking{storedBooking(model.StatusConfirmed, "2024-03-01", "2024-03-04")}

	tests := []struct {
		name       string
		pickup     string
		returnDate string
		wantErr    bool
	}{
		{"overlapping range", "2024-03-03", "2024-03-06", true},
		{"contained range", "2024-03-02", "2024-03-03", true},
		{"surrounding range", "2024-02-28", "2024-03-10", true},
		{"pickup on existing return date", "2024-03-04", "2024-03-08", true},
		{"return on existing pickup date", "2024-02-27", "2024-03-01", true},
		{"after existing", "2024-03-05", "2024-03-08", false},
		{"before existing", "2024-02-20", "2024-02-28", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			createCalls := 0
			repo := &mockBookingRepository{
				findOverlappingFunc: overlapFilter(existing),
				createFunc: func(ctx context.Context, booking *model.Booking) error {
					createCalls++
					booking.ID = testBookID
					return nil
				},
			}
			svc := newTestService(repo, &mockLockRepository{}, &mockCarFinder{}, nil)

			_, err := svc.Create(context.Background(), testUserID, &model.BookingRequest{
				CarID:      testCarID,
				PickupDate: tt.pickup,
				ReturnDate: tt.returnDate,
			})

			if tt.wantErr {
				assertCode(t, err, apperrors.CodeConflict)
				if createCalls != 0 {
					t.Errorf("expected no insert on conflict, got %d", createCalls)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestCreate_CancelledBookingBlocking(t *testing.T) {
	existing := []*model.Booking{storedBooking(model.StatusCancelled, "2024-03-01", "2024-03-04")}

	tests := []struct {
		name         string
		blockPolicy  bool
		wantConflict bool
	}{
		{"cancelled blocks when policy on", true, true},
		{"cancelled released when policy off", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockBookingRepository{
				findOverlappingFunc: overlapFilter(existing),
			}
			cfg := testConfig()
			cfg.BlockCancelledBookings = tt.blockPolicy
			svc := newTestService(repo, &mockLockRepository{}, &mockCarFinder{}, cfg)

			_, err := svc.Create(context.Background(), testUserID, &model.BookingRequest{
				CarID:      testCarID,
				PickupDate: "2024-03-02",
				ReturnDate: "2024-03-05",
			})

			if tt.wantConflict {
				assertCode(t, err, apperrors.CodeConflict)
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestCreate_LockHeldByAnotherRequest(t *testing.T) {
	locks := &mockLockRepository{
		createFunc: func(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error) {
			return nil, mongo.WriteException{
				WriteErrors: mongo.WriteErrors{{Code: 11000}},
			}
		},
	}
	svc := newTestService(&mockBookingRepository{}, locks, &mockCarFinder{}, nil)

	_, err := svc.Create(context.Background(), testUserID, &model.BookingRequest{
		CarID:      testCarID,
		PickupDate: "2024-03-01",
		ReturnDate: "2024-03-04",
	})
	assertCode(t, err, apperrors.CodeConflict)
}

func TestCreate_LockReleasedAfterConflict(t *testing.T) {
	released := ""
	locks := &mockLockRepository{
		deleteFunc: func(ctx context.Context, lockID string) error {
			released = lockID
			return nil
		},
	}
	repo := &mockBookingRepository{
		findOverlappingFunc: overlapFilter([]*model.Booking{
			storedBooking(model.StatusConfirmed, "2024-03-01", "2024-03-04"),
		}),
	}
	svc := newTestService(repo, locks, &mockCarFinder{}, nil)

	_, err := svc.Create(context.Background(), testUserID, &model.BookingRequest{
		CarID:      testCarID,
		PickupDate: "2024-03-02",
		ReturnDate: "2024-03-05",
	})
	assertCode(t, err, apperrors.CodeConflict)

	if released == "" {
		t.Error("expected lock to be released after failed creation")
	}
}

func TestCheckAvailability(t *testing.T) {
	tests := []struct {
		name     string
		existing []*model.Booking
		want     bool
	}{
		{"free range", nil, true},
		{"blocked range", []*model.Booking{storedBooking(model.StatusPending, "2024-03-01", "2024-03-04")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockBookingRepository{
				findOverlappingFunc: overlapFilter(tt.existing),
			}
			svc := newTestService(repo, &mockLockRepository{}, &mockCarFinder{}, nil)

			available, err := svc.CheckAvailability(context.Background(), &model.AvailabilityRequest{
				CarID:      testCarID,
				PickupDate: "2024-03-02",
				ReturnDate: "2024-03-05",
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if available != tt.want {
				t.Errorf("expected available=%v, got %v", tt.want, available)
			}
		})
	}
}

func TestCheckAvailability_IsReadOnly(t *testing.T) {
	lockCalls := 0
	locks := &mockLockRepository{
		createFunc: func(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error) {
			lockCalls++
			return lock, nil
		},
	}
	svc := newTestService(&mockBookingRepository{}, locks, &mockCarFinder{}, nil)

	// Same request twice: the answer must not change and no lock is taken.
	for i := 0; i < 2; i++ {
		available, err := svc.CheckAvailability(context.Background(), &model.AvailabilityRequest{
			CarID:      testCarID,
			PickupDate: "2024-03-01",
			ReturnDate: "2024-03-04",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !available {
			t.Error("expected range to be available")
		}
	}
	if lockCalls != 0 {
		t.Errorf("expected no locks for availability checks, got %d", lockCalls)
	}
}

func TestChangeStatus_Transitions(t *testing.T) {
	tests := []struct {
		name       string
		from       string
		to         string
		wantCode   string
		wantUpdate bool
	}{
		{"pending to confirmed", model.StatusPending, model.StatusConfirmed, "", true},
		{"pending to cancelled", model.StatusPending, model.StatusCancelled, "", true},
		{"confirmed to cancelled", model.StatusConfirmed, model.StatusCancelled, "", true},
		{"repeated confirmation is a no-op", model.StatusConfirmed, model.StatusConfirmed, "", false},
		{"repeated cancellation is a no-op", model.StatusCancelled, model.StatusCancelled, "", false},
		{"confirmed back to pending", model.StatusConfirmed, model.StatusPending, apperrors.CodeInvalidTransition, false},
		{"cancelled to confirmed", model.StatusCancelled, model.StatusConfirmed, apperrors.CodeInvalidTransition, false},
		{"cancelled to pending", model.StatusCancelled, model.StatusPending, apperrors.CodeInvalidTransition, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updates := 0
			repo := &mockBookingRepository{
				findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
					return storedBooking(tt.from, "2024-03-01", "2024-03-04"), nil
				},
				updateStatusFunc: func(ctx context.Context, id string, status string) (*mongo.UpdateResult, error) {
					updates++
					if status != tt.to {
						t.Errorf("expected update to %s, got %s", tt.to, status)
					}
					return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
				},
			}
			svc := newTestService(repo, &mockLockRepository{}, &mockCarFinder{}, nil)

			booking, _, err := svc.ChangeStatus(context.Background(), testOwnerID, &model.StatusChangeRequest{
				BookingID: testBookID,
				Status:    tt.to,
			})

			if tt.wantCode != "" {
				assertCode(t, err, tt.wantCode)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if booking.Status != tt.to {
				t.Errorf("expected status %s, got %s", tt.to, booking.Status)
			}
			if tt.wantUpdate && updates != 1 {
				t.Errorf("expected exactly one status write, got %d", updates)
			}
			if !tt.wantUpdate && updates != 0 {
				t.Errorf("expected no status write, got %d", updates)
			}
		})
	}
}

func TestChangeStatus_OnlyOwnerMayAct(t *testing.T) {
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return storedBooking(model.StatusPending, "2024-03-01", "2024-03-04"), nil
		},
	}
	svc := newTestService(repo, &mockLockRepository{}, &mockCarFinder{}, nil)

	_, _, err := svc.ChangeStatus(context.Background(), testUserID, &model.StatusChangeRequest{
		BookingID: testBookID,
		Status:    model.StatusConfirmed,
	})
	assertCode(t, err, apperrors.CodeForbidden)
}

func TestChangeStatus_BookingNotFound(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, &mockLockRepository{}, &mockCarFinder{}, nil)

	_, _, err := svc.ChangeStatus(context.Background(), testOwnerID, &model.StatusChangeRequest{
		BookingID: testBookID,
		Status:    model.StatusConfirmed,
	})
	assertCode(t, err, apperrors.CodeNotFound)
}

func TestChangeStatus_RejectsUnknownStatus(t *testing.T) {
	lookups := 0
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			lookups++
			return storedBooking(model.StatusPending, "2024-03-01", "2024-03-04"), nil
		},
	}
	svc := newTestService(repo, &mockLockRepository{}, &mockCarFinder{}, nil)

	_, _, err := svc.ChangeStatus(context.Background(), testOwnerID, &model.StatusChangeRequest{
		BookingID: testBookID,
		Status:    "finished",
	})
	assertCode(t, err, apperrors.CodeInvalidInput)

	if lookups != 0 {
		t.Errorf("expected no lookup for unknown status, got %d", lookups)
	}
}

func TestChangeStatus_ReturnsOwnerBookings(t *testing.T) {
	ownerBookings := []*model.Booking{
		storedBooking(model.StatusConfirmed, "2024-03-01", "2024-03-04"),
		storedBooking(model.StatusPending, "2024-04-01", "2024-04-03"),
	}
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			return storedBooking(model.StatusPending, "2024-03-01", "2024-03-04"), nil
		},
		findByOwnerFunc: func(ctx context.Context, ownerID string) ([]*model.Booking, error) {
			if ownerID != testOwnerID {
				t.Errorf("expected owner %s, got %s", testOwnerID, ownerID)
			}
			return ownerBookings, nil
		},
	}
	svc := newTestService(repo, &mockLockRepository{}, &mockCarFinder{}, nil)

	_, bookings, err := svc.ChangeStatus(context.Background(), testOwnerID, &model.StatusChangeRequest{
		BookingID: testBookID,
		Status:    model.StatusConfirmed,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bookings) != 2 {
		t.Errorf("expected 2 owner bookings, got %d", len(bookings))
	}
}

func TestListForRenter_RepositoryFailure(t *testing.T) {
	repo := &mockBookingRepository{
		findByRenterFunc: func(ctx context.Context, userID string) ([]*model.Booking, error) {
			return nil, errors.New("connection reset")
		},
	}
	svc := newTestService(repo, &mockLockRepository{}, &mockCarFinder{}, nil)

	_, err := svc.ListForRenter(context.Background(), testUserID)
	assertCode(t, err, apperrors.CodeInternal)
}

func TestBilledDays(t *testing.T) {
	tests := []struct {
		name   string
		pickup string
		ret    string
		want   int64
	}{
		{"exact three days", "2024-03-01T00:00:00Z", "2024-03-04T00:00:00Z", 3},
		{"half day rounds up", "2024-03-01T10:00:00Z", "2024-03-02T22:00:00Z", 2},
		{"one hour rounds up", "2024-03-01T10:00:00Z", "2024-03-01T11:00:00Z", 1},
		{"just over a day", "2024-03-01T10:00:00Z", "2024-03-02T10:00:01Z", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := billedDays(mustDate(tt.pickup), mustDate(tt.ret))
			if got != tt.want {
				t.Errorf("billedDays(%s, %s) = %d, want %d", tt.pickup, tt.ret, got, tt.want)
			}
		})
	}
}
