package validator

import (
	"strings"
	"testing"
	"time"

	"carrental/pkg/logger"
	"carrental/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func validBooking() *model.Booking {
	return &model.Booking{
		CarID:      "507f1f77bcf86cd799439011",
		UserID:     "507f1f77bcf86cd799439012",
		OwnerID:    "507f1f77bcf86cd799439013",
		PickupDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		ReturnDate: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		Price:      150,
		Status:     model.StatusPending,
	}
}

func TestValidate_AcceptsWellFormedBooking(t *testing.T) {
	v := NewBookingValidator(testLogger())

	if err := v.Validate(validBooking()); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestValidate_RejectsBadBookings(t *testing.T) {
	v := NewBookingValidator(testLogger())

	tests := []struct {
		name     string
		mutate   func(b *model.Booking)
		wantPart string
	}{
		{
			name:     "missing car reference",
			mutate:   func(b *model.Booking) { b.CarID = "" },
			wantPart: "CarID",
		},
		{
			name:     "malformed car reference",
			mutate:   func(b *model.Booking) { b.CarID = "not-an-object-id" },
			wantPart: "CarID",
		},
		{
			name:     "missing renter",
			mutate:   func(b *model.Booking) { b.UserID = "" },
			wantPart: "UserID",
		},
		{
			name:     "return before pickup",
			mutate:   func(b *model.Booking) { b.ReturnDate = b.PickupDate.Add(-24 * time.Hour) },
			wantPart: "ReturnDate",
		},
		{
			name:     "return equals pickup",
			mutate:   func(b *model.Booking) { b.ReturnDate = b.PickupDate },
			wantPart: "ReturnDate",
		},
		{
			name:     "negative price",
			mutate:   func(b *model.Booking) { b.Price = -1 },
			wantPart: "Price",
		},
		{
			name:     "unknown status",
			mutate:   func(b *model.Booking) { b.Status = "finished" },
			wantPart: "Status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(b)

			err := v.Validate(b)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantPart) {
				t.Errorf("expected error to mention %s, got: %v", tt.wantPart, err)
			}
		})
	}
}
