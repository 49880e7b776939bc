package service

import (
	"context"
	"errors"
	"io"

	carserrors "carrental/internal/cars/errors"
	"carrental/internal/cars/repository"
	"carrental/internal/cars/validator"
	"carrental/pkg/config"
	apperrors "carrental/pkg/errors"
	"carrental/pkg/model"
	"carrental/pkg/sanitizer"
	"carrental/pkg/storage"
)

type CarService interface {
	Add(ctx context.Context, ownerID string, car *model.Car) error
	GetByID(ctx context.Context, id string) (*model.Car, error)
	ListAvailable(ctx context.Context) ([]*model.Car, error)
	ListForOwner(ctx context.Context, ownerID string) ([]*model.Car, error)
	ToggleAvailability(ctx context.Context, ownerID, carID string) (*model.Car, error)
	Delete(ctx context.Context, ownerID, carID string) error
	AttachImage(ctx context.Context, ownerID, carID, filename string, file io.Reader) (*model.Car, error)
}

type carService struct {
	repo      repository.CarRepository
	validator *validator.CarValidator
	files     *storage.FileStore
	cfg       *config.Config
}

func NewCarService(
	repo repository.CarRepository,
	validator *validator.CarValidator,
	files *storage.FileStore,
	cfg *config.Config,
) CarService {
	return &carService{
		repo:      repo,
		validator: validator,
		files:     files,
		cfg:       cfg,
	}
}

func (s *carService) Add(ctx context.Context, ownerID string, car *model.Car) error {
	car.OwnerID = ownerID
	car.IsAvailable = true
	s.sanitize(car)

	if err := s.validator.Validate(car); err != nil {
		s.cfg.Log.Warn("Car validation failed", "error", err)
		return apperrors.Validation("Car validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, car); err != nil {
		s.cfg.Log.Error("Failed to create car", "owner_id", ownerID, "error", err)
		return apperrors.Internal("Failed to create car", err)
	}

	s.cfg.Log.Info("Car created successfully",
		"id", car.ID,
		"owner_id", car.OwnerID,
		"brand", car.Brand,
		"model", car.Model,
	)
	return nil
}

func (s *carService) GetByID(ctx context.Context, id string) (*model.Car, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Car ID cannot be empty")
	}
	return s.findCar(ctx, id)
}

func (s *carService) ListAvailable(ctx context.Context) ([]*model.Car, error) {
	cars, err := s.repo.FindAvailable(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to list available cars", "error", err)
		return nil, apperrors.Internal("Failed to retrieve cars", err)
	}
	return cars, nil
}

func (s *carService) ListForOwner(ctx context.Context, ownerID string) ([]*model.Car, error) {
	if ownerID == "" {
		return nil, apperrors.InvalidInput("Owner ID cannot be empty")
	}

	cars, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		s.cfg.Log.Error("Failed to list cars for owner", "owner_id", ownerID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve cars", err)
	}
	return cars, nil
}

func (s *carService) ToggleAvailability(ctx context.Context, ownerID, carID string) (*model.Car, error) {
	car, err := s.ownedCar(ctx, ownerID, carID)
	if err != nil {
		return nil, err
	}

	car.IsAvailable = !car.IsAvailable
	if err := s.repo.SetAvailability(ctx, carID, car.IsAvailable); err != nil {
		s.cfg.Log.Error("Failed to toggle car availability", "id", carID, "error", err)
		return nil, apperrors.Internal("Failed to update car", err)
	}

	s.cfg.Log.Info("Car availability toggled", "id", carID, "is_available", car.IsAvailable)
	return car, nil
}

func (s *carService) Delete(ctx context.Context, ownerID, carID string) error {
	if _, err := s.ownedCar(ctx, ownerID, carID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, carID); err != nil {
		if errors.Is(err, carserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Car", carID)
		}
		s.cfg.Log.Error("Failed to delete car", "id", carID, "error", err)
		return apperrors.Internal("Failed to delete car", err)
	}

	if err := s.files.Delete(carID); err != nil {
		s.cfg.Log.Warn("Failed to remove car images", "id", carID, "error", err)
	}

	s.cfg.Log.Info("Car deleted", "id", carID, "owner_id", ownerID)
	return nil
}

func (s *carService) AttachImage(ctx context.Context, ownerID, carID, filename string, file io.Reader) (*model.Car, error) {
	car, err := s.ownedCar(ctx, ownerID, carID)
	if err != nil {
		return nil, err
	}

	path, err := s.files.Save(carID, filename, file)
	if err != nil {
		s.cfg.Log.Error("Failed to store car image", "id", carID, "error", err)
		return nil, apperrors.Internal("Failed to store image", err)
	}

	if err := s.repo.SetImage(ctx, carID, path); err != nil {
		s.cfg.Log.Error("Failed to update car image", "id", carID, "error", err)
		return nil, apperrors.Internal("Failed to update car", err)
	}

	car.Image = path
	return car, nil
}

// --- Helpers ---

func (s *carService) sanitize(car *model.Car) {
	car.Brand = sanitizer.NormalizeName(car.Brand)
	car.Model = sanitizer.NormalizeName(car.Model)
	car.Category = sanitizer.NormalizeLabel(car.Category)
	car.Transmission = sanitizer.NormalizeLabel(car.Transmission)
	car.Location = sanitizer.NormalizeLocation(car.Location)
	car.Description = sanitizer.TrimAndNormalize(car.Description)
}

func (s *carService) findCar(ctx context.Context, carID string) (*model.Car, error) {
	car, err := s.repo.FindByID(ctx, carID)
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

// ownedCar loads a car and enforces that the caller owns it.
func (s *carService) ownedCar(ctx context.Context, ownerID, carID string) (*model.Car, error) {
	if carID == "" {
		return nil, apperrors.InvalidInput("Car ID cannot be empty")
	}

	car, err := s.findCar(ctx, carID)
	if err != nil {
		return nil, err
	}
	if car.OwnerID != ownerID {
		return nil, apperrors.Forbidden("Only the car owner can perform this action")
	}
	return car, nil
}
