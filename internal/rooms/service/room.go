package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"

	roomserrors "roomly/internal/rooms/errors"
	"roomly/internal/rooms/repository"
	"roomly/internal/rooms/validator"
	"roomly/pkg/config"
	apperrors "roomly/pkg/errors"
	"roomly/pkg/model"
	"roomly/pkg/sanitizer"
)

// RoomService manages the room catalog. It also serves as the room
// directory for booking validation: GetRoom is the lookup bookings use to
// resolve and snapshot a room.
type RoomService interface {
	Create(ctx context.Context, room *model.Room) error
	GetByID(ctx context.Context, id string) (*model.Room, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Room, int64, error)
	Update(ctx context.Context, id string, update *model.RoomUpdate) (*model.Room, error)
	Deactivate(ctx context.Context, id string) error

	GetRoom(ctx context.Context, id string) (*model.Room, error)
}

type roomService struct {
	repo      repository.RoomRepository
	validator *validator.RoomValidator
	cfg       *config.Config
}

func NewRoomService(
	repo repository.RoomRepository,
	validator *validator.RoomValidator,
	cfg *config.Config,
) RoomService {
	return &roomService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *roomService) Create(ctx context.Context, room *model.Room) error {
	s.sanitize(room)
	room.IsActive = true

	if err := s.validator.Validate(room); err != nil {
		s.cfg.Log.Warn("Room validation failed", "name", room.Name, "error", err)
		return err
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		existing, err := s.repo.FindByNameAndLocation(sessCtx, room.Name, room.Location)
		if err != nil && !errors.Is(err, roomserrors.ErrNotFound) {
			return fmt.Errorf("failed to check for duplicates: %w", err)
		}
		if existing != nil {
			return apperrors.Conflict(fmt.Sprintf(
				"Room %q already exists at %q (id: %s)", room.Name, room.Location, existing.ID,
			))
		}

		if err := s.repo.Create(sessCtx, room); err != nil {
			return fmt.Errorf("failed to create room: %w", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create room", "name", room.Name, "error", err)
		return err
	}

	s.cfg.Log.Info("Room created successfully",
		"id", room.ID,
		"name", room.Name,
		"location", room.Location,
		"capacity", room.Capacity,
	)
	return nil
}

func (s *roomService) GetByID(ctx context.Context, id string) (*model.Room, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Room ID cannot be empty")
	}

	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, roomserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room", id)
		}
		if errors.Is(err, roomserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid room ID format")
		}
		s.cfg.Log.Error("Failed to get room by ID", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to retrieve room", err)
	}

	return room, nil
}

// GetRoom satisfies the booking validator's room directory.
func (s *roomService) GetRoom(ctx context.Context, id string) (*model.Room, error) {
	return s.GetByID(ctx, id)
}

func (s *roomService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Room, int64, error) {
	var count int64
	var rooms []*model.Room
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count rooms", "error", errCount)
			errCount = apperrors.Internal("Failed to count rooms", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		rooms, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list rooms", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve rooms", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return rooms, count, nil
}

func (s *roomService) Update(ctx context.Context, id string, update *model.RoomUpdate) (*model.Room, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Room ID cannot be empty")
	}
	if update == nil || update.IsEmpty() {
		return nil, apperrors.InvalidInput("Room update contains no changes")
	}
	if err := s.validator.ValidateUpdate(update); err != nil {
		return nil, err
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := s.mergeUpdate(existing, update)
	s.sanitize(merged)
	if err := s.validator.Validate(merged); err != nil {
		return nil, err
	}

	if _, err := s.repo.Update(ctx, id, merged); err != nil {
		s.cfg.Log.Error("Failed to update room", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update room", err)
	}

	s.cfg.Log.Info("Room updated successfully", "id", id, "name", merged.Name)
	return merged, nil
}

// Deactivate takes a room out of rotation. Existing bookings keep their
// snapshots; new bookings stop resolving against the room.
func (s *roomService) Deactivate(ctx context.Context, id string) error {
	room, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !room.IsActive {
		return apperrors.Conflict(fmt.Sprintf("Room %s is already inactive", id))
	}

	room.IsActive = false
	if _, err := s.repo.Update(ctx, id, room); err != nil {
		s.cfg.Log.Error("Failed to deactivate room", "id", id, "error", err)
		return apperrors.Internal("Failed to deactivate room", err)
	}

	s.cfg.Log.Info("Room deactivated", "id", id, "name", room.Name)
	return nil
}

func (s *roomService) sanitize(room *model.Room) {
	room.Name = sanitizer.SanitizeTitle(room.Name)
	room.Location = sanitizer.SanitizeLocation(room.Location)
}

func (s *roomService) mergeUpdate(existing *model.Room, update *model.RoomUpdate) *model.Room {
	merged := *existing

	if update.Name != nil {
		merged.Name = *update.Name
	}
	if update.Location != nil {
		merged.Location = *update.Location
	}
	if update.Capacity != nil {
		merged.Capacity = *update.Capacity
	}
	if update.IsActive != nil {
		merged.IsActive = *update.IsActive
	}

	return &merged
}
