package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"roomly/internal/bookings/broadcast"
	bookingserrors "roomly/internal/bookings/errors"
	"roomly/internal/bookings/lifecycle"
	"roomly/internal/bookings/repository"
	"roomly/internal/bookings/validator"
	"roomly/pkg/config"
	apperrors "roomly/pkg/errors"
	"roomly/pkg/model"
	"roomly/pkg/sanitizer"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	Reschedule(ctx context.Context, id string, patch *model.BookingPatch) (*model.Booking, error)
	ChangeStatus(ctx context.Context, id string, to model.BookingStatus) (*model.Booking, error)
	SearchByRoom(ctx context.Context, roomID string, limit int, offset int64) ([]*model.Booking, int64, error)
}

// bookingService coordinates every booking mutation through the same
// discipline: validate, take the room's advisory lock, run the conflict
// check and the write inside one transaction, release the lock, then
// announce the committed change.
type bookingService struct {
	repo        repository.BookingRepository
	lockRepo    repository.RoomLockRepository
	validator   *validator.BookingValidator
	broadcaster broadcast.Broadcaster
	cfg         *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.RoomLockRepository,
	validator *validator.BookingValidator,
	broadcaster broadcast.Broadcaster,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:        repo,
		lockRepo:    lockRepo,
		validator:   validator,
		broadcaster: broadcaster,
		cfg:         cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	s.applyDefaults(booking)
	s.sanitize(booking)

	if !lifecycle.ValidInitial(booking.Status) {
		return apperrors.InvalidInput(fmt.Sprintf("booking cannot be created with status %q", booking.Status))
	}

	room, err := s.validator.Validate(ctx, booking)
	if err != nil {
		s.cfg.Log.Warn("Booking validation failed",
			"room_id", booking.RoomID,
			"error", err,
		)
		return err
	}
	s.snapshotRoom(booking, room)

	lockID, err := s.acquireRoomLock(ctx, booking.RoomID)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseRoomLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release room lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.checkConflicts(sessCtx, booking.RoomID, booking.StartTime, booking.EndTime, ""); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "room_id", booking.RoomID, "error", err)
		return err
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"room_id", booking.RoomID,
		"start_time", booking.StartTime,
		"end_time", booking.EndTime,
	)

	s.broadcaster.Announce(broadcast.KindCreated, booking)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) Reschedule(ctx context.Context, id string, patch *model.BookingPatch) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if patch == nil || patch.IsEmpty() {
		return nil, apperrors.InvalidInput("Reschedule request contains no changes")
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !existing.Live() {
		return nil, apperrors.Conflict("Cancelled bookings cannot be rescheduled")
	}

	merged := s.mergePatch(existing, patch)
	s.sanitize(merged)

	room, err := s.validator.Validate(ctx, merged)
	if err != nil {
		s.cfg.Log.Warn("Booking reschedule validation failed", "id", id, "error", err)
		return nil, err
	}
	s.snapshotRoom(merged, room)

	// Only an interval move can create a conflict, but the lock is taken
	// either way so concurrent reschedules of the same room serialize.
	lockID, err := s.acquireRoomLock(ctx, merged.RoomID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseRoomLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release room lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if patch.ChangesInterval() {
			if err := s.checkConflicts(sessCtx, merged.RoomID, merged.StartTime, merged.EndTime, id); err != nil {
				return err
			}
		}
		// Guarded on the status read above. A cancel that committed after
		// that read makes the write match nothing, so a reschedule can
		// never bring a cancelled booking back.
		if _, err := s.repo.Update(sessCtx, id, merged, existing.Status); err != nil {
			if errors.Is(err, bookingserrors.ErrStaleStatus) {
				return apperrors.Conflict("Booking was modified concurrently. Please try again.")
			}
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", id)
			}
			return apperrors.Internal("Failed to update booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to reschedule booking", "id", id, "error", err)
		return nil, err
	}

	s.cfg.Log.Info("Booking rescheduled successfully",
		"id", id,
		"room_id", merged.RoomID,
		"start_time", merged.StartTime,
		"end_time", merged.EndTime,
	)

	s.broadcaster.Announce(broadcast.KindUpdated, merged)
	return merged, nil
}

func (s *bookingService) ChangeStatus(ctx context.Context, id string, to model.BookingStatus) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := booking.Status
	if err := lifecycle.Transition(booking, to); err != nil {
		s.cfg.Log.Warn("Booking status change rejected",
			"id", id,
			"from", from,
			"to", to,
		)
		return nil, err
	}

	// The write only lands if the stored status still equals the one the
	// transition was checked against. Without the guard, two racing calls
	// both reading pending could let a late confirm overwrite a committed
	// cancel.
	if _, err := s.repo.Update(ctx, id, booking, from); err != nil {
		if errors.Is(err, bookingserrors.ErrStaleStatus) {
			current, readErr := s.GetByID(ctx, id)
			if readErr != nil {
				return nil, readErr
			}
			s.cfg.Log.Warn("Booking status changed concurrently",
				"id", id,
				"read", from,
				"current", current.Status,
			)
			if lifecycle.CanTransition(current.Status, to) {
				return nil, apperrors.Conflict("Booking was modified concurrently. Please try again.")
			}
			return nil, apperrors.InvalidTransition(string(current.Status), string(to))
		}
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to persist booking status", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update booking status", err)
	}

	s.cfg.Log.Info("Booking status changed", "id", id, "status", booking.Status)

	kind := broadcast.KindUpdated
	if to == model.StatusCancelled {
		kind = broadcast.KindCancelled
	}
	s.broadcaster.Announce(kind, booking)

	return booking, nil
}

func (s *bookingService) SearchByRoom(ctx context.Context, roomID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	if roomID == "" {
		return nil, 0, apperrors.InvalidInput("room_id is required")
	}

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		var err error
		count, err = s.repo.CountByRoom(ctx, roomID)
		if err != nil {
			s.cfg.Log.Error("Failed to count bookings by room", "room_id", roomID, "error", err)
			errCount = apperrors.Internal("Failed to count bookings", err)
		}
	}()

	go func() {
		defer wg.Done()
		var err error
		bookings, err = s.repo.FindByRoom(ctx, roomID, limit, offset)
		if err != nil {
			s.cfg.Log.Error("Failed to search bookings by room", "room_id", roomID, "error", err)
			errFind = apperrors.Internal("Failed to search bookings", err)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

// --- Helpers ---

func (s *bookingService) applyDefaults(b *model.Booking) {
	if b.Status == "" {
		b.Status = model.StatusPending
	}
	if b.Attendees <= 0 {
		b.Attendees = 1
	}
	// Lifecycle fields belong to the server. A request body carrying them
	// must not produce a live booking with a cancellation timestamp.
	b.CancelledAt = nil
	b.CreatedAt = time.Time{}
}

func (s *bookingService) sanitize(b *model.Booking) {
	b.Title = sanitizer.SanitizeTitle(b.Title)
	b.RequestedBy = sanitizer.SanitizeIdentity(b.RequestedBy)
}

func (s *bookingService) snapshotRoom(b *model.Booking, room *model.Room) {
	b.CapacitySnapshot = room.Capacity
	b.LocationSnapshot = room.Location
}

func (s *bookingService) mergePatch(existing *model.Booking, patch *model.BookingPatch) *model.Booking {
	merged := *existing

	if patch.Title != nil {
		merged.Title = *patch.Title
	}
	if patch.StartTime != nil {
		merged.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		merged.EndTime = *patch.EndTime
	}
	if patch.Attendees != nil {
		merged.Attendees = *patch.Attendees
	}

	return &merged
}

// checkConflicts rejects the interval if any live booking for the room
// overlaps it. Both comparisons are strict, so a booking ending exactly
// when another starts is not a conflict.
func (s *bookingService) checkConflicts(ctx context.Context, roomID string, start, end time.Time, excludeID string) error {
	existing, err := s.repo.FindOverlapping(ctx, roomID, start, end, excludeID)
	if err != nil {
		return apperrors.Internal("Failed to check existing bookings", err)
	}

	for _, b := range existing {
		if overlaps(b.StartTime, b.EndTime, start, end) {
			return apperrors.IntervalConflict(roomID, b.StartTime, b.EndTime)
		}
	}
	return nil
}

func overlaps(start1, end1, start2, end2 time.Time) bool {
	return start1.Before(end2) && end1.After(start2)
}

// acquireRoomLock takes the advisory lock for a room, retrying with a fixed
// backoff while another writer holds it. Exhausting the retries means the
// room is under heavy contention; the caller gets a conflict rather than an
// unbounded wait.
func (s *bookingService) acquireRoomLock(ctx context.Context, roomID string) (string, error) {
	lockID := fmt.Sprintf("room_lock_%s", roomID)

	for attempt := 0; attempt < s.cfg.LockRetryAttempts; attempt++ {
		lock := &model.RoomLock{
			ID:        lockID,
			RoomID:    roomID,
			ExpiresAt: time.Now().Add(s.cfg.LockTTL),
		}

		_, err := s.lockRepo.Create(ctx, lock)
		if err == nil {
			return lockID, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Internal("Failed to acquire room lock", err)
		}

		select {
		case <-ctx.Done():
			return "", apperrors.Timeout("Request cancelled while waiting for room lock")
		case <-time.After(s.cfg.LockRetryBackoff):
		}
	}

	return "", apperrors.Conflict("Room is busy with another booking request. Please try again.")
}

// releaseRoomLock detaches from the caller's context. A client that
// disconnects right after commit must not leave the lock held until the
// TTL reaper runs.
func (s *bookingService) releaseRoomLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(context.WithoutCancel(ctx), lockID)
}
