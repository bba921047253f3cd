package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	roomserrors "roomly/internal/rooms/errors"
	"roomly/internal/rooms/validator"
	"roomly/pkg/config"
	mongotx "roomly/pkg/db/mongo"
	apperrors "roomly/pkg/errors"
	"roomly/pkg/logger"
	"roomly/pkg/model"
)

type fakeRoomRepository struct {
	mu     sync.Mutex
	rooms  map[string]*model.Room
	nextID int
}

func newFakeRoomRepository() *fakeRoomRepository {
	return &fakeRoomRepository{rooms: map[string]*model.Room{}}
}

func (r *fakeRoomRepository) Create(_ context.Context, room *model.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	room.ID = fmt.Sprintf("room-%d", r.nextID)
	copied := *room
	r.rooms[room.ID] = &copied
	return nil
}

func (r *fakeRoomRepository) FindByID(_ context.Context, id string) (*model.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", roomserrors.ErrNotFound, id)
	}
	copied := *room
	return &copied, nil
}

func (r *fakeRoomRepository) FindAll(_ context.Context, limit int, offset int64) ([]*model.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Room
	for _, room := range r.rooms {
		copied := *room
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeRoomRepository) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rooms)), nil
}

func (r *fakeRoomRepository) FindByNameAndLocation(_ context.Context, name, location string) (*model.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, room := range r.rooms {
		if room.Name == name && room.Location == location {
			copied := *room
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("%w: %s at %s", roomserrors.ErrNotFound, name, location)
}

func (r *fakeRoomRepository) Update(_ context.Context, id string, room *model.Room) (*mongo.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[id]; !ok {
		return nil, fmt.Errorf("%w: %s", roomserrors.ErrNotFound, id)
	}
	copied := *room
	copied.ID = id
	r.rooms[id] = &copied
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (r *fakeRoomRepository) ExecuteTransaction(_ context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

func newTestService() RoomService {
	cfg := &config.Config{
		Log: logger.New(logger.Config{
			Level:   logger.ERROR,
			Format:  logger.TEXT,
			Service: "test",
		}),
	}
	return NewRoomService(newFakeRoomRepository(), validator.NewRoomValidator(), cfg)
}

func newRoom() *model.Room {
	return &model.Room{
		Name:     "War Room",
		Location: "HQ / Floor 3",
		Capacity: 10,
	}
}

func TestCreate_OK(t *testing.T) {
	svc := newTestService()

	room := newRoom()
	if err := svc.Create(context.Background(), room); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if room.ID == "" {
		t.Error("expected room ID to be assigned")
	}
	if !room.IsActive {
		t.Error("new rooms should be active")
	}
}

func TestCreate_DuplicateRejected(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if err := svc.Create(ctx, newRoom()); err != nil {
		t.Fatalf("first Create() failed: %v", err)
	}

	err := svc.Create(ctx, newRoom())
	if !apperrors.IsCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected conflict for duplicate name+location, got %v", err)
	}
}

func TestCreate_InvalidCapacity(t *testing.T) {
	svc := newTestService()

	room := newRoom()
	room.Capacity = 0

	err := svc.Create(context.Background(), room)
	if !apperrors.IsCode(err, apperrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdate_MergesFields(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	room := newRoom()
	if err := svc.Create(ctx, room); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	capacity := 20
	updated, err := svc.Update(ctx, room.ID, &model.RoomUpdate{Capacity: &capacity})
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if updated.Capacity != 20 {
		t.Errorf("capacity = %d, want 20", updated.Capacity)
	}
	if updated.Name != room.Name {
		t.Errorf("untouched field changed: name = %q", updated.Name)
	}
}

func TestUpdate_EmptyUpdate(t *testing.T) {
	svc := newTestService()

	_, err := svc.Update(context.Background(), "room-1", &model.RoomUpdate{})
	if !apperrors.IsCode(err, apperrors.CodeInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestDeactivate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	room := newRoom()
	if err := svc.Create(ctx, room); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if err := svc.Deactivate(ctx, room.ID); err != nil {
		t.Fatalf("Deactivate() unexpected error: %v", err)
	}

	got, err := svc.GetByID(ctx, room.ID)
	if err != nil {
		t.Fatalf("GetByID() failed: %v", err)
	}
	if got.IsActive {
		t.Error("room should be inactive after Deactivate")
	}

	if err := svc.Deactivate(ctx, room.ID); !apperrors.IsCode(err, apperrors.CodeConflict) {
		t.Errorf("second Deactivate should conflict, got %v", err)
	}
}

func TestGetRoom_DirectoryLookup(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	room := newRoom()
	if err := svc.Create(ctx, room); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	got, err := svc.GetRoom(ctx, room.ID)
	if err != nil {
		t.Fatalf("GetRoom() unexpected error: %v", err)
	}
	if got.ID != room.ID {
		t.Errorf("resolved room %q, want %q", got.ID, room.ID)
	}

	if _, err := svc.GetRoom(ctx, "missing"); !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected not found for unknown room, got %v", err)
	}
}
