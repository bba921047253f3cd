package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"roomly/internal/bookings/broadcast"
	bookingserrors "roomly/internal/bookings/errors"
	"roomly/internal/bookings/repository"
	"roomly/internal/bookings/validator"
	"roomly/pkg/config"
	mongotx "roomly/pkg/db/mongo"
	apperrors "roomly/pkg/errors"
	"roomly/pkg/logger"
	"roomly/pkg/model"
)

const testRoomID = "65f1a2b3c4d5e6f7a8b9c0d1"

// fakeBookingRepository keeps bookings in memory and reproduces the
// half-open overlap filter the Mongo query applies.
type fakeBookingRepository struct {
	mu       sync.Mutex
	bookings map[string]*model.Booking
	nextID   int
}

func newFakeBookingRepository() *fakeBookingRepository {
	return &fakeBookingRepository{bookings: map[string]*model.Booking{}}
}

func (r *fakeBookingRepository) Create(_ context.Context, booking *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	booking.ID = fmt.Sprintf("booking-%d", r.nextID)
	booking.CreatedAt = time.Now().UTC()
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookingRepository) FindByID(_ context.Context, id string) (*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrNotFound, id)
	}
	copied := *booking
	return &copied, nil
}

func (r *fakeBookingRepository) FindAll(_ context.Context, limit int, offset int64) ([]*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Booking
	for _, b := range r.bookings {
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeBookingRepository) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.bookings)), nil
}

func (r *fakeBookingRepository) Update(_ context.Context, id string, booking *model.Booking, from model.BookingStatus) (*mongo.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrNotFound, id)
	}
	if stored.Status != from {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrStaleStatus, id)
	}
	copied := *booking
	copied.ID = id
	r.bookings[id] = &copied
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (r *fakeBookingRepository) FindByRoom(_ context.Context, roomID string, limit int, offset int64) ([]*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Booking
	for _, b := range r.bookings {
		if b.RoomID == roomID {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeBookingRepository) CountByRoom(_ context.Context, roomID string) (int64, error) {
	bookings, _ := r.FindByRoom(context.Background(), roomID, 0, 0)
	return int64(len(bookings)), nil
}

func (r *fakeBookingRepository) FindOverlapping(_ context.Context, roomID string, start, end time.Time, excludeID string) ([]*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Booking
	for _, b := range r.bookings {
		if b.RoomID != roomID || b.ID == excludeID || !b.Live() {
			continue
		}
		if b.StartTime.Before(end) && b.EndTime.After(start) {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	err := fn(nil)
	if err != nil && !apperrors.IsAppError(err) {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return err
}

// fakeLockRepository mimics the unique _id insert: a second Create for the
// same lock ID fails with a duplicate key error until Delete runs.
type fakeLockRepository struct {
	mu    sync.Mutex
	locks map[string]bool
}

func newFakeLockRepository() *fakeLockRepository {
	return &fakeLockRepository{locks: map[string]bool{}}
}

func (r *fakeLockRepository) Create(_ context.Context, lock *model.RoomLock) (*model.RoomLock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.locks[lock.ID] {
		return nil, mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
	}
	r.locks[lock.ID] = true
	return lock, nil
}

func (r *fakeLockRepository) Delete(ctx context.Context, lockID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.locks, lockID)
	return nil
}

func (r *fakeLockRepository) held(lockID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.locks[lockID]
}

// recordingBroadcaster captures announced events for assertions.
type recordingBroadcaster struct {
	mu     sync.Mutex
	events []broadcast.Kind
}

func (b *recordingBroadcaster) Announce(kind broadcast.Kind, _ *model.Booking) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, kind)
}

func (b *recordingBroadcaster) Close() error { return nil }

func (b *recordingBroadcaster) kinds() []broadcast.Kind {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]broadcast.Kind, len(b.events))
	copy(out, b.events)
	return out
}

type stubDirectory struct {
	rooms map[string]*model.Room
}

func (d *stubDirectory) GetRoom(_ context.Context, id string) (*model.Room, error) {
	room, ok := d.rooms[id]
	if !ok {
		return nil, apperrors.NotFoundWithID("Room", id)
	}
	return room, nil
}

func testConfig() *config.Config {
	return &config.Config{
		BusinessDayStart:  "08:00",
		BusinessDayEnd:    "16:00",
		LockTTL:           10 * time.Second,
		LockRetryAttempts: 5,
		LockRetryBackoff:  5 * time.Millisecond,
		Log: logger.New(logger.Config{
			Level:   logger.ERROR,
			Format:  logger.TEXT,
			Service: "test",
		}),
	}
}

type fixture struct {
	service     BookingService
	repo        *fakeBookingRepository
	locks       *fakeLockRepository
	broadcaster *recordingBroadcaster
}

func newFixture() *fixture {
	return newFixtureWith(nil)
}

// newFixtureWith wires the service around wrap(repo) so a test can intercept
// repository calls; a nil wrap uses the in-memory repository directly.
func newFixtureWith(wrap func(repository.BookingRepository) repository.BookingRepository) *fixture {
	cfg := testConfig()
	dir := &stubDirectory{rooms: map[string]*model.Room{
		testRoomID: {
			ID:       testRoomID,
			Name:     "War Room",
			Location: "HQ / Floor 3",
			Capacity: 10,
			IsActive: true,
		},
	}}
	repo := newFakeBookingRepository()
	var storage repository.BookingRepository = repo
	if wrap != nil {
		storage = wrap(repo)
	}
	locks := newFakeLockRepository()
	broadcaster := &recordingBroadcaster{}
	svc := NewBookingService(
		storage,
		locks,
		validator.NewBookingValidator(dir, cfg),
		broadcaster,
		cfg,
	)
	return &fixture{service: svc, repo: repo, locks: locks, broadcaster: broadcaster}
}

// staleReadRepository serves one pinned FindByID result, then falls through
// to the wrapped repository. It stands in for a reader whose snapshot goes
// stale before its write lands.
type staleReadRepository struct {
	repository.BookingRepository
	mu     sync.Mutex
	pinned *model.Booking
}

func (r *staleReadRepository) pin(b *model.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *b
	r.pinned = &copied
}

func (r *staleReadRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	r.mu.Lock()
	pinned := r.pinned
	r.pinned = nil
	r.mu.Unlock()
	if pinned != nil && pinned.ID == id {
		copied := *pinned
		return &copied, nil
	}
	return r.BookingRepository.FindByID(ctx, id)
}

// cancelAfterCommitRepository cancels the caller's context as soon as the
// transaction commits, like a client disconnecting right after the write.
type cancelAfterCommitRepository struct {
	repository.BookingRepository
	cancel context.CancelFunc
}

func (r *cancelAfterCommitRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	err := r.BookingRepository.ExecuteTransaction(ctx, fn)
	if err == nil {
		r.cancel()
	}
	return err
}

func newBooking(start, end time.Time) *model.Booking {
	return &model.Booking{
		RoomID:      testRoomID,
		Title:       "Standup",
		RequestedBy: "ada",
		StartTime:   start,
		EndTime:     end,
		Attendees:   4,
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 9, 1, hour, minute, 0, 0, time.UTC)
}

func TestCreate_OK(t *testing.T) {
	f := newFixture()

	booking := newBooking(at(9, 0), at(10, 0))
	if err := f.service.Create(context.Background(), booking); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	if booking.ID == "" {
		t.Error("expected booking ID to be assigned")
	}
	if booking.Status != model.StatusPending {
		t.Errorf("status = %q, want pending default", booking.Status)
	}
	if booking.CapacitySnapshot != 10 {
		t.Errorf("capacity_snapshot = %d, want 10", booking.CapacitySnapshot)
	}
	if booking.LocationSnapshot != "HQ / Floor 3" {
		t.Errorf("location_snapshot = %q", booking.LocationSnapshot)
	}
	if kinds := f.broadcaster.kinds(); len(kinds) != 1 || kinds[0] != broadcast.KindCreated {
		t.Errorf("broadcast kinds = %v, want [booking.created]", kinds)
	}
}

func TestCreate_OverlapRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if err := f.service.Create(ctx, newBooking(at(9, 0), at(10, 0))); err != nil {
		t.Fatalf("first Create() failed: %v", err)
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{"identical interval", at(9, 0), at(10, 0)},
		{"overlaps tail", at(9, 30), at(10, 30)},
		{"overlaps head", at(8, 30), at(9, 30)},
		{"contains existing", at(8, 30), at(10, 30)},
		{"inside existing", at(9, 15), at(9, 45)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.service.Create(ctx, newBooking(tt.start, tt.end))
			if err == nil {
				t.Fatal("expected conflict")
			}
			appErr := apperrors.AsAppError(err)
			if appErr == nil || appErr.Code != apperrors.CodeConflict {
				t.Fatalf("expected conflict code, got %v", err)
			}
			if appErr.Details["room_id"] != testRoomID {
				t.Errorf("conflict details missing room_id: %v", appErr.Details)
			}
		})
	}
}

// Back-to-back bookings share a boundary instant; the half-open interval
// rule makes that legal in both directions.
func TestCreate_AdjacentIntervalsAllowed(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if err := f.service.Create(ctx, newBooking(at(10, 0), at(11, 0))); err != nil {
		t.Fatalf("middle booking failed: %v", err)
	}
	if err := f.service.Create(ctx, newBooking(at(11, 0), at(12, 0))); err != nil {
		t.Errorf("booking starting at existing end should succeed: %v", err)
	}
	if err := f.service.Create(ctx, newBooking(at(9, 0), at(10, 0))); err != nil {
		t.Errorf("booking ending at existing start should succeed: %v", err)
	}
}

// A cancelled booking frees its interval.
func TestCreate_CancelledBookingDoesNotBlock(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first := newBooking(at(9, 0), at(10, 0))
	if err := f.service.Create(ctx, first); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if _, err := f.service.ChangeStatus(ctx, first.ID, model.StatusCancelled); err != nil {
		t.Fatalf("ChangeStatus() failed: %v", err)
	}

	if err := f.service.Create(ctx, newBooking(at(9, 0), at(10, 0))); err != nil {
		t.Errorf("interval should be free after cancellation: %v", err)
	}
}

func TestCreate_InvalidInitialStatus(t *testing.T) {
	f := newFixture()

	booking := newBooking(at(9, 0), at(10, 0))
	booking.Status = model.StatusCancelled

	err := f.service.Create(context.Background(), booking)
	if !apperrors.IsCode(err, apperrors.CodeInvalidInput) {
		t.Fatalf("expected invalid input for cancelled initial status, got %v", err)
	}
}

// Lifecycle fields in a create payload belong to the server; a client
// cannot plant a cancellation timestamp on a live booking.
func TestCreate_ClientCancelledAtIgnored(t *testing.T) {
	f := newFixture()

	booking := newBooking(at(9, 0), at(10, 0))
	stamp := at(7, 0)
	booking.CancelledAt = &stamp

	if err := f.service.Create(context.Background(), booking); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	stored, err := f.service.GetByID(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("GetByID() failed: %v", err)
	}
	if stored.CancelledAt != nil {
		t.Errorf("live booking stored with cancelled_at=%v", stored.CancelledAt)
	}
	if stored.Status != model.StatusPending {
		t.Errorf("status = %q, want pending", stored.Status)
	}
}

// A client that disconnects the moment the write commits must not leave
// the room lock held for the TTL window.
func TestCreate_LockReleasedAfterCallerDisconnects(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f := newFixtureWith(func(repo repository.BookingRepository) repository.BookingRepository {
		return &cancelAfterCommitRepository{BookingRepository: repo, cancel: cancel}
	})

	if err := f.service.Create(ctx, newBooking(at(9, 0), at(10, 0))); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	if ctx.Err() == nil {
		t.Fatal("expected caller context to be cancelled after commit")
	}
	if f.locks.held("room_lock_" + testRoomID) {
		t.Error("room lock still held after caller disconnected")
	}
}

// Two goroutines race to book overlapping intervals in the same room.
// Exactly one must win; the loser must see a conflict, never a double
// booking and never two failures.
func TestCreate_ConcurrentOverlapRace(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	results := make(chan error, 2)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			results <- f.service.Create(ctx, newBooking(at(9, 0), at(10, 0)))
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case apperrors.IsCode(err, apperrors.CodeConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error kind: %v", err)
		}
	}

	if successes != 1 || conflicts != 1 {
		t.Fatalf("got %d successes and %d conflicts, want exactly 1 of each", successes, conflicts)
	}

	stored, _ := f.repo.FindByRoom(ctx, testRoomID, 0, 0)
	if len(stored) != 1 {
		t.Fatalf("stored bookings = %d, want 1", len(stored))
	}
}

func TestReschedule_ExcludesSelf(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	booking := newBooking(at(9, 0), at(10, 0))
	if err := f.service.Create(ctx, booking); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	// The new interval overlaps the booking's own current slot; dropping
	// the exclusion would make every reschedule conflict with itself.
	newStart, newEnd := at(9, 30), at(10, 30)
	updated, err := f.service.Reschedule(ctx, booking.ID, &model.BookingPatch{
		StartTime: &newStart,
		EndTime:   &newEnd,
	})
	if err != nil {
		t.Fatalf("Reschedule() unexpected error: %v", err)
	}
	if !updated.StartTime.Equal(newStart) || !updated.EndTime.Equal(newEnd) {
		t.Errorf("interval = [%v, %v), want [%v, %v)", updated.StartTime, updated.EndTime, newStart, newEnd)
	}
}

func TestReschedule_ConflictWithOther(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first := newBooking(at(9, 0), at(10, 0))
	if err := f.service.Create(ctx, first); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	second := newBooking(at(11, 0), at(12, 0))
	if err := f.service.Create(ctx, second); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	newStart, newEnd := at(9, 30), at(10, 30)
	_, err := f.service.Reschedule(ctx, second.ID, &model.BookingPatch{
		StartTime: &newStart,
		EndTime:   &newEnd,
	})
	if !apperrors.IsCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	// The rejected reschedule must leave the booking untouched.
	current, getErr := f.service.GetByID(ctx, second.ID)
	if getErr != nil {
		t.Fatalf("GetByID() failed: %v", getErr)
	}
	if !current.StartTime.Equal(at(11, 0)) {
		t.Errorf("booking moved despite rejected reschedule: %v", current.StartTime)
	}
}

func TestReschedule_EmptyPatch(t *testing.T) {
	f := newFixture()

	_, err := f.service.Reschedule(context.Background(), "booking-1", &model.BookingPatch{})
	if !apperrors.IsCode(err, apperrors.CodeInvalidInput) {
		t.Fatalf("expected invalid input for empty patch, got %v", err)
	}
}

func TestReschedule_CancelledRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	booking := newBooking(at(9, 0), at(10, 0))
	if err := f.service.Create(ctx, booking); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if _, err := f.service.ChangeStatus(ctx, booking.ID, model.StatusCancelled); err != nil {
		t.Fatalf("ChangeStatus() failed: %v", err)
	}

	newTitle := "Moved"
	_, err := f.service.Reschedule(ctx, booking.ID, &model.BookingPatch{Title: &newTitle})
	if !apperrors.IsCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected conflict for cancelled booking, got %v", err)
	}
}

func TestChangeStatus_Flow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	booking := newBooking(at(9, 0), at(10, 0))
	if err := f.service.Create(ctx, booking); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	confirmed, err := f.service.ChangeStatus(ctx, booking.ID, model.StatusConfirmed)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if confirmed.Status != model.StatusConfirmed {
		t.Errorf("status = %q, want confirmed", confirmed.Status)
	}

	cancelled, err := f.service.ChangeStatus(ctx, booking.ID, model.StatusCancelled)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.CancelledAt == nil {
		t.Error("expected CancelledAt to be set")
	}

	// Terminal: nothing leaves cancelled, including cancelling again.
	for _, to := range []model.BookingStatus{model.StatusPending, model.StatusConfirmed, model.StatusCancelled} {
		if _, err := f.service.ChangeStatus(ctx, booking.ID, to); !apperrors.IsCode(err, apperrors.CodeInvalidTransition) {
			t.Errorf("cancelled -> %s: expected invalid transition, got %v", to, err)
		}
	}

	kinds := f.broadcaster.kinds()
	want := []broadcast.Kind{broadcast.KindCreated, broadcast.KindUpdated, broadcast.KindCancelled}
	if len(kinds) != len(want) {
		t.Fatalf("broadcast kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("broadcast[%d] = %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestChangeStatus_SameStatusRejected(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	booking := newBooking(at(9, 0), at(10, 0))
	if err := f.service.Create(ctx, booking); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	_, err := f.service.ChangeStatus(ctx, booking.ID, model.StatusPending)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInvalidTransition {
		t.Fatalf("expected invalid transition for pending -> pending, got %v", err)
	}
	if appErr.Details["from"] != "pending" || appErr.Details["to"] != "pending" {
		t.Errorf("details = %v", appErr.Details)
	}
}

// A confirm that read the booking before a racing cancel committed must
// not overwrite the cancellation: the status write is guarded by the
// status it was checked against.
func TestChangeStatus_StaleConfirmCannotResurrectCancelled(t *testing.T) {
	var stale *staleReadRepository
	f := newFixtureWith(func(repo repository.BookingRepository) repository.BookingRepository {
		stale = &staleReadRepository{BookingRepository: repo}
		return stale
	})
	ctx := context.Background()

	booking := newBooking(at(9, 0), at(10, 0))
	if err := f.service.Create(ctx, booking); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	snapshot := *booking

	if _, err := f.service.ChangeStatus(ctx, booking.ID, model.StatusCancelled); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	// The confirm sees the pre-cancel snapshot, as if both calls read
	// pending before either wrote and the cancel committed first.
	stale.pin(&snapshot)
	_, err := f.service.ChangeStatus(ctx, booking.ID, model.StatusConfirmed)
	appErr := apperrors.AsAppError(err)
	if appErr == nil || appErr.Code != apperrors.CodeInvalidTransition {
		t.Fatalf("expected invalid transition, got %v", err)
	}
	if appErr.Details["from"] != "cancelled" {
		t.Errorf("details = %v, want from=cancelled", appErr.Details)
	}

	current, getErr := f.service.GetByID(ctx, booking.ID)
	if getErr != nil {
		t.Fatalf("GetByID() failed: %v", getErr)
	}
	if current.Status != model.StatusCancelled {
		t.Fatalf("cancelled booking resurrected to %q", current.Status)
	}
	if current.CancelledAt == nil {
		t.Error("cancelled_at lost to the late status write")
	}
}

// The same guard protects reschedules: a move that read a live booking
// before a racing cancel committed must not re-write the stale status.
func TestReschedule_StaleReadCannotMoveCancelled(t *testing.T) {
	var stale *staleReadRepository
	f := newFixtureWith(func(repo repository.BookingRepository) repository.BookingRepository {
		stale = &staleReadRepository{BookingRepository: repo}
		return stale
	})
	ctx := context.Background()

	booking := newBooking(at(9, 0), at(10, 0))
	if err := f.service.Create(ctx, booking); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	snapshot := *booking

	if _, err := f.service.ChangeStatus(ctx, booking.ID, model.StatusCancelled); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	stale.pin(&snapshot)
	newStart, newEnd := at(11, 0), at(12, 0)
	_, err := f.service.Reschedule(ctx, booking.ID, &model.BookingPatch{
		StartTime: &newStart,
		EndTime:   &newEnd,
	})
	if !apperrors.IsCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}

	current, getErr := f.service.GetByID(ctx, booking.ID)
	if getErr != nil {
		t.Fatalf("GetByID() failed: %v", getErr)
	}
	if current.Status != model.StatusCancelled {
		t.Fatalf("cancelled booking resurrected to %q", current.Status)
	}
	if !current.StartTime.Equal(at(9, 0)) {
		t.Errorf("interval moved despite rejected reschedule: %v", current.StartTime)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.service.GetByID(context.Background(), "missing")
	if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
