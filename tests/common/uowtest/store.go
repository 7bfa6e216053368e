//go:build unit || e2e

// Package uowtest is an in-memory shared.UnitOfWork. It reproduces the two
// store guarantees the use cases rely on: the exclusion constraint on active
// date ranges and the version predicate on conditional saves.
package uowtest

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"campsite-booking/internal/domain/daterange"
	"campsite-booking/internal/domain/reservation"
	"campsite-booking/internal/infra"
	"campsite-booking/internal/usecase/readmodel"
	"campsite-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type record struct {
	id        int64
	version   int64
	name      string
	email     string
	status    reservation.Status
	dates     *daterange.Range
	createdAt time.Time
	updatedAt time.Time
}

func (r record) toDomain() *reservation.Reservation {
	var dates *daterange.Range
	if r.dates != nil {
		d := *r.dates
		dates = &d
	}
	res, err := reservation.ReconstructReservation(r.id, r.version,
		reservation.NewHolder(r.name, r.email), r.status, dates, r.createdAt, r.updatedAt)
	if err != nil {
		panic(err)
	}
	return res
}

// Job is an outbox row.
type Job struct {
	ID        uuid.UUID
	Topic     string
	Payload   []byte
	Status    string
	Attempts  int32
	LastError string
	RunAt     time.Time
}

type Store struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]record
	jobs   []*Job
	now    func() time.Time

	// AfterGet runs after every successful Get, outside the store lock.
	AfterGet func(id int64)
	// Fail makes every gateway call return a DB_FAILURE wrapping it.
	Fail error

	Reads   atomic.Int64
	Commits atomic.Int64
}

func NewStore() *Store {
	return &Store{
		rows: make(map[int64]record),
		now:  time.Now,
	}
}

var _ shared.UnitOfWork = (*Store)(nil)

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	t := &tx{store: s}
	if err := fn(ctx, t); err != nil {
		t.rollback()
		return err
	}
	s.Commits.Add(1)
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.ReadTx) error) error {
	return fn(ctx, &readTx{store: s})
}

// Seed stores an active reservation and returns its id.
func (s *Store) Seed(name, email string, stay daterange.Range) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.rows[s.nextID] = record{
		id: s.nextID, name: name, email: email,
		status: reservation.StatusActive, dates: &stay,
		createdAt: s.now(), updatedAt: s.now(),
	}
	return s.nextID
}

// Snapshot returns the committed state of id, or nil.
func (s *Store) Snapshot(id int64) *reservation.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[id]
	if !ok {
		return nil
	}
	return r.toDomain()
}

// ActiveRanges returns the ranges held by active reservations.
func (s *Store) ActiveRanges() []daterange.Range {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []daterange.Range
	for _, r := range s.rows {
		if r.status == reservation.StatusActive && r.dates != nil {
			out = append(out, *r.dates)
		}
	}
	return out
}

func (s *Store) Jobs() []Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Job, len(s.jobs))
	for i, j := range s.jobs {
		out[i] = *j
	}
	return out
}

func (s *Store) Topics() []string {
	jobs := s.Jobs()
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.Topic
	}
	return out
}

// EnqueueJob adds a due outbox row directly.
func (s *Store) EnqueueJob(topic string, payload []byte) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.jobs = append(s.jobs, &Job{ID: id, Topic: topic, Payload: payload, Status: "queued", RunAt: s.now()})
	return id
}

func (s *Store) fail(msg string) error {
	if s.Fail == nil {
		return nil
	}
	return infra.WrapRepoErr(msg, s.Fail)
}

func (s *Store) conflicting(stay daterange.Range, selfID int64) bool {
	for id, r := range s.rows {
		if id == selfID || r.status != reservation.StatusActive || r.dates == nil {
			continue
		}
		if daterange.Overlaps(*r.dates, stay) {
			return true
		}
	}
	return false
}

var exclusionViolation = &pgconn.PgError{Code: "23P01", ConstraintName: "reservations_no_overlap"}

type undo func()

type tx struct {
	store *Store
	undos []undo
}

func (t *tx) rollback() {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for i := len(t.undos) - 1; i >= 0; i-- {
		t.undos[i]()
	}
}

func (t *tx) Reservations() shared.ReservationStore {
	return &reservations{store: t.store, tx: t}
}

func (t *tx) Notifications() shared.NotificationRepository {
	return &notifications{store: t.store, tx: t}
}

type readTx struct {
	store *Store
}

func (t *readTx) Reservations() shared.ReservationReader {
	return &reservations{store: t.store}
}

type reservations struct {
	store *Store
	tx    *tx
}

func (r *reservations) Get(_ context.Context, id int64) (*reservation.Reservation, error) {
	r.store.Reads.Add(1)
	if err := r.store.fail("failed to find reservation by ID"); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	rec, ok := r.store.rows[id]
	r.store.mu.Unlock()
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", pgx.ErrNoRows, infra.KindNotFound)
	}

	if r.store.AfterGet != nil {
		r.store.AfterGet(id)
	}
	return rec.toDomain(), nil
}

func (r *reservations) FindOverlapping(_ context.Context, window daterange.Range) ([]*reservation.Reservation, error) {
	r.store.Reads.Add(1)
	if err := r.store.fail("failed to find overlapping reservations"); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	ids := make([]int64, 0, len(r.store.rows))
	for id, rec := range r.store.rows {
		if rec.dates != nil && daterange.Overlaps(*rec.dates, window) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]*reservation.Reservation, len(ids))
	for i, id := range ids {
		out[i] = r.store.rows[id].toDomain()
	}
	return out, nil
}

func (r *reservations) Insert(_ context.Context, res *reservation.Reservation) (*reservation.Reservation, error) {
	if err := r.store.fail("failed to create reservation"); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if res.DateRange() != nil && s.conflicting(*res.DateRange(), 0) {
		return nil, infra.WrapRepoErr("reservation dates overlap an active reservation", exclusionViolation, infra.KindExclusionViolated)
	}

	s.nextID++
	id := s.nextID
	rec := fromDomain(res)
	rec.id, rec.version = id, 0
	rec.createdAt, rec.updatedAt = s.now(), s.now()
	s.rows[id] = rec
	r.tx.undos = append(r.tx.undos, func() { delete(s.rows, id) })

	return rec.toDomain(), nil
}

func (r *reservations) ConditionalSave(_ context.Context, res *reservation.Reservation) (*reservation.Reservation, error) {
	if err := r.store.fail("failed to update reservation"); err != nil {
		return nil, err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.rows[res.ID()]
	if !ok || cur.version != res.Version() {
		return nil, infra.WrapRepoErr("reservation version changed", pgx.ErrNoRows, infra.KindVersionMismatch)
	}
	if res.Blocks() && s.conflicting(*res.DateRange(), res.ID()) {
		return nil, infra.WrapRepoErr("reservation dates overlap an active reservation", exclusionViolation, infra.KindExclusionViolated)
	}

	next := fromDomain(res)
	next.id = cur.id
	next.version = cur.version + 1
	next.createdAt = cur.createdAt
	next.updatedAt = s.now()
	s.rows[cur.id] = next
	r.tx.undos = append(r.tx.undos, func() { s.rows[cur.id] = cur })

	return next.toDomain(), nil
}

func fromDomain(res *reservation.Reservation) record {
	rec := record{
		id:      res.ID(),
		version: res.Version(),
		name:    res.Holder().Name(),
		email:   res.Holder().Email(),
		status:  res.Status(),
	}
	if d := res.DateRange(); d != nil {
		copied := *d
		rec.dates = &copied
	}
	return rec
}

type notifications struct {
	store *Store
	tx    *tx
}

func (n *notifications) Enqueue(_ context.Context, topic string, payload []byte, runAt time.Time) (uuid.UUID, error) {
	if err := n.store.fail("failed to create notification job"); err != nil {
		return uuid.Nil, err
	}

	s := n.store
	s.mu.Lock()
	defer s.mu.Unlock()

	job := &Job{ID: uuid.New(), Topic: topic, Payload: payload, Status: "queued", RunAt: runAt}
	s.jobs = append(s.jobs, job)
	n.tx.undos = append(n.tx.undos, func() {
		for i, j := range s.jobs {
			if j == job {
				s.jobs = append(s.jobs[:i], s.jobs[i+1:]...)
				return
			}
		}
	})
	return job.ID, nil
}

func (n *notifications) ClaimPending(_ context.Context, limit int32) ([]*readmodel.NotificationJobRM, error) {
	if err := n.store.fail("failed to claim pending notification jobs"); err != nil {
		return nil, err
	}

	s := n.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var out []*readmodel.NotificationJobRM
	for _, j := range s.jobs {
		if int32(len(out)) >= limit {
			break
		}
		if j.Status == "queued" && !j.RunAt.After(now) {
			out = append(out, &readmodel.NotificationJobRM{
				ID: j.ID, Kind: "event", Topic: j.Topic, Payload: j.Payload,
				RunAt: j.RunAt, Attempts: j.Attempts, Status: j.Status,
			})
		}
	}
	return out, nil
}

func (n *notifications) MarkSent(_ context.Context, jobID uuid.UUID) error {
	return n.update(jobID, func(j *Job) { j.Status = "sent" })
}

func (n *notifications) MarkFailed(_ context.Context, jobID uuid.UUID, cause string, nextRunAt time.Time, maxAttempts int32) error {
	return n.update(jobID, func(j *Job) {
		j.Attempts++
		j.LastError = cause
		j.RunAt = nextRunAt
		if j.Attempts >= maxAttempts {
			j.Status = "failed"
		}
	})
}

func (n *notifications) update(jobID uuid.UUID, fn func(*Job)) error {
	s := n.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, j := range s.jobs {
		if j.ID == jobID {
			before := *j
			fn(j)
			n.tx.undos = append(n.tx.undos, func() { *j = before })
			return nil
		}
	}
	return infra.WrapRepoErr("notification job not found", pgx.ErrNoRows, infra.KindNotFound)
}

// SetNow overrides the store clock.
func (s *Store) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}
