//go:build unit || e2e

// Package memstore is an in-memory shared.UnitOfWork for use case tests.
// Transactions are fully serialised and roll back on error.
package memstore

import (
	"context"
	"maps"
	"sync"
	"time"

	"restaurant-booking/internal/domain/reservation"
	"restaurant-booking/internal/domain/restaurant"
	"restaurant-booking/internal/infra"
	"restaurant-booking/internal/usecase/queries"
	"restaurant-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type Job struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

type User struct {
	View         queries.AuthorizedUserView
	PasswordHash string
	LastLogin    *time.Time
}

type state struct {
	restaurants  map[uuid.UUID]restaurant.Restaurant
	reservations map[uuid.UUID]reservation.Reservation
	users        map[uuid.UUID]User
	jobs         []Job
}

func (s state) clone() state {
	return state{
		restaurants:  maps.Clone(s.restaurants),
		reservations: maps.Clone(s.reservations),
		users:        maps.Clone(s.users),
		jobs:         append([]Job(nil), s.jobs...),
	}
}

type Store struct {
	mu sync.Mutex
	st state

	// FailJobs makes every CreateJob call fail, to exercise rollback.
	FailJobs error
}

func New() *Store {
	return &Store{st: state{
		restaurants:  map[uuid.UUID]restaurant.Restaurant{},
		reservations: map[uuid.UUID]reservation.Reservation{},
		users:        map[uuid.UUID]User{},
	}}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(ctx, &memTx{s: s}); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

func (s *Store) PutRestaurant(r *restaurant.Restaurant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.restaurants[r.ID()] = *r
}

func (s *Store) PutReservation(r *reservation.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.reservations[r.ID()] = *r
}

func (s *Store) PutUser(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.users[u.View.ID] = u
}

func (s *Store) Restaurant(id uuid.UUID) (*restaurant.Restaurant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.st.restaurants[id]
	return &r, ok
}

func (s *Store) Reservation(id uuid.UUID) (*reservation.Reservation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.st.reservations[id]
	return &r, ok
}

func (s *Store) User(id uuid.UUID) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.st.users[id]
	return u, ok
}

func (s *Store) ActiveCount(restaurantID *uuid.UUID, date reservation.Date) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeCount(restaurantID, date)
}

func (s *Store) activeCount(restaurantID *uuid.UUID, date reservation.Date) int {
	n := 0
	for _, r := range s.st.reservations {
		if !r.IsActive() || !r.Date().Equal(date) {
			continue
		}
		if restaurantID != nil && r.RestaurantID() != *restaurantID {
			continue
		}
		n++
	}
	return n
}

func (s *Store) Jobs() []Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Job(nil), s.st.jobs...)
}

// FindByID and FindByUsername satisfy queries.UserReadStore.
func (s *Store) FindByID(_ context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	u, ok := s.User(id)
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	view := u.View
	return &view, nil
}

func (s *Store) FindByUsername(_ context.Context, username string) (*queries.AuthorizedUserView, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.st.users {
		if u.View.Username == username {
			view := u.View
			return &view, u.PasswordHash, nil
		}
	}
	return nil, "", infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
}

// memTx runs with Store.mu held.
type memTx struct {
	s *Store
}

func (t *memTx) Restaurants() shared.RestaurantRepository     { return restaurantRepo{t.s} }
func (t *memTx) Reservations() shared.ReservationRepository   { return reservationRepo{t.s} }
func (t *memTx) Notifications() shared.NotificationRepository { return notificationRepo{t.s} }
func (t *memTx) Users() shared.UserRepository                 { return userRepo{t.s} }

type restaurantRepo struct{ s *Store }

func (r restaurantRepo) FindByIDForShare(_ context.Context, id uuid.UUID) (*restaurant.Restaurant, error) {
	rest, ok := r.s.st.restaurants[id]
	if !ok {
		return nil, infra.WrapRepoErr("restaurant not found", nil, infra.KindNotFound)
	}
	return &rest, nil
}

func (r restaurantRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*restaurant.Restaurant, error) {
	return r.FindByIDForShare(ctx, id)
}

func (r restaurantRepo) Create(_ context.Context, rest *restaurant.Restaurant) error {
	if _, ok := r.s.st.restaurants[rest.ID()]; ok {
		return infra.WrapRepoErr("restaurant exists", nil, infra.KindDuplicateKey)
	}
	r.s.st.restaurants[rest.ID()] = *rest
	return nil
}

func (r restaurantRepo) Update(_ context.Context, rest *restaurant.Restaurant) error {
	if _, ok := r.s.st.restaurants[rest.ID()]; !ok {
		return infra.WrapRepoErr("restaurant not found", nil, infra.KindNotFound)
	}
	r.s.st.restaurants[rest.ID()] = *rest
	return nil
}

type reservationRepo struct{ s *Store }

// LockDate is a no-op: the whole transaction already holds Store.mu.
func (r reservationRepo) LockDate(context.Context, reservation.Date) error {
	return nil
}

func (r reservationRepo) CountActive(_ context.Context, restaurantID uuid.UUID, date reservation.Date) (reservation.Occupancy, error) {
	return reservation.Occupancy{
		RestaurantID: restaurantID,
		Date:         date,
		Restaurant:   r.s.activeCount(&restaurantID, date),
		Global:       r.s.activeCount(nil, date),
	}, nil
}

func (r reservationRepo) FindActiveByCredential(_ context.Context, id uuid.UUID, cred reservation.Credential) (*reservation.Reservation, error) {
	res, ok := r.s.st.reservations[id]
	if !ok || !res.IsActive() || !res.Matches(cred) {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return &res, nil
}

func (r reservationRepo) Create(_ context.Context, res *reservation.Reservation) error {
	if _, ok := r.s.st.reservations[res.ID()]; ok {
		return infra.WrapRepoErr("reservation exists", nil, infra.KindDuplicateKey)
	}
	r.s.st.reservations[res.ID()] = *res
	return nil
}

func (r reservationRepo) Update(_ context.Context, res *reservation.Reservation) error {
	if _, ok := r.s.st.reservations[res.ID()]; !ok {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	r.s.st.reservations[res.ID()] = *res
	return nil
}

type notificationRepo struct{ s *Store }

func (r notificationRepo) CreateJob(_ context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	if r.s.FailJobs != nil {
		return infra.WrapRepoErr("failed to enqueue job", r.s.FailJobs)
	}
	r.s.st.jobs = append(r.s.st.jobs, Job{Kind: kind, Topic: topic, Payload: payload, RunAt: runAt})
	return nil
}

type userRepo struct{ s *Store }

func (r userRepo) UpdateLastLogin(_ context.Context, userID uuid.UUID, at time.Time) error {
	u, ok := r.s.st.users[userID]
	if !ok {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	u.LastLogin = &at
	r.s.st.users[userID] = u
	return nil
}
