// Package memory is a process-local implementation of the repository
// interfaces, used with STORAGE=memory and in tests.
package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/baharkarakas/staybook/internal/models"
	repo "github.com/baharkarakas/staybook/internal/repository"
	"github.com/google/uuid"
)

var ErrDuplicateTxRef = fmt.Errorf("duplicate tx_ref: %w", repo.ErrDuplicate)

type Store struct {
	mu       sync.RWMutex
	users    map[string]models.User
	listings map[string]models.Listing
	bookings map[string]models.Booking
	payments map[string]models.Payment // keyed by tx_ref
	audit    []models.AuditLog
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:    map[string]models.User{},
		listings: map[string]models.Listing{},
		bookings: map[string]models.Booking{},
		payments: map[string]models.Payment{},
		now:      time.Now,
	}
}

func (s *Store) Repositories() repo.Repositories {
	return repo.Repositories{
		Users:     usersRepo{s},
		Listings:  listingsRepo{s},
		Bookings:  bookingsRepo{s},
		Payments:  paymentsRepo{s},
		AuditLogs: auditLogsRepo{s},
	}
}

// PutUser inserts or replaces a user.
func (s *Store) PutUser(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = models.RoleGuest
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
	}
	s.users[u.ID] = u
	return u
}

// PutListing inserts or replaces a listing.
func (s *Store) PutListing(l models.Listing) models.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = s.now()
		l.UpdatedAt = l.CreatedAt
	}
	s.listings[l.ID] = l
	return l
}

// PaymentCount returns the number of stored payments.
func (s *Store) PaymentCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.payments)
}

// AuditLogs returns a copy of every audit entry written so far.
func (s *Store) AuditLogs() []models.AuditLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.AuditLog(nil), s.audit...)
}

type usersRepo struct{ s *Store }

func (r usersRepo) GetByID(_ context.Context, id string) (models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return u, nil
}

type listingsRepo struct{ s *Store }

func (r listingsRepo) GetByID(_ context.Context, id string) (models.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.listings[id]
	if !ok {
		return models.Listing{}, repo.ErrNotFound
	}
	return l, nil
}

type bookingsRepo struct{ s *Store }

func (r bookingsRepo) Create(_ context.Context, b models.Booking) (models.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = models.BookingPending
	}
	b.CreatedAt = r.s.now()
	r.s.bookings[b.ID] = b
	return b, nil
}

func (r bookingsRepo) GetByID(_ context.Context, id string) (models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return models.Booking{}, repo.ErrNotFound
	}
	return b, nil
}

func (r bookingsRepo) List(_ context.Context, limit, offset int) ([]models.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]models.Booking, 0, len(r.s.bookings))
	for _, b := range r.s.bookings {
		all = append(all, b)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if offset >= len(all) {
		return []models.Booking{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r bookingsRepo) UpdateStatus(_ context.Context, id string, status models.BookingStatus) (models.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return models.Booking{}, repo.ErrNotFound
	}
	b.Status = status
	r.s.bookings[id] = b
	return b, nil
}

func (r bookingsRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.s.bookings, id)
	// payments outlive their booking
	for ref, p := range r.s.payments {
		if p.BookingID != nil && *p.BookingID == id {
			p.BookingID = nil
			r.s.payments[ref] = p
		}
	}
	return nil
}

type paymentsRepo struct{ s *Store }

func (r paymentsRepo) Create(_ context.Context, p models.Payment) (models.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, dup := r.s.payments[p.TxRef]; dup {
		return models.Payment{}, ErrDuplicateTxRef
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Currency == "" {
		p.Currency = models.DefaultCurrency
	}
	if p.Status == "" {
		p.Status = models.PaymentPending
	}
	p.Metadata = maps.Clone(p.Metadata)
	p.CreatedAt = r.s.now()
	p.UpdatedAt = p.CreatedAt
	r.s.payments[p.TxRef] = p
	return p, nil
}

func (r paymentsRepo) GetByTxRef(_ context.Context, txRef string) (models.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.payments[txRef]
	if !ok {
		return models.Payment{}, repo.ErrNotFound
	}
	return p, nil
}

func (r paymentsRepo) ListByBooking(_ context.Context, bookingID string) ([]models.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.Payment{}
	for _, p := range r.s.payments {
		if p.BookingID != nil && *p.BookingID == bookingID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r paymentsRepo) Update(_ context.Context, p models.Payment) (models.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.payments[p.TxRef]
	if !ok || cur.ID != p.ID {
		return models.Payment{}, repo.ErrNotFound
	}
	cur.Status = p.Status
	cur.ChapaReference = p.ChapaReference
	cur.Metadata = maps.Clone(p.Metadata)
	cur.UpdatedAt = r.s.now()
	r.s.payments[p.TxRef] = cur
	return cur, nil
}

type auditLogsRepo struct{ s *Store }

func (r auditLogsRepo) Create(_ context.Context, l models.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l.ID = strconv.Itoa(len(r.s.audit) + 1)
	l.CreatedAt = r.s.now()
	r.s.audit = append(r.s.audit, l)
	return nil
}
