package application

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/peershare/service-rental/internal/domain"
	bookingDomain "github.com/peershare/service-rental/internal/domain/booking"
	commentDomain "github.com/peershare/service-rental/internal/domain/comment"
	itemDomain "github.com/peershare/service-rental/internal/domain/item"
	userDomain "github.com/peershare/service-rental/internal/domain/user"
)

// fakeBookingRepo is an in-memory booking store. DecideLocked serializes on a
// mutex the way the real implementation serializes on a row lock. lastQuery
// records which category finder ran so strategy dispatch can be asserted.
type fakeBookingRepo struct {
	mu        sync.Mutex
	bookings  map[uuid.UUID]*bookingDomain.Booking
	lastQuery string

	approvedPast bool
	lastByItem   map[uuid.UUID]bookingDomain.ShortInfo
	nextByItem   map[uuid.UUID]bookingDomain.ShortInfo
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings:   make(map[uuid.UUID]*bookingDomain.Booking),
		lastByItem: make(map[uuid.UUID]bookingDomain.ShortInfo),
		nextByItem: make(map[uuid.UUID]bookingDomain.ShortInfo),
	}
}

func (f *fakeBookingRepo) Create(_ context.Context, b *bookingDomain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings[b.ID()] = b
	return nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("booking", id.String())
	}
	return b, nil
}

func (f *fakeBookingRepo) DecideLocked(_ context.Context, id uuid.UUID, fn func(b *bookingDomain.Booking) error) (*bookingDomain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("booking", id.String())
	}
	if err := fn(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (f *fakeBookingRepo) all() []*bookingDomain.Booking {
	out := make([]*bookingDomain.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		out = append(out, b)
	}
	return out
}

func (f *fakeBookingRepo) record(name string) []*bookingDomain.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastQuery = name
	return f.all()
}

func (f *fakeBookingRepo) FindByBooker(_ context.Context, _ uuid.UUID, _ domain.PageRequest) ([]*bookingDomain.Booking, error) {
	return f.record("all/booker"), nil
}

func (f *fakeBookingRepo) FindCurrentByBooker(_ context.Context, _ uuid.UUID, _ time.Time, _ domain.PageRequest) ([]*bookingDomain.Booking, error) {
	return f.record("current/booker"), nil
}

func (f *fakeBookingRepo) FindFutureByBooker(_ context.Context, _ uuid.UUID, _ time.Time, _ domain.PageRequest) ([]*bookingDomain.Booking, error) {
	return f.record("future/booker"), nil
}

func (f *fakeBookingRepo) FindPastByBooker(_ context.Context, _ uuid.UUID, _ time.Time, _ domain.PageRequest) ([]*bookingDomain.Booking, error) {
	return f.record("past/booker"), nil
}

func (f *fakeBookingRepo) FindByBookerAndStatus(_ context.Context, _ uuid.UUID, status bookingDomain.Status, _ domain.PageRequest) ([]*bookingDomain.Booking, error) {
	return f.record("status/" + status.String() + "/booker"), nil
}

func (f *fakeBookingRepo) FindByOwner(_ context.Context, _ uuid.UUID, _ domain.PageRequest) ([]*bookingDomain.Booking, error) {
	return f.record("all/owner"), nil
}

func (f *fakeBookingRepo) FindCurrentByOwner(_ context.Context, _ uuid.UUID, _ time.Time, _ domain.PageRequest) ([]*bookingDomain.Booking, error) {
	return f.record("current/owner"), nil
}

func (f *fakeBookingRepo) FindFutureByOwner(_ context.Context, _ uuid.UUID, _ time.Time, _ domain.PageRequest) ([]*bookingDomain.Booking, error) {
	return f.record("future/owner"), nil
}

func (f *fakeBookingRepo) FindPastByOwner(_ context.Context, _ uuid.UUID, _ time.Time, _ domain.PageRequest) ([]*bookingDomain.Booking, error) {
	return f.record("past/owner"), nil
}

func (f *fakeBookingRepo) FindByOwnerAndStatus(_ context.Context, _ uuid.UUID, status bookingDomain.Status, _ domain.PageRequest) ([]*bookingDomain.Booking, error) {
	return f.record("status/" + status.String() + "/owner"), nil
}

func (f *fakeBookingRepo) ExistsApprovedPast(_ context.Context, _, _ uuid.UUID, _ time.Time) (bool, error) {
	return f.approvedPast, nil
}

func (f *fakeBookingRepo) LastApprovedForItems(_ context.Context, _ []uuid.UUID, _ time.Time) (map[uuid.UUID]bookingDomain.ShortInfo, error) {
	return f.lastByItem, nil
}

func (f *fakeBookingRepo) NextApprovedForItems(_ context.Context, _ []uuid.UUID, _ time.Time) (map[uuid.UUID]bookingDomain.ShortInfo, error) {
	return f.nextByItem, nil
}

// fakeItemRepo is an in-memory item store.
type fakeItemRepo struct {
	items map[uuid.UUID]*itemDomain.Item
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[uuid.UUID]*itemDomain.Item)}
}

func (f *fakeItemRepo) Save(_ context.Context, i *itemDomain.Item) error {
	f.items[i.ID()] = i
	return nil
}

func (f *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*itemDomain.Item, error) {
	i, ok := f.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("item", id.String())
	}
	return i, nil
}

func (f *fakeItemRepo) FindByOwnerID(_ context.Context, ownerID uuid.UUID, _ domain.PageRequest) ([]*itemDomain.Item, error) {
	var out []*itemDomain.Item
	for _, i := range f.items {
		if i.IsOwnedBy(ownerID) {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeItemRepo) Search(_ context.Context, text string, _ domain.PageRequest) ([]*itemDomain.Item, error) {
	var out []*itemDomain.Item
	for _, i := range f.items {
		if i.Available() && i.Name() == text {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeItemRepo) Update(_ context.Context, i *itemDomain.Item) error {
	if _, ok := f.items[i.ID()]; !ok {
		return domain.NewNotFoundError("item", i.ID().String())
	}
	f.items[i.ID()] = i
	return nil
}

// fakeUserRepo is an in-memory user store.
type fakeUserRepo struct {
	users map[uuid.UUID]*userDomain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*userDomain.User)}
}

func (f *fakeUserRepo) Save(_ context.Context, u *userDomain.User) error {
	for _, existing := range f.users {
		if existing.Email() == u.Email() {
			return domain.NewConflictError("email " + u.Email() + " is already registered")
		}
	}
	f.users[u.ID()] = u
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*userDomain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("user", id.String())
	}
	return u, nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]*userDomain.User, error) {
	out := make([]*userDomain.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *userDomain.User) error {
	if _, ok := f.users[u.ID()]; !ok {
		return domain.NewNotFoundError("user", u.ID().String())
	}
	f.users[u.ID()] = u
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

// fakeCommentRepo is an in-memory comment store.
type fakeCommentRepo struct {
	comments []*commentDomain.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{}
}

func (f *fakeCommentRepo) Save(_ context.Context, c *commentDomain.Comment) error {
	f.comments = append(f.comments, c)
	return nil
}

func (f *fakeCommentRepo) FindByItemID(_ context.Context, itemID uuid.UUID) ([]*commentDomain.Comment, error) {
	var out []*commentDomain.Comment
	for _, c := range f.comments {
		if c.ItemID() == itemID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCommentRepo) FindByItemIDs(_ context.Context, itemIDs []uuid.UUID) (map[uuid.UUID][]*commentDomain.Comment, error) {
	out := make(map[uuid.UUID][]*commentDomain.Comment)
	for _, id := range itemIDs {
		cs, _ := f.FindByItemID(context.Background(), id)
		if len(cs) > 0 {
			out[id] = cs
		}
	}
	return out, nil
}
