package booking

import (
	"context"

	domain "github.com/lucasmarins-seget/agendamento-seget-back/internal/domain/booking"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/httperr"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/models"
)

// stubRepo guarda tudo em memória e registra as escritas para os asserts.
type stubRepo struct {
	bookings map[string]*models.Booking
	blocks   []models.RoomBlock
	capacity int

	created    []*models.Booking
	updated    []*models.Booking
	splitCalls int
	splitClone *models.Booking
}

func newStubRepo() *stubRepo {
	return &stubRepo{bookings: make(map[string]*models.Booking)}
}

func (r *stubRepo) add(b *models.Booking) {
	r.bookings[b.ID] = b
}

func (r *stubRepo) Create(ctx context.Context, b *models.Booking) error {
	if b.ID == "" {
		b.ID = "generated-id"
	}
	r.bookings[b.ID] = b
	r.created = append(r.created, b)
	return nil
}

func (r *stubRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, httperr.ErrNotFound("Agendamento não encontrado.")
	}
	return b, nil
}

func (r *stubRepo) GetWithRelations(ctx context.Context, id string) (*models.Booking, error) {
	return r.GetByID(ctx, id)
}

func (r *stubRepo) Update(ctx context.Context, b *models.Booking) error {
	r.bookings[b.ID] = b
	r.updated = append(r.updated, b)
	return nil
}

func (r *stubRepo) SaveSplit(ctx context.Context, original, clone *models.Booking) error {
	r.bookings[original.ID] = original
	r.bookings[clone.ID] = clone
	r.splitCalls++
	r.splitClone = clone
	return nil
}

func (r *stubRepo) ListActiveByRoom(ctx context.Context, room string) ([]models.Booking, error) {
	return r.listActive(room, ""), nil
}

func (r *stubRepo) ListActiveByRoomAndTipo(ctx context.Context, room, tipo string) ([]models.Booking, error) {
	return r.listActive(room, tipo), nil
}

func (r *stubRepo) listActive(room, tipo string) []models.Booking {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Room != room || b.Status == string(domain.StatusRejected) {
			continue
		}
		if tipo != "" && b.TipoReserva != tipo {
			continue
		}
		out = append(out, *b)
	}
	return out
}

func (r *stubRepo) Search(ctx context.Context, f domain.SearchFilter) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if f.Room != "" && b.Room != f.Room {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *stubRepo) ListPaged(ctx context.Context, f domain.AdminFilter) ([]models.Booking, int64, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if f.Room != "" && b.Room != f.Room {
			continue
		}
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (r *stubRepo) BlocksForRoom(ctx context.Context, room string) ([]models.RoomBlock, error) {
	var out []models.RoomBlock
	for _, blk := range r.blocks {
		if blk.Room == room {
			out = append(out, blk)
		}
	}
	return out, nil
}

func (r *stubRepo) LabCapacity(ctx context.Context, room string) (int, error) {
	return r.capacity, nil
}

func (r *stubRepo) AdminEmailsForRoom(ctx context.Context, room string) ([]string, error) {
	return []string{"admin@seget.gov.br"}, nil
}

var _ domain.Repository = (*stubRepo)(nil)

// stubNotifier registra os eventos disparados.
type stubNotifier struct {
	created  []*models.Booking
	approved []*models.Booking
	rejected []*models.Booking
	reviewed []*models.Booking
}

func (n *stubNotifier) BookingCreated(b *models.Booking, adminEmails []string) {
	n.created = append(n.created, b)
}
func (n *stubNotifier) BookingApproved(b *models.Booking) { n.approved = append(n.approved, b) }
func (n *stubNotifier) BookingRejected(b *models.Booking) { n.rejected = append(n.rejected, b) }
func (n *stubNotifier) BookingUnderReview(b *models.Booking) {
	n.reviewed = append(n.reviewed, b)
}

var _ Notifier = (*stubNotifier)(nil)

// stubCache é um cache de mapa com contagem de invalidações.
type stubCache struct {
	entries     map[string][]string
	invalidated int
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string][]string)}
}

func cacheKey(room, date, tipo string) string {
	return room + "|" + date + "|" + tipo
}

func (c *stubCache) Get(ctx context.Context, room, date, tipo string) ([]string, bool) {
	hours, ok := c.entries[cacheKey(room, date, tipo)]
	return hours, ok
}

func (c *stubCache) Set(ctx context.Context, room, date, tipo string, hours []string) {
	c.entries[cacheKey(room, date, tipo)] = hours
}

func (c *stubCache) Invalidate(ctx context.Context, room string, dates []string) {
	c.invalidated++
	for _, d := range dates {
		delete(c.entries, cacheKey(room, d, ""))
		delete(c.entries, cacheKey(room, d, "sala"))
		delete(c.entries, cacheKey(room, d, "computador"))
	}
}

var _ OccupancyCache = (*stubCache)(nil)

func testRules() Rules {
	return Rules{
		EscolaWindow:       domain.EscolaWindow{Open: 480, Close: 1020}, // 08:00–17:00
		DefaultLabCapacity: 5,
	}
}
