package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ShabiGardezi/crm-hunfa/internal/access"
	"github.com/ShabiGardezi/crm-hunfa/internal/domain"
	"github.com/ShabiGardezi/crm-hunfa/internal/events"
	"github.com/ShabiGardezi/crm-hunfa/internal/repository"
	"github.com/ShabiGardezi/crm-hunfa/internal/routing"
)

// store backs every fake repository so services see a consistent dataset.
type store struct {
	mu          sync.Mutex
	departments map[domain.DepartmentName]domain.Department
	users       map[string]domain.User
	businesses  map[string]domain.Business
	tickets     map[string]domain.Ticket
	history     []domain.TicketHistory
	messages    []domain.TicketMessage
	payments    []domain.PaymentHistory
	inventory   map[string]domain.InventoryRecord
	seq         int
}

func newStore() *store {
	s := &store{
		departments: map[domain.DepartmentName]domain.Department{},
		users:       map[string]domain.User{},
		businesses:  map[string]domain.Business{},
		tickets:     map[string]domain.Ticket{},
		inventory:   map[string]domain.InventoryRecord{},
	}
	for _, name := range access.Departments() {
		s.departments[name] = domain.Department{ID: uuid.NewString(), Name: name}
	}
	return s
}

// tick returns strictly increasing timestamps so ordering is deterministic.
func (s *store) tick() time.Time {
	s.seq++
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(s.seq) * time.Second)
}

func (s *store) addUser(name string, role domain.Role, dept domain.DepartmentName) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.departments[dept]
	u := domain.User{ID: uuid.NewString(), UserName: name, Role: role, DepartmentID: d.ID, DepartmentName: d.Name}
	if role == domain.RoleSaleEmployee {
		u.SubRole = domain.SubRoleCloser
	}
	s.users[u.ID] = u
	return u
}

func (s *store) addBusiness(name string) domain.Business {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := domain.Business{ID: uuid.NewString(), BusinessName: name, Status: "Active", CreatedAt: s.tick()}
	s.businesses[b.ID] = b
	return b
}

func callerFor(u domain.User) Caller {
	id := access.IdentityFromUser(&u)
	return Caller{Identity: &id, Origin: "127.0.0.1"}
}

type departmentRepo struct{ s *store }

func (r departmentRepo) GetByID(_ context.Context, id string) (*domain.Department, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.departments {
		if d.ID == id {
			d := d
			return &d, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r departmentRepo) GetByName(_ context.Context, name domain.DepartmentName) (*domain.Department, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.departments[name]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &d, nil
}

func (r departmentRepo) List(context.Context) ([]domain.Department, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.Department{}
	for _, d := range r.s.departments {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type userRepo struct{ s *store }

func (r userRepo) Create(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u.ID = uuid.NewString()
	u.CreatedAt = r.s.tick()
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) Update(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.PasswordHash = hash
	r.s.users[id] = u
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

func (r userRepo) GetByUserName(_ context.Context, name string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.UserName == name {
			u := u
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r userRepo) List(context.Context, repository.Page) ([]domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.User{}
	for _, u := range r.s.users {
		out = append(out, u)
	}
	return out, nil
}

type businessRepo struct{ s *store }

func (r businessRepo) Create(_ context.Context, b *domain.Business) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b.ID = uuid.NewString()
	b.CreatedAt = r.s.tick()
	r.s.businesses[b.ID] = *b
	return nil
}

func (r businessRepo) GetByID(_ context.Context, id string) (*domain.Business, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.businesses[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &b, nil
}

func (r businessRepo) List(context.Context, repository.Page) ([]domain.Business, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.Business{}
	for _, b := range r.s.businesses {
		out = append(out, b)
	}
	return out, nil
}

func (r businessRepo) ListNames(ctx context.Context) ([]domain.BusinessName, error) {
	all, _ := r.List(ctx, repository.Page{})
	out := make([]domain.BusinessName, 0, len(all))
	for _, b := range all {
		out = append(out, domain.BusinessName{ID: b.ID, BusinessName: b.BusinessName})
	}
	return out, nil
}

func (r businessRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.businesses[id]
	if !ok {
		return pgx.ErrNoRows
	}
	b.Status = status
	r.s.businesses[id] = b
	return nil
}

type ticketRepo struct{ s *store }

func (r ticketRepo) Create(_ context.Context, t *domain.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.ID = uuid.NewString()
	t.CreatedAt = r.s.tick()
	t.UpdatedAt = t.CreatedAt
	r.s.tickets[t.ID] = *t
	return nil
}

func (r ticketRepo) Update(_ context.Context, t *domain.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tickets[t.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.s.tickets[t.ID] = *t
	return nil
}

func (r ticketRepo) UpdateAssignees(_ context.Context, id string, ids []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	t.AssigneeEmployees = append([]string{}, ids...)
	r.s.tickets[id] = t
	return nil
}

func (r ticketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &t, nil
}

func matches(t domain.Ticket, f repository.TicketFilter) bool {
	switch {
	case f.CreatedBy != nil && t.CreatedBy != *f.CreatedBy:
		return false
	case f.AssigneeID != nil && !t.HasAssignee(*f.AssigneeID):
		return false
	case f.DepartmentID != nil && t.AssigneeDepartmentID != *f.DepartmentID:
		return false
	case f.BusinessID != nil && (t.BusinessID == nil || *t.BusinessID != *f.BusinessID):
		return false
	case f.ParentID != nil && (t.ParentID == nil || *t.ParentID != *f.ParentID):
		return false
	case f.Family != nil && t.Family != *f.Family:
		return false
	case f.Status != nil && t.Status != *f.Status:
		return false
	}
	return true
}

func (r ticketRepo) List(_ context.Context, f repository.TicketFilter) ([]domain.Ticket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.Ticket{}
	for _, t := range r.s.tickets {
		if matches(t, f) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r ticketRepo) CountByStatus(_ context.Context, f repository.TicketFilter) (map[domain.TicketStatus]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[domain.TicketStatus]int64{}
	for _, t := range r.s.tickets {
		if matches(t, f) {
			out[t.Status]++
		}
	}
	return out, nil
}

type historyRepo struct{ s *store }

func (r historyRepo) Create(_ context.Context, h *domain.TicketHistory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	h.ID = uuid.NewString()
	h.CreatedAt = r.s.tick()
	r.s.history = append(r.s.history, *h)
	return nil
}

func (r historyRepo) ListByTicket(_ context.Context, id string) ([]domain.TicketHistory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.TicketHistory{}
	for _, h := range r.s.history {
		if h.TicketID == id {
			out = append(out, h)
		}
	}
	return out, nil
}

type messageRepo struct{ s *store }

func (r messageRepo) Create(_ context.Context, m *domain.TicketMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m.ID = uuid.NewString()
	m.CreatedAt = r.s.tick()
	r.s.messages = append(r.s.messages, *m)
	return nil
}

func (r messageRepo) ListByTicket(_ context.Context, id string) ([]domain.TicketMessage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.TicketMessage{}
	for _, m := range r.s.messages {
		if m.TicketID == id {
			out = append(out, m)
		}
	}
	return out, nil
}

type paymentRepo struct{ s *store }

func (r paymentRepo) Create(_ context.Context, p *domain.PaymentHistory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = uuid.NewString()
	p.CreatedAt = r.s.tick()
	r.s.payments = append(r.s.payments, *p)
	return nil
}

func (r paymentRepo) ListRecent(context.Context, repository.Page) ([]domain.PaymentHistory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]domain.PaymentHistory{}, r.s.payments...), nil
}

func (r paymentRepo) MonthlySales(context.Context, repository.SalesRange) ([]domain.MonthlySales, error) {
	return []domain.MonthlySales{}, nil
}

func (r paymentRepo) TopClosers(context.Context, time.Time, time.Time) ([]domain.CloserSales, error) {
	return []domain.CloserSales{}, nil
}

type inventoryRepo struct{ s *store }

func (r inventoryRepo) Create(_ context.Context, rec *domain.InventoryRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec.ID = uuid.NewString()
	rec.CreatedAt = r.s.tick()
	r.s.inventory[rec.ID] = *rec
	return nil
}

func (r inventoryRepo) Update(_ context.Context, rec *domain.InventoryRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.inventory[rec.ID]
	if !ok || old.Kind != rec.Kind {
		return pgx.ErrNoRows
	}
	r.s.inventory[rec.ID] = *rec
	return nil
}

func (r inventoryRepo) Delete(_ context.Context, kind domain.InventoryKind, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.inventory[id]
	if !ok || old.Kind != kind {
		return pgx.ErrNoRows
	}
	delete(r.s.inventory, id)
	return nil
}

func (r inventoryRepo) GetByID(_ context.Context, kind domain.InventoryKind, id string) (*domain.InventoryRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.inventory[id]
	if !ok || rec.Kind != kind {
		return nil, pgx.ErrNoRows
	}
	return &rec, nil
}

func (r inventoryRepo) List(_ context.Context, kind domain.InventoryKind, _ repository.Page) ([]domain.InventoryRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.InventoryRecord{}
	for _, rec := range r.s.inventory {
		if rec.Kind == kind {
			out = append(out, rec)
		}
	}
	return out, nil
}

type recordedEvents struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordedEvents) Publish(_ context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordedEvents) Subscribe(events.EventType, events.EventHandler) {}

func (r *recordedEvents) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	store    *store
	events   *recordedEvents
	guard    *access.Guard
	tickets  *TicketService
	assign   *AssignmentService
	business *BusinessService
	payments *PaymentService
	stock    *InventoryService
}

func newFixture() *fixture {
	s := newStore()
	ev := &recordedEvents{}
	guard := access.NewGuard(nil)
	deps := TicketDependencies{
		TicketRepo:     ticketRepo{s},
		HistoryRepo:    historyRepo{s},
		MessageRepo:    messageRepo{s},
		DepartmentRepo: departmentRepo{s},
		BusinessRepo:   businessRepo{s},
		Router:         routing.NewRouter(departmentRepo{s}),
		Guard:          guard,
		Dispatcher:     ev,
	}
	return &fixture{
		store:   s,
		events:  ev,
		guard:   guard,
		tickets: NewTicketService(deps),
		assign: NewAssignmentService(AssignmentDependencies{
			TicketRepo:  ticketRepo{s},
			UserRepo:    userRepo{s},
			HistoryRepo: historyRepo{s},
			Guard:       guard,
			Dispatcher:  ev,
		}),
		business: NewBusinessService(businessRepo{s}, guard, ev),
		payments: NewPaymentService(PaymentDependencies{
			PaymentRepo:  paymentRepo{s},
			BusinessRepo: businessRepo{s},
			TicketRepo:   ticketRepo{s},
			UserRepo:     userRepo{s},
			Guard:        guard,
			Dispatcher:   ev,
		}),
		stock: NewInventoryService(inventoryRepo{s}, businessRepo{s}, guard),
	}
}

func writerInput(businessID string, status string) TicketInput {
	return TicketInput{
		Department: "Writer",
		BusinessID: &businessID,
		Status:     status,
		Details:    map[string]any{"task_details": "write 3 blogs"},
	}
}
