package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/helpdesk-kit/ticketing/internal/domain"
	"github.com/helpdesk-kit/ticketing/internal/events"
	"github.com/helpdesk-kit/ticketing/internal/repository"
)

// In-memory repository fakes backing the service tests. They mirror the
// Postgres implementations' contracts: pgx.ErrNoRows for missing rows and
// repository.ErrVersionConflict for stale versioned writes.

type memUserRepo struct {
	users map[string]domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]domain.User{}}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) List(_ context.Context) ([]domain.User, error) {
	result := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		result = append(result, user)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

type memCategoryRepo struct {
	categories map[string]domain.Category
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: map[string]domain.Category{}}
}

func (r *memCategoryRepo) Create(_ context.Context, category *domain.Category) error {
	category.ID = uuid.NewString()
	r.categories[category.ID] = *category
	return nil
}

func (r *memCategoryRepo) Update(_ context.Context, category *domain.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.categories[category.ID] = *category
	return nil
}

func (r *memCategoryRepo) GetByID(_ context.Context, id string) (*domain.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &category, nil
}

func (r *memCategoryRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, category := range r.categories {
		if category.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *memCategoryRepo) List(_ context.Context) ([]domain.Category, error) {
	result := make([]domain.Category, 0, len(r.categories))
	for _, category := range r.categories {
		result = append(result, category)
	}
	return result, nil
}

func (r *memCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.categories[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.categories, id)
	return nil
}

type memPriorityRepo struct {
	priorities map[string]domain.Priority
}

func newMemPriorityRepo() *memPriorityRepo {
	return &memPriorityRepo{priorities: map[string]domain.Priority{}}
}

func (r *memPriorityRepo) Create(_ context.Context, priority *domain.Priority) error {
	priority.ID = uuid.NewString()
	r.priorities[priority.ID] = *priority
	return nil
}

func (r *memPriorityRepo) Update(_ context.Context, priority *domain.Priority) error {
	if _, ok := r.priorities[priority.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.priorities[priority.ID] = *priority
	return nil
}

func (r *memPriorityRepo) GetByID(_ context.Context, id string) (*domain.Priority, error) {
	priority, ok := r.priorities[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &priority, nil
}

func (r *memPriorityRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, priority := range r.priorities {
		if priority.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *memPriorityRepo) List(_ context.Context) ([]domain.Priority, error) {
	result := make([]domain.Priority, 0, len(r.priorities))
	for _, priority := range r.priorities {
		result = append(result, priority)
	}
	return result, nil
}

func (r *memPriorityRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.priorities[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.priorities, id)
	return nil
}

// memStatusRepo keeps insertion order so First is deterministic, matching
// the created_at ordering of the Postgres implementation.
type memStatusRepo struct {
	ordered []domain.Status
}

func newMemStatusRepo() *memStatusRepo {
	return &memStatusRepo{}
}

func (r *memStatusRepo) Create(_ context.Context, status *domain.Status) error {
	status.ID = uuid.NewString()
	status.CreatedAt = time.Now()
	status.UpdatedAt = status.CreatedAt
	r.ordered = append(r.ordered, *status)
	return nil
}

func (r *memStatusRepo) Update(_ context.Context, status *domain.Status) error {
	for i := range r.ordered {
		if r.ordered[i].ID == status.ID {
			r.ordered[i] = *status
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *memStatusRepo) GetByID(_ context.Context, id string) (*domain.Status, error) {
	for _, status := range r.ordered {
		if status.ID == id {
			s := status
			return &s, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memStatusRepo) GetByName(_ context.Context, name string) (*domain.Status, error) {
	for _, status := range r.ordered {
		if status.Name == name {
			s := status
			return &s, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memStatusRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, status := range r.ordered {
		if status.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *memStatusRepo) List(_ context.Context) ([]domain.Status, error) {
	return append([]domain.Status{}, r.ordered...), nil
}

func (r *memStatusRepo) First(_ context.Context) (*domain.Status, error) {
	if len(r.ordered) == 0 {
		return nil, pgx.ErrNoRows
	}
	first := r.ordered[0]
	return &first, nil
}

func (r *memStatusRepo) Delete(_ context.Context, id string) error {
	for i := range r.ordered {
		if r.ordered[i].ID == id {
			r.ordered = append(r.ordered[:i], r.ordered[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type memTicketRepo struct {
	tickets map[string]domain.Ticket
}

func newMemTicketRepo() *memTicketRepo {
	return &memTicketRepo{tickets: map[string]domain.Ticket{}}
}

func (r *memTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	ticket.ID = uuid.NewString()
	ticket.Version = 1
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *memTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	stored, ok := r.tickets[ticket.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.Version = stored.Version + 1
	ticket.UpdatedAt = time.Now()
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *memTicketRepo) UpdateStatus(_ context.Context, id, statusID string, expectedVersion int64) error {
	stored, ok := r.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if stored.Version != expectedVersion {
		return repository.ErrVersionConflict
	}
	stored.StatusID = statusID
	stored.Version++
	stored.UpdatedAt = time.Now()
	r.tickets[id] = stored
	return nil
}

func (r *memTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &ticket, nil
}

func (r *memTicketRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	_, ok := r.tickets[id]
	return ok, nil
}

func (r *memTicketRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tickets, id)
	return nil
}

func (r *memTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if filter.ReporterID != nil && ticket.ReporterID != *filter.ReporterID {
			continue
		}
		if filter.AssigneeID != nil && (ticket.AssigneeID == nil || *ticket.AssigneeID != *filter.AssigneeID) {
			continue
		}
		if filter.CategoryID != nil && ticket.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.PriorityID != nil && ticket.PriorityID != *filter.PriorityID {
			continue
		}
		if filter.StatusID != nil && ticket.StatusID != *filter.StatusID {
			continue
		}
		result = append(result, ticket)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UpdatedAt.After(result[j].UpdatedAt) })
	return result, nil
}

type memHistoryRepo struct {
	entries   []domain.StatusHistory
	createErr error
}

func newMemHistoryRepo() *memHistoryRepo {
	return &memHistoryRepo{}
}

func (r *memHistoryRepo) Create(_ context.Context, entry *domain.StatusHistory) error {
	if r.createErr != nil {
		return r.createErr
	}
	entry.ID = uuid.NewString()
	entry.ChangedAt = time.Now()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memHistoryRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.StatusHistory, error) {
	var result []domain.StatusHistory
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].TicketID == ticketID {
			result = append(result, r.entries[i])
		}
	}
	return result, nil
}

// memTxRunner snapshots the ticket and history fakes before running fn and
// restores them when fn fails, imitating a database rollback.
type memTxRunner struct {
	tickets *memTicketRepo
	history *memHistoryRepo
}

func (r *memTxRunner) RunInTx(_ context.Context, fn func(tx repository.Tx) error) error {
	ticketSnapshot := make(map[string]domain.Ticket, len(r.tickets.tickets))
	for id, ticket := range r.tickets.tickets {
		ticketSnapshot[id] = ticket
	}
	historySnapshot := append([]domain.StatusHistory{}, r.history.entries...)

	if err := fn(&memTx{tickets: r.tickets, history: r.history}); err != nil {
		r.tickets.tickets = ticketSnapshot
		r.history.entries = historySnapshot
		return err
	}
	return nil
}

type memTx struct {
	tickets *memTicketRepo
	history *memHistoryRepo
}

func (t *memTx) Tickets() repository.TicketRepository        { return t.tickets }
func (t *memTx) History() repository.StatusHistoryRepository { return t.history }

type capturingDispatcher struct {
	published []events.Event
}

func (d *capturingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *capturingDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}

// fixture wires a full lifecycle engine over the fakes with a minimal
// reference-data set.
type fixture struct {
	users      *memUserRepo
	categories *memCategoryRepo
	priorities *memPriorityRepo
	statuses   *memStatusRepo
	tickets    *memTicketRepo
	history    *memHistoryRepo
	dispatcher *capturingDispatcher
	resolver   *Resolver
	engine     *TicketService

	reporter domain.User
	tech     domain.User
	hardware domain.Category
	high     domain.Priority
	open     domain.Status
	progress domain.Status
	resolved domain.Status
}

func newFixture() *fixture {
	f := &fixture{
		users:      newMemUserRepo(),
		categories: newMemCategoryRepo(),
		priorities: newMemPriorityRepo(),
		statuses:   newMemStatusRepo(),
		tickets:    newMemTicketRepo(),
		history:    newMemHistoryRepo(),
		dispatcher: &capturingDispatcher{},
	}

	ctx := context.Background()

	reporter := domain.User{Name: "John Doe", Email: "john@example.com", Role: domain.RoleUser}
	_ = f.users.Create(ctx, &reporter)
	f.reporter = reporter

	tech := domain.User{Name: "Tech Support", Email: "tech@example.com", Role: domain.RoleTechnician}
	_ = f.users.Create(ctx, &tech)
	f.tech = tech

	hardware := domain.Category{Name: "Hardware"}
	_ = f.categories.Create(ctx, &hardware)
	f.hardware = hardware

	high := domain.Priority{Name: "High", Level: 1}
	_ = f.priorities.Create(ctx, &high)
	f.high = high

	open := domain.Status{Name: "Open"}
	_ = f.statuses.Create(ctx, &open)
	f.open = open

	progress := domain.Status{Name: "In Progress"}
	_ = f.statuses.Create(ctx, &progress)
	f.progress = progress

	resolved := domain.Status{Name: "Resolved"}
	_ = f.statuses.Create(ctx, &resolved)
	f.resolved = resolved

	f.resolver = NewResolver(ResolverDependencies{
		UserRepo:          f.users,
		CategoryRepo:      f.categories,
		PriorityRepo:      f.priorities,
		StatusRepo:        f.statuses,
		DefaultStatusName: "Open",
	})
	f.engine = NewTicketService(TicketDependencies{
		TicketRepo:  f.tickets,
		HistoryRepo: f.history,
		Resolver:    f.resolver,
		Tx:          &memTxRunner{tickets: f.tickets, history: f.history},
		Dispatcher:  f.dispatcher,
	})
	return f
}

func (f *fixture) createTicket(ctx context.Context) (*domain.TicketDetail, error) {
	return f.engine.CreateTicket(ctx, TicketCreateInput{
		Title:       "Laptop will not boot",
		Description: "Black screen after the vendor logo.",
		ReporterID:  f.reporter.ID,
		CategoryID:  f.hardware.ID,
		PriorityID:  f.high.ID,
	})
}
