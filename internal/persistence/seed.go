package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/helpdesk-kit/ticketing/internal/auth"
	"github.com/helpdesk-kit/ticketing/internal/domain"
	"github.com/helpdesk-kit/ticketing/internal/repository"
)

// Seed populates an empty database with demo reference data, a few users
// and sample tickets. It is a no-op once any user exists.
func Seed(ctx context.Context, pool *pgxpool.Pool, bcryptCost int, logger *zap.Logger) error {
	if pool == nil {
		logger.Warn("no database pool; skipping seed")
		return nil
	}

	var userCount int64
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&userCount); err != nil {
		return fmt.Errorf("seed: count users: %w", err)
	}
	if userCount > 0 {
		logger.Debug("seed skipped; users already present", zap.Int64("count", userCount))
		return nil
	}

	users := repository.NewUserRepository(pool)
	statuses := repository.NewStatusRepository(pool)
	priorities := repository.NewPriorityRepository(pool)
	categories := repository.NewCategoryRepository(pool)
	tickets := repository.NewTicketRepository(pool)
	history := repository.NewStatusHistoryRepository(pool)

	seedUsers := []struct {
		name, email, password string
		role                  domain.UserRole
	}{
		{"Admin User", "admin@example.com", "admin123", domain.RoleAdmin},
		{"Tech Support", "tech@example.com", "tech123", domain.RoleTechnician},
		{"John Doe", "john.doe@example.com", "password123", domain.RoleUser},
		{"Jane Smith", "jane.smith@example.com", "password123", domain.RoleUser},
	}
	userByEmail := make(map[string]*domain.User, len(seedUsers))
	for _, su := range seedUsers {
		hash, err := auth.HashPassword(su.password, bcryptCost)
		if err != nil {
			return fmt.Errorf("seed: hash password: %w", err)
		}
		user := &domain.User{Name: su.name, Email: su.email, PasswordHash: hash, Role: su.role}
		if err := users.Create(ctx, user); err != nil {
			return fmt.Errorf("seed: create user %s: %w", su.email, err)
		}
		userByEmail[su.email] = user
	}

	statusByName := map[string]*domain.Status{}
	for _, name := range []string{"Open", "In Progress", "Resolved", "Closed"} {
		status := &domain.Status{Name: name}
		if err := statuses.Create(ctx, status); err != nil {
			return fmt.Errorf("seed: create status %s: %w", name, err)
		}
		statusByName[name] = status
	}

	priorityByName := map[string]*domain.Priority{}
	for _, p := range []struct {
		name  string
		level int
	}{
		{"Low", 3},
		{"Medium", 2},
		{"High", 1},
		{"Critical", 0},
	} {
		priority := &domain.Priority{Name: p.name, Level: p.level}
		if err := priorities.Create(ctx, priority); err != nil {
			return fmt.Errorf("seed: create priority %s: %w", p.name, err)
		}
		priorityByName[p.name] = priority
	}

	categoryByName := map[string]*domain.Category{}
	for _, c := range []struct{ name, description string }{
		{"Hardware", "Physical equipment issues"},
		{"Software", "Application and OS issues"},
		{"Network", "Connectivity and infrastructure issues"},
		{"Access", "Account and permission requests"},
	} {
		category := &domain.Category{Name: c.name, Description: c.description}
		if err := categories.Create(ctx, category); err != nil {
			return fmt.Errorf("seed: create category %s: %w", c.name, err)
		}
		categoryByName[c.name] = category
	}

	tech := userByEmail["tech@example.com"]
	sampleTickets := []struct {
		title, description string
		reporter           *domain.User
		assignee           *domain.User
		category           *domain.Category
		priority           *domain.Priority
		status             *domain.Status
	}{
		{
			title:       "Laptop will not boot",
			description: "The laptop shows a black screen after the vendor logo.",
			reporter:    userByEmail["john.doe@example.com"],
			assignee:    tech,
			category:    categoryByName["Hardware"],
			priority:    priorityByName["High"],
			status:      statusByName["In Progress"],
		},
		{
			title:       "VPN keeps disconnecting",
			description: "Connection drops every few minutes when working remotely.",
			reporter:    userByEmail["jane.smith@example.com"],
			assignee:    tech,
			category:    categoryByName["Network"],
			priority:    priorityByName["Medium"],
			status:      statusByName["Open"],
		},
		{
			title:       "Need access to reporting dashboard",
			description: "Requesting viewer access for the quarterly reporting tool.",
			reporter:    userByEmail["john.doe@example.com"],
			category:    categoryByName["Access"],
			priority:    priorityByName["Low"],
			status:      statusByName["Open"],
		},
	}

	openID := statusByName["Open"].ID
	for i, st := range sampleTickets {
		ticket := &domain.Ticket{
			Title:       st.title,
			Description: st.description,
			ReporterID:  st.reporter.ID,
			CategoryID:  st.category.ID,
			PriorityID:  st.priority.ID,
			StatusID:    st.status.ID,
		}
		if st.assignee != nil {
			ticket.AssigneeID = &st.assignee.ID
		}
		if err := tickets.Create(ctx, ticket); err != nil {
			return fmt.Errorf("seed: create ticket %d: %w", i, err)
		}

		// every ticket gets its creation entry
		if err := history.Create(ctx, &domain.StatusHistory{
			TicketID:    ticket.ID,
			OldStatusID: nil,
			NewStatusID: openID,
			ChangedByID: st.reporter.ID,
		}); err != nil {
			return fmt.Errorf("seed: create history for ticket %d: %w", i, err)
		}
		// and tickets seeded past Open get the transition entry too
		if st.status.ID != openID {
			if err := history.Create(ctx, &domain.StatusHistory{
				TicketID:    ticket.ID,
				OldStatusID: &openID,
				NewStatusID: st.status.ID,
				ChangedByID: tech.ID,
			}); err != nil {
				return fmt.Errorf("seed: create transition history for ticket %d: %w", i, err)
			}
		}
	}

	logger.Info("seeded demo data",
		zap.Int("users", len(seedUsers)),
		zap.Int("tickets", len(sampleTickets)))
	return nil
}
