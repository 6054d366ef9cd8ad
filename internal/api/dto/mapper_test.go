package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk-kit/ticketing/internal/domain"
)

func sampleDetail() domain.TicketDetail {
	now := time.Now()
	return domain.TicketDetail{
		Ticket: domain.Ticket{
			ID:          "t-1",
			Title:       "Laptop will not boot",
			Description: "Black screen after the vendor logo.",
			ReporterID:  "u-1",
			CategoryID:  "c-1",
			PriorityID:  "p-1",
			StatusID:    "s-1",
			Version:     1,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
		Reporter: domain.User{ID: "u-1", Name: "John Doe", Email: "john@example.com", Role: domain.RoleUser},
		Category: domain.Category{ID: "c-1", Name: "Hardware"},
		Priority: domain.Priority{ID: "p-1", Name: "High", Level: 1},
		Status:   domain.Status{ID: "s-1", Name: "Open"},
	}
}

func TestNewTicketResponse(t *testing.T) {
	detail := sampleDetail()

	resp := NewTicketResponse(detail)
	assert.Equal(t, "t-1", resp.ID)
	assert.Equal(t, "John Doe", resp.Reporter.Name)
	assert.Equal(t, "Hardware", resp.Category.Name)
	assert.Equal(t, 1, resp.Priority.Level)
	assert.Equal(t, "Open", resp.Status.Name)
	assert.Nil(t, resp.Assignee)
}

func TestNewTicketResponseWithAssignee(t *testing.T) {
	detail := sampleDetail()
	detail.Assignee = &domain.User{ID: "u-2", Name: "Tech Support", Role: domain.RoleTechnician}

	resp := NewTicketResponse(detail)
	require.NotNil(t, resp.Assignee)
	assert.Equal(t, "Tech Support", resp.Assignee.Name)
}

func TestNewStatusHistoryResponseInitialEntry(t *testing.T) {
	detail := domain.StatusHistoryDetail{
		StatusHistory: domain.StatusHistory{
			ID:          "h-1",
			TicketID:    "t-1",
			NewStatusID: "s-1",
			ChangedByID: "u-1",
			ChangedAt:   time.Now(),
		},
		NewStatus: domain.Status{ID: "s-1", Name: "Open"},
		ChangedBy: domain.User{ID: "u-1", Name: "John Doe"},
	}

	resp := NewStatusHistoryResponse(detail)
	assert.Nil(t, resp.OldStatus)
	assert.Equal(t, "Open", resp.NewStatus.Name)
	assert.Equal(t, "John Doe", resp.ChangedBy.Name)

	// the creation entry serializes old_status as an explicit null
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"old_status":null`)
}

func TestNewStatusHistoryResponseTransition(t *testing.T) {
	old := domain.Status{ID: "s-1", Name: "Open"}
	detail := domain.StatusHistoryDetail{
		StatusHistory: domain.StatusHistory{
			ID:          "h-2",
			TicketID:    "t-1",
			OldStatusID: &old.ID,
			NewStatusID: "s-2",
			ChangedByID: "u-2",
		},
		OldStatus: &old,
		NewStatus: domain.Status{ID: "s-2", Name: "In Progress"},
		ChangedBy: domain.User{ID: "u-2", Name: "Tech Support"},
	}

	resp := NewStatusHistoryResponse(detail)
	require.NotNil(t, resp.OldStatus)
	assert.Equal(t, "Open", resp.OldStatus.Name)
	assert.Equal(t, "In Progress", resp.NewStatus.Name)
}

func TestNewUserResponseOmitsCredentials(t *testing.T) {
	resp := NewUserResponse(domain.User{
		ID:           "u-1",
		Name:         "John Doe",
		Email:        "john@example.com",
		PasswordHash: "$2a$12$secret",
		Role:         domain.RoleUser,
	})

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
	assert.NotContains(t, string(raw), "password")
}
