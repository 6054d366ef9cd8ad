package dto

import (
	"github.com/helpdesk-kit/ticketing/internal/domain"
)

// The presentation mapper: pure projections from domain entities to the
// response shapes above.

// NewUserResponse maps a user.
func NewUserResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// NewStatusResponse maps a status.
func NewStatusResponse(status domain.Status) StatusResponse {
	return StatusResponse{ID: status.ID, Name: status.Name}
}

// NewCategoryResponse maps a category.
func NewCategoryResponse(category domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
	}
}

// NewPriorityResponse maps a priority.
func NewPriorityResponse(priority domain.Priority) PriorityResponse {
	return PriorityResponse{
		ID:    priority.ID,
		Name:  priority.Name,
		Level: priority.Level,
	}
}

// NewTicketResponse maps a resolved ticket with its nested entities.
func NewTicketResponse(detail domain.TicketDetail) TicketResponse {
	resp := TicketResponse{
		ID:          detail.ID,
		Title:       detail.Title,
		Description: detail.Description,
		Reporter:    NewUserResponse(detail.Reporter),
		Category:    NewCategoryResponse(detail.Category),
		Priority:    NewPriorityResponse(detail.Priority),
		Status:      NewStatusResponse(detail.Status),
		CreatedAt:   detail.CreatedAt,
		UpdatedAt:   detail.UpdatedAt,
	}
	if detail.Assignee != nil {
		assignee := NewUserResponse(*detail.Assignee)
		resp.Assignee = &assignee
	}
	return resp
}

// NewStatusHistoryResponse maps a resolved audit entry.
func NewStatusHistoryResponse(detail domain.StatusHistoryDetail) StatusHistoryResponse {
	resp := StatusHistoryResponse{
		ID:        detail.ID,
		TicketID:  detail.TicketID,
		NewStatus: NewStatusResponse(detail.NewStatus),
		ChangedBy: NewUserResponse(detail.ChangedBy),
		ChangedAt: detail.ChangedAt,
	}
	if detail.OldStatus != nil {
		old := NewStatusResponse(*detail.OldStatus)
		resp.OldStatus = &old
	}
	return resp
}

// NewCommentResponse maps a comment with its resolved author.
func NewCommentResponse(comment domain.Comment, author domain.User) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		TicketID:  comment.TicketID,
		Author:    NewUserResponse(author),
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
	}
}

// NewAttachmentResponse maps attachment metadata.
func NewAttachmentResponse(attachment domain.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:          attachment.ID,
		TicketID:    attachment.TicketID,
		FileName:    attachment.FileName,
		ContentType: attachment.ContentType,
		SizeBytes:   attachment.SizeBytes,
		StorageKey:  attachment.StorageKey,
		UploadedBy:  attachment.UploadedByID,
		CreatedAt:   attachment.CreatedAt,
	}
}
