package dto

import "github.com/spec-kit/helpdesk/internal/domain"

// CreateLookupRequest covers categories and internal systems.
type CreateLookupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=120"`
	IsActive *bool  `json:"is_active"`
}

// LookupResponse is a category or internal system row.
type LookupResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// NewCategoryResponse maps a category.
func NewCategoryResponse(c domain.Category) LookupResponse {
	return LookupResponse{ID: c.ID, Name: c.Name, IsActive: c.IsActive}
}

// NewInternalSystemResponse maps an internal system.
func NewInternalSystemResponse(s domain.InternalSystem) LookupResponse {
	return LookupResponse{ID: s.ID, Name: s.Name, IsActive: s.IsActive}
}
