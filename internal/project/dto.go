package project

import "errors"

// CreateProjectRequest represents the request to create a new project
type CreateProjectRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// AddMembersRequest represents the request to attach users to a project
type AddMembersRequest struct {
	UserIDs []int64 `json:"user_ids" validate:"required,min=1,unique"`
}

// Validate checks the structural rules on the requested id set
func (r *AddMembersRequest) Validate() error {
	if len(r.UserIDs) == 0 {
		return errors.New("user_ids must be a non-empty array")
	}
	seen := make(map[int64]bool, len(r.UserIDs))
	for _, id := range r.UserIDs {
		if seen[id] {
			return errors.New("user_ids must not contain duplicates")
		}
		seen[id] = true
	}
	return nil
}

// ProjectResponse represents the response for a project
type ProjectResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AddedMember represents a user newly attached to a project
type AddedMember struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ToResponse converts a Project model to a ProjectResponse DTO
func (p *Project) ToResponse() *ProjectResponse {
	return &ProjectResponse{
		ID:   p.ID,
		Name: p.Name,
	}
}
