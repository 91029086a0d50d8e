package group

// CreateGroupRequest represents the request to create a new group
type CreateGroupRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// AddMemberRequest represents the request to add a member to a group
type AddMemberRequest struct {
	MemberType MemberType `json:"member_type" validate:"required,oneof=user group"`
	MemberID   int64      `json:"member_id" validate:"required"`
}

// GroupResponse represents the response for a group
type GroupResponse struct {
	ID      int64             `json:"id"`
	Name    string            `json:"name"`
	Members []*MemberResponse `json:"members,omitempty"`
}

// MemberResponse represents a direct member in a group response
type MemberResponse struct {
	MemberType MemberType `json:"member_type"`
	MemberID   int64      `json:"member_id"`
}

// ToResponse converts a Group model to a GroupResponse DTO
func (g *Group) ToResponse() *GroupResponse {
	return &GroupResponse{
		ID:   g.ID,
		Name: g.Name,
	}
}

// ToResponse converts a Member model to a MemberResponse DTO
func (m *Member) ToResponse() *MemberResponse {
	return &MemberResponse{
		MemberType: m.MemberType,
		MemberID:   m.MemberID,
	}
}
