package group

import (
	"context"
	"errors"
	"strings"
)

// Common errors
var (
	ErrGroupNotFound       = errors.New("group not found")
	ErrMemberNotFound      = errors.New("group member not found")
	ErrMemberAlreadyExists = errors.New("member already belongs to this group")
	ErrGroupNameTaken      = errors.New("a group with this name already exists")
	ErrInvalidMemberType   = errors.New("member_type must be 'user' or 'group'")
	ErrSelfMembership      = errors.New("a group cannot be a member of itself")
)

// Service handles group business logic
type Service struct {
	repo *Repository
}

// NewService creates a new group service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new group with a unique name
func (s *Service) Create(ctx context.Context, req *CreateGroupRequest) (*Group, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, errors.New("group name is required")
	}

	existing, err := s.repo.GetByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrGroupNameTaken
	}

	return s.repo.Create(ctx, req)
}

// GetByID retrieves a group by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Group, error) {
	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return group, nil
}

// GetByIDWithMembers retrieves a group with its direct membership edges
func (s *Service) GetByIDWithMembers(ctx context.Context, id int64) (*Group, []*Member, error) {
	group, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	members, err := s.repo.GetMembers(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return group, members, nil
}

// List retrieves all groups
func (s *Service) List(ctx context.Context) ([]*Group, error) {
	return s.repo.List(ctx)
}

// Delete removes a group and cascades its membership edges
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// AddMember attaches a user or a nested group to a group.
// A group containing itself is rejected outright; longer containment
// cycles are allowed and handled by the membership resolver.
func (s *Service) AddMember(ctx context.Context, groupID int64, req *AddMemberRequest) (*Member, error) {
	if !req.MemberType.Valid() {
		return nil, ErrInvalidMemberType
	}
	if req.MemberType == MemberTypeGroup && req.MemberID == groupID {
		return nil, ErrSelfMembership
	}

	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	existing, err := s.repo.GetMember(ctx, groupID, req.MemberType, req.MemberID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrMemberAlreadyExists
	}

	return s.repo.AddMember(ctx, groupID, req)
}

// RemoveMember detaches a direct member from a group
func (s *Service) RemoveMember(ctx context.Context, groupID int64, memberType MemberType, memberID int64) error {
	if !memberType.Valid() {
		return ErrInvalidMemberType
	}

	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return ErrGroupNotFound
	}

	return s.repo.RemoveMember(ctx, groupID, memberType, memberID)
}
