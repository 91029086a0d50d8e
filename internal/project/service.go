package project

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mgaillard/projecthub/internal/user"
)

// Common errors
var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrUserNotFound       = errors.New("user(s) not found")
	ErrMembershipNotFound = errors.New("membership not found")
	ErrAlreadyMember      = errors.New("already a member of this project")
	ErrInvalidName        = errors.New("project name is required")
)

// Store is the persistence surface the project service depends on.
// *Repository is the Postgres implementation.
type Store interface {
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*Project, error)
	GetProject(ctx context.Context, id int64) (*Project, error)
	ListProjects(ctx context.Context, limit, offset int) ([]*Project, int, error)
	ProjectExists(ctx context.Context, id int64) (bool, error)

	DirectMembers(ctx context.Context, projectID int64) ([]MemberRef, error)
	GroupWithMembers(ctx context.Context, groupID int64) (*GroupNode, error)
	AddDirectUsers(ctx context.Context, projectID int64, userIDs []int64) ([]int64, error)
	RemoveDirectUser(ctx context.Context, projectID, userID int64) error
}

// UserDirectory resolves user ids to user records
type UserDirectory interface {
	FindByIDs(ctx context.Context, ids []int64) ([]*user.User, error)
}

// Service handles project business logic, including effective membership
// resolution over the group graph
type Service struct {
	store Store
	users UserDirectory
}

// NewService creates a new project service
func NewService(store Store, users UserDirectory) *Service {
	return &Service{store: store, users: users}
}

// Create creates a new project
func (s *Service) Create(ctx context.Context, req *CreateProjectRequest) (*Project, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, ErrInvalidName
	}

	return s.store.CreateProject(ctx, req)
}

// GetByID retrieves a project by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Project, error) {
	project, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

// List retrieves all projects with pagination
func (s *Service) List(ctx context.Context, page, perPage int) ([]*Project, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.store.ListProjects(ctx, perPage, offset)
}

// GetMembers resolves the effective members of a project: every user
// reachable from its direct membership edges through at most maxDepth
// group-containment hops, deduplicated and annotated with the group chain
// that brought them in. Ordered by ascending user id.
func (s *Service) GetMembers(ctx context.Context, projectID int64) ([]*EffectiveMember, error) {
	exists, err := s.store.ProjectExists(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrProjectNotFound
	}

	resolved, err := resolveEffectiveMembers(ctx, s.store, projectID)
	if err != nil {
		return nil, err
	}

	userIDs := collectUserIDs(resolved)
	if len(userIDs) == 0 {
		return []*EffectiveMember{}, nil
	}

	users, err := s.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	return aggregateMembers(resolved, users), nil
}

// AddMembers attaches the given users directly to a project. All existence
// checks run before any write: a missing project or any missing user id
// fails the whole request. When a single already-attached user is requested
// the call fails with ErrAlreadyMember; when several ids are requested,
// already-attached ones are skipped silently. Returns the users that were
// actually added.
func (s *Service) AddMembers(ctx context.Context, projectID int64, userIDs []int64) ([]*AddedMember, error) {
	req := AddMembersRequest{UserIDs: userIDs}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.store.ProjectExists(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrProjectNotFound
	}

	users, err := s.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	if missing := missingIDs(userIDs, users); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, joinIDs(missing))
	}

	inserted, err := s.store.AddDirectUsers(ctx, projectID, userIDs)
	if err != nil {
		return nil, err
	}

	insertedSet := make(map[int64]bool, len(inserted))
	for _, id := range inserted {
		insertedSet[id] = true
	}

	added := make([]*AddedMember, 0, len(inserted))
	for _, u := range users {
		if insertedSet[u.ID] {
			added = append(added, &AddedMember{ID: u.ID, Name: u.DisplayName()})
		}
	}

	return added, nil
}

// RemoveMember detaches a user's direct membership from a project
func (s *Service) RemoveMember(ctx context.Context, projectID, userID int64) error {
	exists, err := s.store.ProjectExists(ctx, projectID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrProjectNotFound
	}

	return s.store.RemoveDirectUser(ctx, projectID, userID)
}

// collectUserIDs returns the distinct user ids among traversal entries
func collectUserIDs(resolved []resolvedMember) []int64 {
	seen := make(map[int64]bool)
	var ids []int64
	for _, entry := range resolved {
		if entry.Ref.Type != MemberTypeUser || seen[entry.Ref.ID] {
			continue
		}
		seen[entry.Ref.ID] = true
		ids = append(ids, entry.Ref.ID)
	}
	return ids
}

// missingIDs returns the requested ids with no matching user record
func missingIDs(requested []int64, found []*user.User) []int64 {
	foundSet := make(map[int64]bool, len(found))
	for _, u := range found {
		foundSet[u.ID] = true
	}
	var missing []int64
	for _, id := range requested {
		if !foundSet[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}
