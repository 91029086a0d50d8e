package project

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// Repository handles project and project-membership persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new project repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateProject inserts a new project into the database
func (r *Repository) CreateProject(ctx context.Context, req *CreateProjectRequest) (*Project, error) {
	query := `
		INSERT INTO projects (name)
		VALUES ($1)
		RETURNING id, name
	`

	project := &Project{}
	err := r.db.QueryRowContext(ctx, query, req.Name).Scan(&project.ID, &project.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// GetProject retrieves a project by its ID, or nil if absent
func (r *Repository) GetProject(ctx context.Context, id int64) (*Project, error) {
	query := `
		SELECT id, name
		FROM projects
		WHERE id = $1
	`

	project := &Project{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&project.ID, &project.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return project, nil
}

// ListProjects retrieves all projects with pagination
func (r *Repository) ListProjects(ctx context.Context, limit, offset int) ([]*Project, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM projects`
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	query := `
		SELECT id, name
		FROM projects
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*Project
	for rows.Next() {
		project := &Project{}
		if err := rows.Scan(&project.ID, &project.Name); err != nil {
			return nil, 0, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}

	return projects, total, nil
}

// ProjectExists reports whether a project row exists for the id
func (r *Repository) ProjectExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1)`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check project existence: %w", err)
	}
	return exists, nil
}

// DirectMembers retrieves the direct membership edges of a project
func (r *Repository) DirectMembers(ctx context.Context, projectID int64) ([]MemberRef, error) {
	query := `
		SELECT member_type, member_id
		FROM projects_members_v2
		WHERE project_id = $1
		ORDER BY member_type, member_id
	`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get direct members: %w", err)
	}
	defer rows.Close()

	var members []MemberRef
	for rows.Next() {
		var ref MemberRef
		if err := rows.Scan(&ref.Type, &ref.ID); err != nil {
			return nil, fmt.Errorf("failed to scan direct member: %w", err)
		}
		members = append(members, ref)
	}

	return members, rows.Err()
}

// GroupWithMembers retrieves a group and its direct membership edges in one
// round trip, or nil if no group row exists for the id
func (r *Repository) GroupWithMembers(ctx context.Context, groupID int64) (*GroupNode, error) {
	query := `
		SELECT g.id, g.name, gm.member_type, gm.member_id
		FROM groups g
		LEFT JOIN group_members gm ON gm.group_id = g.id
		WHERE g.id = $1
		ORDER BY gm.member_type, gm.member_id
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	var node *GroupNode
	for rows.Next() {
		var (
			id         int64
			name       string
			memberType sql.NullString
			memberID   sql.NullInt64
		)
		if err := rows.Scan(&id, &name, &memberType, &memberID); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		if node == nil {
			node = &GroupNode{ID: id, Name: name}
		}
		if memberType.Valid {
			node.Members = append(node.Members, MemberRef{
				Type: MemberType(memberType.String),
				ID:   memberID.Int64,
			})
		}
	}

	return node, rows.Err()
}

// AddDirectUsers attaches users directly to a project. The existing-edge
// probe and the inserts run in one transaction so a concurrent add of the
// same pair cannot slip between the check and the write. Returns the ids
// actually inserted; when exactly one user was requested and is already a
// member, returns ErrAlreadyMember and writes nothing.
func (r *Repository) AddDirectUsers(ctx context.Context, projectID int64, userIDs []int64) ([]int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		SELECT member_id
		FROM projects_members_v2
		WHERE project_id = $1 AND member_type = 'user' AND member_id = ANY($2)
	`

	rows, err := tx.QueryContext(ctx, query, projectID, pq.Array(userIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to check existing members: %w", err)
	}

	existing := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan existing member: %w", err)
		}
		existing[id] = true
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to check existing members: %w", err)
	}
	rows.Close()

	if len(userIDs) == 1 && existing[userIDs[0]] {
		return nil, fmt.Errorf("user %d: %w", userIDs[0], ErrAlreadyMember)
	}

	var toInsert []int64
	for _, id := range userIDs {
		if !existing[id] {
			toInsert = append(toInsert, id)
		}
	}

	if len(toInsert) > 0 {
		insert := `
			INSERT INTO projects_members_v2 (project_id, member_type, member_id)
			SELECT $1, 'user', unnest($2::bigint[])
		`
		if _, err := tx.ExecContext(ctx, insert, projectID, pq.Array(toInsert)); err != nil {
			return nil, fmt.Errorf("failed to insert members: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return toInsert, nil
}

// RemoveDirectUser deletes a direct project-user membership edge
func (r *Repository) RemoveDirectUser(ctx context.Context, projectID, userID int64) error {
	query := `
		DELETE FROM projects_members_v2
		WHERE project_id = $1 AND member_type = 'user' AND member_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrMembershipNotFound
	}

	return nil
}
