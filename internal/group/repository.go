package group

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles group data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new group repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new group into the database
func (r *Repository) Create(ctx context.Context, req *CreateGroupRequest) (*Group, error) {
	query := `
		INSERT INTO groups (name)
		VALUES ($1)
		RETURNING id, name
	`

	group := &Group{}
	err := r.db.QueryRowContext(ctx, query, req.Name).Scan(&group.ID, &group.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	return group, nil
}

// GetByID retrieves a group by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Group, error) {
	query := `
		SELECT id, name
		FROM groups
		WHERE id = $1
	`

	group := &Group{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&group.ID, &group.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return group, nil
}

// GetByName retrieves a group by its unique name
func (r *Repository) GetByName(ctx context.Context, name string) (*Group, error) {
	query := `
		SELECT id, name
		FROM groups
		WHERE name = $1
	`

	group := &Group{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&group.ID, &group.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group by name: %w", err)
	}

	return group, nil
}

// List retrieves all groups ordered by name
func (r *Repository) List(ctx context.Context) ([]*Group, error) {
	query := `
		SELECT id, name
		FROM groups
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*Group
	for rows.Next() {
		group := &Group{}
		if err := rows.Scan(&group.ID, &group.Name); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}

	return groups, rows.Err()
}

// Delete removes a group; its membership edges cascade with it
func (r *Repository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM groups WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrGroupNotFound
	}

	return nil
}

// AddMember inserts a direct membership edge into the group
func (r *Repository) AddMember(ctx context.Context, groupID int64, req *AddMemberRequest) (*Member, error) {
	query := `
		INSERT INTO group_members (group_id, member_type, member_id)
		VALUES ($1, $2, $3)
		RETURNING group_id, member_type, member_id
	`

	member := &Member{}
	err := r.db.QueryRowContext(ctx, query, groupID, req.MemberType, req.MemberID).Scan(
		&member.GroupID,
		&member.MemberType,
		&member.MemberID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add group member: %w", err)
	}

	return member, nil
}

// GetMember retrieves a specific membership edge, or nil if absent
func (r *Repository) GetMember(ctx context.Context, groupID int64, memberType MemberType, memberID int64) (*Member, error) {
	query := `
		SELECT group_id, member_type, member_id
		FROM group_members
		WHERE group_id = $1 AND member_type = $2 AND member_id = $3
	`

	member := &Member{}
	err := r.db.QueryRowContext(ctx, query, groupID, memberType, memberID).Scan(
		&member.GroupID,
		&member.MemberType,
		&member.MemberID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group member: %w", err)
	}

	return member, nil
}

// GetMembers retrieves all direct membership edges of a group
func (r *Repository) GetMembers(ctx context.Context, groupID int64) ([]*Member, error) {
	query := `
		SELECT group_id, member_type, member_id
		FROM group_members
		WHERE group_id = $1
		ORDER BY member_type, member_id
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		member := &Member{}
		if err := rows.Scan(&member.GroupID, &member.MemberType, &member.MemberID); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		members = append(members, member)
	}

	return members, rows.Err()
}

// RemoveMember deletes a direct membership edge from a group
func (r *Repository) RemoveMember(ctx context.Context, groupID int64, memberType MemberType, memberID int64) error {
	query := `DELETE FROM group_members WHERE group_id = $1 AND member_type = $2 AND member_id = $3`

	result, err := r.db.ExecContext(ctx, query, groupID, memberType, memberID)
	if err != nil {
		return fmt.Errorf("failed to remove group member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrMemberNotFound
	}

	return nil
}
