package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema statements are idempotent so Migrate can run on every startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS groups (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS group_members (
		group_id INTEGER NOT NULL,
		member_type TEXT NOT NULL CHECK (member_type IN ('user','group')),
		member_id INTEGER NOT NULL,
		PRIMARY KEY (group_id, member_type, member_id),
		FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS projects_members_v2 (
		project_id INTEGER NOT NULL,
		member_type TEXT NOT NULL CHECK (member_type IN ('user','group')),
		member_id INTEGER NOT NULL,
		PRIMARY KEY (project_id, member_type, member_id),
		FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_group_members_group ON group_members(group_id)`,
	`CREATE INDEX IF NOT EXISTS idx_group_members_member ON group_members(member_type, member_id)`,
	`CREATE INDEX IF NOT EXISTS idx_project_members_project ON projects_members_v2(project_id)`,
}

// Migrate creates the schema and backfills memberships from the legacy table
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	return backfillLegacyMembers(ctx, db)
}

// backfillLegacyMembers copies rows from the pre-v2 projects_members table,
// if it still exists, into projects_members_v2. Safe to run more than once.
func backfillLegacyMembers(ctx context.Context, db *sql.DB) error {
	var legacy sql.NullString
	err := db.QueryRowContext(ctx, `SELECT to_regclass('projects_members')`).Scan(&legacy)
	if err != nil {
		return fmt.Errorf("failed to check legacy table: %w", err)
	}
	if !legacy.Valid {
		return nil
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO projects_members_v2 (project_id, member_type, member_id)
		SELECT project_id, 'user', user_id FROM projects_members
		ON CONFLICT DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("failed to backfill legacy members: %w", err)
	}

	return nil
}
