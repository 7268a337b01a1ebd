package testdb

import (
	"context"
	"testing"

	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/require"
)

// InsertRole inserts a role and returns its id.
func InsertRole(t *testing.T, db store.DBTX, name string) int64 {
	t.Helper()
	var id int64
	err := db.QueryRowContext(context.Background(),
		`INSERT INTO roles (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	require.NoError(t, err, "Failed to insert role")
	return id
}

// InsertUser inserts a user with a throwaway password hash and returns its id.
func InsertUser(t *testing.T, db store.DBTX, username string, roleID *int64) int64 {
	t.Helper()
	return InsertUserWithHash(t, db, username, "$2a$04$placeholderplaceholderplaceholderplaceholderpla", roleID)
}

// InsertUserWithHash inserts a user with the given bcrypt hash and returns its id.
func InsertUserWithHash(t *testing.T, db store.DBTX, username, hash string, roleID *int64) int64 {
	t.Helper()
	var id int64
	err := db.QueryRowContext(context.Background(),
		`INSERT INTO users (username, password_hash, role_id) VALUES ($1, $2, $3) RETURNING id`,
		username, hash, roleID).Scan(&id)
	require.NoError(t, err, "Failed to insert user")
	return id
}

// InsertTeam inserts a team, adds members to it and returns its id.
func InsertTeam(t *testing.T, db store.DBTX, name string, members ...int64) int64 {
	t.Helper()
	var id int64
	err := db.QueryRowContext(context.Background(),
		`INSERT INTO teams (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	require.NoError(t, err, "Failed to insert team")
	for _, m := range members {
		AddMember(t, db, m, id)
	}
	return id
}

// AddMember adds userID to teamID.
func AddMember(t *testing.T, db store.DBTX, userID, teamID int64) {
	t.Helper()
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO user_team (user_id, team_id) VALUES ($1, $2)`, userID, teamID)
	require.NoError(t, err, "Failed to add team member")
}
