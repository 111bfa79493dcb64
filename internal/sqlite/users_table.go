// User accessors. Passwords are stored as bcrypt hashes; deleting a user
// cascades to entries, tags, streaks, settings, and the join rows they own.
package sqlite

import (
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/quietloom/daybook/pkg/types"
)

// CreateUser creates an account, hashes the password, and seeds the user's
// starter content. Usernames are unique, case-sensitive.
func (s *Store) CreateUser(username, password string) (*types.User, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if err := types.ValidateUsername(username); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, types.Invalidf("password must not be empty")
	}

	var one int
	err := s.db.QueryRow("SELECT 1 FROM users WHERE username = ?", username).Scan(&one)
	if err == nil {
		return nil, types.Invalidf("username %q is already taken", username)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, types.Storef(err, "checking username")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, types.Storef(err, "hashing password")
	}

	now := formatTime(s.nowUTC())
	res, err := s.db.Exec(
		"INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)",
		username, string(hash), now,
	)
	if err != nil {
		return nil, types.Storef(err, "creating user")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, types.Storef(err, "reading new user id")
	}

	if err := s.SeedUser(id); err != nil {
		return nil, err
	}
	return s.GetUser(id)
}

// GetUser retrieves a user by id.
func (s *Store) GetUser(id int64) (*types.User, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	row := s.db.QueryRow(
		"SELECT id, username, password_hash, created_at, last_login_at FROM users WHERE id = ?", id,
	)
	return hydrateUser(row)
}

// GetUserByUsername retrieves a user by exact username.
func (s *Store) GetUserByUsername(username string) (*types.User, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	row := s.db.QueryRow(
		"SELECT id, username, password_hash, created_at, last_login_at FROM users WHERE username = ?", username,
	)
	return hydrateUser(row)
}

// VerifyPassword checks a password against the stored hash. It returns the
// user on success and ErrUnauthorized on mismatch.
func (s *Store) VerifyPassword(username, password string) (*types.User, error) {
	user, err := s.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, types.ErrUnauthorized
	}
	return user, nil
}

// RecordLogin stamps the user's last-login time with the store clock.
func (s *Store) RecordLogin(id int64) error {
	if err := s.ready(); err != nil {
		return err
	}
	res, err := s.db.Exec(
		"UPDATE users SET last_login_at = ? WHERE id = ?", formatTime(s.nowUTC()), id,
	)
	if err != nil {
		return types.Storef(err, "recording login")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// DeleteUser removes an account and everything it owns: entries with their
// join rows, tags with their join rows, streaks, and settings.
func (s *Store) DeleteUser(id int64) error {
	if err := s.ready(); err != nil {
		return err
	}

	var one int
	err := s.db.QueryRow("SELECT 1 FROM users WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ErrNotFound
	}
	if err != nil {
		return types.Storef(err, "checking user existence")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return types.Storef(err, "beginning transaction")
	}
	defer tx.Rollback()

	steps := []string{
		"DELETE FROM entry_tags WHERE entry_id IN (SELECT id FROM entries WHERE user_id = ?)",
		"DELETE FROM entry_moods WHERE entry_id IN (SELECT id FROM entries WHERE user_id = ?)",
		"DELETE FROM entry_tags WHERE tag_id IN (SELECT id FROM tags WHERE user_id = ?)",
		"DELETE FROM entries WHERE user_id = ?",
		"DELETE FROM tags WHERE user_id = ?",
		"DELETE FROM streaks WHERE user_id = ?",
		"DELETE FROM settings WHERE user_id = ?",
		"DELETE FROM users WHERE id = ?",
	}
	for _, q := range steps {
		if _, err := tx.Exec(q, id); err != nil {
			return types.Storef(err, "cascading user delete")
		}
	}

	if err := tx.Commit(); err != nil {
		return types.Storef(err, "committing user delete")
	}
	return nil
}

// hydrateUser converts a single row into a *types.User.
func hydrateUser(row *sql.Row) (*types.User, error) {
	var (
		u         types.User
		createdAt string
		lastLogin sql.NullString
	)
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &createdAt, &lastLogin); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, types.Storef(err, "scanning user")
	}

	var err error
	u.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, types.Storef(err, "parsing created_at")
	}
	if lastLogin.Valid {
		t, err := parseTime(lastLogin.String)
		if err != nil {
			return nil, types.Storef(err, "parsing last_login_at")
		}
		u.LastLoginAt = &t
	}
	return &u, nil
}
