// Reference data seeding. The mood taxonomy is seeded once per store when
// the moods table is empty; per-user defaults (tag vocabulary, settings,
// sample content) are seeded on a user's first use.
package sqlite

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/quietloom/daybook/pkg/types"
)

// Setting keys written by the per-user seeder.
const (
	settingSeededAt = "seeded_at"
	settingClientID = "client_id"
	settingTheme    = "theme"
	settingReminder = "reminder_time"
)

// moodTaxonomy is the immutable mood reference data.
var moodTaxonomy = []types.Mood{
	{Name: "excited", Icon: "🤩", Color: "#F4A261", Intensity: 9, Category: types.MoodPositive},
	{Name: "happy", Icon: "😊", Color: "#FFD166", Intensity: 7, Category: types.MoodPositive},
	{Name: "grateful", Icon: "🙏", Color: "#8AC926", Intensity: 6, Category: types.MoodPositive},
	{Name: "calm", Icon: "😌", Color: "#90BE6D", Intensity: 5, Category: types.MoodPositive},
	{Name: "neutral", Icon: "😐", Color: "#ADB5BD", Intensity: 5, Category: types.MoodNeutral},
	{Name: "tired", Icon: "🥱", Color: "#A98467", Intensity: 4, Category: types.MoodNeutral},
	{Name: "anxious", Icon: "😟", Color: "#577590", Intensity: 3, Category: types.MoodNegative},
	{Name: "sad", Icon: "😢", Color: "#457B9D", Intensity: 2, Category: types.MoodNegative},
	{Name: "angry", Icon: "😠", Color: "#E63946", Intensity: 2, Category: types.MoodNegative},
	{Name: "overwhelmed", Icon: "😵", Color: "#6D597A", Intensity: 1, Category: types.MoodNegative},
}

// defaultTags is the starter tag vocabulary seeded for each new user.
var defaultTags = []types.Tag{
	{Name: "personal", Color: "#118AB2"},
	{Name: "work", Color: "#073B4C"},
	{Name: "gratitude", Color: "#06D6A0"},
	{Name: "health", Color: "#EF476F"},
	{Name: "travel", Color: "#FFD166"},
}

// seedReferenceData populates the mood taxonomy when the moods table is
// empty. Idempotent across opens. The caller holds the store lock.
func (s *Store) seedReferenceData() error {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM moods").Scan(&count); err != nil {
		return fmt.Errorf("counting moods: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, m := range moodTaxonomy {
		_, err := tx.Exec(
			"INSERT INTO moods (name, icon, color, intensity, category) VALUES (?, ?, ?, ?, ?)",
			m.Name, m.Icon, m.Color, m.Intensity, m.Category,
		)
		if err != nil {
			return fmt.Errorf("seeding mood %s: %w", m.Name, err)
		}
	}

	return tx.Commit()
}

// SeedUser populates a user's starter content on first use: the default
// tag vocabulary, default settings (including a generated client id), and
// one sample entry for today. Idempotent: a seeded marker setting
// suppresses subsequent runs.
func (s *Store) SeedUser(userID int64) error {
	if err := s.ready(); err != nil {
		return err
	}

	var one int
	err := s.db.QueryRow(
		"SELECT 1 FROM settings WHERE user_id = ? AND key = ?", userID, settingSeededAt,
	).Scan(&one)
	if err == nil {
		return nil
	}

	now := s.nowUTC()
	nowStr := formatTime(now)

	tx, err := s.db.Begin()
	if err != nil {
		return types.Storef(err, "beginning user seed transaction")
	}
	defer tx.Rollback()

	for _, t := range defaultTags {
		_, err := tx.Exec(
			"INSERT OR IGNORE INTO tags (user_id, name, color, created_at) VALUES (?, ?, ?, ?)",
			userID, t.Name, t.Color, nowStr,
		)
		if err != nil {
			return types.Storef(err, "seeding tag %s", t.Name)
		}
	}

	defaults := [][2]string{
		{settingTheme, "system"},
		{settingReminder, "20:00"},
		{settingClientID, uuid.NewString()},
		{settingSeededAt, nowStr},
	}
	for _, kv := range defaults {
		_, err := tx.Exec(
			"INSERT OR IGNORE INTO settings (user_id, key, value, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
			userID, kv[0], kv[1], nowStr, nowStr,
		)
		if err != nil {
			return types.Storef(err, "seeding setting %s", kv[0])
		}
	}

	// Sample entry for today, unless the user already journaled today.
	const title = "Welcome to your journal"
	const content = "This is your first entry. Write a little every day; " +
		"streaks and statistics build themselves from the dates you show up."
	res, err := tx.Exec(
		`INSERT OR IGNORE INTO entries
		 (user_id, title, content, entry_date, word_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, title, content, types.FormatDate(s.today()), types.CountWords(content), nowStr, nowStr,
	)
	if err != nil {
		return types.Storef(err, "seeding sample entry")
	}

	// Tag the sample entry with the first default tag when it was inserted.
	if n, _ := res.RowsAffected(); n == 1 {
		entryID, err := res.LastInsertId()
		if err == nil {
			var tagID int64
			err = tx.QueryRow(
				"SELECT id FROM tags WHERE user_id = ? AND name = ?", userID, defaultTags[0].Name,
			).Scan(&tagID)
			if err == nil {
				_, err = tx.Exec(
					"INSERT OR IGNORE INTO entry_tags (entry_id, tag_id, created_at) VALUES (?, ?, ?)",
					entryID, tagID, nowStr,
				)
				if err != nil {
					return types.Storef(err, "tagging sample entry")
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return types.Storef(err, "committing user seed")
	}
	return nil
}
