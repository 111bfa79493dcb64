package sqlite

import "github.com/quietloom/daybook/pkg/types"

// Canonical DDL for all logical tables. The repair pass diffs the stored
// definitions against these and rewrites tables that match a known defect.
const (
	createUsers = `CREATE TABLE users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at TEXT NOT NULL,
    last_login_at TEXT
);`

	createEntries = `CREATE TABLE entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    entry_date TEXT NOT NULL,
    category_id INTEGER,
    word_count INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    UNIQUE (user_id, entry_date),
    FOREIGN KEY (user_id) REFERENCES users(id)
);`

	createTags = `CREATE TABLE tags (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    color TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    UNIQUE (user_id, name),
    FOREIGN KEY (user_id) REFERENCES users(id)
);`

	createMoods = `CREATE TABLE moods (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    icon TEXT NOT NULL DEFAULT '',
    color TEXT NOT NULL DEFAULT '',
    intensity INTEGER NOT NULL,
    category TEXT NOT NULL
);`

	createEntryTags = `CREATE TABLE entry_tags (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    entry_id INTEGER NOT NULL,
    tag_id INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    UNIQUE (entry_id, tag_id),
    FOREIGN KEY (entry_id) REFERENCES entries(id),
    FOREIGN KEY (tag_id) REFERENCES tags(id)
);`

	createEntryMoods = `CREATE TABLE entry_moods (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    entry_id INTEGER NOT NULL,
    mood_id INTEGER NOT NULL,
    intensity INTEGER,
    is_primary INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    UNIQUE (entry_id, mood_id),
    FOREIGN KEY (entry_id) REFERENCES entries(id),
    FOREIGN KEY (mood_id) REFERENCES moods(id)
);`

	createStreaks = `CREATE TABLE streaks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    start_date TEXT NOT NULL,
    end_date TEXT,
    day_count INTEGER NOT NULL DEFAULT 0,
    is_active INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (user_id) REFERENCES users(id)
);`

	createSettings = `CREATE TABLE settings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    key TEXT NOT NULL,
    value TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    UNIQUE (user_id, key),
    FOREIGN KEY (user_id) REFERENCES users(id)
);`
)

// Index DDL for common queries. IF NOT EXISTS keeps the ensure pass
// idempotent across opens.
const (
	idxEntriesUserDate = `CREATE INDEX IF NOT EXISTS idx_entries_user_date ON entries(user_id, entry_date);`
	idxEntryTagsEntry  = `CREATE INDEX IF NOT EXISTS idx_entry_tags_entry ON entry_tags(entry_id);`
	idxEntryTagsTag    = `CREATE INDEX IF NOT EXISTS idx_entry_tags_tag ON entry_tags(tag_id);`
	idxEntryMoodsEntry = `CREATE INDEX IF NOT EXISTS idx_entry_moods_entry ON entry_moods(entry_id);`
	idxEntryMoodsMood  = `CREATE INDEX IF NOT EXISTS idx_entry_moods_mood ON entry_moods(mood_id);`
	idxSettingsUserKey = `CREATE INDEX IF NOT EXISTS idx_settings_user_key ON settings(user_id, key);`
	idxStreaksUser     = `CREATE INDEX IF NOT EXISTS idx_streaks_user ON streaks(user_id, is_active);`
)

// tableDDL maps each logical table to its canonical definition, in
// creation order.
var tableDDL = map[string]string{
	types.TableUsers:      createUsers,
	types.TableEntries:    createEntries,
	types.TableTags:       createTags,
	types.TableMoods:      createMoods,
	types.TableEntryTags:  createEntryTags,
	types.TableEntryMoods: createEntryMoods,
	types.TableStreaks:    createStreaks,
	types.TableSettings:   createSettings,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxEntriesUserDate,
	idxEntryTagsEntry,
	idxEntryTagsTag,
	idxEntryMoodsEntry,
	idxEntryMoodsMood,
	idxSettingsUserKey,
	idxStreaksUser,
}
