package types

// Logical table names for the journal store.
const (
	TableUsers      = "users"
	TableEntries    = "entries"
	TableTags       = "tags"
	TableMoods      = "moods"
	TableEntryTags  = "entry_tags"
	TableEntryMoods = "entry_moods"
	TableStreaks    = "streaks"
	TableSettings   = "settings"
)

// TableNames lists every logical table in creation order.
var TableNames = []string{
	TableUsers,
	TableEntries,
	TableTags,
	TableMoods,
	TableEntryTags,
	TableEntryMoods,
	TableStreaks,
	TableSettings,
}
