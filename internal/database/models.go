package database

// Trigger is one stored message rule. Pattern carries its classification
// sigil; uniqueness is per (pattern, guild).
type Trigger struct {
	GuildID string
	Pattern string
	Script  string
}

// EventScript binds a script to one non-message event kind, one per guild
// per kind.
type EventScript struct {
	GuildID   string
	EventKind string
	Script    string
}

// GuildConfig is a guild's settings with defaults already applied:
// Prefix is never empty, AdminRole and ErrorChannel are empty when unset.
type GuildConfig struct {
	GuildID      string
	Prefix       string
	AdminRole    string
	ErrorChannel string
}
