package database

import (
	"database/sql"
	"fmt"
)

// GuildStore exposes every persistence operation scoped to one guild. All
// operations are single independent statements; the pool underneath is
// safe for arbitrarily many concurrent callers.
type GuildStore struct {
	db      *Database
	guildID string
}

// GuildID returns the guild this store is scoped to.
func (s *GuildStore) GuildID() string {
	return s.guildID
}

// ===== Triggers =====

// GetRule returns the script stored for a pattern, if any.
func (s *GuildStore) GetRule(pattern string) (string, bool, error) {
	var script string
	err := s.db.db.QueryRow(
		`SELECT script FROM triggers WHERE pattern = ? AND guild_id = ?`,
		pattern, s.guildID,
	).Scan(&script)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read trigger: %w", err)
	}
	return script, true, nil
}

// PutRule upserts a trigger. A pattern identical to an existing one in the
// same guild replaces its script.
func (s *GuildStore) PutRule(pattern, script string) error {
	_, err := s.db.db.Exec(
		`INSERT INTO triggers (pattern, script, guild_id) VALUES (?, ?, ?)
		 ON CONFLICT(pattern, guild_id) DO UPDATE SET script = excluded.script`,
		pattern, script, s.guildID,
	)
	if err != nil {
		return fmt.Errorf("failed to store trigger: %w", err)
	}
	return nil
}

// DeleteRule removes a trigger. It reports whether a row was removed.
func (s *GuildStore) DeleteRule(pattern string) (bool, error) {
	result, err := s.db.db.Exec(
		`DELETE FROM triggers WHERE pattern = ? AND guild_id = ?`,
		pattern, s.guildID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete trigger: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ListRules returns the guild's triggers in storage order. The router
// evaluates them in this order and stops at the first match.
func (s *GuildStore) ListRules() ([]Trigger, error) {
	rows, err := s.db.db.Query(
		`SELECT pattern, script FROM triggers WHERE guild_id = ? ORDER BY rowid`,
		s.guildID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list triggers: %w", err)
	}
	defer rows.Close()

	var triggers []Trigger
	for rows.Next() {
		t := Trigger{GuildID: s.guildID}
		if err := rows.Scan(&t.Pattern, &t.Script); err != nil {
			return nil, err
		}
		triggers = append(triggers, t)
	}

	return triggers, rows.Err()
}

// ===== Event scripts =====

// GetEventScript returns the script bound to an event kind, if any.
func (s *GuildStore) GetEventScript(eventKind string) (string, bool, error) {
	var script string
	err := s.db.db.QueryRow(
		`SELECT script FROM events WHERE event_kind = ? AND guild_id = ?`,
		eventKind, s.guildID,
	).Scan(&script)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read event script: %w", err)
	}
	return script, true, nil
}

// PutEventScript upserts the script bound to an event kind.
func (s *GuildStore) PutEventScript(eventKind, script string) error {
	_, err := s.db.db.Exec(
		`INSERT INTO events (event_kind, guild_id, script) VALUES (?, ?, ?)
		 ON CONFLICT(event_kind, guild_id) DO UPDATE SET script = excluded.script`,
		eventKind, s.guildID, script,
	)
	if err != nil {
		return fmt.Errorf("failed to store event script: %w", err)
	}
	return nil
}

// DeleteEventScript removes an event binding. It reports whether a row was
// removed.
func (s *GuildStore) DeleteEventScript(eventKind string) (bool, error) {
	result, err := s.db.db.Exec(
		`DELETE FROM events WHERE event_kind = ? AND guild_id = ?`,
		eventKind, s.guildID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete event script: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// ===== Guild config =====

// Config returns the guild's configuration with defaults applied. An
// absent row and a row with NULL columns are treated identically.
func (s *GuildStore) Config() (GuildConfig, error) {
	if cached, ok := s.db.configCache.Get(s.guildID); ok {
		return cached, nil
	}

	cfg := GuildConfig{GuildID: s.guildID, Prefix: DefaultPrefix}

	var prefix, adminRole, errorChannel sql.NullString
	err := s.db.db.QueryRow(
		`SELECT prefix, admin_role, error_channel FROM config WHERE guild_id = ?`,
		s.guildID,
	).Scan(&prefix, &adminRole, &errorChannel)

	if err == sql.ErrNoRows {
		s.db.configCache.Add(s.guildID, cfg)
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read guild config: %w", err)
	}

	if prefix.Valid && prefix.String != "" {
		cfg.Prefix = prefix.String
	}
	if adminRole.Valid {
		cfg.AdminRole = adminRole.String
	}
	if errorChannel.Valid {
		cfg.ErrorChannel = errorChannel.String
	}

	s.db.configCache.Add(s.guildID, cfg)
	return cfg, nil
}

// setConfigColumn upserts a single config column, leaving the others as
// they are. An empty value stores NULL.
func (s *GuildStore) setConfigColumn(column, value string) (bool, error) {
	var stored interface{}
	if value != "" {
		stored = value
	}

	query := fmt.Sprintf(
		`INSERT INTO config (guild_id, %s) VALUES (?, ?)
		 ON CONFLICT(guild_id) DO UPDATE SET %s = excluded.%s`,
		column, column, column,
	)
	result, err := s.db.db.Exec(query, s.guildID, stored)
	if err != nil {
		return false, fmt.Errorf("failed to update guild config: %w", err)
	}

	s.db.configCache.Remove(s.guildID)

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// SetPrefix stores the guild's command prefix.
func (s *GuildStore) SetPrefix(prefix string) (bool, error) {
	return s.setConfigColumn("prefix", prefix)
}

// SetAdminRole stores the role allowed to run privileged commands. An
// empty role id clears it.
func (s *GuildStore) SetAdminRole(roleID string) (bool, error) {
	return s.setConfigColumn("admin_role", roleID)
}

// SetErrorChannel stores the channel interpretation errors are reported
// to. An empty channel id clears it.
func (s *GuildStore) SetErrorChannel(channelID string) (bool, error) {
	return s.setConfigColumn("error_channel", channelID)
}

// ===== Script key-value databases =====

// GetKey reads one key from a named per-guild database.
func (s *GuildStore) GetKey(databaseName, keyName string) (string, bool, error) {
	var value string
	err := s.db.db.QueryRow(
		`SELECT value FROM databases WHERE database_name = ? AND guild_id = ? AND key_name = ?`,
		databaseName, s.guildID, keyName,
	).Scan(&value)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key: %w", err)
	}
	return value, true, nil
}

// SetKey upserts one key in a named per-guild database.
func (s *GuildStore) SetKey(databaseName, keyName, value string) error {
	_, err := s.db.db.Exec(
		`INSERT INTO databases (database_name, guild_id, key_name, value) VALUES (?, ?, ?, ?)
		 ON CONFLICT(database_name, guild_id, key_name) DO UPDATE SET value = excluded.value`,
		databaseName, s.guildID, keyName, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write key: %w", err)
	}
	return nil
}

// DeleteKey removes one key from a named per-guild database.
func (s *GuildStore) DeleteKey(databaseName, keyName string) error {
	_, err := s.db.db.Exec(
		`DELETE FROM databases WHERE database_name = ? AND guild_id = ? AND key_name = ?`,
		databaseName, s.guildID, keyName,
	)
	if err != nil {
		return fmt.Errorf("failed to delete key: %w", err)
	}
	return nil
}

// KeyExists reports whether a key is present.
func (s *GuildStore) KeyExists(databaseName, keyName string) (bool, error) {
	var count int
	err := s.db.db.QueryRow(
		`SELECT COUNT(*) FROM databases WHERE database_name = ? AND guild_id = ? AND key_name = ?`,
		databaseName, s.guildID, keyName,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check key: %w", err)
	}
	return count > 0, nil
}

// ListDatabases returns the names of the guild's key-value databases.
func (s *GuildStore) ListDatabases() ([]string, error) {
	rows, err := s.db.db.Query(
		`SELECT DISTINCT database_name FROM databases WHERE guild_id = ? ORDER BY database_name`,
		s.guildID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list databases: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// ClearDatabase deletes every key in a named database, keeping no trace.
func (s *GuildStore) ClearDatabase(databaseName string) error {
	_, err := s.db.db.Exec(
		`DELETE FROM databases WHERE database_name = ? AND guild_id = ?`,
		databaseName, s.guildID,
	)
	if err != nil {
		return fmt.Errorf("failed to clear database: %w", err)
	}
	return nil
}

// DropDatabase removes a named database. Databases have no existence
// beyond their keys, so this is ClearDatabase under another name.
func (s *GuildStore) DropDatabase(databaseName string) error {
	return s.ClearDatabase(databaseName)
}
