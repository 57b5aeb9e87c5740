package database

import (
	"database/sql"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "modernc.org/sqlite"
)

// DefaultPrefix is used when a guild has no stored prefix. A config row
// with a NULL prefix column behaves the same as no row at all.
const DefaultPrefix = "."

const configCacheSize = 4096

type Database struct {
	db          *sql.DB
	configCache *lru.Cache[string, GuildConfig]
}

var globalDB *Database

// Initialize opens the SQLite database and creates the schema.
func Initialize(dbPath string) error {
	db, err := Open(dbPath)
	if err != nil {
		return err
	}
	globalDB = db
	return nil
}

// Open creates an independent Database instance. Tests use this with an
// in-memory path; the process normally goes through Initialize.
func Open(dbPath string) (*Database, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if dbPath == ":memory:" {
		// Every pooled connection would otherwise see its own empty
		// in-memory database.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(time.Hour)
		db.SetConnMaxIdleTime(10 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		return nil, fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	cache, err := lru.New[string, GuildConfig](configCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create config cache: %w", err)
	}

	d := &Database{db: db, configCache: cache}
	if err := d.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return d, nil
}

// GetDB returns the global database instance.
func GetDB() *Database {
	return globalDB
}

// IsConnected checks if the database connection is alive.
func IsConnected() bool {
	if globalDB == nil || globalDB.db == nil {
		return false
	}
	return globalDB.db.Ping() == nil
}

// Close closes the global database connection.
func Close() error {
	if globalDB != nil && globalDB.db != nil {
		return globalDB.db.Close()
	}
	return nil
}

// CloseDB closes an independently opened instance.
func (d *Database) CloseDB() error {
	return d.db.Close()
}

func (d *Database) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS triggers (
		pattern TEXT NOT NULL,
		script TEXT NOT NULL,
		guild_id TEXT NOT NULL,
		UNIQUE(pattern, guild_id)
	);

	CREATE INDEX IF NOT EXISTS idx_triggers_guild ON triggers(guild_id);

	CREATE TABLE IF NOT EXISTS events (
		event_kind TEXT NOT NULL,
		guild_id TEXT NOT NULL,
		script TEXT NOT NULL,
		UNIQUE(event_kind, guild_id)
	);

	CREATE INDEX IF NOT EXISTS idx_events_guild ON events(guild_id);

	CREATE TABLE IF NOT EXISTS config (
		guild_id TEXT PRIMARY KEY,
		prefix TEXT,
		admin_role TEXT,
		error_channel TEXT
	);

	CREATE TABLE IF NOT EXISTS databases (
		database_name TEXT NOT NULL,
		guild_id TEXT NOT NULL,
		key_name TEXT NOT NULL,
		value TEXT NOT NULL,
		UNIQUE(database_name, guild_id, key_name)
	);

	CREATE INDEX IF NOT EXISTS idx_databases_guild ON databases(guild_id, database_name);
	`

	_, err := d.db.Exec(schema)
	return err
}

// Guild returns a storage handle scoped to one guild. The handle is cheap
// to create; router invocations build one per event.
func (d *Database) Guild(guildID string) *GuildStore {
	return &GuildStore{db: d, guildID: guildID}
}
