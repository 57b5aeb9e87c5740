package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.CloseDB() })
	return db
}

func TestRuleUpsertAndGet(t *testing.T) {
	db := openTestDB(t)
	store := db.Guild("guild-1")

	require.NoError(t, store.PutRule("ping", "pong script"))

	script, found, err := store.GetRule("ping")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "pong script", script)

	// Same pattern replaces the script.
	require.NoError(t, store.PutRule("ping", "other script"))
	script, found, err = store.GetRule("ping")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "other script", script)

	rules, err := store.ListRules()
	require.NoError(t, err)
	assert.Len(t, rules, 1)
}

func TestRuleGuildIsolation(t *testing.T) {
	db := openTestDB(t)
	first := db.Guild("guild-1")
	second := db.Guild("guild-2")

	require.NoError(t, first.PutRule("ping", "first script"))
	require.NoError(t, second.PutRule("ping", "second script"))

	require.NoError(t, first.PutRule("ping", "replaced"))

	script, found, err := second.GetRule("ping")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "second script", script)
}

func TestRuleDelete(t *testing.T) {
	db := openTestDB(t)
	store := db.Guild("guild-1")

	removed, err := store.DeleteRule("missing")
	require.NoError(t, err)
	assert.False(t, removed)

	require.NoError(t, store.PutRule("ping", "script"))
	removed, err = store.DeleteRule("ping")
	require.NoError(t, err)
	assert.True(t, removed)

	_, found, err := store.GetRule("ping")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestListRulesKeepsStorageOrder(t *testing.T) {
	db := openTestDB(t)
	store := db.Guild("guild-1")

	require.NoError(t, store.PutRule("first", "a"))
	require.NoError(t, store.PutRule("second", "b"))
	require.NoError(t, store.PutRule("third", "c"))

	rules, err := store.ListRules()
	require.NoError(t, err)
	require.Len(t, rules, 3)
	assert.Equal(t, "first", rules[0].Pattern)
	assert.Equal(t, "second", rules[1].Pattern)
	assert.Equal(t, "third", rules[2].Pattern)
}

func TestEventScriptRoundTrip(t *testing.T) {
	db := openTestDB(t)
	store := db.Guild("guild-1")

	_, found, err := store.GetEventScript("MemberJoin")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.PutEventScript("MemberJoin", "welcome"))
	require.NoError(t, store.PutEventScript("MemberJoin", "welcome v2"))

	script, found, err := store.GetEventScript("MemberJoin")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "welcome v2", script)

	removed, err := store.DeleteEventScript("MemberJoin")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.DeleteEventScript("MemberJoin")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestConfigDefaults(t *testing.T) {
	db := openTestDB(t)
	store := db.Guild("guild-1")

	cfg, err := store.Config()
	require.NoError(t, err)
	assert.Equal(t, DefaultPrefix, cfg.Prefix)
	assert.Empty(t, cfg.AdminRole)
	assert.Empty(t, cfg.ErrorChannel)
}

func TestConfigPartialUpdate(t *testing.T) {
	db := openTestDB(t)
	store := db.Guild("guild-1")

	affected, err := store.SetPrefix("!")
	require.NoError(t, err)
	assert.True(t, affected)

	_, err = store.SetAdminRole("role-1")
	require.NoError(t, err)

	// Setting one field must not clobber another.
	cfg, err := store.Config()
	require.NoError(t, err)
	assert.Equal(t, "!", cfg.Prefix)
	assert.Equal(t, "role-1", cfg.AdminRole)

	// Clearing stores NULL, which reads back as unset.
	_, err = store.SetAdminRole("")
	require.NoError(t, err)
	cfg, err = store.Config()
	require.NoError(t, err)
	assert.Empty(t, cfg.AdminRole)
	assert.Equal(t, "!", cfg.Prefix)
}

func TestConfigNullPrefixUsesDefault(t *testing.T) {
	db := openTestDB(t)
	store := db.Guild("guild-1")

	// Create a row whose prefix column stays NULL.
	_, err := store.SetErrorChannel("channel-1")
	require.NoError(t, err)

	cfg, err := store.Config()
	require.NoError(t, err)
	assert.Equal(t, DefaultPrefix, cfg.Prefix)
	assert.Equal(t, "channel-1", cfg.ErrorChannel)
}

func TestConfigCacheInvalidation(t *testing.T) {
	db := openTestDB(t)
	store := db.Guild("guild-1")

	cfg, err := store.Config()
	require.NoError(t, err)
	assert.Equal(t, DefaultPrefix, cfg.Prefix)

	_, err = store.SetPrefix("$")
	require.NoError(t, err)

	cfg, err = store.Config()
	require.NoError(t, err)
	assert.Equal(t, "$", cfg.Prefix)
}

func TestKeyValueOperations(t *testing.T) {
	db := openTestDB(t)
	store := db.Guild("guild-1")

	_, found, err := store.GetKey("scores", "alice")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.SetKey("scores", "alice", "10"))
	require.NoError(t, store.SetKey("scores", "alice", "20"))
	require.NoError(t, store.SetKey("scores", "bob", "5"))
	require.NoError(t, store.SetKey("settings", "greeting", "hello"))

	value, found, err := store.GetKey("scores", "alice")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "20", value)

	exists, err := store.KeyExists("scores", "bob")
	require.NoError(t, err)
	assert.True(t, exists)

	names, err := store.ListDatabases()
	require.NoError(t, err)
	assert.Equal(t, []string{"scores", "settings"}, names)

	require.NoError(t, store.DeleteKey("scores", "bob"))
	exists, err = store.KeyExists("scores", "bob")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestKeyValueGuildIsolation(t *testing.T) {
	db := openTestDB(t)
	first := db.Guild("guild-1")
	second := db.Guild("guild-2")

	require.NoError(t, first.SetKey("scores", "alice", "10"))
	require.NoError(t, second.SetKey("scores", "alice", "99"))

	require.NoError(t, first.ClearDatabase("scores"))

	_, found, err := first.GetKey("scores", "alice")
	require.NoError(t, err)
	assert.False(t, found)

	value, found, err := second.GetKey("scores", "alice")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "99", value)
}

func TestClearAndDropDatabase(t *testing.T) {
	db := openTestDB(t)
	store := db.Guild("guild-1")

	require.NoError(t, store.SetKey("scores", "alice", "10"))
	require.NoError(t, store.SetKey("scores", "bob", "20"))

	require.NoError(t, store.ClearDatabase("scores"))
	names, err := store.ListDatabases()
	require.NoError(t, err)
	assert.Empty(t, names)

	require.NoError(t, store.SetKey("scores", "alice", "10"))
	require.NoError(t, store.DropDatabase("scores"))
	names, err = store.ListDatabases()
	require.NoError(t, err)
	assert.Empty(t, names)
}
