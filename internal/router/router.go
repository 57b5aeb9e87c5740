// Package router maps incoming platform events to stored scripts; the
// control loop is guild lookup, rule lookup, script execution, render.
package router

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/adamski234/yttrium-bot/internal/database"
	"github.com/adamski234/yttrium-bot/internal/logging"
	"github.com/adamski234/yttrium-bot/internal/matcher"
	"github.com/adamski234/yttrium-bot/internal/renderer"
	"github.com/adamski234/yttrium-bot/internal/script"
)

// Stats counts pipeline activity for the status endpoint.
type Stats struct {
	EventsSeen      atomic.Uint64
	ScriptsExecuted atomic.Uint64
	ScriptErrors    atomic.Uint64
}

type Router struct {
	db       *database.Database
	engine   script.Engine
	keys     *script.Registry
	renderer *renderer.Renderer
	Stats    Stats
}

func New(db *database.Database, engine script.Engine, keys *script.Registry, rend *renderer.Renderer) *Router {
	return &Router{
		db:       db,
		engine:   engine,
		keys:     keys,
		renderer: rend,
	}
}

// RunTriggers evaluates a guild's stored rules against message content in
// storage order and executes the first match. A storage failure drops the
// event with a log line; a message matching nothing is not an error.
func (r *Router) RunTriggers(guildID, channelID, messageID, userID, content string) {
	r.Stats.EventsSeen.Add(1)

	store := r.db.Guild(guildID)
	rules, err := store.ListRules()
	if err != nil {
		logging.Error("Trigger lookup failed for guild %s: %v", guildID, err)
		return
	}

	for _, rule := range rules {
		m, err := matcher.Classify(rule.Pattern)
		if err != nil {
			// Validated at creation time; a broken stored pattern is a bug.
			logging.Error("Stored trigger %q in guild %s failed to classify: %v", rule.Pattern, guildID, err)
			continue
		}

		result := m.Match(content)
		if result == nil {
			continue
		}

		event := script.MessageEvent{
			Channel:   channelID,
			MessageID: messageID,
			UserID:    userID,
			Parameter: result.Rest,
			Trigger:   result.Matched,
		}
		r.execute(store, rule.Script, event)
		return
	}
}

// DispatchEvent looks up the guild's script for a non-message event kind
// and executes it. Events without a resolvable guild are dropped by the
// handler layer before reaching here.
func (r *Router) DispatchEvent(guildID string, event script.Event) {
	r.Stats.EventsSeen.Add(1)

	store := r.db.Guild(guildID)
	source, ok, err := store.GetEventScript(event.Kind().String())
	if err != nil {
		logging.Error("Event script lookup failed for guild %s kind %s: %v", guildID, event.Kind(), err)
		return
	}
	if !ok {
		return
	}

	r.execute(store, source, event)
}

// Execute runs source directly with the given event payload, without any
// rule lookup. The execute command uses it with a Default event.
func (r *Router) Execute(guildID string, source string, event script.Event) {
	store := r.db.Guild(guildID)
	r.execute(store, source, event)
}

func (r *Router) execute(store *database.GuildStore, source string, event script.Event) {
	env := &script.ExecutionContext{
		GuildID: store.GuildID(),
		Event:   event,
		Store:   store,
		Keys:    r.keys,
	}

	result, err := r.engine.Interpret(context.Background(), source, r.keys, env)
	if err != nil {
		r.Stats.ScriptErrors.Add(1)
		r.reportScriptError(store, event, err)
		return
	}

	r.Stats.ScriptsExecuted.Add(1)
	r.renderer.Render(result, event.ChannelID())
}

// reportScriptError surfaces an execution failure without crashing the
// pipeline: full detail goes to the log, interpretation errors also go to
// the guild's error channel, or to the originating channel if none is
// configured.
func (r *Router) reportScriptError(store *database.GuildStore, event script.Event, err error) {
	guildID := store.GuildID()
	logging.Error("Script execution failed in guild %s for %s event: %v", guildID, event.Kind(), err)

	var interpErr *script.InterpretationError
	if !errors.As(err, &interpErr) {
		return
	}

	target := ""
	cfg, cfgErr := store.Config()
	if cfgErr != nil {
		logging.Error("Failed to read config while reporting error for guild %s: %v", guildID, cfgErr)
	} else {
		target = cfg.ErrorChannel
	}
	if target == "" {
		target = event.ChannelID()
	}
	if target == "" {
		return
	}

	r.renderer.Say(target, "An error happened during interpretation: `"+interpErr.Detail+"`")
}
