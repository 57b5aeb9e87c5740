package script

import (
	"context"
	"errors"
	"sync"

	"github.com/adamski234/yttrium-bot/internal/database"
)

// ExecutionContext bundles everything one invocation may touch: the event
// payload, the guild scope, a storage handle restricted to that guild, and
// the process-wide key registry. It is built per invocation and must not
// outlive it.
type ExecutionContext struct {
	GuildID string
	Event   Event
	Store   *database.GuildStore
	Keys    *Registry
}

// Engine is the external script interpreter. Implementations must be safe
// for concurrent use; many invocations run in parallel.
type Engine interface {
	// Interpret runs source against env. It returns a Result on success,
	// an *InterpretationError on evaluation failure, or another error for
	// engine-internal faults.
	Interpret(ctx context.Context, source string, keys *Registry, env *ExecutionContext) (*Result, error)

	// Compile validates source without running it, for immediate feedback
	// at rule creation time. It returns non-fatal warnings alongside a nil
	// error, or one of ErrWrongParamCount, ErrEmptyParam, ErrNonexistentKey.
	Compile(source string, keys *Registry) ([]Warning, error)
}

var (
	engineMu      sync.RWMutex
	defaultEngine Engine
	defaultKeys   *Registry
)

// RegisterEngine installs the process-wide script engine and its key
// registry. Like database/sql drivers it is expected to be called once,
// from the engine adapter's init or from main, before the bot connects.
func RegisterEngine(e Engine, keys *Registry) {
	engineMu.Lock()
	defer engineMu.Unlock()
	if e == nil {
		panic("script: RegisterEngine with nil engine")
	}
	if defaultEngine != nil {
		panic("script: RegisterEngine called twice")
	}
	defaultEngine = e
	defaultKeys = keys
	if defaultKeys == nil {
		defaultKeys = NewRegistry()
	}
}

// DefaultEngine returns the registered engine and its key registry.
func DefaultEngine() (Engine, *Registry, error) {
	engineMu.RLock()
	defer engineMu.RUnlock()
	if defaultEngine == nil {
		return nil, nil, errors.New("script: no engine registered")
	}
	return defaultEngine, defaultKeys, nil
}
