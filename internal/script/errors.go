package script

import (
	"errors"
	"fmt"
)

// Compilation errors. Any of these rejects a script at creation time; the
// rule or event binding is not persisted.
var (
	ErrWrongParamCount = errors.New("wrong amount of key parameters")
	ErrEmptyParam      = errors.New("empty key parameter")
	ErrNonexistentKey  = errors.New("nonexistent key")
)

// InterpretationError wraps a failure raised while a compiled script was
// running. It is scoped to one invocation: callers report it and move on.
type InterpretationError struct {
	Detail string
}

func (e *InterpretationError) Error() string {
	return fmt.Sprintf("interpretation error: %s", e.Detail)
}
