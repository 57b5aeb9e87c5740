package script

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// Warning is a non-fatal condition raised during script compilation. It is
// surfaced to the user but never blocks persisting or running the script.
type Warning uint8

const (
	WarningUnclosedKeys Warning = iota
)

// Message returns the user-facing text for the warning.
func (w Warning) Message() string {
	switch w {
	case WarningUnclosedKeys:
		return "There are unclosed keys"
	default:
		return "Unknown warning"
	}
}

// Result is the structured output of a script execution, consumed by the
// renderer.
type Result struct {
	Message string
	// Target optionally overrides the channel the output is rendered to.
	Target string
	Embed  *discordgo.MessageEmbed
	// Reactions are added to the last sent message, in order.
	Reactions []string
	// DeleteAfter, when positive, schedules deletion of the sent message.
	DeleteAfter time.Duration
	Warnings    []Warning
}
