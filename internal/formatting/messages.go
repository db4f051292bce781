package formatting

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxMessageLength is Discord's limit on message content, in characters.
const MaxMessageLength = 2000

const (
	MsgMemberUnavailable = "Member information is unavailable!"
	MsgPermissionDenied  = "You do not have permission to use this command!"
	MsgQueueFailed       = "Failed to queue command for execution."
	MsgHelpHeader        = "Available commands:"
	MsgHelpDescription   = "List the commands this bridge can run"
)

func MsgUnknownCommand(prefix string) string {
	return fmt.Sprintf("Unknown command! Type `%shelp` to see available commands.", prefix)
}

func MsgInvalidFormat(usage string) string {
	return fmt.Sprintf("Invalid command format! Correct format: `%s`", usage)
}

func MsgExecuted(command string) string {
	return "Executed command: " + command
}

// MsgHelp renders the help header followed by one usage line per command.
func MsgHelp(lines []string) string {
	return MsgHelpHeader + "\n" + strings.Join(lines, "\n")
}

// MsgHelpPages is MsgHelp split into messages that fit MaxMessageLength.
// Joining the pages with newlines gives back MsgHelp(lines).
func MsgHelpPages(lines []string) []string {
	if len(lines) == 0 {
		return []string{MsgHelp(nil)}
	}
	return SplitMessage(append([]string{MsgHelpHeader}, lines...), MaxMessageLength)
}

// SplitMessage packs newline-joined lines into messages of at most limit
// characters, breaking only between lines. A line longer than limit is cut.
func SplitMessage(lines []string, limit int) []string {
	var (
		pages []string
		b     strings.Builder
		size  int
		open  bool
	)
	for _, line := range lines {
		n := utf8.RuneCountInString(line)
		if n > limit {
			line = string([]rune(line)[:limit])
			n = limit
		}
		if open && size+1+n > limit {
			pages = append(pages, b.String())
			b.Reset()
			size, open = 0, false
		}
		if open {
			b.WriteByte('\n')
			size++
		}
		b.WriteString(line)
		size += n
		open = true
	}
	if open {
		pages = append(pages, b.String())
	}
	return pages
}
