package dispatch

import (
	"log/slog"

	"console-bridge/internal/core/format"
	"console-bridge/internal/core/ports"
	"console-bridge/internal/core/roles"
	"console-bridge/internal/core/schema"
	"console-bridge/internal/formatting"
	"console-bridge/internal/metrics"
)

type Result string

const (
	ResultHelp       Result = "help"
	ResultUnknown    Result = "unknown"
	ResultNoIdentity Result = "no_identity"
	ResultDenied     Result = "denied"
	ResultUsage      Result = "usage"
	ResultSinkFailed Result = "sink_failed"
	ResultExecuted   Result = "executed"
)

type Engine struct {
	store  *schema.Store
	sink   ports.CommandSink
	prefix string
}

func NewEngine(store *schema.Store, sink ports.CommandSink, prefix string) *Engine {
	return &Engine{store: store, sink: sink, prefix: prefix}
}

// Dispatch runs one inbound command through lookup, authorization,
// formatting and submission, replying exactly once on every path. The
// snapshot is read once so every step sees the same registry version.
func (e *Engine) Dispatch(in Input, out Responder) Result {
	result := e.dispatch(in, out)
	metrics.Dispatches.WithLabelValues(string(in.Frontend()), string(result)).Inc()
	return result
}

func (e *Engine) dispatch(in Input, out Responder) Result {
	snap := e.store.Current()
	name := in.Name()

	if name == schema.HelpCommand {
		for _, page := range HelpPages(snap) {
			if err := out.Reply(page); err != nil {
				slog.Warn("Failed to send help", "error", err)
				break
			}
		}
		return ResultHelp
	}

	cmd, ok := snap.Lookup(name)
	if !ok {
		slog.Info("Unknown command received", "command", name, "frontend", in.Frontend())
		e.reply(out, formatting.MsgUnknownCommand(e.prefix))
		return ResultUnknown
	}

	caller, ok := in.Caller()
	if !ok {
		e.reply(out, formatting.MsgMemberUnavailable)
		return ResultNoIdentity
	}

	allowed := roles.Authorize(caller.RoleIDs, cmd.Roles, snap)
	slog.Info("Command received",
		"command", cmd.Name,
		"frontend", in.Frontend(),
		"member", caller.Name,
		"member_id", caller.ID,
		"roles", caller.RoleIDs,
		"allowed", allowed,
	)
	if !allowed {
		slog.Warn("Unauthorized command attempt", "command", cmd.Name, "member", caller.Name, "member_id", caller.ID, "required", cmd.Roles)
		e.reply(out, formatting.MsgPermissionDenied)
		return ResultDenied
	}

	formatted, err := format.Format(cmd.Format, in.Args(cmd))
	if err != nil {
		e.reply(out, formatting.MsgInvalidFormat(format.Usage(cmd)))
		return ResultUsage
	}

	if err := e.sink.Submit(formatted); err != nil {
		slog.Error("Failed to submit console command", "command", formatted, "error", err)
		e.reply(out, formatting.MsgQueueFailed)
		return ResultSinkFailed
	}

	e.reply(out, formatting.MsgExecuted(formatted))

	for _, roleID := range roles.PingTargets(cmd.PingRole, snap) {
		if err := out.Mention(roleID); err != nil {
			slog.Warn("Failed to ping role", "command", cmd.Name, "role_id", roleID, "error", err)
		}
	}

	return ResultExecuted
}

func (e *Engine) reply(out Responder, content string) {
	if err := out.Reply(content); err != nil {
		slog.Warn("Failed to send reply", "error", err)
	}
}

// HelpText lists every command in the snapshot as a usage line.
func HelpText(snap *schema.Snapshot) string {
	return formatting.MsgHelp(helpLines(snap))
}

// HelpPages is HelpText split into replies that fit a Discord message.
func HelpPages(snap *schema.Snapshot) []string {
	return formatting.MsgHelpPages(helpLines(snap))
}

func helpLines(snap *schema.Snapshot) []string {
	commands := snap.List()
	lines := make([]string, 0, len(commands))
	for _, cmd := range commands {
		lines = append(lines, format.Usage(cmd))
	}
	return lines
}
