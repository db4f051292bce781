package commands

import (
	"log/slog"
	"runtime/debug"

	"github.com/bwmarrin/discordgo"
)

type CommandHandler func(s DiscordSession, i *discordgo.InteractionCreate)

type Middleware func(CommandHandler) CommandHandler

// WithRecover keeps a panicking handler from taking the gateway down with it.
func WithRecover(next CommandHandler) CommandHandler {
	return func(s DiscordSession, i *discordgo.InteractionCreate) {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Recovered from panic in interaction handler", "panic", r, "stack", string(debug.Stack()))
			}
		}()
		next(s, i)
	}
}

func chain(h CommandHandler, mws ...Middleware) CommandHandler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
