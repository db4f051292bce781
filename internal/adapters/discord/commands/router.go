package commands

import (
	"log/slog"

	"console-bridge/internal/core/services/dispatch"

	"github.com/bwmarrin/discordgo"
)

// Router sends every application command interaction through the dispatch
// engine. Names are resolved against the registry at dispatch time, so
// commands added by a reload work as soon as Discord knows about them.
type Router struct {
	engine  Dispatcher
	handler CommandHandler
}

func NewRouter(engine Dispatcher, mws ...Middleware) *Router {
	r := &Router{engine: engine}
	r.handler = chain(r.dispatch, append([]Middleware{WithRecover}, mws...)...)
	slog.Info("Router initialized")
	return r
}

func (r *Router) Handle(s DiscordSession, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	r.handler(s, i)
}

func (r *Router) dispatch(s DiscordSession, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	slog.Debug("Router received interaction", "name", data.Name, "guild_id", i.GuildID)

	var user *discordgo.User
	if i.Member != nil {
		user = i.Member.User
	}

	in := dispatch.NewSlashInput(data.Name, slashOptions(data.Options), callerFrom(i.Member, user))
	r.engine.Dispatch(in, &interactionResponder{session: s, interaction: i})
}

func (r *Router) HandleFunc() func(*discordgo.Session, *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		r.Handle(s, i)
	}
}
