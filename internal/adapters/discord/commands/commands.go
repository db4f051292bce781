package commands

import (
	"log/slog"

	"console-bridge/internal/core/services/dispatch"

	"github.com/bwmarrin/discordgo"
)

func ReadyHandler(session *discordgo.Session, ready *discordgo.Ready) {
	slog.Info("Console bridge is online!", "user", ready.User.Username, "guilds", len(ready.Guilds))
}

// MessageHandler runs prefixed text commands posted in guild channels.
type MessageHandler struct {
	engine Dispatcher
	prefix string
}

func NewMessageHandler(engine Dispatcher, prefix string) *MessageHandler {
	return &MessageHandler{engine: engine, prefix: prefix}
}

func (h *MessageHandler) Handle(s DiscordSession, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	in, ok := dispatch.NewTextInput(m.Content, h.prefix, callerFrom(m.Member, m.Author))
	if !ok {
		return
	}

	h.engine.Dispatch(in, &channelResponder{session: s, channelID: m.ChannelID})
}

func (h *MessageHandler) HandleFunc() func(*discordgo.Session, *discordgo.MessageCreate) {
	return func(s *discordgo.Session, m *discordgo.MessageCreate) {
		h.Handle(s, m)
	}
}
