package discord

import (
	"log/slog"

	"console-bridge/internal/config"

	"github.com/bwmarrin/discordgo"
)

// Intents needed by the bridge. MessageContent is privileged and must be
// enabled for the bot in the developer portal for text commands to work.
const Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

func NewSession(cfg *config.Config) (*discordgo.Session, error) {
	discord, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		slog.Error("Failed to create discord session", "error", err)
		return nil, err
	}

	discord.Identify.Intents = Intents

	return discord, nil
}
