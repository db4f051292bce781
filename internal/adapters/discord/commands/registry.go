package commands

import (
	"context"
	"fmt"
	"log/slog"

	"console-bridge/internal/core/domain"
	"console-bridge/internal/core/schema"
	"console-bridge/internal/formatting"
	"console-bridge/internal/metrics"

	"github.com/bwmarrin/discordgo"
)

var optionTypes = map[domain.FieldType]discordgo.ApplicationCommandOptionType{
	domain.FieldString:      discordgo.ApplicationCommandOptionString,
	domain.FieldInteger:     discordgo.ApplicationCommandOptionInteger,
	domain.FieldBoolean:     discordgo.ApplicationCommandOptionBoolean,
	domain.FieldUser:        discordgo.ApplicationCommandOptionUser,
	domain.FieldChannel:     discordgo.ApplicationCommandOptionChannel,
	domain.FieldRole:        discordgo.ApplicationCommandOptionRole,
	domain.FieldMentionable: discordgo.ApplicationCommandOptionMentionable,
	domain.FieldNumber:      discordgo.ApplicationCommandOptionNumber,
	domain.FieldAttachment:  discordgo.ApplicationCommandOptionAttachment,
}

// ApplicationCommands describes every command in the snapshot plus the
// built-in help command. All options are required.
func ApplicationCommands(snap *schema.Snapshot) []*discordgo.ApplicationCommand {
	cmds := make([]*discordgo.ApplicationCommand, 0, snap.Len()+1)
	cmds = append(cmds, &discordgo.ApplicationCommand{
		Name:        schema.HelpCommand,
		Description: formatting.MsgHelpDescription,
	})

	for _, d := range snap.List() {
		if d.Name == schema.HelpCommand {
			continue
		}
		cmds = append(cmds, applicationCommand(d))
	}

	return cmds
}

func applicationCommand(d *domain.CommandDescriptor) *discordgo.ApplicationCommand {
	cmd := &discordgo.ApplicationCommand{
		Name:        d.Name,
		Description: d.Description,
	}
	for _, f := range d.Fields {
		cmd.Options = append(cmd.Options, &discordgo.ApplicationCommandOption{
			Type:        optionType(f.Type),
			Name:        f.Name,
			Description: f.Description,
			Required:    true,
		})
	}
	return cmd
}

func optionType(t domain.FieldType) discordgo.ApplicationCommandOptionType {
	if ot, ok := optionTypes[t]; ok {
		return ot
	}
	return discordgo.ApplicationCommandOptionString
}

// Publisher replaces the bot's registered commands with the snapshot's in a
// single bulk overwrite, so removed commands disappear too.
type Publisher struct {
	session CommandSession
	appID   string
	guildID string
}

// NewPublisher registers to guildID, or globally when guildID is empty.
func NewPublisher(session CommandSession, appID, guildID string) *Publisher {
	return &Publisher{session: session, appID: appID, guildID: guildID}
}

func (p *Publisher) Publish(ctx context.Context, snap *schema.Snapshot) error {
	cmds := ApplicationCommands(snap)

	registered, err := p.session.ApplicationCommandBulkOverwrite(p.appID, p.guildID, cmds, discordgo.WithContext(ctx))
	if err != nil {
		metrics.CommandPublishes.WithLabelValues("failure").Inc()
		slog.Error("Cannot register commands", "guild", p.guildID, "count", len(cmds), "error", err)
		return fmt.Errorf("register %d commands: %w", len(cmds), err)
	}

	metrics.CommandPublishes.WithLabelValues("success").Inc()
	slog.Info("Registered commands", "guild", p.guildID, "count", len(registered))
	return nil
}
