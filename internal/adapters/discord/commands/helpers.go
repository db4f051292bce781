package commands

import (
	"fmt"
	"log/slog"
	"strconv"

	"console-bridge/internal/core/domain"
	"console-bridge/internal/core/roles"
	"console-bridge/internal/core/services/dispatch"
	"console-bridge/internal/metrics"

	"github.com/bwmarrin/discordgo"
)

// Replies echo caller-supplied console text, so they must never ping.
func noMentions() *discordgo.MessageAllowedMentions {
	return &discordgo.MessageAllowedMentions{Parse: []discordgo.AllowedMentionType{}}
}

func roleMentionOnly(roleID string) *discordgo.MessageAllowedMentions {
	return &discordgo.MessageAllowedMentions{Parse: []discordgo.AllowedMentionType{}, Roles: []string{roleID}}
}

func respond(s DiscordSession, i *discordgo.InteractionCreate, msg string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:         msg,
			AllowedMentions: noMentions(),
		},
	})
}

func sendMessage(s DiscordSession, channelID, content string, allowed *discordgo.MessageAllowedMentions) error {
	_, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:         content,
		AllowedMentions: allowed,
	})
	return err
}

// callerFrom builds the member context of an event. Events outside a guild
// carry no member and yield nil.
func callerFrom(member *discordgo.Member, user *discordgo.User) *domain.Caller {
	if member == nil {
		return nil
	}
	if user == nil {
		user = member.User
	}
	if user == nil {
		return nil
	}

	roleIDs := make([]string, len(member.Roles))
	copy(roleIDs, member.Roles)

	return &domain.Caller{ID: user.ID, Name: user.Username, RoleIDs: roleIDs}
}

// optionValue renders an option as the text that goes into the console
// command. Entity options (users, channels, roles, attachments) become ids.
func optionValue(opt *discordgo.ApplicationCommandInteractionDataOption) string {
	switch opt.Type {
	case discordgo.ApplicationCommandOptionString:
		return opt.StringValue()
	case discordgo.ApplicationCommandOptionInteger:
		return strconv.FormatInt(opt.IntValue(), 10)
	case discordgo.ApplicationCommandOptionNumber:
		return strconv.FormatFloat(opt.FloatValue(), 'f', -1, 64)
	case discordgo.ApplicationCommandOptionBoolean:
		return strconv.FormatBool(opt.BoolValue())
	default:
		return fmt.Sprint(opt.Value)
	}
}

func slashOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) []dispatch.Option {
	out := make([]dispatch.Option, 0, len(opts))
	for _, opt := range opts {
		out = append(out, dispatch.Option{Name: opt.Name, Value: optionValue(opt)})
	}
	return out
}

func recordSend(kind string, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	metrics.DiscordMessagesSent.WithLabelValues(kind, status).Inc()
}

// channelResponder answers in the channel a text command was posted in.
type channelResponder struct {
	session   DiscordSession
	channelID string
}

func (r *channelResponder) Reply(content string) error {
	err := sendMessage(r.session, r.channelID, content, noMentions())
	recordSend("reply", err)
	if err != nil {
		slog.Error("Failed to send message", "channel_id", r.channelID, "error", err)
	}
	return err
}

func (r *channelResponder) Mention(roleID string) error {
	err := sendMessage(r.session, r.channelID, roles.Mention(roleID), roleMentionOnly(roleID))
	recordSend("mention", err)
	return err
}

// interactionResponder answers the interaction itself; later replies are
// followups and pings go to the interaction's channel as plain messages.
type interactionResponder struct {
	session     DiscordSession
	interaction *discordgo.InteractionCreate
	responded   bool
}

func (r *interactionResponder) Reply(content string) error {
	var err error
	if r.responded {
		_, err = r.session.FollowupMessageCreate(r.interaction.Interaction, false, &discordgo.WebhookParams{
			Content:         content,
			AllowedMentions: noMentions(),
		})
	} else {
		err = respond(r.session, r.interaction, content)
		r.responded = err == nil
	}
	recordSend("reply", err)
	if err != nil {
		slog.Error("Failed to respond to interaction", "interaction_id", r.interaction.ID, "error", err)
	}
	return err
}

func (r *interactionResponder) Mention(roleID string) error {
	err := sendMessage(r.session, r.interaction.ChannelID, roles.Mention(roleID), roleMentionOnly(roleID))
	recordSend("mention", err)
	return err
}
