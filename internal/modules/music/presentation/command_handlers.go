package presentation

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"

	"github.com/kvisuru/musicbox/internal/bot"
	"github.com/kvisuru/musicbox/internal/modules/music/application/usecases"
	"github.com/kvisuru/musicbox/internal/modules/music/domain"
)

// Embed colors.
const (
	colorSuccess = 0x5865F2
	colorError   = 0xE74C3C
)

// maxSkipNotices caps how many per-entry discovery failures are listed in
// the play response before collapsing into a count.
const maxSkipNotices = 5

// CommandHandlers holds the music module's command handlers.
type CommandHandlers struct {
	coordinator *usecases.PlaybackCoordinator
}

// NewCommandHandlers creates new CommandHandlers.
func NewCommandHandlers(coordinator *usecases.PlaybackCoordinator) *CommandHandlers {
	return &CommandHandlers{coordinator: coordinator}
}

// HandleJoin handles the /join command.
func (h *CommandHandlers) HandleJoin(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ctx := context.Background()

	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	var voiceChannelID snowflake.ID
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "channel" {
			voiceChannelID, err = snowflake.Parse(opt.ChannelValue(s).ID)
			if err != nil {
				return respondError(r, "Invalid voice channel")
			}
		}
	}
	if voiceChannelID == 0 {
		voiceChannelID, err = userVoiceChannelID(s, i.GuildID, i.Member.User.ID)
		if err != nil {
			return respondError(r, "You are not in a voice channel.")
		}
	}

	if err := h.coordinator.Join(ctx, guildID, voiceChannelID); err != nil {
		return respondError(r, err.Error())
	}

	return respondSuccess(r, fmt.Sprintf("Connected to <#%d>.", voiceChannelID))
}

// HandleLeave handles the /leave command.
func (h *CommandHandlers) HandleLeave(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ctx := context.Background()

	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	if err := h.coordinator.Leave(ctx, guildID); err != nil {
		return respondError(r, err.Error())
	}

	return respondSuccess(r, "Disconnected.")
}

// HandlePlay handles the /play command: join the requester's voice channel
// if needed, discover the query, and enqueue the results.
func (h *CommandHandlers) HandlePlay(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	ctx := context.Background()

	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	requesterID, err := snowflake.Parse(i.Member.User.ID)
	if err != nil {
		return respondError(r, "Invalid user")
	}

	channelID, err := snowflake.Parse(i.ChannelID)
	if err != nil {
		return respondError(r, "Invalid channel")
	}

	var query string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "query" {
			query = opt.StringValue()
		}
	}
	if strings.TrimSpace(query) == "" {
		return respondError(r, "Nothing to play.")
	}

	voiceChannelID, err := userVoiceChannelID(s, i.GuildID, i.Member.User.ID)
	if err != nil {
		return respondError(r, "You are not in a voice channel.")
	}
	if err := h.coordinator.Join(ctx, guildID, voiceChannelID); err != nil {
		return respondError(r, err.Error())
	}

	output, err := h.coordinator.RequestPlay(ctx, usecases.PlayInput{
		GuildID:            guildID,
		Query:              query,
		ChannelID:          channelID,
		RequesterID:        requesterID,
		RequesterName:      i.Member.User.Username,
		RequesterAvatarURL: i.Member.User.AvatarURL(""),
	})
	if err != nil {
		return respondError(r, err.Error())
	}

	return respondSuccess(r, playSummary(output))
}

// playSummary phrases a play result, including a bounded list of entries
// that could not be discovered.
func playSummary(output *usecases.PlayOutput) string {
	var b strings.Builder
	if len(output.Tracks) == 1 {
		track := output.Tracks[0]
		if track.WebpageURL != "" {
			fmt.Fprintf(&b, "Added [%s](%s) to the queue.", track.Title, track.WebpageURL)
		} else {
			fmt.Fprintf(&b, "Added **%s** to the queue.", track.Title)
		}
	} else {
		fmt.Fprintf(&b, "Added **%d songs** to the queue.", len(output.Tracks))
	}

	if len(output.Skipped) > 0 {
		fmt.Fprintf(&b, "\n\nSkipped %d entries:", len(output.Skipped))
		shown := output.Skipped
		if len(shown) > maxSkipNotices {
			shown = shown[:maxSkipNotices]
		}
		for _, skip := range shown {
			fmt.Fprintf(&b, "\n- %s", skip)
		}
		if rest := len(output.Skipped) - len(shown); rest > 0 {
			fmt.Fprintf(&b, "\n...and %d more", rest)
		}
	}
	return b.String()
}

// HandleSkip handles the /skip command.
func (h *CommandHandlers) HandleSkip(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	track, err := h.coordinator.Skip(guildID)
	if err != nil {
		return respondError(r, err.Error())
	}

	return respondSuccess(r, skipMessage(track.Title, h.coordinator.Repeat(guildID)))
}

// skipMessage phrases the skip confirmation. Repeat mode survives a skip,
// which surprises users, so the response calls it out.
func skipMessage(title string, repeat bool) string {
	msg := fmt.Sprintf("Skipped **%s**.", title)
	if repeat {
		msg += " Repeat stays on for the next track."
	}
	return msg
}

// HandlePause handles the /pause command.
func (h *CommandHandlers) HandlePause(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	if err := h.coordinator.Pause(guildID); err != nil {
		return respondError(r, err.Error())
	}

	return respondSuccess(r, "Paused playback.")
}

// HandleResume handles the /resume command.
func (h *CommandHandlers) HandleResume(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	if err := h.coordinator.Resume(guildID); err != nil {
		return respondError(r, err.Error())
	}

	return respondSuccess(r, "Resumed playback.")
}

// HandleStop handles the /stop command.
func (h *CommandHandlers) HandleStop(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	if err := h.coordinator.Stop(guildID); err != nil {
		return respondError(r, err.Error())
	}

	return respondSuccess(r, "Stopped playback and cleared the queue.")
}

// HandleNowPlaying handles the /nowplaying command.
func (h *CommandHandlers) HandleNowPlaying(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	source, err := h.coordinator.NowPlayingView(guildID)
	if err != nil {
		return respondError(r, err.Error())
	}

	uploader := source.Uploader
	if source.UploaderURL != "" {
		uploader = fmt.Sprintf("[%s](%s)", source.Uploader, source.UploaderURL)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎧 Now Playing",
		Description: source.Title,
		URL:         source.WebpageURL,
		Color:       colorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Duration", Value: source.FormattedDuration(), Inline: true},
			{Name: "Uploader", Value: uploader, Inline: true},
		},
	}
	if source.ThumbnailURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: source.ThumbnailURL}
	}
	if source.RequesterName != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text:    "Requested by " + source.RequesterName,
			IconURL: source.RequesterAvatarURL,
		}
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

// HandleRepeat handles the /repeat command.
func (h *CommandHandlers) HandleRepeat(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	if h.coordinator.ToggleRepeat(guildID) {
		return respondSuccess(r, "Repeat is now **on**.")
	}
	return respondSuccess(r, "Repeat is now **off**.")
}

// HandleShuffle handles the /shuffle command.
func (h *CommandHandlers) HandleShuffle(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	if err := h.coordinator.Shuffle(guildID); err != nil {
		return respondError(r, err.Error())
	}

	return respondSuccess(r, "Shuffled the queue.")
}

// HandleQueue handles the /queue command and dispatches its subcommands.
func (h *CommandHandlers) HandleQueue(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return respondError(r, "Invalid subcommand")
	}

	switch options[0].Name {
	case "list":
		return h.handleQueueList(i, r, options[0].Options)
	case "remove":
		return h.handleQueueRemove(i, r, options[0].Options)
	case "clear":
		return h.handleQueueClear(i, r)
	default:
		return respondError(r, "Unknown subcommand")
	}
}

func (h *CommandHandlers) handleQueueList(
	i *discordgo.InteractionCreate,
	r bot.Responder,
	options []*discordgo.ApplicationCommandInteractionDataOption,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	page := 1
	for _, opt := range options {
		if opt.Name == "page" {
			page = int(opt.IntValue())
		}
	}

	view, err := h.coordinator.QueueView(guildID, page)
	if err != nil {
		return respondError(r, err.Error())
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{queueEmbed(view)},
		},
	})
}

// queueEmbed renders one page of the queue.
func queueEmbed(view *usecases.QueueViewOutput) *discordgo.MessageEmbed {
	var b strings.Builder

	if view.NowPlaying != nil {
		fmt.Fprintf(&b, "**Now playing:** %s\n\n", trackLink(view.NowPlaying.Track))
	}
	if len(view.Tracks) == 0 {
		b.WriteString("Queue is empty")
	}
	for n, track := range view.Tracks {
		fmt.Fprintf(&b, "**%d.** %s\n", view.Offset+n+1, trackLink(track))
	}

	title := "🎧 Queue"
	if view.Repeat {
		title += " (repeat on)"
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: b.String(),
		Color:       colorSuccess,
	}
	if view.TotalTracks > 0 {
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "Total Duration", Value: formatTotalDuration(view.TotalDuration), Inline: true},
			{Name: "Songs", Value: fmt.Sprintf("%d", view.TotalTracks), Inline: true},
		}
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page %d/%d", view.Page, view.TotalPages),
		}
	}
	return embed
}

func trackLink(track domain.Track) string {
	if track.WebpageURL != "" {
		return fmt.Sprintf("[%s](%s)", track.Title, track.WebpageURL)
	}
	return "**" + track.Title + "**"
}

// formatTotalDuration renders a duration in d/h/m/s parts, e.g. "1h 4m 2s".
func formatTotalDuration(seconds int) string {
	if seconds == 0 {
		return "/"
	}

	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if secs > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", secs))
	}
	return strings.Join(parts, " ")
}

func (h *CommandHandlers) handleQueueRemove(
	i *discordgo.InteractionCreate,
	r bot.Responder,
	options []*discordgo.ApplicationCommandInteractionDataOption,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	position := 0
	for _, opt := range options {
		if opt.Name == "position" {
			position = int(opt.IntValue())
		}
	}

	track, err := h.coordinator.Remove(guildID, position)
	if err != nil {
		return respondError(r, err.Error())
	}

	return respondSuccess(r, fmt.Sprintf("Removed %s.", trackLink(track)))
}

func (h *CommandHandlers) handleQueueClear(
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	guildID, err := snowflake.Parse(i.GuildID)
	if err != nil {
		return respondError(r, "Invalid guild")
	}

	cleared, err := h.coordinator.Clear(guildID)
	if err != nil {
		return respondError(r, err.Error())
	}

	return respondSuccess(r, fmt.Sprintf("Removed **%d songs** from the queue.", cleared))
}

// userVoiceChannelID returns the voice channel the user currently occupies.
func userVoiceChannelID(s *discordgo.Session, guildID, userID string) (snowflake.ID, error) {
	state, err := s.State.VoiceState(guildID, userID)
	if err != nil {
		return 0, err
	}
	return snowflake.Parse(state.ChannelID)
}

func respondSuccess(r bot.Responder, message string) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Description: message,
					Color:       colorSuccess,
				},
			},
		},
	})
}

func respondError(r bot.Responder, message string) error {
	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       "Error",
					Description: message,
					Color:       colorError,
				},
			},
		},
	})
}
