package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"

	"github.com/kvisuru/musicbox/internal/modules/music/application/ports"
	"github.com/kvisuru/musicbox/internal/modules/music/domain"
)

// Embed colors.
const (
	colorBlurple = 0x5865F2
	colorNotice  = 0xE74C3C
)

// DiscordNotifier posts playback notices as embeds in text channels. All
// sends are best effort; failures are logged and swallowed.
type DiscordNotifier struct {
	session *discordgo.Session
}

var _ ports.Notifier = (*DiscordNotifier)(nil)

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(session *discordgo.Session) *DiscordNotifier {
	return &DiscordNotifier{session: session}
}

// NowPlaying implements ports.Notifier.
func (n *DiscordNotifier) NowPlaying(channelID snowflake.ID, source *domain.PlayableSource) {
	uploader := source.Uploader
	if source.UploaderURL != "" {
		uploader = fmt.Sprintf("[%s](%s)", source.Uploader, source.UploaderURL)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎧 Now Playing",
		Description: source.Title,
		URL:         source.WebpageURL,
		Color:       colorBlurple,
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

	n.send(channelID, embed)
}

// Info implements ports.Notifier.
func (n *DiscordNotifier) Info(channelID snowflake.ID, message string) {
	n.send(channelID, &discordgo.MessageEmbed{
		Description: message,
		Color:       colorBlurple,
	})
}

// Error implements ports.Notifier.
func (n *DiscordNotifier) Error(channelID snowflake.ID, message string) {
	n.send(channelID, &discordgo.MessageEmbed{
		Description: message,
		Color:       colorNotice,
	})
}

func (n *DiscordNotifier) send(channelID snowflake.ID, embed *discordgo.MessageEmbed) {
	if channelID == 0 {
		return
	}
	if _, err := n.session.ChannelMessageSendEmbed(channelID.String(), embed); err != nil {
		slog.Warn("failed to send notification", "channel_id", channelID, "error", err)
	}
}
