package presentation

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/kvisuru/musicbox/internal/bot"
	"github.com/kvisuru/musicbox/internal/modules/general/application"
)

const colorBlurple = 0x5865F2

// Handlers holds the general module's command handlers.
type Handlers struct {
	ping     *application.PingInteractor
	greeting *application.GreetingInteractor
	decision *application.DecisionInteractor
}

// NewHandlers creates new Handlers.
func NewHandlers() *Handlers {
	return &Handlers{
		ping:     application.NewPingInteractor(),
		greeting: application.NewGreetingInteractor(),
		decision: application.NewDecisionInteractor(),
	}
}

// HandlePing processes the /ping command.
func (h *Handlers) HandlePing(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	result := h.ping.Execute(s.HeartbeatLatency())

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: result.Message,
		},
	})
}

// HandleHello processes the /hello command.
func (h *Handlers) HandleHello(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	result := h.greeting.Execute(i.Member.User.Mention())

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: result.Message,
		},
	})
}

// HandleDecide processes the /decide command.
func (h *Handlers) HandleDecide(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	result := h.decision.Execute()

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "**" + result.Answer + "**",
		},
	})
}

// HandleAbout processes the /about command.
func (h *Handlers) HandleAbout(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	servers := 0
	if s.State != nil {
		servers = len(s.State.Guilds)
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title:       "🎧 About me",
					Description: "A YouTube music bot.",
					Color:       colorBlurple,
					Fields: []*discordgo.MessageEmbedField{
						{Name: "Servers", Value: fmt.Sprintf("%d", servers)},
						{Name: "Library", Value: "discordgo"},
					},
				},
			},
		},
	})
}
