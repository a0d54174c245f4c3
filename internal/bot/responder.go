package bot

import "github.com/bwmarrin/discordgo"

// Responder answers an interaction. Handlers take it instead of calling the
// session directly, so they can be exercised without a live connection.
type Responder interface {
	Respond(response *discordgo.InteractionResponse) error
}

// DiscordResponder answers through the Discord API.
type DiscordResponder struct {
	session     *discordgo.Session
	interaction *discordgo.Interaction
}

// NewDiscordResponder creates a responder bound to one interaction.
func NewDiscordResponder(s *discordgo.Session, i *discordgo.Interaction) *DiscordResponder {
	return &DiscordResponder{
		session:     s,
		interaction: i,
	}
}

// Respond sends the response for the bound interaction.
func (r *DiscordResponder) Respond(response *discordgo.InteractionResponse) error {
	return r.session.InteractionRespond(r.interaction, response)
}

// MockResponder records the last response for assertions. Setting Err makes
// Respond fail, for exercising handler error paths.
type MockResponder struct {
	LastResponse *discordgo.InteractionResponse
	Err          error
}

// Respond implements Responder.
func (m *MockResponder) Respond(response *discordgo.InteractionResponse) error {
	m.LastResponse = response
	return m.Err
}
