package presentation

import (
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/kvisuru/musicbox/internal/bot"
	"github.com/kvisuru/musicbox/internal/modules/music/application/usecases"
	"github.com/kvisuru/musicbox/internal/modules/music/domain"
)

func interactionWithGuild(guildID string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:    discordgo.InteractionApplicationCommand,
			GuildID: guildID,
			Data:    discordgo.ApplicationCommandInteractionData{},
		},
	}
}

func TestHandleSkip_InvalidGuild(t *testing.T) {
	handlers := NewCommandHandlers(nil)
	responder := &bot.MockResponder{}

	err := handlers.HandleSkip(nil, interactionWithGuild("not-a-snowflake"), responder)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if responder.LastResponse == nil || responder.LastResponse.Data == nil {
		t.Fatal("expected an error response")
	}
	embeds := responder.LastResponse.Data.Embeds
	if len(embeds) != 1 || embeds[0].Title != "Error" {
		t.Errorf("expected error embed, got %+v", embeds)
	}
}

func TestPlaySummary_SingleTrack(t *testing.T) {
	out := &usecases.PlayOutput{
		Tracks: []domain.Track{
			{Title: "Song", WebpageURL: "https://yt/1"},
		},
	}

	summary := playSummary(out)
	if summary != "Added [Song](https://yt/1) to the queue." {
		t.Errorf("unexpected summary: %q", summary)
	}
}

func TestPlaySummary_Playlist(t *testing.T) {
	out := &usecases.PlayOutput{
		Tracks: make([]domain.Track, 12),
	}

	summary := playSummary(out)
	if summary != "Added **12 songs** to the queue." {
		t.Errorf("unexpected summary: %q", summary)
	}
}

func TestPlaySummary_SkippedEntriesAreBounded(t *testing.T) {
	out := &usecases.PlayOutput{
		Tracks: make([]domain.Track, 2),
		Skipped: []string{
			"a: no results", "b: no results", "c: no results", "d: no results",
			"e: no results", "f: no results", "g: no results",
		},
	}

	summary := playSummary(out)
	if !strings.Contains(summary, "Skipped 7 entries:") {
		t.Errorf("expected skip count, got %q", summary)
	}
	if strings.Count(summary, "\n- ") != maxSkipNotices {
		t.Errorf("expected %d listed skips, got %q", maxSkipNotices, summary)
	}
	if !strings.Contains(summary, "...and 2 more") {
		t.Errorf("expected overflow note, got %q", summary)
	}
}

func TestQueueEmbed(t *testing.T) {
	view := &usecases.QueueViewOutput{
		NowPlaying: domain.NewPlayableSource(
			domain.Track{Title: "Current", WebpageURL: "https://yt/0"}, "stream", nil),
		Tracks: []domain.Track{
			{Title: "Next", WebpageURL: "https://yt/1"},
			{Title: "Later"},
		},
		Offset:        10,
		Page:          2,
		TotalPages:    3,
		TotalTracks:   22,
		TotalDuration: 3725,
		Repeat:        true,
	}

	embed := queueEmbed(view)

	if !strings.Contains(embed.Title, "repeat on") {
		t.Errorf("expected repeat marker in title, got %q", embed.Title)
	}
	if !strings.Contains(embed.Description, "**Now playing:** [Current](https://yt/0)") {
		t.Errorf("expected now-playing line, got %q", embed.Description)
	}
	if !strings.Contains(embed.Description, "**11.** [Next](https://yt/1)") {
		t.Errorf("expected numbering from offset, got %q", embed.Description)
	}
	if !strings.Contains(embed.Description, "**12.** **Later**") {
		t.Errorf("expected bold title for unlinked track, got %q", embed.Description)
	}
	if embed.Footer == nil || embed.Footer.Text != "Page 2/3" {
		t.Errorf("expected page footer, got %+v", embed.Footer)
	}
}

func TestQueueEmbed_EmptyQueueWithNowPlaying(t *testing.T) {
	view := &usecases.QueueViewOutput{
		NowPlaying: domain.NewPlayableSource(domain.Track{Title: "Current"}, "stream", nil),
	}

	embed := queueEmbed(view)
	if !strings.Contains(embed.Description, "Queue is empty") {
		t.Errorf("expected empty-queue note, got %q", embed.Description)
	}
	if embed.Footer != nil {
		t.Error("expected no pagination footer for an empty queue")
	}
}

func TestFormatTotalDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "/"},
		{42, "42s"},
		{3725, "1h 2m 5s"},
		{90061, "1d 1h 1m 1s"},
		{3600, "1h"},
	}

	for _, tt := range tests {
		if got := formatTotalDuration(tt.seconds); got != tt.want {
			t.Errorf("formatTotalDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestTrackLink(t *testing.T) {
	linked := domain.Track{Title: "Song", WebpageURL: "https://yt/1"}
	if got := trackLink(linked); got != "[Song](https://yt/1)" {
		t.Errorf("unexpected link: %q", got)
	}

	plain := domain.Track{Title: "Song"}
	if got := trackLink(plain); got != "**Song**" {
		t.Errorf("unexpected fallback: %q", got)
	}
}

func TestSkipMessage(t *testing.T) {
	if got := skipMessage("Song", false); got != "Skipped **Song**." {
		t.Errorf("unexpected message: %q", got)
	}

	want := "Skipped **Song**. Repeat stays on for the next track."
	if got := skipMessage("Song", true); got != want {
		t.Errorf("expected the repeat note, got %q", got)
	}
}
