package domain

import (
	"testing"

	"github.com/disgoorg/snowflake/v2"
)

func TestTrack_FormattedDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		want     string
	}{
		{"live", 0, "LIVE"},
		{"seconds only", 42, "00:42"},
		{"minutes", 185, "03:05"},
		{"hours", 3661, "01:01:01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track := Track{Duration: tt.duration}
			if got := track.FormattedDuration(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestTrack_WithRequester_DoesNotMutateOriginal(t *testing.T) {
	original := Track{Title: "song"}

	stamped := original.WithRequester(snowflake.ID(1), "user", "avatar", snowflake.ID(2))

	if original.RequesterID != 0 || original.ChannelID != 0 {
		t.Error("WithRequester must not mutate the receiver")
	}
	if stamped.RequesterID != 1 || stamped.RequesterName != "user" || stamped.ChannelID != 2 {
		t.Errorf("unexpected stamped track: %+v", stamped)
	}
	if stamped.Title != "song" {
		t.Error("metadata must carry over")
	}
}

func TestTrack_IsLive(t *testing.T) {
	if !(Track{Duration: 0}).IsLive() {
		t.Error("zero duration must be live")
	}
	if (Track{Duration: 10}).IsLive() {
		t.Error("finite duration must not be live")
	}
}
