package infrastructure

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
	"gopkg.in/hraban/opus.v2"

	"github.com/kvisuru/musicbox/internal/modules/music/application/ports"
	"github.com/kvisuru/musicbox/internal/modules/music/domain"
)

// Opus frame parameters for Discord voice: 20ms frames of 48kHz stereo.
const (
	frameChannels = 2
	frameRate     = 48000
	frameSize     = 960
	maxFrameBytes = frameSize * frameChannels * 2
)

// pausePollInterval is how often a paused transmit loop re-checks its state.
const pausePollInterval = 100 * time.Millisecond

// ErrAlreadyPlaying is returned by Play when a transmission is in progress.
var ErrAlreadyPlaying = errors.New("a track is already playing in this guild")

// playSession is one in-flight transmission.
type playSession struct {
	stop     chan struct{}
	stopOnce sync.Once
	paused   atomic.Bool
}

func (s *playSession) requestStop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// DiscordVoiceSink transmits PCM audio over Discord voice connections,
// encoding it to Opus frame by frame.
type DiscordVoiceSink struct {
	session *discordgo.Session

	mu       sync.Mutex
	conns    map[snowflake.ID]*discordgo.VoiceConnection
	sessions map[snowflake.ID]*playSession
}

var _ ports.VoiceSink = (*DiscordVoiceSink)(nil)

// NewDiscordVoiceSink creates a new DiscordVoiceSink.
func NewDiscordVoiceSink(session *discordgo.Session) *DiscordVoiceSink {
	return &DiscordVoiceSink{
		session:  session,
		conns:    make(map[snowflake.ID]*discordgo.VoiceConnection),
		sessions: make(map[snowflake.ID]*playSession),
	}
}

// Connect implements ports.VoiceSink. Joining while connected to another
// channel in the guild moves the connection.
func (v *DiscordVoiceSink) Connect(ctx context.Context, guildID, channelID snowflake.ID) error {
	vc, err := v.session.ChannelVoiceJoin(guildID.String(), channelID.String(), false, true)
	if err != nil {
		return fmt.Errorf("join voice channel: %w", err)
	}

	v.mu.Lock()
	v.conns[guildID] = vc
	v.mu.Unlock()
	return nil
}

// Disconnect implements ports.VoiceSink.
func (v *DiscordVoiceSink) Disconnect(ctx context.Context, guildID snowflake.ID) error {
	v.mu.Lock()
	vc, ok := v.conns[guildID]
	delete(v.conns, guildID)
	v.mu.Unlock()

	if !ok {
		return nil
	}
	return vc.Disconnect()
}

// Play implements ports.VoiceSink. The transmission runs in its own
// goroutine; onFinished fires from there exactly once when it ends.
func (v *DiscordVoiceSink) Play(
	guildID snowflake.ID,
	source *domain.PlayableSource,
	onFinished func(error),
) error {
	v.mu.Lock()
	vc, connected := v.conns[guildID]
	if !connected {
		v.mu.Unlock()
		return errors.New("not connected to a voice channel")
	}
	if _, busy := v.sessions[guildID]; busy {
		v.mu.Unlock()
		return ErrAlreadyPlaying
	}
	sess := &playSession{stop: make(chan struct{})}
	v.sessions[guildID] = sess
	v.mu.Unlock()

	go v.transmit(guildID, vc, source, sess, onFinished)
	return nil
}

// transmit reads PCM frames from the source's audio stream, scales them by
// the source volume, encodes them to Opus, and ships them to Discord until
// EOF or stop.
func (v *DiscordVoiceSink) transmit(
	guildID snowflake.ID,
	vc *discordgo.VoiceConnection,
	source *domain.PlayableSource,
	sess *playSession,
	onFinished func(error),
) {
	var playErr error
	defer func() {
		source.Close()
		v.mu.Lock()
		if v.sessions[guildID] == sess {
			delete(v.sessions, guildID)
		}
		v.mu.Unlock()
		onFinished(playErr)
	}()

	encoder, err := opus.NewEncoder(frameRate, frameChannels, opus.AppAudio)
	if err != nil {
		playErr = fmt.Errorf("create opus encoder: %w", err)
		return
	}

	if err := vc.Speaking(true); err != nil {
		slog.Warn("failed to set speaking state", "guild_id", guildID, "error", err)
	}
	defer func() {
		if err := vc.Speaking(false); err != nil {
			slog.Debug("failed to clear speaking state", "guild_id", guildID, "error", err)
		}
	}()

	pcm := make([]int16, frameSize*frameChannels)
	for {
		select {
		case <-sess.stop:
			return
		default:
		}

		if sess.paused.Load() {
			time.Sleep(pausePollInterval)
			continue
		}

		err := binary.Read(source.Audio, binary.LittleEndian, &pcm)
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return
		}
		if err != nil {
			playErr = fmt.Errorf("read pcm: %w", err)
			return
		}

		applyVolume(pcm, source.Volume)

		frame := make([]byte, maxFrameBytes)
		n, err := encoder.Encode(pcm, frame)
		if err != nil {
			playErr = fmt.Errorf("encode opus: %w", err)
			return
		}

		select {
		case vc.OpusSend <- frame[:n]:
		case <-sess.stop:
			return
		}
	}
}

// applyVolume scales the samples in place.
func applyVolume(pcm []int16, volume float64) {
	if volume == 1 {
		return
	}
	for i, sample := range pcm {
		pcm[i] = int16(float64(sample) * volume)
	}
}

// Stop implements ports.VoiceSink.
func (v *DiscordVoiceSink) Stop(guildID snowflake.ID) {
	v.mu.Lock()
	sess := v.sessions[guildID]
	v.mu.Unlock()

	if sess != nil {
		sess.requestStop()
	}
}

// Pause implements ports.VoiceSink.
func (v *DiscordVoiceSink) Pause(guildID snowflake.ID) {
	v.mu.Lock()
	sess := v.sessions[guildID]
	v.mu.Unlock()

	if sess != nil {
		sess.paused.Store(true)
	}
}

// Resume implements ports.VoiceSink.
func (v *DiscordVoiceSink) Resume(guildID snowflake.ID) {
	v.mu.Lock()
	sess := v.sessions[guildID]
	v.mu.Unlock()

	if sess != nil {
		sess.paused.Store(false)
	}
}

// IsPlaying implements ports.VoiceSink. A paused track still counts as
// playing; it occupies the guild's transmission slot.
func (v *DiscordVoiceSink) IsPlaying(guildID snowflake.ID) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.sessions[guildID]
	return ok
}

// IsPaused implements ports.VoiceSink.
func (v *DiscordVoiceSink) IsPaused(guildID snowflake.ID) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	sess, ok := v.sessions[guildID]
	return ok && sess.paused.Load()
}

// ConnectedChannel implements ports.VoiceSink.
func (v *DiscordVoiceSink) ConnectedChannel(guildID snowflake.ID) snowflake.ID {
	v.mu.Lock()
	vc, ok := v.conns[guildID]
	v.mu.Unlock()

	if !ok {
		return 0
	}

	vc.RLock()
	channelID := vc.ChannelID
	vc.RUnlock()

	id, err := snowflake.Parse(channelID)
	if err != nil {
		return 0
	}
	return id
}
