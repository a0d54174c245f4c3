package usecases

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"

	"github.com/kvisuru/musicbox/internal/modules/music/application/ports"
	"github.com/kvisuru/musicbox/internal/modules/music/domain"
)

// queuePageSize is the number of tracks shown per queue-listing page.
const queuePageSize = 10

// guildState is the coordinator's per-guild bookkeeping. continueMu
// serializes playback continuation for the guild: completion callbacks,
// skips, and play requests may all try to start the next track at once, and
// exactly one of them must win.
type guildState struct {
	queue      *domain.GuildQueue
	continueMu sync.Mutex

	// idleGen increments whenever the idle timer is armed or cancelled.
	// An elapsed callback carries the generation it was armed with and is
	// discarded when it no longer matches. Both fields are guarded by the
	// coordinator's mutex.
	idleTimer *time.Timer
	idleGen   uint64
}

// PlaybackCoordinator drives each guild's playback lifecycle: it joins
// tracks discovered by the loader to the guild's queue, starts playback when
// the guild is silent, advances to the next track when one finishes, and
// disconnects after a period of inactivity.
type PlaybackCoordinator struct {
	sink        ports.VoiceSink
	loader      *TrackLoaderService
	notifier    ports.Notifier
	idleTimeout time.Duration

	mu     sync.Mutex
	guilds map[snowflake.ID]*guildState
}

// NewPlaybackCoordinator creates a new PlaybackCoordinator.
func NewPlaybackCoordinator(
	sink ports.VoiceSink,
	loader *TrackLoaderService,
	notifier ports.Notifier,
	idleTimeout time.Duration,
) *PlaybackCoordinator {
	return &PlaybackCoordinator{
		sink:        sink,
		loader:      loader,
		notifier:    notifier,
		idleTimeout: idleTimeout,
		guilds:      make(map[snowflake.ID]*guildState),
	}
}

// state returns the guild's state, creating it on first use.
func (c *PlaybackCoordinator) state(guildID snowflake.ID) *guildState {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, ok := c.guilds[guildID]
	if !ok {
		st = &guildState{queue: domain.NewGuildQueue()}
		c.guilds[guildID] = st
	}
	return st
}

// lookup returns the guild's state without creating one.
func (c *PlaybackCoordinator) lookup(guildID snowflake.ID) (*guildState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.guilds[guildID]
	return st, ok
}

// Join connects the sink to the given voice channel, creating the guild's
// playback state. Joining while connected elsewhere moves the bot.
func (c *PlaybackCoordinator) Join(ctx context.Context, guildID, channelID snowflake.ID) error {
	if err := c.sink.Connect(ctx, guildID, channelID); err != nil {
		return err
	}
	st := c.state(guildID)
	c.cancelIdle(guildID, st)
	return nil
}

// Leave disconnects from the guild's voice channel, discarding its queue and
// stopping any current playback.
func (c *PlaybackCoordinator) Leave(ctx context.Context, guildID snowflake.ID) error {
	if c.sink.ConnectedChannel(guildID) == 0 {
		return ErrNotConnected
	}
	return c.teardown(ctx, guildID)
}

// teardown releases everything the coordinator holds for the guild and
// disconnects the sink. The state is dropped before Stop so the completion
// callback fired by Stop finds no guild to continue.
func (c *PlaybackCoordinator) teardown(ctx context.Context, guildID snowflake.ID) error {
	c.mu.Lock()
	st, ok := c.guilds[guildID]
	if ok {
		if st.idleTimer != nil {
			st.idleTimer.Stop()
			st.idleTimer = nil
		}
		delete(c.guilds, guildID)
	}
	c.mu.Unlock()

	if ok {
		st.queue.SetNowPlaying(nil)
		st.queue.Clear()
	}
	c.sink.Stop(guildID)
	return c.sink.Disconnect(ctx, guildID)
}

// PlayInput describes a play request.
type PlayInput struct {
	GuildID snowflake.ID
	Query   string

	// Text channel the request came from; playback notices go there.
	ChannelID snowflake.ID

	RequesterID        snowflake.ID
	RequesterName      string
	RequesterAvatarURL string
}

// PlayOutput describes the result of a play request.
type PlayOutput struct {
	// Tracks that were enqueued, in queue order.
	Tracks []domain.Track

	// Skipped holds descriptions of collection entries that could not be
	// discovered. Never fatal on its own.
	Skipped []string

	// Started is true when this request kicked off playback (as opposed to
	// appending to an already-playing queue).
	Started bool
}

// RequestPlay discovers the query's tracks, appends them to the guild's
// queue, and starts playback if the guild is silent. The bot must already be
// connected to a voice channel. Discovery failures abort the request without
// touching the queue.
func (c *PlaybackCoordinator) RequestPlay(ctx context.Context, input PlayInput) (*PlayOutput, error) {
	if c.sink.ConnectedChannel(input.GuildID) == 0 {
		return nil, ErrNotConnected
	}

	discovered, err := c.loader.Discover(ctx, input.Query)
	if err != nil {
		return nil, err
	}

	tracks := make([]domain.Track, 0, len(discovered.Tracks))
	for _, t := range discovered.Tracks {
		tracks = append(tracks, t.WithRequester(
			input.RequesterID,
			input.RequesterName,
			input.RequesterAvatarURL,
			input.ChannelID,
		))
	}

	st := c.state(input.GuildID)
	st.queue.Enqueue(tracks...)
	c.cancelIdle(input.GuildID, st)

	out := &PlayOutput{Tracks: tracks, Skipped: discovered.Skipped}
	if !c.sink.IsPlaying(input.GuildID) {
		out.Started = true
		go c.Continue(context.Background(), input.GuildID)
	}
	return out, nil
}

// Continue advances the guild to its next track: the repeated current track
// when repeat mode is on, otherwise the head of the queue. Tracks whose
// stream cannot be resolved are skipped with a notice, never stalling the
// queue. When nothing is left to play the idle-disconnect timer is armed.
//
// Continuation is serialized per guild, and a guild that is already playing
// is left alone, so concurrent callers produce exactly one advance.
func (c *PlaybackCoordinator) Continue(ctx context.Context, guildID snowflake.ID) {
	st, ok := c.lookup(guildID)
	if !ok {
		return
	}

	st.continueMu.Lock()
	defer st.continueMu.Unlock()

	if c.sink.IsPlaying(guildID) {
		return
	}

	var next domain.Track
	var have bool
	if current := st.queue.NowPlaying(); current != nil && st.queue.Repeat() {
		// Replaying resolves a fresh source; the consumed one is gone.
		next, have = current.Track, true
	} else {
		next, have = st.queue.Dequeue()
	}

	for have {
		source, err := c.loader.Resolve(ctx, next)
		if err != nil {
			slog.Warn("skipping unresolvable track",
				"guild_id", guildID, "title", next.Title, "error", err)
			c.notifier.Error(next.ChannelID, err.Error())
			next, have = st.queue.Dequeue()
			continue
		}

		st.queue.SetNowPlaying(source)
		err = c.sink.Play(guildID, source, func(playErr error) {
			c.handleFinished(guildID, playErr)
		})
		if err != nil {
			slog.Error("failed to start playback",
				"guild_id", guildID, "title", next.Title, "error", err)
			st.queue.SetNowPlaying(nil)
			source.Close()
			c.notifier.Error(next.ChannelID, "Failed to play "+next.Title+".")
			next, have = st.queue.Dequeue()
			continue
		}

		c.notifier.NowPlaying(source.ChannelID, source)
		return
	}

	st.queue.SetNowPlaying(nil)
	c.armIdle(guildID, st)
}

// handleFinished is the sink's completion callback. It reports transmission
// errors to the track's channel and hands over to Continue.
func (c *PlaybackCoordinator) handleFinished(guildID snowflake.ID, playErr error) {
	if playErr != nil {
		slog.Error("playback ended with error", "guild_id", guildID, "error", playErr)
		if st, ok := c.lookup(guildID); ok {
			if current := st.queue.NowPlaying(); current != nil {
				c.notifier.Error(current.ChannelID, "Playback error: "+playErr.Error())
			}
		}
	}
	c.Continue(context.Background(), guildID)
}

// Skip aborts the current track and returns it. The now-playing slot is
// cleared before the sink is stopped, so the continuation triggered by the
// stop dequeues the next track even when repeat mode is on: skip always
// moves forward.
func (c *PlaybackCoordinator) Skip(guildID snowflake.ID) (domain.Track, error) {
	st, ok := c.lookup(guildID)
	if !ok || !c.sink.IsPlaying(guildID) {
		return domain.Track{}, ErrNotPlaying
	}

	current := st.queue.NowPlaying()
	if current == nil {
		return domain.Track{}, ErrNotPlaying
	}

	st.queue.SetNowPlaying(nil)
	c.sink.Stop(guildID)
	return current.Track, nil
}

// Pause suspends the current playback without losing position.
func (c *PlaybackCoordinator) Pause(guildID snowflake.ID) error {
	if !c.sink.IsPlaying(guildID) {
		return ErrNotPlaying
	}
	if c.sink.IsPaused(guildID) {
		return ErrAlreadyPaused
	}
	c.sink.Pause(guildID)
	return nil
}

// Resume continues paused playback.
func (c *PlaybackCoordinator) Resume(guildID snowflake.ID) error {
	if !c.sink.IsPlaying(guildID) {
		return ErrNotPlaying
	}
	if !c.sink.IsPaused(guildID) {
		return ErrNotPaused
	}
	c.sink.Resume(guildID)
	return nil
}

// Stop aborts the current track and discards the queue, staying connected.
// The continuation triggered by the stop finds an empty queue and arms the
// idle-disconnect timer.
func (c *PlaybackCoordinator) Stop(guildID snowflake.ID) error {
	st, ok := c.lookup(guildID)
	if !ok {
		return ErrNotPlaying
	}

	st.queue.Clear()
	if !c.sink.IsPlaying(guildID) {
		return ErrNotPlaying
	}
	st.queue.SetNowPlaying(nil)
	c.sink.Stop(guildID)
	return nil
}

// Clear discards the queued tracks, leaving the current track playing.
// Returns the number of tracks removed.
func (c *PlaybackCoordinator) Clear(guildID snowflake.ID) (int, error) {
	st, ok := c.lookup(guildID)
	if !ok || st.queue.Len() == 0 {
		return 0, ErrQueueEmpty
	}
	return st.queue.Clear(), nil
}

// Remove deletes the track at the given 1-based queue position and returns
// it. Position 1 is the head of the queue; the now-playing track is not
// addressable.
func (c *PlaybackCoordinator) Remove(guildID snowflake.ID, position int) (domain.Track, error) {
	st, ok := c.lookup(guildID)
	if !ok {
		return domain.Track{}, domain.ErrIndexOutOfRange
	}
	return st.queue.Remove(position)
}

// Shuffle randomizes the order of the queued tracks.
func (c *PlaybackCoordinator) Shuffle(guildID snowflake.ID) error {
	st, ok := c.lookup(guildID)
	if !ok || st.queue.Len() == 0 {
		return ErrQueueEmpty
	}
	st.queue.Shuffle()
	return nil
}

// ToggleRepeat flips the guild's repeat mode and returns the new value.
// While on, the current track is re-resolved and replayed each time it
// finishes naturally; skipping still advances.
func (c *PlaybackCoordinator) ToggleRepeat(guildID snowflake.ID) bool {
	return c.state(guildID).queue.ToggleRepeat()
}

// Repeat reports whether the guild's repeat mode is on.
func (c *PlaybackCoordinator) Repeat(guildID snowflake.ID) bool {
	st, ok := c.lookup(guildID)
	return ok && st.queue.Repeat()
}

// QueueViewOutput is one page of the guild's queue listing.
type QueueViewOutput struct {
	NowPlaying *domain.PlayableSource

	// Tracks on this page, in play order.
	Tracks []domain.Track

	// Offset is the 0-based index of the first track on the page within the
	// full queue, for numbering the listing.
	Offset int

	Page          int
	TotalPages    int
	TotalTracks   int
	TotalDuration int // seconds, summed over the whole queue
	Repeat        bool
}

// QueueView returns the requested 1-based page of the guild's queue. Pages
// out of range clamp to the last page. Returns ErrQueueEmpty when nothing is
// queued and nothing is playing.
func (c *PlaybackCoordinator) QueueView(guildID snowflake.ID, page int) (*QueueViewOutput, error) {
	st, ok := c.lookup(guildID)
	if !ok {
		return nil, ErrQueueEmpty
	}

	tracks := st.queue.Tracks()
	nowPlaying := st.queue.NowPlaying()
	if len(tracks) == 0 && nowPlaying == nil {
		return nil, ErrQueueEmpty
	}

	totalPages := (len(tracks) + queuePageSize - 1) / queuePageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * queuePageSize
	end := start + queuePageSize
	if start > len(tracks) {
		start = len(tracks)
	}
	if end > len(tracks) {
		end = len(tracks)
	}

	return &QueueViewOutput{
		NowPlaying:    nowPlaying,
		Tracks:        tracks[start:end],
		Offset:        start,
		Page:          page,
		TotalPages:    totalPages,
		TotalTracks:   len(tracks),
		TotalDuration: st.queue.TotalDuration(),
		Repeat:        st.queue.Repeat(),
	}, nil
}

// NowPlayingView returns the currently playing source.
func (c *PlaybackCoordinator) NowPlayingView(guildID snowflake.ID) (*domain.PlayableSource, error) {
	st, ok := c.lookup(guildID)
	if !ok {
		return nil, ErrNotPlaying
	}
	current := st.queue.NowPlaying()
	if current == nil {
		return nil, ErrNotPlaying
	}
	return current, nil
}

// HandleListenersLeft tears the guild down when the bot is left alone in its
// voice channel. No-op when not connected.
func (c *PlaybackCoordinator) HandleListenersLeft(ctx context.Context, guildID snowflake.ID) {
	if c.sink.ConnectedChannel(guildID) == 0 {
		return
	}
	slog.Info("alone in voice channel, disconnecting", "guild_id", guildID)
	if err := c.teardown(ctx, guildID); err != nil {
		slog.Error("failed to disconnect", "guild_id", guildID, "error", err)
	}
}

// Shutdown tears down every guild's playback. Used on bot shutdown.
func (c *PlaybackCoordinator) Shutdown(ctx context.Context) {
	c.mu.Lock()
	ids := make([]snowflake.ID, 0, len(c.guilds))
	for id := range c.guilds {
		ids = append(ids, id)
	}
	c.mu.Unlock()

	for _, id := range ids {
		if err := c.teardown(ctx, id); err != nil {
			slog.Error("failed to tear down guild playback", "guild_id", id, "error", err)
		}
	}
}

// armIdle schedules an automatic disconnect after the idle timeout. Arming
// while a timer is already pending is a no-op: repeated arming does not
// extend the window. The elapsed callback validates the generation it was
// armed with, so a cancellation that raced the firing wins.
func (c *PlaybackCoordinator) armIdle(guildID snowflake.ID, st *guildState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if st.idleTimer != nil {
		return
	}
	st.idleGen++
	gen := st.idleGen
	st.idleTimer = time.AfterFunc(c.idleTimeout, func() {
		c.idleFired(guildID, gen)
	})
}

// cancelIdle stops a pending idle-disconnect timer, if any.
func (c *PlaybackCoordinator) cancelIdle(guildID snowflake.ID, st *guildState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if st.idleTimer != nil {
		st.idleTimer.Stop()
		st.idleTimer = nil
		st.idleGen++
	}
}

// idleFired runs when an idle timer elapses. The silence re-check and the
// teardown are serialized with the guild's continuation: a play request
// accepted around the firing either bumps the generation before this runs,
// or holds continueMu while its continuation resolves a track, and the
// timer must not tear the guild down in between.
func (c *PlaybackCoordinator) idleFired(guildID snowflake.ID, gen uint64) {
	c.mu.Lock()
	st, ok := c.guilds[guildID]
	if !ok || st.idleGen != gen {
		// Cancelled or superseded while firing.
		c.mu.Unlock()
		return
	}
	st.idleTimer = nil
	c.mu.Unlock()

	st.continueMu.Lock()
	defer st.continueMu.Unlock()

	// Activity may have resumed while waiting for the continuation; a
	// bumped generation or a fresh timer means the window restarted.
	c.mu.Lock()
	superseded := st.idleGen != gen || st.idleTimer != nil
	c.mu.Unlock()
	if superseded || c.sink.IsPlaying(guildID) ||
		st.queue.Len() > 0 || st.queue.NowPlaying() != nil {
		return
	}

	slog.Info("idle timeout elapsed, disconnecting", "guild_id", guildID)
	if err := c.teardown(context.Background(), guildID); err != nil {
		slog.Error("failed to disconnect after idle timeout", "guild_id", guildID, "error", err)
	}
}
