package domain

import (
	"errors"
	"math/rand/v2"
	"sync"
)

// ErrIndexOutOfRange is returned when a 1-based queue position does not
// address a queued track.
var ErrIndexOutOfRange = errors.New("queue position out of range")

// GuildQueue is the per-guild playback state: an ordered FIFO of pending
// tracks, the now-playing slot, and the repeat flag. Every mutating
// operation takes the queue's lock for its full duration, so concurrent
// command invocations and completion callbacks for the same guild are
// totally ordered.
type GuildQueue struct {
	mu         sync.Mutex
	tracks     []Track
	nowPlaying *PlayableSource
	repeat     bool
}

// NewGuildQueue creates an empty queue.
func NewGuildQueue() *GuildQueue {
	return &GuildQueue{
		tracks: make([]Track, 0),
	}
}

// Enqueue appends tracks to the tail, preserving their order.
func (q *GuildQueue) Enqueue(tracks ...Track) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tracks = append(q.tracks, tracks...)
}

// Dequeue removes and returns the head of the queue. The second return is
// false when the queue is empty; this is the steady-state signal the
// continuation loop uses to decide between "play next" and "go idle".
func (q *GuildQueue) Dequeue() (Track, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.tracks) == 0 {
		return Track{}, false
	}
	head := q.tracks[0]
	q.tracks = q.tracks[1:]
	return head, true
}

// Clear removes all queued tracks. The now-playing slot is untouched.
func (q *GuildQueue) Clear() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	cleared := len(q.tracks)
	q.tracks = q.tracks[:0]
	return cleared
}

// Shuffle randomizes the order of the queued tracks. Uses Fisher-Yates via
// rand.Shuffle, so every permutation is equally likely.
func (q *GuildQueue) Shuffle() {
	q.mu.Lock()
	defer q.mu.Unlock()

	rand.Shuffle(len(q.tracks), func(i, j int) {
		q.tracks[i], q.tracks[j] = q.tracks[j], q.tracks[i]
	})
}

// Remove deletes and returns the track at the given 1-based position, as
// shown in the queue listing. Later tracks shift down by one. Returns
// ErrIndexOutOfRange when the position does not address a queued track.
func (q *GuildQueue) Remove(position int) (Track, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if position < 1 || position > len(q.tracks) {
		return Track{}, ErrIndexOutOfRange
	}

	index := position - 1
	removed := q.tracks[index]
	q.tracks = append(q.tracks[:index], q.tracks[index+1:]...)
	return removed, nil
}

// Len returns the number of queued tracks, excluding the now-playing one.
func (q *GuildQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tracks)
}

// Tracks returns a copy of the queued tracks in play order.
func (q *GuildQueue) Tracks() []Track {
	q.mu.Lock()
	defer q.mu.Unlock()

	snapshot := make([]Track, len(q.tracks))
	copy(snapshot, q.tracks)
	return snapshot
}

// NowPlaying returns the currently playing source, or nil when silent.
func (q *GuildQueue) NowPlaying() *PlayableSource {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.nowPlaying
}

// SetNowPlaying records the source occupying the guild's single now-playing
// slot. Pass nil when playback ends.
func (q *GuildQueue) SetNowPlaying(source *PlayableSource) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nowPlaying = source
}

// Repeat reports whether repeat mode is on.
func (q *GuildQueue) Repeat() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.repeat
}

// ToggleRepeat flips the repeat flag and returns the new value. The flag is
// consumed only by the continuation loop; the queued tracks are unaffected.
func (q *GuildQueue) ToggleRepeat() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.repeat = !q.repeat
	return q.repeat
}

// TotalDuration returns the summed duration in seconds of all queued tracks.
// Live tracks contribute zero.
func (q *GuildQueue) TotalDuration() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	total := 0
	for _, t := range q.tracks {
		total += t.Duration
	}
	return total
}
