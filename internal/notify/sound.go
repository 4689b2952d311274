package notify

import (
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Player is a single shared audio handle.
type Player interface {
	Paused() bool
	Play() error
	Rewind() error
}

// Cue plays the award sound once per acknowledgement. Overlapping cues
// restart the clip instead of layering it.
type Cue struct {
	mu     sync.Mutex
	player Player
	log    logrus.FieldLogger
	plays  int
}

// NewCue wraps player.
func NewCue(player Player, log logrus.FieldLogger) *Cue {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Cue{player: player, log: log}
}

// Play starts the clip from the beginning, or rewinds it if it is already
// playing. Playback errors are logged and swallowed.
func (c *Cue) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	var err error
	if c.player.Paused() {
		err = c.player.Play()
	} else {
		err = c.player.Rewind()
	}
	c.plays++
	if err != nil {
		c.log.WithError(err).Warn("award sound failed to play")
	}
}

// Plays returns how many times the cue was triggered.
func (c *Cue) Plays() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.plays
}

// BellPlayer rings the terminal bell. It counts as playing for the clip
// length after each start.
type BellPlayer struct {
	mu      sync.Mutex
	out     io.Writer
	clip    time.Duration
	now     func() time.Time
	started time.Time
}

// NewBellPlayer writes the bell character to out.
func NewBellPlayer(out io.Writer, clip time.Duration) *BellPlayer {
	return &BellPlayer{out: out, clip: clip, now: time.Now}
}

// Paused reports whether the clip has finished or never started.
func (b *BellPlayer) Paused() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.started.IsZero() || b.now().Sub(b.started) >= b.clip
}

// Play starts the clip.
func (b *BellPlayer) Play() error {
	return b.ring()
}

// Rewind restarts the clip at time zero.
func (b *BellPlayer) Rewind() error {
	return b.ring()
}

func (b *BellPlayer) ring() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.started = b.now()
	_, err := io.WriteString(b.out, "\a")
	return err
}

// NopPlayer is used when sound is disabled.
type NopPlayer struct{}

func (NopPlayer) Paused() bool  { return true }
func (NopPlayer) Play() error   { return nil }
func (NopPlayer) Rewind() error { return nil }
