package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/ports"
)

const badgeText = "Copied to clipboard"

// CopyBadge is the transient "copied" indicator. Each Show restarts the hide
// timer, so the badge stays up for the full duration after the latest copy.
type CopyBadge struct {
	writer   io.Writer
	duration time.Duration

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
	visible    bool
	hidden     chan struct{}
}

// NewCopyBadge creates a badge announcing copies on w.
func NewCopyBadge(w io.Writer, duration time.Duration) *CopyBadge {
	if w == nil {
		w = io.Discard
	}
	if duration <= 0 {
		duration = domain.DefaultBadgeDuration
	}
	return &CopyBadge{writer: w, duration: duration}
}

// Show displays the badge and (re)arms the hide timer.
func (b *CopyBadge) Show() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.timer != nil {
		b.timer.Stop()
	}
	if !b.visible {
		b.visible = true
		b.hidden = make(chan struct{})
		fmt.Fprintln(b.writer, badgeText)
	}
	b.generation++
	gen := b.generation
	b.timer = time.AfterFunc(b.duration, func() { b.expire(gen) })
}

// Visible reports whether the badge is currently shown.
func (b *CopyBadge) Visible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible
}

// Dismiss hides the badge immediately.
func (b *CopyBadge) Dismiss() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
	}
	b.hideLocked()
}

// expire ignores timers superseded by a later Show.
func (b *CopyBadge) expire(gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.generation {
		return
	}
	b.hideLocked()
}

func (b *CopyBadge) hideLocked() {
	if !b.visible {
		return
	}
	b.visible = false
	close(b.hidden)
}

var _ ports.CopyIndicator = (*CopyBadge)(nil)
