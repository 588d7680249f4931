package cli

import (
	"bytes"
	"context"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/passgen-go/internal/application/generator"
	"github.com/doeshing/passgen-go/internal/application/history"
	"github.com/doeshing/passgen-go/internal/application/session"
	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/infrastructure/storage"
	"github.com/doeshing/passgen-go/internal/ports"
)

type recordingClipboard struct {
	copied []string
}

func (c *recordingClipboard) Enabled() bool { return true }

func (c *recordingClipboard) Copy(text string) error {
	c.copied = append(c.copied, text)
	return nil
}

func newTestSession(clipboard *recordingClipboard, badge *CopyBadge) *session.Session {
	gen := generator.New(rand.New(rand.NewPCG(3, 4)), domain.StrategyClassic, 0)
	store := history.NewStore(storage.NewMemoryStore(), nil, nil, 0)
	var indicator ports.CopyIndicator
	if badge != nil {
		indicator = badge
	}
	return session.New(gen, store, clipboard, indicator, nil, session.Options{
		Length:        12,
		Tier:          domain.TierDigits,
		RecordHistory: true,
	})
}

func runInteractive(t *testing.T, s *session.Session, input string) (string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	loop := NewInteractive(s, strings.NewReader(input), &out, &errOut)
	require.NoError(t, loop.Run(context.Background()))
	return out.String(), errOut.String()
}

func TestInteractiveEditsAndGenerates(t *testing.T) {
	s := newTestSession(&recordingClipboard{}, nil)

	out, errOut := runInteractive(t, s, "l 8\nt 2\ng\nh\nq\n")
	assert.Empty(t, errOut)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "length 12 | tier 3 (lowercase+uppercase+digits) | password", lines[0])
	assert.Equal(t, "length 8 | tier 3 (lowercase+uppercase+digits) | password", lines[1])
	assert.Equal(t, "length 8 | tier 2 (lowercase+uppercase) | password", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "length 8 | tier 2 (lowercase+uppercase) | "))
	assert.Len(t, s.Password, 8)
	assert.Equal(t, "1  "+s.Password, lines[4])
}

func TestInteractiveLengthInputRules(t *testing.T) {
	s := newTestSession(&recordingClipboard{}, nil)

	_, errOut := runInteractive(t, s, "length 20\nlength abc\n")
	assert.Empty(t, errOut)
	assert.Equal(t, 20, s.Length)

	runInteractive(t, s, "length\n")
	assert.Equal(t, 0, s.Length)
}

func TestInteractiveReportsErrorsAndContinues(t *testing.T) {
	s := newTestSession(&recordingClipboard{}, nil)

	_, errOut := runInteractive(t, s, "t 9\nt x\nfrobnicate\nl -3\ng\nt 4\n")
	assert.Contains(t, errOut, "invalid tier 9")
	assert.Contains(t, errOut, "tier must be a number")
	assert.Contains(t, errOut, `unknown command "frobnicate"`)
	assert.Contains(t, errOut, "invalid length -3")
	assert.Equal(t, domain.TierSymbols, s.Tier)
	assert.Equal(t, "password", s.Password)
}

func TestInteractiveCopyShowsBadge(t *testing.T) {
	clipboard := &recordingClipboard{}
	var badgeOut bytes.Buffer
	badge := NewCopyBadge(&badgeOut, time.Hour)
	s := newTestSession(clipboard, badge)

	out, errOut := runInteractive(t, s, "g\nc\nc 1\nc 2\n")
	assert.Contains(t, errOut, "history index out of range")
	require.Len(t, clipboard.copied, 2)
	assert.Equal(t, s.Password, clipboard.copied[0])
	assert.Equal(t, s.Password, clipboard.copied[1])
	assert.Contains(t, out, "| copied")
	assert.Contains(t, out, "Copied history entry 1")
	assert.Equal(t, badgeText+"\n", badgeOut.String())
	assert.False(t, badge.Visible(), "leaving the loop dismisses the badge")
}

func TestInteractiveClearHistory(t *testing.T) {
	s := newTestSession(&recordingClipboard{}, nil)

	out, _ := runInteractive(t, s, "g\nclear\nhistory\n")
	assert.Contains(t, out, "History cleared.")
	assert.Contains(t, out, "No passwords recorded yet.")
}

func TestInteractiveLastLineWithoutNewline(t *testing.T) {
	s := newTestSession(&recordingClipboard{}, nil)
	runInteractive(t, s, "l 5")
	assert.Equal(t, 5, s.Length)
}

func TestInteractiveStopsOnCancelledContext(t *testing.T) {
	s := newTestSession(&recordingClipboard{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := NewInteractive(s, strings.NewReader("g\n"), &out, &out).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
