package cli

import (
	"bytes"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/ports"
)

// Clipboard implements ports.Clipboard using platform-specific tools.
type Clipboard struct {
	disabled bool
	lookPath func(string) (string, error)
}

// NewClipboard builds the clipboard helper. enabled mirrors clipboard.enabled.
func NewClipboard(enabled bool) *Clipboard {
	return &Clipboard{disabled: !enabled, lookPath: exec.LookPath}
}

// Enabled reports whether a clipboard tool can be used on this system.
func (c *Clipboard) Enabled() bool {
	if c.disabled {
		return false
	}
	_, err := c.command()
	return err == nil
}

// Copy copies text to the system clipboard.
func (c *Clipboard) Copy(text string) error {
	if c.disabled {
		return fmt.Errorf("%w: disabled in config", domain.ErrClipboardUnavailable)
	}
	cmd, err := c.command()
	if err != nil {
		return err
	}
	cmd.Stdin = bytes.NewBufferString(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrClipboardUnavailable, cmd.Path, err)
	}
	return nil
}

func (c *Clipboard) command() (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("pbcopy"), nil
	case "windows":
		return exec.Command("clip"), nil
	case "linux", "freebsd", "openbsd":
		if _, err := c.lookPath("xclip"); err == nil {
			return exec.Command("xclip", "-selection", "clipboard"), nil
		}
		if _, err := c.lookPath("wl-copy"); err == nil {
			return exec.Command("wl-copy"), nil
		}
		return nil, fmt.Errorf("%w: clipboard utilities not found (install xclip or wl-clipboard)", domain.ErrClipboardUnavailable)
	default:
		return nil, fmt.Errorf("%w: not supported on %s", domain.ErrClipboardUnavailable, runtime.GOOS)
	}
}

var _ ports.Clipboard = (*Clipboard)(nil)
