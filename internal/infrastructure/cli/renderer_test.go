package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doeshing/passgen-go/internal/domain"
)

func TestRenderResultSeparatesWarnings(t *testing.T) {
	var out, errOut bytes.Buffer
	RenderResult(&out, &errOut, domain.GenerateResult{
		Password: "Xy9!zz",
		Warnings: []string{"sqlite storage unavailable: locked"},
	})
	assert.Equal(t, "Xy9!zz\n", out.String())
	assert.Equal(t, "Warning: sqlite storage unavailable: locked\n", errOut.String())
}

func TestRenderHistoryNumbersEntries(t *testing.T) {
	var out bytes.Buffer
	list := domain.HistoryList{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	RenderHistory(&out, list)
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Len(t, lines, 10)
	assert.Equal(t, " 1  a", lines[0])
	assert.Equal(t, "10  j", lines[9])

	out.Reset()
	RenderHistory(&out, nil)
	assert.Equal(t, "No passwords recorded yet.\n", out.String())
}

func TestDescribeTier(t *testing.T) {
	assert.Equal(t, "lowercase", DescribeTier(domain.TierLower))
	assert.Equal(t, "lowercase+uppercase+digits+symbols", DescribeTier(domain.TierMax))
	assert.Equal(t, "none", DescribeTier(0))
}
