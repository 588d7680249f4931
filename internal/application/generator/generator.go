// Package generator turns a length and a security tier into a password.
package generator

import (
	"fmt"

	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/ports"
)

// Generator builds passwords from the cumulative tier alphabet.
type Generator struct {
	Random    ports.RandomSource
	Strategy  domain.Strategy
	MaxLength int
}

// New builds a Generator. An empty strategy selects domain.StrategyClassic and a
// non-positive maxLength selects domain.DefaultMaxLength.
func New(random ports.RandomSource, strategy domain.Strategy, maxLength int) *Generator {
	if strategy == "" {
		strategy = domain.StrategyClassic
	}
	if maxLength <= 0 {
		maxLength = domain.DefaultMaxLength
	}
	return &Generator{Random: random, Strategy: strategy, MaxLength: maxLength}
}

// Validate checks a request without generating anything.
func (g *Generator) Validate(req domain.GenerationRequest) error {
	if req.Length < 0 || (g.MaxLength > 0 && req.Length > g.MaxLength) {
		return &domain.InvalidLengthError{Length: req.Length, Max: g.MaxLength}
	}
	if !req.Tier.Valid() {
		return &domain.InvalidTierError{Tier: req.Tier}
	}
	return nil
}

// Generate returns a password of exactly req.Length characters drawn from the
// alphabet enabled at req.Tier. A zero length yields an empty string.
func (g *Generator) Generate(req domain.GenerationRequest) (string, error) {
	if err := g.Validate(req); err != nil {
		return "", err
	}
	if g.Random == nil {
		return "", fmt.Errorf("generator: random source not configured")
	}
	if req.Length == 0 {
		return "", nil
	}

	switch g.Strategy {
	case domain.StrategyClassic, "":
		return g.classic(req), nil
	case domain.StrategyDirect:
		return g.direct(req), nil
	default:
		return "", fmt.Errorf("unknown generation strategy %q", g.Strategy)
	}
}

// classic draws req.Length characters from every enabled class, shuffles the
// combined buffer and returns a random window of req.Length characters.
func (g *Generator) classic(req domain.GenerationRequest) string {
	classes := req.Tier.Classes()
	buf := make([]byte, 0, req.Length*len(classes))
	for _, class := range classes {
		for i := 0; i < req.Length; i++ {
			buf = append(buf, class.Chars[g.Random.IntN(len(class.Chars))])
		}
	}

	g.shuffle(buf)

	start := g.Random.IntN(len(buf) - req.Length + 1)
	return string(buf[start : start+req.Length])
}

// direct draws every position independently from the combined alphabet.
func (g *Generator) direct(req domain.GenerationRequest) string {
	alphabet := req.Tier.Alphabet()
	buf := make([]byte, req.Length)
	for i := range buf {
		buf[i] = alphabet[g.Random.IntN(len(alphabet))]
	}
	return string(buf)
}

// shuffle is a Fisher-Yates shuffle.
func (g *Generator) shuffle(buf []byte) {
	for i := len(buf) - 1; i > 0; i-- {
		j := g.Random.IntN(i + 1)
		buf[i], buf[j] = buf[j], buf[i]
	}
}

var _ ports.PasswordGenerator = (*Generator)(nil)
