package generator

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/passgen-go/internal/domain"
)

func newTestGenerator(strategy domain.Strategy, seed uint64) *Generator {
	return New(rand.New(rand.NewPCG(seed, seed+1)), strategy, 0)
}

func assertFromAlphabet(t *testing.T, password, alphabet string) {
	t.Helper()
	for _, r := range password {
		if !strings.ContainsRune(alphabet, r) {
			t.Fatalf("character %q in %q is outside alphabet %q", r, password, alphabet)
		}
	}
}

func TestGenerateShapeAcrossTiers(t *testing.T) {
	for _, strategy := range []domain.Strategy{domain.StrategyClassic, domain.StrategyDirect} {
		gen := newTestGenerator(strategy, 7)
		for tier := domain.TierLower; tier <= domain.TierSymbols; tier++ {
			for _, length := range []int{1, 2, 8, 33, 128} {
				password, err := gen.Generate(domain.GenerationRequest{Length: length, Tier: tier})
				require.NoError(t, err)
				require.Len(t, password, length, "strategy=%s tier=%d", strategy, tier)
				assertFromAlphabet(t, password, tier.Alphabet())
			}
		}
	}
}

func TestGenerateMixedCaseExample(t *testing.T) {
	gen := newTestGenerator(domain.StrategyClassic, 1)
	password, err := gen.Generate(domain.GenerationRequest{Length: 8, Tier: domain.TierMixed})
	require.NoError(t, err)
	require.Len(t, password, 8)
	assertFromAlphabet(t, password, domain.LowercaseLetters+domain.UppercaseLetters)
}

func TestGenerateZeroLengthIsEmpty(t *testing.T) {
	for _, strategy := range []domain.Strategy{domain.StrategyClassic, domain.StrategyDirect} {
		gen := newTestGenerator(strategy, 3)
		for tier := domain.MinTier; tier <= domain.MaxTier; tier++ {
			password, err := gen.Generate(domain.GenerationRequest{Length: 0, Tier: tier})
			require.NoError(t, err)
			assert.Empty(t, password)
		}
	}
}

func TestGenerateTierFiveUsesTierFourAlphabet(t *testing.T) {
	gen := newTestGenerator(domain.StrategyClassic, 11)
	seen := map[rune]bool{}
	for i := 0; i < 200; i++ {
		password, err := gen.Generate(domain.GenerationRequest{Length: 16, Tier: domain.TierMax})
		require.NoError(t, err)
		require.Len(t, password, 16)
		assertFromAlphabet(t, password, domain.TierSymbols.Alphabet())
		for _, r := range password {
			seen[r] = true
		}
	}
	// every class of tier 4 must show up, nothing beyond it can
	for _, class := range domain.TierSymbols.Classes() {
		assert.True(t, strings.ContainsFunc(class.Chars, func(r rune) bool { return seen[r] }), "class %s never drawn", class.Name)
	}
}

func TestGenerateRepeatedCallsDiffer(t *testing.T) {
	gen := newTestGenerator(domain.StrategyClassic, 99)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		password, err := gen.Generate(domain.GenerationRequest{Length: 12, Tier: domain.TierDigits})
		require.NoError(t, err)
		seen[password] = true
	}
	assert.Greater(t, len(seen), 45)
}

func TestGenerateRejectsInvalidInput(t *testing.T) {
	gen := newTestGenerator(domain.StrategyClassic, 5)
	gen.MaxLength = 64

	tests := []struct {
		name string
		req  domain.GenerationRequest
		want error
	}{
		{name: "negative length", req: domain.GenerationRequest{Length: -1, Tier: 1}, want: domain.ErrInvalidLength},
		{name: "above max", req: domain.GenerationRequest{Length: 65, Tier: 1}, want: domain.ErrInvalidLength},
		{name: "tier zero", req: domain.GenerationRequest{Length: 8, Tier: 0}, want: domain.ErrInvalidTier},
		{name: "tier six", req: domain.GenerationRequest{Length: 8, Tier: 6}, want: domain.ErrInvalidTier},
		{name: "zero length bad tier", req: domain.GenerationRequest{Length: 0, Tier: -3}, want: domain.ErrInvalidTier},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			password, err := gen.Generate(tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Empty(t, password)
		})
	}
}

func TestGenerateInvalidLengthErrorCarriesBounds(t *testing.T) {
	gen := newTestGenerator(domain.StrategyDirect, 5)
	gen.MaxLength = 10

	_, err := gen.Generate(domain.GenerationRequest{Length: 11, Tier: 1})
	var lengthErr *domain.InvalidLengthError
	require.ErrorAs(t, err, &lengthErr)
	assert.Equal(t, 11, lengthErr.Length)
	assert.Equal(t, 10, lengthErr.Max)
}

func TestGenerateUnknownStrategy(t *testing.T) {
	gen := newTestGenerator("sorted", 5)
	_, err := gen.Generate(domain.GenerationRequest{Length: 4, Tier: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown generation strategy")
}

func TestGenerateWithoutRandomSource(t *testing.T) {
	gen := New(nil, domain.StrategyClassic, 0)
	_, err := gen.Generate(domain.GenerationRequest{Length: 4, Tier: 1})
	require.Error(t, err)
}

func TestClassicSingleTierWindowCoversWholeBuffer(t *testing.T) {
	// tier 1 buffer is exactly length long, so the window must start at zero
	gen := newTestGenerator(domain.StrategyClassic, 21)
	password, err := gen.Generate(domain.GenerationRequest{Length: 5, Tier: domain.TierLower})
	require.NoError(t, err)
	assert.Len(t, password, 5)
	assertFromAlphabet(t, password, domain.LowercaseLetters)
}

func TestNewAppliesDefaults(t *testing.T) {
	gen := New(rand.New(rand.NewPCG(1, 2)), "", -1)
	assert.Equal(t, domain.StrategyClassic, gen.Strategy)
	assert.Equal(t, domain.DefaultMaxLength, gen.MaxLength)
}
