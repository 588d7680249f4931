package domain

import (
	"strings"
	"testing"
)

func TestTierAlphabetIsCumulative(t *testing.T) {
	tests := []struct {
		tier Tier
		want string
	}{
		{TierLower, LowercaseLetters},
		{TierMixed, LowercaseLetters + UppercaseLetters},
		{TierDigits, LowercaseLetters + UppercaseLetters + Digits},
		{TierSymbols, LowercaseLetters + UppercaseLetters + Digits + Symbols},
	}
	for _, tt := range tests {
		if got := tt.tier.Alphabet(); got != tt.want {
			t.Errorf("tier %d alphabet = %q, want %q", tt.tier, got, tt.want)
		}
	}
}

func TestTierMaxMatchesSymbolsTier(t *testing.T) {
	if TierMax.Alphabet() != TierSymbols.Alphabet() {
		t.Fatalf("tier 5 alphabet %q differs from tier 4 alphabet %q", TierMax.Alphabet(), TierSymbols.Alphabet())
	}
	if len(TierMax.Classes()) != 4 {
		t.Fatalf("expected 4 classes at tier 5, got %d", len(TierMax.Classes()))
	}
}

func TestInvalidTierHasNoClasses(t *testing.T) {
	for _, tier := range []Tier{-1, 0, 6, 100} {
		if tier.Valid() {
			t.Errorf("tier %d should be invalid", tier)
		}
		if tier.Alphabet() != "" {
			t.Errorf("tier %d should have an empty alphabet", tier)
		}
	}
}

func TestSymbolsExcludeLettersAndDigits(t *testing.T) {
	if strings.ContainsAny(Symbols, LowercaseLetters+UppercaseLetters+Digits) {
		t.Fatalf("symbol set overlaps letters or digits: %q", Symbols)
	}
}
