package domain

import "strings"

// Tier selects which character classes make up a password alphabet.
type Tier int

const (
	TierLower   Tier = 1
	TierMixed   Tier = 2
	TierDigits  Tier = 3
	TierSymbols Tier = 4
	// TierMax adds no class of its own; symbols are the ceiling.
	TierMax Tier = 5
)

// MinTier and MaxTier bound the accepted tier values.
const (
	MinTier = TierLower
	MaxTier = TierMax
)

// Character classes, in the order they are unlocked.
const (
	LowercaseLetters = "abcdefghijklmnopqrstuvwxyz"
	UppercaseLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits           = "0123456789"
	Symbols          = "!@#$%^&*()<>,.?/[]{}-=_+|/"
)

// CharacterClass is a named set of characters unlocked at a given tier.
type CharacterClass struct {
	Name    string
	Chars   string
	MinTier Tier
}

var characterClasses = []CharacterClass{
	{Name: "lowercase", Chars: LowercaseLetters, MinTier: TierLower},
	{Name: "uppercase", Chars: UppercaseLetters, MinTier: TierMixed},
	{Name: "digits", Chars: Digits, MinTier: TierDigits},
	{Name: "symbols", Chars: Symbols, MinTier: TierSymbols},
}

// Valid reports whether t lies in [MinTier, MaxTier].
func (t Tier) Valid() bool {
	return t >= MinTier && t <= MaxTier
}

// Classes returns the character classes enabled at t. Invalid tiers enable nothing.
func (t Tier) Classes() []CharacterClass {
	if !t.Valid() {
		return nil
	}
	var classes []CharacterClass
	for _, class := range characterClasses {
		if t >= class.MinTier {
			classes = append(classes, class)
		}
	}
	return classes
}

// Alphabet returns the union of all characters enabled at t.
func (t Tier) Alphabet() string {
	var b strings.Builder
	for _, class := range t.Classes() {
		b.WriteString(class.Chars)
	}
	return b.String()
}

// Strategy names a password generation algorithm.
type Strategy string

const (
	// StrategyClassic draws length characters per class, shuffles the buffer and cuts a random window.
	StrategyClassic Strategy = "classic"
	// StrategyDirect draws every position uniformly from the combined alphabet.
	StrategyDirect Strategy = "direct"
)

// GenerationRequest describes a single password to produce.
type GenerationRequest struct {
	Length int
	Tier   Tier
}
