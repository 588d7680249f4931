package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidLength        = errors.New("invalid length")
	ErrInvalidTier          = errors.New("invalid tier")
	ErrStorageUnavailable   = errors.New("storage unavailable")
	ErrCorruptHistory       = errors.New("corrupt history")
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
	ErrHistoryIndex         = errors.New("history index out of range")
)

// InvalidLengthError rejects negative lengths and lengths above the configured maximum.
type InvalidLengthError struct {
	Length int
	Max    int
}

func (e *InvalidLengthError) Error() string {
	if e.Length < 0 {
		return fmt.Sprintf("invalid length %d: must be >= 0", e.Length)
	}
	return fmt.Sprintf("invalid length %d: must be <= %d", e.Length, e.Max)
}

func (e *InvalidLengthError) Is(target error) bool {
	return target == ErrInvalidLength
}

// InvalidTierError rejects tiers outside [MinTier, MaxTier].
type InvalidTierError struct {
	Tier Tier
}

func (e *InvalidTierError) Error() string {
	return fmt.Sprintf("invalid tier %d: must be between %d and %d", e.Tier, MinTier, MaxTier)
}

func (e *InvalidTierError) Is(target error) bool {
	return target == ErrInvalidTier
}

// StorageUnavailableError reports a persistence backend that could not be used.
// It is non-fatal: history falls back to memory.
type StorageUnavailableError struct {
	Backend string
	Err     error
}

func (e *StorageUnavailableError) Error() string {
	return fmt.Sprintf("%s storage unavailable: %v", e.Backend, e.Err)
}

func (e *StorageUnavailableError) Unwrap() error {
	return e.Err
}

func (e *StorageUnavailableError) Is(target error) bool {
	return target == ErrStorageUnavailable
}
