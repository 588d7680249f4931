// Package session holds the state of one generator session: the length and
// tier being edited, the current password and the copy indicator.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/doeshing/passgen-go/internal/domain"
	"github.com/doeshing/passgen-go/internal/ports"
)

// Options seeds a Session from configuration.
type Options struct {
	Length         int
	Tier           domain.Tier
	RecordHistory  bool
	CopyOnGenerate bool
}

// Session drives generation, history and clipboard for a single user.
type Session struct {
	Generator ports.PasswordGenerator
	History   ports.HistoryRepository
	Clipboard ports.Clipboard
	Indicator ports.CopyIndicator
	Logger    ports.Logger

	RecordHistory  bool
	CopyOnGenerate bool

	Length   int
	Tier     domain.Tier
	Password string
}

// New builds a Session. history, clipboard, indicator and log may be nil.
func New(gen ports.PasswordGenerator, history ports.HistoryRepository, clipboard ports.Clipboard, indicator ports.CopyIndicator, log ports.Logger, opts Options) *Session {
	tier := opts.Tier
	if !tier.Valid() {
		tier = domain.DefaultTier
	}
	return &Session{
		Generator:      gen,
		History:        history,
		Clipboard:      clipboard,
		Indicator:      indicator,
		Logger:         log,
		RecordHistory:  opts.RecordHistory,
		CopyOnGenerate: opts.CopyOnGenerate,
		Length:         opts.Length,
		Tier:           tier,
		Password:       domain.InitialPassword,
	}
}

// SetLengthInput applies the raw text of the length field.
func (s *Session) SetLengthInput(input string) {
	s.Length = domain.ParseLengthInput(input, s.Length)
}

// SetTier moves the tier slider. Values outside 1..5 are rejected.
func (s *Session) SetTier(tier domain.Tier) error {
	if !tier.Valid() {
		return &domain.InvalidTierError{Tier: tier}
	}
	s.Tier = tier
	return nil
}

// Submit generates a password for the current length and tier and records it.
// History and clipboard problems are reported as warnings on the result.
func (s *Session) Submit(ctx context.Context) (domain.GenerateResult, error) {
	req := domain.GenerationRequest{Length: s.Length, Tier: s.Tier}
	result := domain.GenerateResult{Request: req}

	if s.Generator == nil {
		return result, errors.New("password generator not configured")
	}
	password, err := s.Generator.Generate(req)
	if err != nil {
		return result, err
	}
	s.Password = password
	result.Password = password
	s.debug("password generated", map[string]interface{}{
		"length": req.Length,
		"tier":   int(req.Tier),
	})

	if s.RecordHistory && s.History != nil {
		list, err := s.History.Append(ctx, password)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("history not saved: %v", err))
			s.warn("history append failed", err)
		} else {
			result.History = list
			result.Recorded = true
		}
	}
	result.Warnings = append(result.Warnings, s.Warnings()...)

	if s.CopyOnGenerate {
		if err := s.Copy(ctx); err != nil {
			result.Warnings = append(result.Warnings, err.Error())
		} else {
			result.Copied = true
		}
	}
	return result, nil
}

// Copy puts the current password on the clipboard and shows the indicator.
func (s *Session) Copy(ctx context.Context) error {
	if err := s.copyText(ctx, s.Password); err != nil {
		return err
	}
	if s.Indicator != nil {
		s.Indicator.Show()
	}
	return nil
}

// CopyHistory copies the history entry at index (0-based) and returns it.
func (s *Session) CopyHistory(ctx context.Context, index int) (string, error) {
	list, err := s.historyList(ctx)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(list) {
		return "", fmt.Errorf("%w: %d of %d", domain.ErrHistoryIndex, index+1, len(list))
	}
	password := list[index]
	if err := s.copyText(ctx, password); err != nil {
		return "", err
	}
	return password, nil
}

// Dismiss hides the copy indicator ahead of its timer.
func (s *Session) Dismiss() {
	if s.Indicator != nil {
		s.Indicator.Dismiss()
	}
}

// ListHistory returns the stored list.
func (s *Session) ListHistory(ctx context.Context) (domain.HistoryList, error) {
	return s.historyList(ctx)
}

// ClearHistory empties the stored list.
func (s *Session) ClearHistory(ctx context.Context) error {
	if s.History == nil {
		return errors.New("history not configured")
	}
	if err := s.History.Clear(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Copied reports whether the copy indicator is currently shown.
func (s *Session) Copied() bool {
	return s.Indicator != nil && s.Indicator.Visible()
}

// Warnings lists non-fatal storage problems seen so far.
func (s *Session) Warnings() []string {
	degradable, ok := s.History.(interface{ Degraded() error })
	if !ok {
		return nil
	}
	if err := degradable.Degraded(); err != nil {
		return []string{err.Error()}
	}
	return nil
}

func (s *Session) historyList(ctx context.Context) (domain.HistoryList, error) {
	if s.History == nil {
		return domain.HistoryList{}, nil
	}
	list, err := s.History.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return list, nil
}

func (s *Session) copyText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.Clipboard == nil || !s.Clipboard.Enabled() {
		return domain.ErrClipboardUnavailable
	}
	if err := s.Clipboard.Copy(text); err != nil {
		if errors.Is(err, domain.ErrClipboardUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrClipboardUnavailable, err)
	}
	return nil
}

func (s *Session) debug(msg string, fields map[string]interface{}) {
	if s.Logger != nil {
		s.Logger.Debug(msg, fields)
	}
}

func (s *Session) warn(msg string, err error) {
	if s.Logger != nil {
		s.Logger.Warn(msg, map[string]interface{}{"error": err.Error()})
	}
}
