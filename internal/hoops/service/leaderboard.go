package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/hoops/internal/hoops/domain"
	"github.com/aussiebroadwan/hoops/internal/hoops/store"
	"github.com/aussiebroadwan/hoops/pkg/hoopsdk"
	"github.com/aussiebroadwan/hoops/pkg/idx"
	"github.com/aussiebroadwan/hoops/pkg/slogx"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrEntryNotFound = errors.New("entry not found")
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ValidationError lists the offending fields. It matches ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", ErrValidation, e.Fields)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

type SubmitScore struct {
	Name     string
	Score    int64
	MaxCombo int64
}

type LeaderboardService struct {
	Store store.Store

	// Now stamps new entries. Defaults to time.Now.
	Now func() time.Time
}

func (s *LeaderboardService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Submit validates and records a score. The field rules are the ones the
// SDK applies to a SubmitScoreRequest.
func (s *LeaderboardService) Submit(ctx context.Context, in SubmitScore) (domain.Entry, error) {
	req := hoopsdk.SubmitScoreRequest{Name: in.Name, Score: &in.Score, MaxCombo: &in.MaxCombo}
	if fields := req.Validate(); fields != nil {
		return domain.Entry{}, &ValidationError{Fields: fields}
	}
	name := strings.TrimSpace(in.Name)

	now := s.now().UTC()
	e := domain.Entry{
		ID:        idx.NewAt(now).String(),
		Name:      name,
		Score:     in.Score,
		MaxCombo:  in.MaxCombo,
		Timestamp: now.UnixMilli(),
		CreatedAt: now,
	}
	if err := s.Store.Entries().CreateEntry(ctx, e); err != nil {
		return domain.Entry{}, fmt.Errorf("service: create entry: %w", err)
	}

	slogx.FromContext(ctx).Info("score submitted",
		slog.String("entry_id", e.ID),
		slog.Int64("score", e.Score),
	)
	return e, nil
}

// Top returns the best entries. A zero limit means DefaultLimit.
func (s *LeaderboardService) Top(ctx context.Context, limit int) ([]domain.Entry, error) {
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 || limit > MaxLimit {
		return nil, &ValidationError{Fields: map[string]string{
			"limit": fmt.Sprintf("must be between 1 and %d", MaxLimit),
		}}
	}

	entries, err := s.Store.Entries().ListTopEntries(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("service: list entries: %w", err)
	}
	return entries, nil
}

// Get returns one entry. An id that is not a ULID cannot exist and reports
// ErrEntryNotFound without a query.
func (s *LeaderboardService) Get(ctx context.Context, id string) (domain.Entry, error) {
	parsed, err := idx.Parse(id)
	if err != nil {
		return domain.Entry{}, ErrEntryNotFound
	}
	e, err := s.Store.Entries().GetEntryByID(ctx, parsed.String())
	if errors.Is(err, store.ErrNotFound) {
		return domain.Entry{}, ErrEntryNotFound
	}
	if err != nil {
		return domain.Entry{}, fmt.Errorf("service: get entry: %w", err)
	}
	return e, nil
}

func (s *LeaderboardService) Delete(ctx context.Context, id string) error {
	parsed, err := idx.Parse(id)
	if err != nil {
		return ErrEntryNotFound
	}
	err = s.Store.Entries().DeleteEntry(ctx, parsed.String())
	if errors.Is(err, store.ErrNotFound) {
		return ErrEntryNotFound
	}
	if err != nil {
		return fmt.Errorf("service: delete entry: %w", err)
	}
	slogx.FromContext(ctx).Info("entry deleted", slog.String("entry_id", id))
	return nil
}
