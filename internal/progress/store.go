// Package progress owns the single mutable progress record. It is read once
// from the key-value store at Open, mutated copy-on-write, and written back
// in full after every change. Storage failures never reach the caller: a bad
// record loads as defaults and a failed write leaves the in-memory change in
// place.
package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/alexanderramin/coursetrack/internal/domain"
	"github.com/alexanderramin/coursetrack/internal/repository"
)

// DefaultKey is the storage key the record lives under.
const DefaultKey = "course-tracker-progress"

var (
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrEmptyText         = errors.New("text must not be empty")
)

// Store holds the live record. mu guards current; writeMu serializes whole
// updates so records reach the KV store in the order they were swapped in.
type Store struct {
	mu      sync.Mutex
	writeMu sync.Mutex
	kv      repository.KVStore
	key     string
	now     func() time.Time
	log     *zap.Logger
	onFail  func(op string, err error)
	current *domain.Progress
}

type Option func(*Store)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithClock sets the time source used for lastSaved, difficulty history and
// custom task ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithSaveFailureHook registers a callback invoked after a write fails.
func WithSaveFailureHook(fn func(op string, err error)) Option {
	return func(s *Store) {
		s.onFail = fn
	}
}

// Open loads the record under the configured key. A missing key, a read
// error or a malformed record all yield the default record.
func Open(ctx context.Context, kv repository.KVStore, opts ...Option) *Store {
	s := &Store{
		kv:  kv,
		key: DefaultKey,
		now: time.Now,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.current = s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) *domain.Progress {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("progress read failed, using defaults", zap.String("key", s.key), zap.Error(err))
		}
		return domain.NewProgress(s.now())
	}
	p, err := Decode(raw)
	if err != nil {
		s.log.Warn("progress record unreadable, using defaults", zap.String("key", s.key), zap.Error(err))
		return domain.NewProgress(s.now())
	}
	return p
}

// Decode parses and schema-checks a stored record.
func Decode(raw []byte) (*domain.Progress, error) {
	if err := validateRecord(raw); err != nil {
		return nil, err
	}
	var p domain.Progress
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	p.Normalize()
	return &p, nil
}

// Snapshot returns a deep copy of the current record.
func (s *Store) Snapshot() *domain.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Clone()
}

// Now exposes the store's clock.
func (s *Store) Now() time.Time {
	return s.now()
}

// update clones the current record, applies fn, stamps lastSaved, swaps the
// clone in and persists it. The swap happens before the write so a failed
// write never loses the change for the rest of the session. Readers only
// wait on mu, never on the write.
func (s *Store) update(ctx context.Context, op string, fn func(p *domain.Progress, now time.Time)) *domain.Progress {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	now := s.now()
	next := s.current.Clone()
	fn(next, now)
	next.LastSaved = domain.FormatTimestamp(now)
	s.current = next
	snapshot := next.Clone()
	s.mu.Unlock()

	s.persist(ctx, op, snapshot)
	return snapshot
}

func (s *Store) persist(ctx context.Context, op string, p *domain.Progress) {
	raw, err := json.Marshal(p)
	if err == nil {
		err = s.kv.Put(ctx, s.key, raw)
	}
	if err == nil {
		return
	}
	s.log.Warn("progress save failed", zap.String("op", op), zap.String("key", s.key), zap.Error(err))
	if s.onFail != nil {
		s.onFail(op, err)
	}
}

// ToggleTask flips the completion flag of a core or custom task id.
func (s *Store) ToggleTask(ctx context.Context, taskID string) bool {
	var done bool
	s.update(ctx, "toggle_task", func(p *domain.Progress, _ time.Time) {
		done = !p.CompletedTasks[taskID]
		p.CompletedTasks[taskID] = done
	})
	return done
}

// SetDifficulty rates a learning outcome and appends the instant to its
// history.
func (s *Store) SetDifficulty(ctx context.Context, loID string, level domain.Difficulty) error {
	if _, err := domain.ParseDifficulty(string(level)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDifficulty, err)
	}
	s.update(ctx, "set_difficulty", func(p *domain.Progress, now time.Time) {
		rate(p, loID, level, now)
	})
	return nil
}

func rate(p *domain.Progress, loID string, level domain.Difficulty, now time.Time) {
	rec := p.DifficultyLevels[loID]
	rec.Level = level
	rec.Dates = append(rec.Dates, domain.FormatTimestamp(now))
	p.DifficultyLevels[loID] = rec
}

// SaveNote stores the note for a week. An empty note is kept as an empty
// string, not removed.
func (s *Store) SaveNote(ctx context.Context, weekID, text string) {
	s.update(ctx, "save_note", func(p *domain.Progress, _ time.Time) {
		p.WeekNotes[weekID] = text
	})
}

// AddCustomTask appends a user task to a course week. Its id is
// "custom-<epoch millis>", bumped past any id already in use.
func (s *Store) AddCustomTask(ctx context.Context, courseID string, weekNumber int, text string) (domain.CustomTask, error) {
	if strings.TrimSpace(text) == "" {
		return domain.CustomTask{}, ErrEmptyText
	}
	var task domain.CustomTask
	s.update(ctx, "add_custom_task", func(p *domain.Progress, now time.Time) {
		task = domain.CustomTask{ID: nextCustomID(p, now), Text: text}
		key := domain.CustomTaskKey(courseID, weekNumber)
		p.CustomTasks[key] = append(p.CustomTasks[key], task)
	})
	return task, nil
}

func nextCustomID(p *domain.Progress, now time.Time) string {
	used := make(map[string]bool)
	for _, tasks := range p.CustomTasks {
		for _, t := range tasks {
			used[t.ID] = true
		}
	}
	ms := now.UnixMilli()
	for {
		id := fmt.Sprintf("custom-%d", ms)
		if !used[id] {
			return id
		}
		ms++
	}
}

// DeleteCustomTask removes a user task from a course week. Its completion
// entry, if any, stays in completedTasks. Unknown ids leave the list as is
// but the record is still rewritten. Reports whether a task was removed.
func (s *Store) DeleteCustomTask(ctx context.Context, courseID string, weekNumber int, taskID string) bool {
	var removed bool
	s.update(ctx, "delete_custom_task", func(p *domain.Progress, _ time.Time) {
		key := domain.CustomTaskKey(courseID, weekNumber)
		kept := make([]domain.CustomTask, 0, len(p.CustomTasks[key]))
		for _, t := range p.CustomTasks[key] {
			if t.ID == taskID {
				removed = true
				continue
			}
			kept = append(kept, t)
		}
		p.CustomTasks[key] = kept
	})
	return removed
}

// SetAssessmentDate overrides an assessment's date. The empty string clears
// the override back to the catalog date.
func (s *Store) SetAssessmentDate(ctx context.Context, assessmentID, date string) {
	s.update(ctx, "set_assessment_date", func(p *domain.Progress, _ time.Time) {
		p.AssessmentDates[assessmentID] = date
	})
}

// MarkDone completes every listed task and rates every listed outcome easy
// in a single write.
func (s *Store) MarkDone(ctx context.Context, taskIDs, loIDs []string) {
	s.update(ctx, "mark_done", func(p *domain.Progress, now time.Time) {
		for _, id := range taskIDs {
			p.CompletedTasks[id] = true
		}
		for _, id := range loIDs {
			rate(p, id, domain.DifficultyEasy, now)
		}
	})
}
