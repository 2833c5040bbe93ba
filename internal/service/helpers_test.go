package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/coursetrack/internal/catalog"
	"github.com/alexanderramin/coursetrack/internal/domain"
	"github.com/alexanderramin/coursetrack/internal/progress"
	"github.com/alexanderramin/coursetrack/internal/repository"
	"github.com/alexanderramin/coursetrack/internal/testutil"
)

// Week 3 of the fixture term.
var fixtureNow = time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC)

type fixture struct {
	tracker Tracker
	store   *progress.Store
	kv      *testutil.FailingKVStore
	clock   *testutil.Clock
	events  *recordingObserver
}

func fixtureCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	alg := testutil.NewTestCourse("alg",
		testutil.WithWeeks(
			testutil.NewTestWeek("alg", 1, 2, 1),
			testutil.NewTestWeek("alg", 2, 0, 2),
			testutil.NewTestWeek("alg", 3, 3, 2),
			testutil.NewTestWeek("alg", 5, 1, 1),
		),
		testutil.WithAssessments(
			testutil.NewTestAssessment("alg-a1", "Summative Assessment 1", testutil.WithDate("End of Week 5")),
			testutil.NewTestAssessment("alg-a2", "Problem set"),
			testutil.NewTestAssessment("alg-exam", "Final Exam", testutil.AsExam(), testutil.WithDate("2026-06-10")),
		),
	)
	bio := testutil.NewTestCourse("bio",
		testutil.WithWeeks(testutil.NewTestWeek("bio", 3, 1, 0)),
		testutil.WithAssessments(
			testutil.NewTestAssessment("bio-exam", "Lab Exam", testutil.AsExam(), testutil.WithDate("2026-02-01")),
		),
	)
	cat, err := catalog.New(testutil.NewTestCatalog(alg, bio))
	require.NoError(t, err)
	return cat
}

func setupTracker(t *testing.T) *fixture {
	t.Helper()
	kv := &testutil.FailingKVStore{Inner: repository.NewSQLiteKVStore(testutil.NewTestDB(t))}
	clock := testutil.NewClock(fixtureNow)
	store := progress.Open(context.Background(), kv, progress.WithClock(clock.Now))
	events := &recordingObserver{}
	return &fixture{
		tracker: NewTrackerService(fixtureCatalog(t), store, events),
		store:   store,
		kv:      kv,
		clock:   clock,
		events:  events,
	}
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

func snapshot(f *fixture) *domain.Progress {
	return f.store.Snapshot()
}
