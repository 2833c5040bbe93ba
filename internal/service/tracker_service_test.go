package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/coursetrack/internal/catalog"
	"github.com/alexanderramin/coursetrack/internal/domain"
	"github.com/alexanderramin/coursetrack/internal/progress"
	"github.com/alexanderramin/coursetrack/internal/repository"
	"github.com/alexanderramin/coursetrack/internal/testutil"
)

func TestOverview_FreshRecord(t *testing.T) {
	f := setupTracker(t)

	view, err := f.tracker.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Fixture Term", view.Term)
	assert.Equal(t, 3, view.CurrentWeek)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), view.WeekEnd)
	assert.Equal(t, 4, view.DaysToWeekEnd)
	assert.Equal(t, 7, view.Stats.TotalTasks)
	assert.Equal(t, 0, view.Stats.TaskPercent)
	assert.Equal(t, 6, view.Stats.Mastery.Hard)
	require.Len(t, view.Courses, 2)
	assert.Equal(t, 5, view.Courses[0].Workload.TotalRemaining())

	ids := make([]string, 0, len(view.Deadlines))
	for _, d := range view.Deadlines {
		ids = append(ids, d.Assessment.ID)
	}
	assert.Equal(t, []string{"alg-exam", "alg-a1"}, ids)
	assert.Equal(t, "overview", f.events.last().Name)
}

func TestToggleTask_CoreAndCustom(t *testing.T) {
	f := setupTracker(t)
	ctx := context.Background()

	done, err := f.tracker.ToggleTask(ctx, "alg-w1-t1")
	require.NoError(t, err)
	assert.True(t, done)

	task, err := f.tracker.AddCustomTask(ctx, "alg", 3, "Extra reading")
	require.NoError(t, err)
	done, err = f.tracker.ToggleTask(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, done)

	p := snapshot(f)
	assert.True(t, p.IsCompleted("alg-w1-t1"))
	assert.True(t, p.IsCompleted(task.ID))
	assert.Equal(t, true, f.events.last().Fields["done"])
}

func TestToggleTask_UnknownID(t *testing.T) {
	f := setupTracker(t)

	_, err := f.tracker.ToggleTask(context.Background(), "nope")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, f.kv.Puts())
	last := f.events.last()
	assert.False(t, last.Success)
	assert.Equal(t, "toggle_task", last.Name)
}

func TestSetDifficulty(t *testing.T) {
	f := setupTracker(t)
	ctx := context.Background()

	require.NoError(t, f.tracker.SetDifficulty(ctx, "alg-w3-lo1", "Medium"))
	assert.Equal(t, domain.DifficultyMedium, snapshot(f).Difficulty("alg-w3-lo1"))

	err := f.tracker.SetDifficulty(ctx, "alg-w3-lo1", "trivial")
	assert.ErrorIs(t, err, progress.ErrInvalidDifficulty)

	err = f.tracker.SetDifficulty(ctx, "alg-w3-t1", "easy")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveNote(t *testing.T) {
	f := setupTracker(t)
	ctx := context.Background()

	require.NoError(t, f.tracker.SaveNote(ctx, "alg-w2", "ask about proofs"))
	week, err := f.tracker.Week(ctx, "alg", 2)
	require.NoError(t, err)
	assert.True(t, week.HasNote)
	assert.Equal(t, "ask about proofs", week.Note)

	assert.ErrorIs(t, f.tracker.SaveNote(ctx, "alg-w4", "x"), ErrNotFound)
}

func TestNote(t *testing.T) {
	f := setupTracker(t)
	ctx := context.Background()

	note, err := f.tracker.Note(ctx, "alg-w2")
	require.NoError(t, err)
	assert.Empty(t, note)

	require.NoError(t, f.tracker.SaveNote(ctx, "alg-w2", "ask about proofs"))
	note, err = f.tracker.Note(ctx, "alg-w2")
	require.NoError(t, err)
	assert.Equal(t, "ask about proofs", note)

	_, err = f.tracker.Note(ctx, "alg-w4")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddCustomTask_Validation(t *testing.T) {
	f := setupTracker(t)
	ctx := context.Background()

	_, err := f.tracker.AddCustomTask(ctx, "alg", 4, "recess week")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.tracker.AddCustomTask(ctx, "chem", 1, "x")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.tracker.AddCustomTask(ctx, "alg", 1, "  ")
	assert.ErrorIs(t, err, progress.ErrEmptyText)
	assert.Equal(t, 0, f.kv.Puts())
}

func TestDeleteCustomTask(t *testing.T) {
	f := setupTracker(t)
	ctx := context.Background()
	task, err := f.tracker.AddCustomTask(ctx, "bio", 3, "Write lab report")
	require.NoError(t, err)
	_, err = f.tracker.ToggleTask(ctx, task.ID)
	require.NoError(t, err)

	require.NoError(t, f.tracker.DeleteCustomTask(ctx, "bio", 3, task.ID))

	week, err := f.tracker.Week(ctx, "bio", 3)
	require.NoError(t, err)
	require.Len(t, week.Tasks, 1)
	assert.False(t, week.Tasks[0].Custom)
	assert.True(t, snapshot(f).CompletedTasks[task.ID])

	_, err = f.tracker.ToggleTask(ctx, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.tracker.DeleteCustomTask(ctx, "bio", 3, task.ID), ErrNotFound)
}

func TestSetAssessmentDate(t *testing.T) {
	f := setupTracker(t)
	ctx := context.Background()

	require.NoError(t, f.tracker.SetAssessmentDate(ctx, "bio-exam", "2026-03-04"))
	items, err := f.tracker.Deadlines(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, items)
	assert.Equal(t, "bio-exam", items[0].Assessment.ID)
	assert.Equal(t, 7, *items[0].DaysUntil)

	assert.ErrorIs(t, f.tracker.SetAssessmentDate(ctx, "bio-exam", "04/03/2026"), ErrInvalidDate)
	assert.ErrorIs(t, f.tracker.SetAssessmentDate(ctx, "nope", "2026-03-04"), ErrNotFound)

	require.NoError(t, f.tracker.SetAssessmentDate(ctx, "bio-exam", ""))
	items, err = f.tracker.Deadlines(ctx)
	require.NoError(t, err)
	for _, it := range items {
		assert.NotEqual(t, "bio-exam", it.Assessment.ID)
	}
}

func TestMarkWeekDone_SingleWriteOfPendingOnly(t *testing.T) {
	f := setupTracker(t)
	ctx := context.Background()
	_, err := f.tracker.ToggleTask(ctx, "alg-w3-t2")
	require.NoError(t, err)
	require.NoError(t, f.tracker.SetDifficulty(ctx, "alg-w3-lo2", "easy"))
	task, err := f.tracker.AddCustomTask(ctx, "alg", 3, "extra")
	require.NoError(t, err)
	before := f.kv.Puts()

	cleared, err := f.tracker.MarkWeekDone(ctx, "alg", 3)
	require.NoError(t, err)

	assert.Equal(t, before+1, f.kv.Puts())
	assert.Equal(t, []string{"alg-w3-t1", "alg-w3-t3", task.ID}, cleared.TaskIDs())
	assert.Equal(t, []string{"alg-w3-lo1"}, cleared.LOIDs())
	p := snapshot(f)
	assert.Len(t, p.DifficultyLevels["alg-w3-lo2"].Dates, 1)
	assert.Len(t, p.DifficultyLevels["alg-w3-lo1"].Dates, 1)

	week, err := f.tracker.Week(ctx, "alg", 3)
	require.NoError(t, err)
	assert.Equal(t, 100, week.Score.Percent)
	assert.Equal(t, 0, week.PendingCount())
}

func TestMarkWeekDone_NothingPendingSkipsWrite(t *testing.T) {
	f := setupTracker(t)

	cleared, err := f.tracker.MarkWeekDone(context.Background(), "alg", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, cleared.TotalRemaining())
	require.Equal(t, 1, f.kv.Puts())

	cleared, err = f.tracker.MarkWeekDone(context.Background(), "alg", 2)
	require.NoError(t, err)
	assert.True(t, cleared.Complete())
	assert.Equal(t, 1, f.kv.Puts())
}

func TestWorkload(t *testing.T) {
	f := setupTracker(t)
	ctx := context.Background()

	current, err := f.tracker.Workload(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, current.Week)
	assert.True(t, current.Current)
	assert.Equal(t, 6, current.Remaining())

	recess, err := f.tracker.Workload(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, recess.Remaining())
	assert.False(t, recess.Courses[0].HasWeek)

	_, err = f.tracker.Workload(ctx, 15)
	assert.ErrorIs(t, err, ErrInvalidWeek)
}

func TestCurrentWeekFollowsClock(t *testing.T) {
	f := setupTracker(t)
	ctx := context.Background()

	assert.Equal(t, 3, f.tracker.CurrentWeek(ctx))
	f.clock.Advance(7 * 24 * time.Hour)
	assert.Equal(t, 4, f.tracker.CurrentWeek(ctx))
}

func TestCourseDetail(t *testing.T) {
	f := setupTracker(t)
	ctx := context.Background()
	require.NoError(t, f.tracker.SetDifficulty(ctx, "alg-w1-lo1", "easy"))
	_, err := f.tracker.ToggleTask(ctx, "alg-w1-t1")
	require.NoError(t, err)

	detail, err := f.tracker.CourseDetail(ctx, "alg")
	require.NoError(t, err)

	require.Len(t, detail.Weeks, 4)
	assert.Equal(t, 67, detail.Weeks[0].Score.Percent)
	assert.True(t, detail.Weeks[2].Current)
	assert.True(t, detail.Weeks[0].Outcomes[0].Rated)
	assert.Equal(t, []string{"2026-02-25T10:00:00.000Z"}, detail.Weeks[0].Outcomes[0].History)
	require.Len(t, detail.Assessments, 3)
	assert.True(t, detail.Assessments[0].Critical)
	assert.True(t, detail.Assessments[0].Item.MissingDate())
	assert.False(t, detail.Assessments[1].Critical)

	_, err = f.tracker.CourseDetail(ctx, "chem")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJourney_DefaultCatalogSurvivesReopen(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	kv := repository.NewSQLiteKVStore(testutil.NewTestDB(t))
	clock := testutil.NewClock(time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	tracker := NewTrackerService(cat, progress.Open(ctx, kv, progress.WithClock(clock.Now)))
	_, err = tracker.ToggleTask(ctx, "web-w1-t1")
	require.NoError(t, err)
	_, err = tracker.MarkWeekDone(ctx, "math", 1)
	require.NoError(t, err)
	before, err := tracker.Overview(ctx)
	require.NoError(t, err)

	reopened := NewTrackerService(cat, progress.Open(ctx, kv, progress.WithClock(clock.Now)))
	after, err := reopened.Overview(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, after.CurrentWeek)
	assert.Equal(t, before.Stats, after.Stats)
	assert.Greater(t, after.Stats.Weighted.Percent, 0)
}
