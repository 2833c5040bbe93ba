package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/coursetrack/internal/domain"
	"github.com/alexanderramin/coursetrack/internal/testutil"
)

func emptyProgress() *domain.Progress {
	return domain.NewProgress(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
}

func TestWeekScore_EmptyWeekIsZero(t *testing.T) {
	week := testutil.NewTestWeek("c1", 1, 0, 0)

	s := WeekScore("c1", &week, emptyProgress())

	assert.Equal(t, 0, s.TotalWeight())
	assert.Equal(t, 0, s.Percent)
}

func TestWeekScore_NothingDoneIsZero(t *testing.T) {
	week := testutil.NewTestWeek("c1", 1, 3, 2)

	assert.Equal(t, 0, WeekScore("c1", &week, emptyProgress()).Percent)
}

func TestWeekScore_CountsCustomTasks(t *testing.T) {
	week := testutil.NewTestWeek("c1", 2, 1, 0)
	p := emptyProgress()
	p.CustomTasks[domain.CustomTaskKey("c1", 2)] = []domain.CustomTask{{ID: "custom-1", Text: "x"}}
	p.CompletedTasks["custom-1"] = true

	s := WeekScore("c1", &week, p)

	assert.Equal(t, 2, s.TotalTasks)
	assert.Equal(t, 1, s.CompletedTasks)
	assert.Equal(t, 50, s.Percent)
}

func TestWeekScore_IgnoresOtherWeeksCustomTasks(t *testing.T) {
	week := testutil.NewTestWeek("c1", 2, 1, 0)
	p := emptyProgress()
	p.CustomTasks[domain.CustomTaskKey("c1", 3)] = []domain.CustomTask{{ID: "custom-1", Text: "x"}}

	assert.Equal(t, 1, WeekScore("c1", &week, p).TotalTasks)
}

func TestWeekScore_CompletedVestigialFlagIsIgnored(t *testing.T) {
	week := testutil.NewTestWeek("c1", 1, 0, 0)
	p := emptyProgress()
	p.CustomTasks[domain.CustomTaskKey("c1", 1)] = []domain.CustomTask{{ID: "custom-1", Text: "x", Completed: true}}

	assert.Equal(t, 0, WeekScore("c1", &week, p).Percent)
}

// One week: 2 tasks (1 done), 2 LOs (one medium, one unrated). Second week:
// 1 task done. Earned 1 + 0.5 + 0 + 1 = 2.5 of 5.
func TestCourseScore_MixedWeights(t *testing.T) {
	course := testutil.NewTestCourse("c1", testutil.WithWeeks(
		testutil.NewTestWeek("c1", 1, 2, 2),
		testutil.NewTestWeek("c1", 2, 1, 0),
	))
	p := emptyProgress()
	p.CompletedTasks["c1-w1-t1"] = true
	p.CompletedTasks["c1-w2-t1"] = true
	p.DifficultyLevels["c1-w1-lo1"] = domain.DifficultyRecord{Level: domain.DifficultyMedium}

	s := CourseScore(&course, p)

	assert.Equal(t, 3, s.TotalTasks)
	assert.Equal(t, 2, s.CompletedTasks)
	assert.Equal(t, 2, s.TotalLOs)
	assert.InDelta(t, 0.5, s.EarnedLO, 1e-9)
	assert.Equal(t, 50, s.Percent)
}

// Week A: 2 tasks (1 done), 1 LO easy. Week B: no tasks, 2 LOs hard.
// (1 + 1 + 0 + 0) / 5 = 40.
func TestCourseScore_Scenario(t *testing.T) {
	course := testutil.NewTestCourse("c1", testutil.WithWeeks(
		testutil.NewTestWeek("c1", 1, 2, 1),
		testutil.NewTestWeek("c1", 2, 0, 2),
	))
	p := emptyProgress()
	p.CompletedTasks["c1-w1-t1"] = true
	p.DifficultyLevels["c1-w1-lo1"] = domain.DifficultyRecord{Level: domain.DifficultyEasy}
	p.DifficultyLevels["c1-w2-lo1"] = domain.DifficultyRecord{Level: domain.DifficultyHard}

	assert.Equal(t, 40, CourseScore(&course, p).Percent)
}

func TestCourseScore_HardNeverIncreases(t *testing.T) {
	course := testutil.NewTestCourse("c1", testutil.WithWeeks(testutil.NewTestWeek("c1", 1, 1, 2)))
	p := emptyProgress()
	p.DifficultyLevels["c1-w1-lo1"] = domain.DifficultyRecord{Level: domain.DifficultyMedium}
	before := CourseScore(&course, p).EarnedWeight()

	p.DifficultyLevels["c1-w1-lo1"] = domain.DifficultyRecord{Level: domain.DifficultyHard}
	p.DifficultyLevels["c1-w1-lo2"] = domain.DifficultyRecord{Level: domain.DifficultyHard}

	assert.LessOrEqual(t, CourseScore(&course, p).EarnedWeight(), before)
}

func TestPercent_RoundsHalfUp(t *testing.T) {
	assert.Equal(t, 0, Percent(0, 0))
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 67, Percent(2, 3))
	assert.Equal(t, 13, Percent(1, 8))
	assert.Equal(t, 100, Percent(4, 4))
}

func TestGlobalScore_SumsAllCourses(t *testing.T) {
	courses := []domain.Course{
		testutil.NewTestCourse("a", testutil.WithWeeks(testutil.NewTestWeek("a", 1, 2, 0))),
		testutil.NewTestCourse("b", testutil.WithWeeks(testutil.NewTestWeek("b", 1, 2, 0))),
	}
	p := emptyProgress()
	p.CompletedTasks["a-w1-t1"] = true

	s := GlobalScore(courses, p)

	assert.Equal(t, 4, s.TotalTasks)
	assert.Equal(t, 1, s.CompletedTasks)
	assert.Equal(t, 25, s.Percent)
}

func TestScore_MonotoneUnderCompletionAndRating(t *testing.T) {
	course := testutil.NewTestCourse("c1", testutil.WithWeeks(testutil.NewTestWeek("c1", 1, 4, 4)))
	p := emptyProgress()
	prev := CourseScore(&course, p).EarnedWeight()

	steps := []func(){
		func() { p.CompletedTasks["c1-w1-t1"] = true },
		func() { p.DifficultyLevels["c1-w1-lo1"] = domain.DifficultyRecord{Level: domain.DifficultyMedium} },
		func() { p.DifficultyLevels["c1-w1-lo1"] = domain.DifficultyRecord{Level: domain.DifficultyEasy} },
		func() { p.CompletedTasks["c1-w1-t4"] = true },
	}
	for i, step := range steps {
		step()
		cur := CourseScore(&course, p).EarnedWeight()
		assert.Greater(t, cur, prev, "step %d", i)
		prev = cur
	}
}

func TestMastery_SingleEasyOfN(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7} {
		course := testutil.NewTestCourse("c1", testutil.WithWeeks(testutil.NewTestWeek("c1", 1, 0, n)))
		p := emptyProgress()
		p.DifficultyLevels["c1-w1-lo1"] = domain.DifficultyRecord{Level: domain.DifficultyEasy}

		m := Mastery([]domain.Course{course}, p)

		assert.Equal(t, n, m.Total)
		assert.Equal(t, 1, m.Easy)
		assert.Equal(t, n-1, m.Hard)
		assert.Equal(t, Percent(100, float64(n*100)), m.Score)
	}
}

func TestMastery_NoOutcomes(t *testing.T) {
	course := testutil.NewTestCourse("c1", testutil.WithWeeks(testutil.NewTestWeek("c1", 1, 2, 0)))

	m := Mastery([]domain.Course{course}, emptyProgress())

	assert.Equal(t, MasteryStats{}, m)
}

func TestOverview_TaskOnlyAndWeighted(t *testing.T) {
	course := testutil.NewTestCourse("c1", testutil.WithWeeks(testutil.NewTestWeek("c1", 1, 2, 2)))
	p := emptyProgress()
	p.CompletedTasks["c1-w1-t1"] = true
	p.DifficultyLevels["c1-w1-lo1"] = domain.DifficultyRecord{Level: domain.DifficultyMedium}

	o := Overview([]domain.Course{course}, p)

	require.Equal(t, 2, o.TotalTasks)
	assert.Equal(t, 1, o.CompletedTasks)
	assert.Equal(t, 50, o.TaskPercent)
	assert.Equal(t, 38, o.Weighted.Percent)
	assert.Equal(t, 1, o.Mastery.Medium)
	assert.Equal(t, 25, o.Mastery.Score)
	assert.Equal(t, p.LastSaved, o.LastSaved)
}
