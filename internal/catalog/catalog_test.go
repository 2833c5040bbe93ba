package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_LoadsEmbeddedCurriculum(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "S1 2026", c.Term)
	assert.Equal(t, time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC), c.Start)
	require.Len(t, c.Courses, 6)
	for _, course := range c.Courses {
		assert.Len(t, course.Weeks, 14, "course %s", course.ID)
	}

	course, ok := c.Course("web")
	require.True(t, ok)
	assert.Equal(t, "web", course.ID)

	_, a, ok := c.Assessment("comm-a6")
	require.True(t, ok)
	assert.True(t, a.IsExam)
	assert.Equal(t, "2026-07-11", a.Date)
}

func TestDefault_IDsAreIndexed(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	course, week, ok := c.OutcomeWeek("prog-w1-lo1")
	require.True(t, ok)
	assert.Equal(t, "programming", course.ID)
	assert.Equal(t, 1, week.Number)

	course, week, ok = c.TaskWeek("web-w1-t1")
	require.True(t, ok)
	assert.Equal(t, "web", course.ID)
	assert.Equal(t, "web-w1", week.ID)

	_, week, ok = c.WeekByID("ict-w14")
	require.True(t, ok)
	assert.Equal(t, 14, week.Number)
}

func TestCatalog_LookupMisses(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	_, ok := c.Course("nope")
	assert.False(t, ok)

	course, week, ok := c.Week("math", 15)
	assert.False(t, ok)
	assert.NotNil(t, course)
	assert.Nil(t, week)

	_, _, ok = c.TaskWeek("custom-1")
	assert.False(t, ok)
	_, _, ok = c.Assessment("x")
	assert.False(t, ok)
}

const minimalCatalog = `
term: Test
start_date: '2026-02-09'
courses:
  - id: c1
    code: C101
    name: Course One
    weeks:
      - id: c1-w1
        number: 1
        title: Week One
        learning_outcomes:
          - {id: lo-1, text: Outcome}
        tasks:
          - {id: %s, text: Task}
`

func TestLoad_RejectsDuplicateItemIDs(t *testing.T) {
	// A task reusing a learning-outcome id would share its progress entry.
	_, err := Load(strings.NewReader(strings.Replace(minimalCatalog, "%s", "lo-1", 1)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateID))
}

func TestLoad_AcceptsUniqueIDs(t *testing.T) {
	c, err := Load(strings.NewReader(strings.Replace(minimalCatalog, "%s", "t-1", 1)))
	require.NoError(t, err)
	_, _, ok := c.TaskWeek("t-1")
	assert.True(t, ok)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing courses", "term: T\nstart_date: '2026-02-09'\n"},
		{"week out of range", strings.Replace(strings.Replace(minimalCatalog, "%s", "t-1", 1), "number: 1", "number: 15", 1)},
		{"bad start date", strings.Replace(strings.Replace(minimalCatalog, "%s", "t-1", 1), "'2026-02-09'", "'soon'", 1)},
		{"not yaml", "{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(strings.Replace(minimalCatalog, "%s", "t-1", 1)), 0644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Test", c.Term)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
