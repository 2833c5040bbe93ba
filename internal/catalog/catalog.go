// Package catalog loads the term's fixed curriculum: courses, weeks, learning
// outcomes, tasks and assessments.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/coursetrack/internal/domain"
)

//go:embed data/courses.yaml
var embedded []byte

// ErrDuplicateID is returned when two learning outcomes or tasks share an id.
// Progress is keyed by these ids, so a collision would merge unrelated state.
var ErrDuplicateID = errors.New("duplicate catalog id")

const startDateLayout = "2006-01-02"

// Catalog wraps the parsed curriculum with id indexes.
type Catalog struct {
	domain.Catalog

	courses     map[string]*domain.Course
	weeks       map[string]weekRef
	tasks       map[string]weekRef
	outcomes    map[string]weekRef
	assessments map[string]assessmentRef
}

type weekRef struct {
	course *domain.Course
	week   *domain.Week
}

type assessmentRef struct {
	course     *domain.Course
	assessment *domain.Assessment
}

// Default returns the embedded curriculum.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(embedded))
}

// LoadFile reads a curriculum YAML file from disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses, validates and indexes a curriculum document.
func Load(r io.Reader) (*Catalog, error) {
	var raw domain.Catalog
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	if err := validator.New().Struct(raw); err != nil {
		return nil, fmt.Errorf("validating catalog: %w", err)
	}

	start, err := time.Parse(startDateLayout, raw.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing start_date %q: %w", raw.StartDate, err)
	}
	raw.Start = start

	return New(raw)
}

// New indexes an already-parsed curriculum. Start must be set.
func New(raw domain.Catalog) (*Catalog, error) {
	c := &Catalog{Catalog: raw}
	if err := c.index(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) index() error {
	c.courses = make(map[string]*domain.Course, len(c.Courses))
	c.weeks = map[string]weekRef{}
	c.tasks = map[string]weekRef{}
	c.outcomes = map[string]weekRef{}
	c.assessments = map[string]assessmentRef{}

	// Tasks and learning outcomes share one key space in the progress record.
	itemIDs := map[string]string{}

	for i := range c.Courses {
		course := &c.Courses[i]
		if _, dup := c.courses[course.ID]; dup {
			return fmt.Errorf("course %q: %w", course.ID, ErrDuplicateID)
		}
		c.courses[course.ID] = course

		for j := range course.Weeks {
			week := &course.Weeks[j]
			if _, dup := c.weeks[week.ID]; dup {
				return fmt.Errorf("week %q: %w", week.ID, ErrDuplicateID)
			}
			ref := weekRef{course: course, week: week}
			c.weeks[week.ID] = ref

			for _, lo := range week.LearningOutcomes {
				if prev, dup := itemIDs[lo.ID]; dup {
					return fmt.Errorf("learning outcome %q (already used by %s): %w", lo.ID, prev, ErrDuplicateID)
				}
				itemIDs[lo.ID] = week.ID
				c.outcomes[lo.ID] = ref
			}
			for _, t := range week.Tasks {
				if prev, dup := itemIDs[t.ID]; dup {
					return fmt.Errorf("task %q (already used by %s): %w", t.ID, prev, ErrDuplicateID)
				}
				itemIDs[t.ID] = week.ID
				c.tasks[t.ID] = ref
			}
		}

		for k := range course.Assessments {
			a := &course.Assessments[k]
			if _, dup := c.assessments[a.ID]; dup {
				return fmt.Errorf("assessment %q: %w", a.ID, ErrDuplicateID)
			}
			c.assessments[a.ID] = assessmentRef{course: course, assessment: a}
		}
	}
	return nil
}

// Course looks up a course by id.
func (c *Catalog) Course(id string) (*domain.Course, bool) {
	course, ok := c.courses[id]
	return course, ok
}

// Week looks up a course week by number. Recess gaps report false.
func (c *Catalog) Week(courseID string, number int) (*domain.Course, *domain.Week, bool) {
	course, ok := c.courses[courseID]
	if !ok {
		return nil, nil, false
	}
	week, ok := course.FindWeek(number)
	if !ok {
		return course, nil, false
	}
	return course, week, true
}

// WeekByID looks up a week by its id (the weekNotes key).
func (c *Catalog) WeekByID(id string) (*domain.Course, *domain.Week, bool) {
	ref, ok := c.weeks[id]
	return ref.course, ref.week, ok
}

// TaskWeek returns the course and week that own a core task.
func (c *Catalog) TaskWeek(taskID string) (*domain.Course, *domain.Week, bool) {
	ref, ok := c.tasks[taskID]
	return ref.course, ref.week, ok
}

// OutcomeWeek returns the course and week that own a learning outcome.
func (c *Catalog) OutcomeWeek(loID string) (*domain.Course, *domain.Week, bool) {
	ref, ok := c.outcomes[loID]
	return ref.course, ref.week, ok
}

// Assessment looks up an assessment and its course.
func (c *Catalog) Assessment(id string) (*domain.Course, *domain.Assessment, bool) {
	ref, ok := c.assessments[id]
	return ref.course, ref.assessment, ok
}
