package domain

import "time"

// Catalog is the read-only curriculum for one term.
type Catalog struct {
	Term      string   `yaml:"term" validate:"required"`
	StartDate string   `yaml:"start_date" validate:"required"`
	Courses   []Course `yaml:"courses" validate:"required,min=1,dive"`

	// Start is StartDate parsed at load time; week 1 begins here.
	Start time.Time `yaml:"-"`
}

type Course struct {
	ID               string       `yaml:"id" validate:"required"`
	Code             string       `yaml:"code" validate:"required"`
	Name             string       `yaml:"name" validate:"required"`
	URL              string       `yaml:"url" validate:"omitempty,url"`
	Color            string       `yaml:"color"`
	LearningOutcomes []string     `yaml:"learning_outcomes"`
	Weeks            []Week       `yaml:"weeks" validate:"dive"`
	Assessments      []Assessment `yaml:"assessments" validate:"dive"`
}

// Week is one teaching week. Number runs 1..14; recess weeks leave a gap in
// the date ranges, and a course may omit a number entirely.
type Week struct {
	ID               string            `yaml:"id" validate:"required"`
	Number           int               `yaml:"number" validate:"min=1,max=14"`
	Title            string            `yaml:"title" validate:"required"`
	DateRange        string            `yaml:"date_range"`
	Description      string            `yaml:"description"`
	LearningOutcomes []LearningOutcome `yaml:"learning_outcomes" validate:"dive"`
	Tasks            []Task            `yaml:"tasks" validate:"dive"`
}

type LearningOutcome struct {
	ID   string `yaml:"id" validate:"required"`
	Text string `yaml:"text" validate:"required"`
}

// Task is a catalog-defined ("core") task. Its completion lives in Progress.
type Task struct {
	ID   string `yaml:"id" validate:"required"`
	Text string `yaml:"text" validate:"required"`
}

// Assessment is a graded item. Weight is display-only and Date may be a
// placeholder such as "End of Week 8".
type Assessment struct {
	ID          string   `yaml:"id" validate:"required"`
	Name        string   `yaml:"name" validate:"required"`
	Description string   `yaml:"description"`
	Weight      string   `yaml:"weight"`
	AlignedLOs  []string `yaml:"aligned_los"`
	Date        string   `yaml:"date"`
	Time        string   `yaml:"time"`
	Venue       string   `yaml:"venue"`
	IsExam      bool     `yaml:"is_exam"`
}

// FindWeek returns the course week with the given number.
func (c *Course) FindWeek(number int) (*Week, bool) {
	for i := range c.Weeks {
		if c.Weeks[i].Number == number {
			return &c.Weeks[i], true
		}
	}
	return nil, false
}
