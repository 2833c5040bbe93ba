package domain

import (
	"fmt"
	"time"
)

// Progress is the single persisted record of everything the user can change.
// JSON names are the stored record's field names; changing them orphans saved progress.
type Progress struct {
	CompletedTasks   map[string]bool             `json:"completedTasks"`
	WeekNotes        map[string]string           `json:"weekNotes"`
	DifficultyLevels map[string]DifficultyRecord `json:"difficultyLevels"`
	CustomTasks      map[string][]CustomTask     `json:"customTasks"`
	AssessmentDates  map[string]string           `json:"assessmentDates"`
	LastSaved        string                      `json:"lastSaved"`
}

// DifficultyRecord is a self-rating plus the append-only history of the
// instants at which it was set.
type DifficultyRecord struct {
	Level Difficulty `json:"level"`
	Dates []string   `json:"dates"`
}

// CustomTask is a user-created task. Completed is kept for storage-shape
// compatibility only; completion is tracked in Progress.CompletedTasks.
type CustomTask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// NewProgress returns the all-empty default record.
func NewProgress(now time.Time) *Progress {
	return &Progress{
		CompletedTasks:   map[string]bool{},
		WeekNotes:        map[string]string{},
		DifficultyLevels: map[string]DifficultyRecord{},
		CustomTasks:      map[string][]CustomTask{},
		AssessmentDates:  map[string]string{},
		LastSaved:        FormatTimestamp(now),
	}
}

// CustomTaskKey is the customTasks map key for a course week.
func CustomTaskKey(courseID string, weekNumber int) string {
	return fmt.Sprintf("%s-w%d", courseID, weekNumber)
}

// FormatTimestamp renders an instant the way the record stores it.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// IsCompleted reports whether a task id is marked done. Absence means not done.
func (p *Progress) IsCompleted(taskID string) bool {
	return p.CompletedTasks[taskID]
}

// Difficulty returns the rated level, defaulting to hard.
func (p *Progress) Difficulty(loID string) Difficulty {
	if rec, ok := p.DifficultyLevels[loID]; ok && rec.Level != "" {
		return rec.Level
	}
	return DefaultDifficulty
}

// CustomTasksFor returns the user tasks attached to a course week.
func (p *Progress) CustomTasksFor(courseID string, weekNumber int) []CustomTask {
	return p.CustomTasks[CustomTaskKey(courseID, weekNumber)]
}

// Normalize replaces nil maps so readers and writers never need nil checks.
func (p *Progress) Normalize() {
	if p.CompletedTasks == nil {
		p.CompletedTasks = map[string]bool{}
	}
	if p.WeekNotes == nil {
		p.WeekNotes = map[string]string{}
	}
	if p.DifficultyLevels == nil {
		p.DifficultyLevels = map[string]DifficultyRecord{}
	}
	if p.CustomTasks == nil {
		p.CustomTasks = map[string][]CustomTask{}
	}
	if p.AssessmentDates == nil {
		p.AssessmentDates = map[string]string{}
	}
}

// Clone returns a deep copy.
func (p *Progress) Clone() *Progress {
	c := &Progress{
		CompletedTasks:   make(map[string]bool, len(p.CompletedTasks)),
		WeekNotes:        make(map[string]string, len(p.WeekNotes)),
		DifficultyLevels: make(map[string]DifficultyRecord, len(p.DifficultyLevels)),
		CustomTasks:      make(map[string][]CustomTask, len(p.CustomTasks)),
		AssessmentDates:  make(map[string]string, len(p.AssessmentDates)),
		LastSaved:        p.LastSaved,
	}
	for k, v := range p.CompletedTasks {
		c.CompletedTasks[k] = v
	}
	for k, v := range p.WeekNotes {
		c.WeekNotes[k] = v
	}
	for k, v := range p.DifficultyLevels {
		c.DifficultyLevels[k] = DifficultyRecord{
			Level: v.Level,
			Dates: append([]string(nil), v.Dates...),
		}
	}
	for k, v := range p.CustomTasks {
		c.CustomTasks[k] = append([]CustomTask{}, v...)
	}
	for k, v := range p.AssessmentDates {
		c.AssessmentDates[k] = v
	}
	return c
}
