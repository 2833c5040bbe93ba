// Package export writes the tracker's reports to an XLSX workbook.
package export

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/alexanderramin/coursetrack/internal/deadline"
	"github.com/alexanderramin/coursetrack/internal/service"
)

const (
	SheetOverview  = "Overview"
	SheetCourses   = "Courses"
	SheetDeadlines = "Deadlines"
	SheetWorkload  = "Workload"
)

// Source is the read side of the tracker.
type Source interface {
	Overview(ctx context.Context) (*service.OverviewView, error)
	Workload(ctx context.Context, week int) (*service.WorkloadView, error)
}

type sheetWriter struct {
	f    *excelize.File
	bold int
}

// Build assembles the workbook. The caller closes it.
func Build(ctx context.Context, src Source) (*excelize.File, error) {
	overview, err := src.Overview(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading overview: %w", err)
	}
	workload, err := src.Workload(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("loading workload: %w", err)
	}

	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating header style: %w", err)
	}
	w := &sheetWriter{f: f, bold: bold}

	if err := f.SetSheetName("Sheet1", SheetOverview); err != nil {
		f.Close()
		return nil, fmt.Errorf("naming overview sheet: %w", err)
	}
	steps := []func() error{
		func() error { return w.overview(overview) },
		func() error { return w.courses(overview) },
		func() error { return w.deadlines(overview.Deadlines) },
		func() error { return w.workload(workload) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// Write builds the workbook and streams it to out.
func Write(ctx context.Context, src Source, out io.Writer) error {
	f, err := Build(ctx, src)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// WriteFile builds the workbook and saves it at path.
func WriteFile(ctx context.Context, src Source, path string) error {
	f, err := Build(ctx, src)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

func (w *sheetWriter) sheet(name string, header []any, rows [][]any) error {
	if name != SheetOverview {
		if _, err := w.f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
	}
	if err := w.f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("writing %s header: %w", name, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := w.f.SetCellStyle(name, "A1", last, w.bold); err != nil {
		return fmt.Errorf("styling %s header: %w", name, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := w.f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", name, i+2, err)
		}
	}
	lastCol, _, err := excelize.SplitCellName(last)
	if err != nil {
		return err
	}
	return w.f.SetColWidth(name, "A", lastCol, 18)
}

func (w *sheetWriter) overview(v *service.OverviewView) error {
	s := v.Stats
	rows := [][]any{
		{"Term", v.Term},
		{"Current week", v.CurrentWeek},
		{"Week ends", v.WeekEnd.Format("2006-01-02")},
		{"Tasks completed", fmt.Sprintf("%d/%d", s.CompletedTasks, s.TotalTasks)},
		{"Task progress %", s.TaskPercent},
		{"Weighted progress %", s.Weighted.Percent},
		{"Mastery %", s.Mastery.Score},
		{"Outcomes easy", s.Mastery.Easy},
		{"Outcomes medium", s.Mastery.Medium},
		{"Outcomes hard", s.Mastery.Hard},
		{"Last saved", s.LastSaved},
	}
	return w.sheet(SheetOverview, []any{"Metric", "Value"}, rows)
}

func (w *sheetWriter) courses(v *service.OverviewView) error {
	rows := make([][]any, 0, len(v.Courses))
	for _, c := range v.Courses {
		rows = append(rows, []any{
			c.Course.Code,
			c.Course.Name,
			c.Score.Percent,
			fmt.Sprintf("%d/%d", c.Score.CompletedTasks, c.Score.TotalTasks),
			c.Score.EarnedLO,
			c.Score.TotalLOs,
			c.Workload.TotalRemaining(),
			c.Course.URL,
		})
	}
	header := []any{"Code", "Course", "Progress %", "Tasks", "LO earned", "LOs", "Remaining this week", "Link"}
	return w.sheet(SheetCourses, header, rows)
}

func (w *sheetWriter) deadlines(items []deadline.CriticalItem) error {
	rows := make([][]any, 0, len(items))
	for _, it := range items {
		date, days := "no date", ""
		switch {
		case it.InvalidDate():
			date = it.DisplayDate + " (unrecognised)"
		case it.Date != nil:
			date = it.DisplayDate
			days = fmt.Sprint(*it.DaysUntil)
		}
		rows = append(rows, []any{
			it.CourseCode,
			it.Assessment.Name,
			it.Assessment.Weight,
			date,
			days,
			it.Assessment.IsExam,
		})
	}
	return w.sheet(SheetDeadlines, []any{"Code", "Assessment", "Weight", "Date", "Days left", "Exam"}, rows)
}

func (w *sheetWriter) workload(v *service.WorkloadView) error {
	var rows [][]any
	for _, c := range v.Courses {
		for _, t := range c.PendingTasks {
			kind := "task"
			if t.Custom {
				kind = "custom task"
			}
			rows = append(rows, []any{v.Week, c.CourseCode, kind, t.Text})
		}
		for _, lo := range c.PendingLOs {
			rows = append(rows, []any{v.Week, c.CourseCode, "outcome", lo.Text})
		}
	}
	return w.sheet(SheetWorkload, []any{"Week", "Code", "Kind", "Item"}, rows)
}
