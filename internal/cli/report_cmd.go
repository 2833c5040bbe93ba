package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/coursetrack/internal/cli/formatter"
)

func newOverviewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show term progress, mastery and upcoming deadlines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverview(cmd, app)
		},
	}
}

func runOverview(cmd *cobra.Command, app *App) error {
	v, err := app.Tracker.Overview(cmd.Context())
	if err != nil {
		return err
	}
	printOut(cmd, formatter.FormatOverview(v))
	return nil
}

func newCoursesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "courses",
		Short: "List courses with their weighted progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			courses, err := app.Tracker.Courses(cmd.Context())
			if err != nil {
				return err
			}
			printOut(cmd, formatter.FormatCourses(courses))
			return nil
		},
	}
}

func newCourseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "course <course-id>",
		Short: "Show a course's weeks and assessments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.Tracker.CourseDetail(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printOut(cmd, formatter.FormatCourseDetail(d))
			return nil
		},
	}
}

func newWeekCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "week <course-id> [week]",
		Short: "Show one course week (defaults to the current week)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := weekArg(cmd, app, args, 1)
			if err != nil {
				return err
			}
			w, err := app.Tracker.Week(cmd.Context(), args[0], n)
			if err != nil {
				return err
			}
			printOut(cmd, formatter.FormatWeek(w))
			return nil
		},
	}
}

func newDeadlinesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "deadlines",
		Short: "List upcoming exams and summative assessments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := app.Tracker.Deadlines(cmd.Context())
			if err != nil {
				return err
			}
			printOut(cmd, formatter.FormatDeadlines(items))
			return nil
		},
	}
}

func newWorkloadCmd(app *App) *cobra.Command {
	var week int

	cmd := &cobra.Command{
		Use:   "workload",
		Short: "Show what is still pending this week across courses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := app.Tracker.Workload(cmd.Context(), week)
			if err != nil {
				return err
			}
			printOut(cmd, formatter.FormatWorkload(v))
			return nil
		},
	}

	cmd.Flags().IntVar(&week, "week", 0, "Week number (default: current week)")

	return cmd
}

// weekArg reads the week number at args[i], falling back to the current
// week when it is absent.
func weekArg(cmd *cobra.Command, app *App, args []string, i int) (int, error) {
	if len(args) <= i {
		return app.Tracker.CurrentWeek(cmd.Context()), nil
	}
	n, err := strconv.Atoi(args[i])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid week %q: must be a positive number", args[i])
	}
	return n, nil
}
