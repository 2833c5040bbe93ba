package cli

import (
	"context"
	"fmt"
	"net/http"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/coursetrack/internal/service"
)

// Runner is a long-lived background job such as the alert scheduler.
type Runner interface {
	Run(ctx context.Context) error
}

// App holds everything CLI commands need.
type App struct {
	Tracker service.Tracker

	// Scheduler drives passive alerts for the watch command.
	Scheduler Runner
	// MetricsHandler is served on MetricsAddr by the watch command.
	MetricsHandler http.Handler
	MetricsAddr    string

	// IsInteractive reports whether prompts may be shown.
	IsInteractive func() bool
	// RunForm runs a huh form; tests replace it to fill fields directly.
	RunForm func(*huh.Form) error
	// RunProgram runs the dashboard; tests drive the model instead.
	RunProgram func(tea.Model) error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) runForm(f *huh.Form) error {
	if a.RunForm != nil {
		return a.RunForm(f)
	}
	return f.Run()
}

func (a *App) runProgram(m tea.Model) error {
	if a.RunProgram != nil {
		return a.RunProgram(m)
	}
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// NewRootCmd creates the top-level "coursetrack" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "coursetrack",
		Short:         "Track weekly course progress, mastery and deadlines",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return app.runProgram(newDashModel(cmd.Context(), app.Tracker))
			}
			return runOverview(cmd, app)
		},
	}

	root.AddCommand(
		newOverviewCmd(app),
		newCoursesCmd(app),
		newCourseCmd(app),
		newWeekCmd(app),
		newDeadlinesCmd(app),
		newWorkloadCmd(app),
		newTaskCmd(app),
		newLOCmd(app),
		newNoteCmd(app),
		newAssessmentCmd(app),
		newDoneCmd(app),
		newExportCmd(app),
		newWatchCmd(app),
		newDashCmd(app),
	)

	return root
}

func printOut(cmd *cobra.Command, s string) {
	fmt.Fprint(cmd.OutOrStdout(), s)
}
