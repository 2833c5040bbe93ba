package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/coursetrack/internal/cli/formatter"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Complete, add and remove tasks",
	}

	cmd.AddCommand(
		newTaskToggleCmd(app),
		newTaskAddCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func newTaskToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <task-id>",
		Short: "Flip a task between done and not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			done, err := app.Tracker.ToggleTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			state := "not done"
			if done {
				state = formatter.StyleGreen.Render("done")
			}
			printOut(cmd, fmt.Sprintf("%s is now %s\n", args[0], state))
			return nil
		},
	}
}

func newTaskAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <course-id> <week> [text...]",
		Short: "Add your own task to a course week",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			week, err := weekArg(cmd, app, args, 1)
			if err != nil {
				return err
			}

			text := strings.Join(args[2:], " ")
			if text == "" {
				if !app.interactive() {
					return fmt.Errorf("task text is required")
				}
				if err := app.runForm(taskTextForm(&text)); err != nil {
					return err
				}
			}

			t, err := app.Tracker.AddCustomTask(cmd.Context(), args[0], week, text)
			if err != nil {
				return err
			}
			printOut(cmd, fmt.Sprintf("Added %s to %s week %d: %s\n", formatter.Dim(t.ID), args[0], week, t.Text))
			return nil
		},
	}
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <course-id> <week> <task-id>",
		Aliases: []string{"remove"},
		Short:   "Remove one of your own tasks",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			week, err := weekArg(cmd, app, args, 1)
			if err != nil {
				return err
			}
			if err := app.Tracker.DeleteCustomTask(cmd.Context(), args[0], week, args[2]); err != nil {
				return err
			}
			printOut(cmd, fmt.Sprintf("Removed %s\n", args[2]))
			return nil
		},
	}
}
