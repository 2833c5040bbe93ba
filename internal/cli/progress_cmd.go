package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/coursetrack/internal/cli/formatter"
	"github.com/alexanderramin/coursetrack/internal/domain"
)

func newLOCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lo",
		Short: "Rate learning outcomes",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "rate <outcome-id> [easy|medium|hard]",
		Short: "Record how well you know a learning outcome",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var level string
			if len(args) == 2 {
				level = args[1]
			} else {
				if !app.interactive() {
					return fmt.Errorf("difficulty is required: easy, medium or hard")
				}
				if err := app.runForm(difficultyForm(&level)); err != nil {
					return err
				}
			}

			if err := app.Tracker.SetDifficulty(cmd.Context(), args[0], level); err != nil {
				return err
			}
			badge := formatter.DifficultyBadge(domain.Difficulty(strings.ToLower(level)))
			printOut(cmd, fmt.Sprintf("%s rated %s\n", args[0], badge))
			return nil
		},
	})

	return cmd
}

func newNoteCmd(app *App) *cobra.Command {
	var clearValue bool

	cmd := &cobra.Command{
		Use:   "note <week-id> [text...]",
		Short: "Save a note for a course week",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args[1:], " ")
			if text == "" && !clearValue {
				if !app.interactive() {
					return fmt.Errorf("note text is required (use --clear to empty the note)")
				}
				existing, err := app.Tracker.Note(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				text = existing
				if err := app.runForm(noteForm(args[0], &text)); err != nil {
					return err
				}
			}

			if err := app.Tracker.SaveNote(cmd.Context(), args[0], text); err != nil {
				return err
			}
			printOut(cmd, fmt.Sprintf("Saved note for %s\n", args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearValue, "clear", false, "Save an empty note")

	return cmd
}

func newAssessmentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assessment",
		Short: "Manage assessment due dates",
	}

	var clearValue bool
	dateCmd := &cobra.Command{
		Use:   "date <assessment-id> [YYYY-MM-DD]",
		Short: "Override an assessment's due date",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var date string
			switch {
			case len(args) == 2:
				date = args[1]
			case clearValue:
			case app.interactive():
				if err := app.runForm(dueDateForm(&date)); err != nil {
					return err
				}
			default:
				return fmt.Errorf("date is required (use --clear to remove the override)")
			}

			if err := app.Tracker.SetAssessmentDate(cmd.Context(), args[0], date); err != nil {
				return err
			}
			if date == "" {
				printOut(cmd, fmt.Sprintf("Cleared date override for %s\n", args[0]))
			} else {
				printOut(cmd, fmt.Sprintf("%s is due %s\n", args[0], date))
			}
			return nil
		},
	}
	dateCmd.Flags().BoolVar(&clearValue, "clear", false, "Remove the date override")

	cmd.AddCommand(dateCmd)

	return cmd
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <course-id> [week]",
		Short: "Mark every pending task and outcome in a week as done",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			week, err := weekArg(cmd, app, args, 1)
			if err != nil {
				return err
			}
			cleared, err := app.Tracker.MarkWeekDone(cmd.Context(), args[0], week)
			if err != nil {
				return err
			}
			if cleared.Complete() {
				printOut(cmd, fmt.Sprintf("%s week %d: nothing pending\n", args[0], week))
				return nil
			}
			printOut(cmd, fmt.Sprintf("%s week %d: completed %s and %s\n", args[0], week,
				formatter.Plural(len(cleared.PendingTasks), "task"),
				formatter.Plural(len(cleared.PendingLOs), "outcome")))
			return nil
		},
	}
}
