package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"classsign/internal/bootstrap"
	"classsign/internal/modules/attendance/dto"
	apperrors "classsign/internal/platform/errors"
	"classsign/internal/platform/format"
	"classsign/internal/ui/prompt"
	"classsign/internal/ui/report"
)

var menuOptions = []string{
	"Check in to a single date",
	"Check in over a date range",
	"Check in continuously from a date",
	"Check in a whole teaching week",
	"Show a teaching week",
	"Quit",
}

// runMenu is the interactive loop used when no subcommand is given.
func runMenu(cmd *cobra.Command, flags *globalFlags) error {
	term := terminal(cmd, format.Text)
	ctx, stop := interruptible(cmd)
	defer stop()
	cmd.SetContext(ctx)

	term.Header("Course check-in")
	app, err := session(cmd, flags, term)
	if err != nil {
		return err
	}
	defer app.Close()

	for ctx.Err() == nil {
		term.Header("Course check-in")
		choice, ok := term.Menu(menuOptions)
		if !ok || choice == len(menuOptions) {
			return nil
		}
		if err := runMenuChoice(cmd, app, term, choice); err != nil {
			if errors.Is(err, apperrors.ErrAuth) {
				return err
			}
			term.Error(err)
			term.Pause()
		}
	}
	return nil
}

func runMenuChoice(cmd *cobra.Command, app *bootstrap.App, term *prompt.Terminal, choice int) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	handler := app.AttendanceCLI

	var (
		summary dto.RunSummary
		err     error
	)
	switch choice {
	case 1:
		date, ok := term.Ask("Date (YYYYMMDD, e.g. 20250924; q to go back)")
		if !ok {
			return nil
		}
		summary, err = handler.Day(ctx, date, nil, term)
	case 2:
		from, ok := term.Ask("Start date (YYYYMMDD)")
		if !ok {
			return nil
		}
		to, ok := term.Ask("End date (YYYYMMDD)")
		if !ok {
			return nil
		}
		summary, err = handler.Range(ctx, from, to, nil, term)
	case 3:
		from, ok := term.Ask("Start date (YYYYMMDD)")
		if !ok {
			return nil
		}
		summary, err = handler.Scan(ctx, from, term)
	case 4, 5:
		current := handler.CurrentWeek(ctx)
		answer, ok := term.Ask(fmt.Sprintf("Week (enter for current week %d)", current))
		if !ok {
			return nil
		}
		week := current
		if answer != "" {
			if week, err = strconv.Atoi(answer); err != nil {
				return fmt.Errorf("week must be a number: %w", apperrors.ErrInvalidInput)
			}
		}
		if choice == 5 {
			overview, err := handler.Week(ctx, week)
			if err != nil {
				return err
			}
			report.Week(out, overview)
			term.Pause()
			return nil
		}
		summary, err = handler.SignWeek(ctx, week, term)
	}
	if err != nil {
		return err
	}
	report.Summary(out, summary)
	term.Pause()
	return nil
}
