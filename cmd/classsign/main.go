package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/spf13/cobra"

	"classsign/internal/bootstrap"
	"classsign/internal/modules/attendance/dto"
	"classsign/internal/platform/config"
	"classsign/internal/platform/format"
	"classsign/internal/ui/prompt"
	"classsign/internal/ui/report"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	configFile string
	envFile    string
	studentID  string
	logLevel   string
	ledger     string
	output     string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "classsign",
		Short:         "Course attendance check-in tool",
		Long:          "Signs in to the course-scheduling service and checks in to a day, a date range, a teaching week, or every day until the term break.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMenu(cmd, flags)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "YAML config file")
	pf.StringVar(&flags.envFile, "env-file", ".env", "dotenv file with CLASSSIGN_* variables")
	pf.StringVar(&flags.studentID, "student-id", "", "student id used to log in")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug|info|warn|error")
	pf.StringVar(&flags.ledger, "ledger", "", "SQLite file recording check-in outcomes")
	pf.StringVarP(&flags.output, "output", "o", "text", "output format: text|json|yaml")

	root.AddCommand(newScheduleCmd(flags))
	root.AddCommand(newDayCmd(flags))
	root.AddCommand(newRangeCmd(flags))
	root.AddCommand(newScanCmd(flags))
	root.AddCommand(newWeekCmd(flags))
	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newHistoryCmd(flags))
	return root
}

func loadApp(cmd *cobra.Command, flags *globalFlags) (*bootstrap.App, error) {
	overrides := map[string]any{}
	pf := cmd.Flags()
	if pf.Changed("student-id") {
		overrides["student_id"] = flags.studentID
	}
	if pf.Changed("log-level") {
		overrides["log_level"] = flags.logLevel
	}
	if pf.Changed("ledger") {
		overrides["ledger_path"] = flags.ledger
	}
	cfg, err := config.New(config.Options{ConfigFile: flags.configFile, EnvFile: flags.envFile, Overrides: overrides})
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, cmd.ErrOrStderr())
}

// session loads the app and logs in, asking for the student id when none is
// configured.
func session(cmd *cobra.Command, flags *globalFlags, term *prompt.Terminal) (*bootstrap.App, error) {
	app, err := loadApp(cmd, flags)
	if err != nil {
		return nil, err
	}
	studentID := app.Config.StudentID
	if studentID == "" {
		var ok bool
		if studentID, ok = term.Ask("Student id"); !ok {
			_ = app.Close()
			return nil, fmt.Errorf("login canceled")
		}
	}
	out, err := app.SessionCLI.Login(cmd.Context(), studentID)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.Logger.Info().Str("student", out.StudentID).Msg("logged in")
	return app, nil
}

// terminal returns the presenter for a command. Structured output keeps
// stdout clean by sending progress to stderr.
func terminal(cmd *cobra.Command, f format.Format) *prompt.Terminal {
	var out io.Writer = cmd.OutOrStdout()
	if f != format.Text {
		out = cmd.ErrOrStderr()
	}
	return prompt.New(cmd.InOrStdin(), out)
}

func interruptible(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt)
}

func selectionFlags(cmd *cobra.Command, all *bool, course *int) {
	cmd.Flags().BoolVar(all, "all", false, "check in every course without asking")
	cmd.Flags().IntVar(course, "course", 0, "check in only the Nth course of each day (1-based)")
}

func presetSelection(all bool, course int) (*dto.Selection, error) {
	switch {
	case all && course != 0:
		return nil, fmt.Errorf("--all and --course are exclusive")
	case all:
		return &dto.Selection{Kind: dto.SelectAll}, nil
	case course != 0:
		return &dto.Selection{Kind: dto.SelectOne, Index: course}, nil
	default:
		return nil, nil
	}
}

type runFunc func(ctx context.Context, app *bootstrap.App, term *prompt.Terminal) (dto.RunSummary, error)

// runAndReport logs in, executes run, and prints its summary.
func runAndReport(cmd *cobra.Command, flags *globalFlags, run runFunc) error {
	f, err := format.Parse(flags.output)
	if err != nil {
		return err
	}
	term := terminal(cmd, f)
	ctx, stop := interruptible(cmd)
	defer stop()
	cmd.SetContext(ctx)

	app, err := session(cmd, flags, term)
	if err != nil {
		return err
	}
	defer app.Close()

	summary, err := run(ctx, app, term)
	if err != nil {
		return err
	}
	return report.Write(cmd.OutOrStdout(), f, summary, func(w io.Writer) { report.Summary(w, summary) })
}

func newScheduleCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule [YYYYMMDD]",
		Short: "Show one day's courses (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := format.Parse(flags.output)
			if err != nil {
				return err
			}
			app, err := session(cmd, flags, terminal(cmd, f))
			if err != nil {
				return err
			}
			defer app.Close()
			day, err := app.AttendanceCLI.Schedule(cmd.Context(), firstArg(args))
			if err != nil {
				return err
			}
			return report.Write(cmd.OutOrStdout(), f, day, func(w io.Writer) { report.Schedule(w, day) })
		},
	}
}

func newDayCmd(flags *globalFlags) *cobra.Command {
	var all bool
	var course int
	cmd := &cobra.Command{
		Use:   "day [YYYYMMDD]",
		Short: "Check in to one day's courses (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selection, err := presetSelection(all, course)
			if err != nil {
				return err
			}
			return runAndReport(cmd, flags, func(ctx context.Context, app *bootstrap.App, term *prompt.Terminal) (dto.RunSummary, error) {
				return app.AttendanceCLI.Day(ctx, firstArg(args), selection, term)
			})
		},
	}
	selectionFlags(cmd, &all, &course)
	return cmd
}

func newRangeCmd(flags *globalFlags) *cobra.Command {
	var all bool
	var course int
	cmd := &cobra.Command{
		Use:   "range <from YYYYMMDD> <to YYYYMMDD>",
		Short: "Check in day by day over a date range, asking before each next day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			selection, err := presetSelection(all, course)
			if err != nil {
				return err
			}
			return runAndReport(cmd, flags, func(ctx context.Context, app *bootstrap.App, term *prompt.Terminal) (dto.RunSummary, error) {
				return app.AttendanceCLI.Range(ctx, args[0], args[1], selection, term)
			})
		},
	}
	selectionFlags(cmd, &all, &course)
	return cmd
}

func newScanCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [from YYYYMMDD]",
		Short: "Check in every course from a date onward until a term break",
		Long:  "Walks forward one day at a time, checking in every course. Stops after 7 days in a row without courses, after 120 days, or when declined. Asks to continue after each day with courses and after every 5 empty days.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAndReport(cmd, flags, func(ctx context.Context, app *bootstrap.App, term *prompt.Terminal) (dto.RunSummary, error) {
				return app.AttendanceCLI.Scan(ctx, firstArg(args), term)
			})
		},
	}
}

func newWeekCmd(flags *globalFlags) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "week [n]",
		Short: "Check in every course of a teaching week (default the current week)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			week := 0
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("week must be a number: %q", args[0])
				}
				week = n
			}
			if !list {
				return runAndReport(cmd, flags, func(ctx context.Context, app *bootstrap.App, term *prompt.Terminal) (dto.RunSummary, error) {
					return app.AttendanceCLI.SignWeek(ctx, week, term)
				})
			}
			f, err := format.Parse(flags.output)
			if err != nil {
				return err
			}
			app, err := session(cmd, flags, terminal(cmd, f))
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.AttendanceCLI.Week(cmd.Context(), week)
			if err != nil {
				return err
			}
			return report.Write(cmd.OutOrStdout(), f, out, func(w io.Writer) { report.Week(w, out) })
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "only list the week's courses")
	return cmd
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse teaching weeks and check in from a terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := session(cmd, flags, prompt.New(cmd.InOrStdin(), cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(app)
		},
	}
}

func newHistoryCmd(flags *globalFlags) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded check-ins (requires --ledger)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := format.Parse(flags.output)
			if err != nil {
				return err
			}
			app, err := loadApp(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close()
			entries, err := app.AttendanceCLI.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return report.Write(cmd.OutOrStdout(), f, entries, func(w io.Writer) { report.History(w, entries) })
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of entries, 0 for all")
	return cmd
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
