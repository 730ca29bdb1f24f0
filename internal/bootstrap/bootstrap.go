package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	attendanceinadapter "classsign/internal/modules/attendance/adapter/in"
	attendanceoutadapter "classsign/internal/modules/attendance/adapter/out"
	"classsign/internal/modules/attendance/domain"
	attendanceout "classsign/internal/modules/attendance/port/out"
	attendanceusecase "classsign/internal/modules/attendance/usecase"
	sessioninadapter "classsign/internal/modules/session/adapter/in"
	sessionoutadapter "classsign/internal/modules/session/adapter/out"
	sessionservice "classsign/internal/modules/session/service"
	sessionusecase "classsign/internal/modules/session/usecase"
	"classsign/internal/platform/clock"
	"classsign/internal/platform/config"
	"classsign/internal/platform/iclass"
	"classsign/internal/platform/id"
	"classsign/internal/platform/logging"
	"classsign/internal/platform/pacing"
	uiapp "classsign/internal/ui/app"
)

type App struct {
	Config        config.Config
	Logger        zerolog.Logger
	SessionCLI    sessioninadapter.CLIHandler
	AttendanceCLI attendanceinadapter.CLIHandler

	closers []io.Closer
}

// New wires every module for one process. Diagnostics go to logOut.
func New(cfg config.Config, logOut io.Writer) (*App, error) {
	clk := clock.SystemClock{}
	logger := logging.New(logOut, cfg.LogLevel)

	client := iclass.New(iclass.Options{
		AuthBaseURL:    cfg.AuthBaseURL,
		CheckinBaseURL: cfg.CheckinBaseURL,
		Timeout:        cfg.RequestTimeout,
		Clock:          clk,
		Logger:         logger.With().Str("component", "iclass").Logger(),
	})

	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(sessionoutadapter.NewIClassAuthenticator(client)),
		sessionoutadapter.NewMemorySessionStore(),
	)

	app := &App{Config: cfg, Logger: logger}

	var ledger attendanceout.Ledger
	if cfg.LedgerPath != "" {
		sqliteLedger, err := attendanceoutadapter.NewSQLiteLedger(cfg.LedgerPath)
		if err != nil {
			return nil, fmt.Errorf("new check-in ledger: %w", err)
		}
		ledger = sqliteLedger
		app.closers = append(app.closers, sqliteLedger)
	}

	gateway := attendanceoutadapter.NewIClassGateway(client)
	attendanceUC := attendanceusecase.NewInteractor(attendanceusecase.Deps{
		Session:      sessionUC,
		Schedules:    gateway,
		Checkins:     gateway,
		Ledger:       ledger,
		CheckinPacer: pacing.New(cfg.CheckinInterval, clk, clk),
		BatchPacer:   pacing.New(cfg.BatchInterval, clk, clk),
		Semester:     domain.NewSemester(cfg.SemesterStartDate(), cfg.SemesterWeeks),
		Clock:        clk,
		IDGen:        id.UUID{},
		Logger:       logger.With().Str("component", "attendance").Logger(),
	})

	app.SessionCLI = sessioninadapter.NewCLIHandler(sessionUC)
	app.AttendanceCLI = attendanceinadapter.NewCLIHandler(attendanceUC)
	return app, nil
}

// Close discards the session and releases the ledger.
func (a *App) Close() error {
	errs := []error{a.SessionCLI.Logout(context.Background())}
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.AttendanceCLI, app.SessionCLI, app.Config.SemesterWeeks)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
