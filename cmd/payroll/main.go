/*
main.go - Application entry point

PURPOSE:
  Runs the payroll tool: interactive entry, reports, exports and the HTTP
  server, all over the same ledger and store.

COMMANDS:
  enter    (default) Enter records until "end", then print a report
  report   Print a report of stored records
  export   Write a report as csv, xlsx or pdf
  serve    Run the HTTP API
  import   Copy a flat file into the SQLite store

STARTUP SEQUENCE:
  1. Load .env, then environment config
  2. Parse the command's flags (flags override the environment)
  3. Validate config and build the logger
  4. Open the store and, if AMQP_URL is set, the notifier
  5. Run the command

COMMON FLAGS:
  -backend  file, sqlite or memory (PAYROLL_BACKEND)
  -file     Flat file path (PAYROLL_FILE, default payroll.txt)
  -db       SQLite path (PAYROLL_SQLITE_PATH, default payroll.db)

GRACEFUL SHUTDOWN:
  serve only: on SIGINT/SIGTERM the server stops accepting connections and waits up to
  30s for active requests before the store is closed.

EXAMPLES:
  ./payroll
  ./payroll report -date=01/01/2024
  ./payroll export -format=xlsx -out=january.xlsx -contains=01/15/2024
  ./payroll serve -backend=sqlite -port=3000
  ./payroll import -backend=sqlite -from=payroll.txt

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Environment keys
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/warp/payroll/api"
	"github.com/warp/payroll/config"
	"github.com/warp/payroll/display"
	"github.com/warp/payroll/export"
	"github.com/warp/payroll/logging"
	"github.com/warp/payroll/notify"
	"github.com/warp/payroll/payroll"
	"github.com/warp/payroll/prompt"
	"github.com/warp/payroll/session"
	"github.com/warp/payroll/store"
	"github.com/warp/payroll/store/file"
	"github.com/warp/payroll/store/sqlite"
)

// Only serve traps SIGINT/SIGTERM. Interactive commands keep the default
// behavior so Ctrl-C stops a session blocked on input.
func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "payroll:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	config.LoadEnvFile()
	cfg := config.Load()

	cmd := "enter"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "enter":
		return runEnter(ctx, cfg, args, stdin, stdout)
	case "report":
		return runReport(ctx, cfg, args, stdout)
	case "export":
		return runExport(ctx, cfg, args)
	case "serve":
		return runServe(ctx, cfg, args)
	case "import":
		return runImport(ctx, cfg, args)
	default:
		return fmt.Errorf("unknown command %q (want enter, report, export, serve or import)", cmd)
	}
}

// =============================================================================
// WIRING
// =============================================================================

// app holds what every command needs once flags are parsed.
type app struct {
	cfg     *config.Config
	log     *logging.Logger
	store   payroll.Store
	ledger  *payroll.Ledger
	closers []func() error
}

func newFlagSet(name string, cfg *config.Config) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "Storage backend: file, sqlite or memory")
	fs.StringVar(&cfg.FilePath, "file", cfg.FilePath, "Flat file path")
	fs.StringVar(&cfg.SQLitePath, "db", cfg.SQLitePath, "SQLite database path")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	return fs
}

func setup(cfg *config.Config) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	logCfg.Format = cfg.LogFormat
	log := logging.New(logCfg)

	s, cleanup, err := store.Open(cfg, log)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log, store: s, closers: []func() error{cleanup}}

	opts := []payroll.Option{payroll.WithLogger(log)}
	if cfg.AMQPURL != "" {
		pub, err := notify.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey, log)
		if err != nil {
			// Records still persist without a broker.
			log.Warn("AMQP unavailable, continuing without notifications",
				logging.FieldComponent, logging.ComponentNotify,
				logging.FieldError, err.Error())
		} else {
			opts = append(opts, payroll.WithNotifier(pub))
			a.closers = append(a.closers, pub.Close)
		}
	}

	a.ledger = payroll.NewLedger(s, opts...)
	return a, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("Cleanup failed", logging.FieldError, err.Error())
		}
	}
}

// reportFlags registers -date, -contains and -all on fs.
type reportFlags struct {
	date     string
	contains string
	all      bool
}

func (rf *reportFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&rf.date, "date", "", "Only records whose from date is exactly this date")
	fs.StringVar(&rf.contains, "contains", "", "Only records whose period contains this date")
	fs.BoolVar(&rf.all, "all", false, "Every record (the default)")
}

func (rf *reportFlags) filter() (payroll.Filter, error) {
	switch {
	case rf.all:
		return payroll.All(), nil
	case rf.contains != "":
		d, ok := payroll.NormalizeDate(rf.contains)
		if !ok {
			return payroll.Filter{}, fmt.Errorf("invalid -contains date %q (want mm/dd/yyyy)", rf.contains)
		}
		return payroll.Containing(d), nil
	case rf.date != "":
		d, _ := payroll.NormalizeDate(rf.date)
		return payroll.ExactDate(d), nil
	default:
		return payroll.All(), nil
	}
}

// =============================================================================
// COMMANDS
// =============================================================================

func runEnter(ctx context.Context, cfg *config.Config, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := newFlagSet("enter", cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}
	a, err := setup(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	runner := &session.Runner{
		Prompter: prompt.New(stdin, stdout),
		Ledger:   a.ledger,
		Out:      display.NewConsole(stdout),
		Log:      a.log,
	}
	return runner.Run(ctx)
}

func runReport(ctx context.Context, cfg *config.Config, args []string, stdout io.Writer) error {
	fs := newFlagSet("report", cfg)
	var rf reportFlags
	rf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	filter, err := rf.filter()
	if err != nil {
		return err
	}
	a, err := setup(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	rep, err := a.ledger.Report(ctx, filter)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}
	display.NewConsole(stdout).Report(rep)
	return nil
}

func runExport(ctx context.Context, cfg *config.Config, args []string) (err error) {
	fs := newFlagSet("export", cfg)
	var rf reportFlags
	rf.register(fs)
	formatName := fs.String("format", "csv", "Output format: csv, xlsx or pdf")
	out := fs.String("out", "", "Output path (default payroll-report.<format>)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	format, err := export.ParseFormat(*formatName)
	if err != nil {
		return err
	}
	filter, err := rf.filter()
	if err != nil {
		return err
	}
	path := *out
	if path == "" {
		path = format.Filename()
	}

	a, err := setup(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	rep, err := a.ledger.Report(ctx, filter)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := export.Write(f, format, rep); err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}

	a.log.Info("Report exported",
		logging.FieldOperation, logging.OpExport,
		logging.FieldPath, path,
		logging.FieldFilter, filter.String(),
		logging.FieldCount, rep.Totals.Count)
	return nil
}

func runServe(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("serve", cfg)
	fs.StringVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	if err := fs.Parse(args); err != nil {
		return err
	}
	a, err := setup(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	handler := api.NewHandler(a.ledger, a.log)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.NewRouter(handler, cfg.CORSOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := a.log.WithComponent(logging.ComponentHTTP)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Server starting",
			logging.FieldOperation, logging.OpStartup,
			logging.FieldAddr, server.Addr,
			logging.FieldBackend, cfg.Backend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server", logging.FieldOperation, logging.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		log.Info("Server stopped")
		return nil
	})

	return g.Wait()
}

func runImport(ctx context.Context, cfg *config.Config, args []string) error {
	fs := newFlagSet("import", cfg)
	from := fs.String("from", "", "Flat file to import (default: -file)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cfg.Backend != config.BackendSQLite {
		return fmt.Errorf("import needs -backend=%s, got %q", config.BackendSQLite, cfg.Backend)
	}
	src := *from
	if src == "" {
		src = cfg.FilePath
	}

	a, err := setup(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	db, ok := a.store.(*sqlite.Store)
	if !ok {
		return fmt.Errorf("store is %T, not SQLite", a.store)
	}

	lines, err := file.New(src).ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}
	n, err := db.Import(ctx, lines)
	if err != nil {
		return fmt.Errorf("import %s: %w", src, err)
	}

	a.log.Info("Import finished",
		logging.FieldPath, src,
		logging.FieldCount, n,
		logging.FieldSkipped, len(lines)-n)
	return nil
}
