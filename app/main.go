package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/pkg/errors"
	"github.com/umputun/go-flags"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/umputun/joblog/app/cmd"
	"github.com/umputun/joblog/app/render"
	"github.com/umputun/joblog/app/settings"
	"github.com/umputun/joblog/app/store"
)

type logOptions struct {
	Enabled         bool   `long:"enabled" env:"ENABLED" description:"enable logging"`
	Filename        string `long:"filename" env:"FILENAME" description:"file name for log, stderr if not set"`
	MaxSize         int    `long:"max-size" env:"MAX_SIZE" default:"10" description:"maximum size in megabytes before rotation"`
	MaxBackups      int    `long:"max-backups" env:"MAX_BACKUPS" default:"3" description:"maximum number of old log files to retain"`
	MaxAge          int    `long:"max-age" env:"MAX_AGE" default:"30" description:"maximum number of days to retain old log files"`
	EnabledCompress bool   `long:"compress" env:"COMPRESS" description:"compress rotated log files"`
}

type options struct {
	DBPath      string        `long:"db" env:"JOB_LOG_DB_PATH" default:"~/.job-log" description:"data directory with jobs.db"`
	BusyTimeout time.Duration `long:"busy-timeout" env:"JOB_LOG_BUSY_TIMEOUT" default:"5s" description:"database busy timeout"`
	NoColor     bool          `long:"no-color" description:"disable colors, also disabled by NO_COLOR env"`
	Dbg         bool          `long:"dbg" env:"JOB_LOG_DEBUG" description:"debug mode"`

	Log logOptions `group:"log" namespace:"log" env-namespace:"JOB_LOG_LOG"`

	AddCmd       cmd.AddCommand       `command:"add" description:"add a new job you're interested in"`
	ApplyCmd     cmd.ApplyCommand     `command:"apply" description:"record that you applied to a job"`
	AppURLCmd    cmd.AppURLCommand    `command:"app-url" description:"set the application tracking URL for a job"`
	UpdateCmd    cmd.UpdateCommand    `command:"update" description:"update fields on an existing job"`
	DeleteCmd    cmd.DeleteCommand    `command:"delete" description:"delete a job and all its events"`
	ResponseCmd  cmd.ResponseCommand  `command:"response" description:"record a response from a company"`
	InterviewCmd cmd.InterviewCommand `command:"interview" description:"add interview notes for a job"`
	StatusCmd    cmd.StatusCommand    `command:"status" description:"update the status of a job"`
	ListCmd      cmd.ListCommand      `command:"list" description:"list all tracked jobs"`
	SearchCmd    cmd.SearchCommand    `command:"search" description:"search for jobs by company or title"`
	ShowCmd      cmd.ShowCommand      `command:"show" description:"show detailed information about a job"`
	ReportCmd    cmd.ReportCommand    `command:"report" description:"show activity report for the last days"`
	ExportCmd    cmd.ExportCommand    `command:"export" description:"export jobs with timelines as yaml or json"`
}

var revision = "unknown"

func main() {
	if err := settings.LoadEnv(settings.DefaultDir); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

// run parses args and executes the command, returns process exit code
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	colors := func() bool { return !opts.NoColor && os.Getenv("NO_COLOR") == "" }

	p := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	p.Name = "job"
	p.ShortDescription = "track your job applications"

	p.CommandHandler = func(command flags.Commander, args []string) error {
		logOut := setupLogs(opts.Log, opts.Dbg, stderr)
		if closer, ok := logOut.(io.Closer); ok {
			defer func() { _ = closer.Close() }()
		}
		log.Printf("[DEBUG] job-log %s", revision)

		c, ok := command.(cmd.CommonOptionsCommander)
		if !ok {
			return command.Execute(args)
		}

		dbFile, err := settings.DBFile(opts.DBPath)
		if err != nil {
			return err
		}
		st, err := store.New(dbFile, opts.BusyTimeout)
		if err != nil {
			return errors.Wrap(err, "can't open database")
		}
		defer func() {
			if err := st.Close(); err != nil {
				log.Printf("[WARN] can't close database, %v", err)
			}
		}()

		c.SetCommon(cmd.CommonOpts{
			Context:  ctx,
			Store:    st,
			Renderer: render.New(stdout, colors()),
			In:       stdin,
			Out:      stdout,
		})
		return c.Execute(args)
	}

	if _, err := p.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) {
			if flagsErr.Type == flags.ErrHelp {
				fmt.Fprintln(stdout, flagsErr.Message)
				return 0
			}
			fmt.Fprintln(stderr, flagsErr.Message)
			return 2
		}
		var numErr *strconv.NumError
		if errors.As(err, &numErr) { // positional args conversion
			fmt.Fprintf(stderr, "invalid number %q\n", numErr.Num)
			return 2
		}
		render.New(stderr, colors()).Error("%v", err)
		return 1
	}
	return 0
}

// setupLogs configures lgr, returns the log destination
func setupLogs(lo logOptions, dbg bool, stderr io.Writer) io.Writer {
	if !lo.Enabled && !dbg {
		log.Setup(log.Out(io.Discard), log.Err(io.Discard))
		return io.Discard
	}

	var out io.Writer = stderr
	if lo.Filename != "" {
		out = &lumberjack.Logger{
			Filename:   lo.Filename,
			MaxSize:    lo.MaxSize,
			MaxBackups: lo.MaxBackups,
			MaxAge:     lo.MaxAge,
			Compress:   lo.EnabledCompress,
		}
	}

	if dbg {
		log.Setup(log.Out(out), log.Err(out), log.Debug, log.Msec, log.CallerFunc, log.CallerPkg, log.CallerFile)
		return out
	}
	log.Setup(log.Out(out), log.Err(out), log.Msec)
	return out
}
