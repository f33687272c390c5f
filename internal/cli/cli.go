// Package cli is the command-line front end over the accounts, workouts,
// analytics and settings packages. It passes raw user strings through and
// leaves validation to the core.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"

	"example.com/fitlog/internal/analytics"
	"example.com/fitlog/internal/config"
	"example.com/fitlog/internal/domain"
	"example.com/fitlog/internal/interchange"
	"example.com/fitlog/internal/persistence/jsonfile"
	"example.com/fitlog/internal/settings"
)

// ErrUsage is returned for a missing or unknown command.
var ErrUsage = errors.New("usage")

// Env carries everything Run needs from the process.
type Env struct {
	Config config.Config
	Out    io.Writer
	Err    io.Writer
	In     io.Reader
	Logger zerolog.Logger
	Now    func() time.Time
}

type command struct {
	name    string
	summary string
	run     func(a *app, args []string) error
}

var commands = []command{
	{"register", "create an account", runRegister},
	{"login", "check credentials", runLogin},
	{"profile", "show or update the profile", runProfile},
	{"add", "log a workout", runAdd},
	{"edit", "change a logged workout", runEdit},
	{"delete", "remove a logged workout", runDelete},
	{"list", "list workouts", runList},
	{"today", "totals for one day", runToday},
	{"weekly", "calories for the last seven days", runWeekly},
	{"series", "chronological duration or calorie series", runSeries},
	{"export", "write workouts as CSV", runExport},
	{"import", "append workouts from CSV", runImport},
	{"settings", "show or change display settings", runSettings},
	{"types", "list workout categories", runTypes},
	{"calendar", "drive the date picker", runCalendar},
}

// Run parses the global flags, picks the command named by the first
// remaining argument and runs it. A -h request is not an error.
func Run(args []string, env Env) error {
	if env.Out == nil {
		env.Out = io.Discard
	}
	if env.Err == nil {
		env.Err = io.Discard
	}
	if env.In == nil {
		env.In = strings.NewReader("")
	}
	if env.Now == nil {
		env.Now = time.Now
	}

	global := flag.NewFlagSet("fitlog", flag.ContinueOnError)
	global.SetOutput(env.Err)
	dataFile := global.String("data", env.Config.DataFile, "accounts file")
	settingsFile := global.String("settings", env.Config.SettingsFile, "settings file")
	global.Usage = func() { usage(env.Err, global) }
	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	rest := global.Args()
	if len(rest) == 0 {
		global.Usage()
		return fmt.Errorf("%w: missing command", ErrUsage)
	}
	cmd, ok := lookup(rest[0])
	if !ok {
		return fmt.Errorf("%w: unknown command %q", ErrUsage, rest[0])
	}

	a := &app{
		out:          env.Out,
		errOut:       env.Err,
		in:           env.In,
		now:          env.Now,
		logger:       env.Logger.With().Str("command", cmd.name).Logger(),
		dataFile:     *dataFile,
		settingsFile: *settingsFile,
	}
	err := cmd.run(a, rest[1:])
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func usage(w io.Writer, global *flag.FlagSet) {
	fmt.Fprintln(w, "usage: fitlog [-data path] [-settings path] <command> [flags]")
	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, c := range commands {
		fmt.Fprintf(tw, "  %s\t%s\n", c.name, c.summary)
	}
	tw.Flush()
	fmt.Fprintln(w)
	global.PrintDefaults()
}

// app holds the stores for one invocation. They are opened on first use so
// commands such as types never touch the files.
type app struct {
	out          io.Writer
	errOut       io.Writer
	in           io.Reader
	now          func() time.Time
	logger       zerolog.Logger
	dataFile     string
	settingsFile string

	accounts *domain.Service
	settings *settings.Store
}

func (a *app) accountService() *domain.Service {
	if a.accounts == nil {
		repo := jsonfile.NewRepository(a.dataFile)
		a.accounts = domain.NewService(repo, domain.WithLogger(a.logger), domain.WithClock(a.now))
	}
	return a.accounts
}

func (a *app) settingsStore() *settings.Store {
	if a.settings == nil {
		a.settings = settings.NewStore(a.settingsFile, settings.WithLogger(a.logger))
	}
	return a.settings
}

func (a *app) engine() *analytics.Engine {
	return analytics.NewEngine(a.accountService())
}

func (a *app) interchange() *interchange.Service {
	return interchange.NewService(a.accountService(), a.now)
}

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

func (a *app) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

// credentials binds the -user and -password flags shared by per-user commands.
type credentials struct {
	user     string
	password string
}

func (c *credentials) bind(fs *flag.FlagSet) {
	fs.StringVar(&c.user, "user", "", "username")
	fs.StringVar(&c.password, "password", "", "password")
}

func (a *app) login(c credentials) (domain.Session, error) {
	session, err := a.accountService().Login(c.user, c.password)
	if err != nil {
		return domain.Session{}, err
	}
	a.logger.Debug().Str("username", session.Username).Msg("logged in")
	return session, nil
}

// day parses an optional -date flag, defaulting to today.
func (a *app) day(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return a.now(), nil
	}
	t, err := time.Parse(domain.DateLayout, raw)
	if err != nil {
		return time.Time{}, &domain.ValidationError{Field: "date", Reason: "must be a valid YYYY-MM-DD date"}
	}
	return t, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
