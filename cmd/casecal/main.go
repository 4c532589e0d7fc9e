package main

import (
	"path/filepath"
	"strings"
	_ "time/tzdata"

	"github.com/alecthomas/kong"

	"github.com/cleftcare/casecal/internal/cli"
	"github.com/cleftcare/casecal/internal/cli/cases"
	"github.com/cleftcare/casecal/internal/cli/drafts"
	"github.com/cleftcare/casecal/internal/cli/settings"
	"github.com/cleftcare/casecal/internal/cli/system"
	"github.com/cleftcare/casecal/internal/constants"
	apperrors "github.com/cleftcare/casecal/internal/errors"
	"github.com/cleftcare/casecal/internal/fixtures"
	"github.com/cleftcare/casecal/internal/logger"
	"github.com/cleftcare/casecal/internal/models"
	"github.com/cleftcare/casecal/internal/storage"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Draft store path (.db for SQLite, .json for a JSON file)." type:"path" default:"${default_config}" env:"CASECAL_CONFIG"`
	Fixtures string `help:"Case fixture file (JSON array). Defaults to the bundled sample data." type:"path" env:"CASECAL_FIXTURES"`
	Timezone string `help:"Override the configured IANA time zone for this run." env:"CASECAL_TIMEZONE"`
	Today    string `help:"Pretend today is this day (YYYY-MM-DD)." env:"CASECAL_TODAY"`
	Debug    bool   `help:"Log debug output to stderr." env:"CASECAL_DEBUG"`
	LogLevel string `help:"Log level (debug|info|warn|error)." env:"CASECAL_LOG_LEVEL"`

	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive calendar." default:"1"`
	Calendar cases.CalendarCmd    `cmd:"" help:"Print a month calendar with per-day case counts."`
	List     cases.ListCmd        `cmd:"" help:"List cases."`
	Draft    drafts.DraftCmd      `cmd:"" help:"Manage saved drafts."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Init     system.InitCmd       `cmd:"" help:"Initialize casecal storage."`
	Migrate  system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Calendar and case list for clinic scheduling screens"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(kong.JSON, "~/.config/casecal/config.json"),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
		},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		Level:     CLI.LogLevel,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		apperrors.Fatal(err)
	}

	store := storage.NewProvider(CLI.Config)
	appCtx, err := newContext(store, ctx.Command())
	if err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()

	logger.Debug("starting", "command", ctx.Command(), "store", CLI.Config, "today", appCtx.Today.Format(constants.DateFormat))
	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}

// newContext loads settings and case data for command. init runs against
// default settings since the store may not exist yet.
func newContext(store storage.Provider, command string) (*cli.Context, error) {
	cfg := models.DefaultSettings()
	if command != "init" {
		loaded, err := cli.LoadSettings(store)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if needsStore(command) {
		if err := store.Load(); err != nil {
			return nil, err
		}
	}
	if CLI.Timezone != "" {
		cfg.Timezone = CLI.Timezone
	}

	today, err := cli.ResolveToday(cfg.Timezone, CLI.Today)
	if err != nil {
		return nil, err
	}

	records, err := fixtures.Load(CLI.Fixtures)
	if err != nil {
		return nil, err
	}

	return &cli.Context{
		Store:    store,
		Settings: cfg,
		Cases:    records,
		Today:    today,
	}, nil
}

// needsStore reports whether command reads or writes the draft store.
func needsStore(command string) bool {
	return strings.HasPrefix(command, "draft") || strings.HasPrefix(command, "settings")
}
