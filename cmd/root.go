package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/virtual-embodiment-lab/obe-new/utils"
)

var (
	version = "dev"
	commit  = "unknown"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "obe-logger",
		Short: "Record head and hand movement of a VR session to CSV",
		Long: `obe-logger samples the head, left hand and right hand poses of a VR
session at a fixed rate and appends one CSV row per sample to a
timestamped file under OBE_Movement_Logs/.

Quick Start:
  obe-logger record --scene MainMenu          # record until Ctrl+C
  obe-logger record --duration 30 --log-hz 90 # 30 seconds at 90 Hz
  obe-logger sessions                         # list recorded sessions
  obe-logger check <file.csv>                 # validate a movement log`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", utils.DefaultConfigPath(), "Path to obe.yaml")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().String("log-file", "", "Also write diagnostics to this rotating log file")
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	root.AddCommand(
		newRecordCmd(opts),
		newSessionsCmd(opts),
		newCheckCmd(),
	)

	return root
}

// flagKeys maps command-line flags to their config keys.
var flagKeys = map[string]string{
	"scene":          "session.name",
	"output":         "session.output_root",
	"tz":             "session.time_zone",
	"log-hz":         "session.log_hz",
	"name-separator": "session.name_separator",
	"fixed-hz":       "host.fixed_hz",
	"duration":       "host.duration_seconds",
	"drop":           "simulation.drop",
	"simulate":       "simulation.enabled",
	"log-file":       "log.file",
	"log-level":      "log.level",
	"index":          "store.path",
	"no-index":       "store.disabled",
}

// loadSettings reads obe.yaml and layers OBE_* environment variables and
// command-line flags on top (flag > env > file > default).
func loadSettings(cmd *cobra.Command, opts *rootOptions) (*utils.Config, error) {
	cfg, err := utils.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("OBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("session.name", cfg.Session.Name)
	v.SetDefault("session.output_root", cfg.Session.OutputRoot)
	v.SetDefault("session.time_zone", cfg.Session.TimeZone)
	v.SetDefault("session.log_hz", cfg.Session.LogHz)
	v.SetDefault("session.name_separator", cfg.Session.NameSeparator)
	v.SetDefault("host.fixed_hz", cfg.Host.FixedHz)
	v.SetDefault("host.duration_seconds", cfg.Host.DurationSeconds)
	v.SetDefault("host.stats_interval_seconds", cfg.Host.StatsIntervalSeconds)
	v.SetDefault("simulation.enabled", cfg.Simulation.Enabled)
	v.SetDefault("simulation.drop", cfg.Simulation.Drop)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("store.path", cfg.Store.Path)
	v.SetDefault("store.disabled", !cfg.Store.Enabled)

	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	cfg.Session.Name = v.GetString("session.name")
	cfg.Session.OutputRoot = v.GetString("session.output_root")
	cfg.Session.TimeZone = v.GetString("session.time_zone")
	cfg.Session.LogHz = v.GetFloat64("session.log_hz")
	cfg.Session.NameSeparator = v.GetString("session.name_separator")
	cfg.Host.FixedHz = v.GetFloat64("host.fixed_hz")
	cfg.Host.DurationSeconds = v.GetFloat64("host.duration_seconds")
	cfg.Host.StatsIntervalSeconds = v.GetInt("host.stats_interval_seconds")
	cfg.Simulation.Enabled = v.GetBool("simulation.enabled")
	cfg.Simulation.Drop = v.GetStringSlice("simulation.drop")
	cfg.Log.File = v.GetString("log.file")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Store.Path = v.GetString("store.path")
	cfg.Store.Enabled = !v.GetBool("store.disabled")

	if opts.verbose {
		cfg.Log.Level = utils.DEBUG.String()
	}
	return cfg, nil
}

// initLogger starts the diagnostic sink from the log settings.
func initLogger(cfg *utils.Config) (*utils.Logger, error) {
	level, err := utils.ParseLogLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	l := utils.InitLogger(level, utils.LogFileOptions{
		Path:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	l.SetLevel(level)
	return l, nil
}
