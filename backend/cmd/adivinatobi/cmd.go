package main

import (
	"fmt"
	"strings"

	"github.com/adivinatobi/adivinatobi/shared/config"
	"github.com/adivinatobi/adivinatobi/shared/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// options override whatever the config folder says, when set. The merged
// configuration is validated once, after the overrides.
type options struct {
	configFolder string
	port         int
	logLevel     string
	logJSON      bool
	backend      string
	dataFile     string
}

func (o *options) load(flags *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.Read(o.configFolder)
	if err != nil {
		return nil, err
	}

	if flags.Changed("port") {
		cfg.Public.Http.Port = o.port
	}
	if flags.Changed("log-level") {
		cfg.Public.Log.Level = o.logLevel
	}
	if flags.Changed("log-json") {
		cfg.Public.Log.JSON = o.logJSON
	}
	if flags.Changed("store-backend") {
		cfg.Public.Store.Backend = o.backend
	}
	if flags.Changed("data-file") {
		cfg.Public.Store.DataFile = o.dataFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Initialize(cfg.Public.Log.Level, cfg.Public.Log.JSON)
	return cfg, nil
}

func newCmd(opts *options) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("ADIVINATOBI")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:     "adivinatobi",
		Short:   "Prediction game server: threads, guesses, points and a leaderboard.",
		Args:    cobra.ExactArgs(0),
		Version: releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd.Flags())
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	fs := cmd.PersistentFlags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&opts.configFolder, "config-folder", "c", "backend/config", "path to folder with configs (env: ADIVINATOBI_CONFIG_FOLDER)")
	fs.IntVarP(&opts.port, "port", "p", 8080, "port to listen on (env: ADIVINATOBI_PORT)")
	fs.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error (env: ADIVINATOBI_LOG_LEVEL)")
	fs.BoolVar(&opts.logJSON, "log-json", false, "log as json (env: ADIVINATOBI_LOG_JSON)")
	fs.StringVar(&opts.backend, "store-backend", config.StoreBackendFile, "file or postgres (env: ADIVINATOBI_STORE_BACKEND)")
	fs.StringVar(&opts.dataFile, "data-file", "", "path to the local document (env: ADIVINATOBI_DATA_FILE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.AddCommand(newLeaderboardCmd(opts), newMigrateCmd(opts))

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("adivinatobi v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
