package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/qatrackplus/qcpump/internal/adapter"
	"github.com/qatrackplus/qcpump/internal/config"
	"github.com/qatrackplus/qcpump/internal/logger"
	"github.com/spf13/cobra"
)

const role = "qcpump"

// app carries what the subcommands share once the configuration is loaded.
type app struct {
	flags *config.Flags
	cfg   *config.Configuration
	log   *logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "qcpump",
		Short:        "QCPump moves QC data from treatment and imaging systems into QATrack+",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}
	a.flags = config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newConfigCmd(a),
		newResourceCmd(a),
		newCheckQATrackCmd(a),
		newVersionCmd(),
	)

	return root
}

func (a *app) load(cmd *cobra.Command) error {
	bootstrap := logger.NewLogger(role, cmd.ErrOrStderr())

	cfg, err := config.Load(append(a.flags.Options(), config.WithLogger(bootstrap))...)
	if err != nil {
		bootstrap.Error().Err(err).Msg("error getting configs")
		return err
	}

	a.cfg = cfg
	a.log = logger.NewAppLogger(role, logger.Options{
		Level:   cfg.LogLevel,
		Debug:   cfg.Debug,
		Console: cfg.LogToConsole,
		Dir:     cfg.ConfigDir,
	})
	a.log.Debug().Any("config", cfg).Msg("received configs")

	return nil
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the resolved configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration directory and settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, a.cfg.ConfigDir)
			fmt.Fprintln(out, a.cfg.SettingsFile)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(newConfigView(a.cfg), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	})

	return cmd
}

// configView renders a Configuration with the settings.json key names.
type configView struct {
	AppName              string   `json:"APPNAME"`
	Vendor               string   `json:"VENDOR"`
	Version              string   `json:"VERSION"`
	LogLevel             string   `json:"LOG_LEVEL"`
	Debug                bool     `json:"DEBUG"`
	LogToConsole         bool     `json:"LOG_TO_CONSOLE"`
	PumpDirectories      []string `json:"PUMP_DIRECTORIES"`
	DefaultPumpDirectory string   `json:"DEFAULT_PUMP_DIRECTORY"`
	DBConnectTimeout     float64  `json:"DB_CONNECT_TIMEOUT"`
	MaxHTTP307Count      int      `json:"MAX_HTTP_307_COUNT"`
	HTTP307SleepTime     float64  `json:"HTTP_307_SLEEP_TIME"`
	BrowserUserAgent     string   `json:"BROWSER_USER_AGENT"`
	PumpOnStartup        bool     `json:"PUMP_ON_STARTUP"`
	Frozen               bool     `json:"FROZEN"`
	Root                 string   `json:"ROOT"`
	Resources            string   `json:"RESOURCES"`
	ImgResources         string   `json:"IMG_RESOURCES"`
	ConfigDir            string   `json:"CONFIG_DIR"`
	SettingsFile         string   `json:"SETTINGS_FILE"`
}

func newConfigView(c *config.Configuration) configView {
	dirs := c.PumpDirectories
	if dirs == nil {
		dirs = []string{}
	}

	return configView{
		AppName:              c.AppName,
		Vendor:               c.Vendor,
		Version:              c.Version,
		LogLevel:             c.LogLevel,
		Debug:                c.Debug,
		LogToConsole:         c.LogToConsole,
		PumpDirectories:      dirs,
		DefaultPumpDirectory: c.DefaultPumpDirectory,
		DBConnectTimeout:     c.DBConnectTimeout.Seconds(),
		MaxHTTP307Count:      c.MaxHTTP307Count,
		HTTP307SleepTime:     c.HTTP307SleepTime.Seconds(),
		BrowserUserAgent:     c.BrowserUserAgent,
		PumpOnStartup:        c.PumpOnStartup,
		Frozen:               c.Runtime.Packaged(),
		Root:                 c.Runtime.Root,
		Resources:            c.Resources,
		ImgResources:         c.ImgResources,
		ConfigDir:            c.ConfigDir,
		SettingsFile:         c.SettingsFile,
	}
}

func newResourceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resource",
		Short: "Resolve bundled resource paths",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "img <file>",
		Short: "Print the path of an image resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.cfg.ImgPath(args[0]))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "icon <name>",
		Short: "Print the path of a PNG icon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.cfg.Icon(args[0]))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "pumps",
		Short: "List the directories pump types are loaded from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, dir := range a.cfg.PumpTypeDirectories() {
				fmt.Fprintln(cmd.OutOrStdout(), dir)
			}
			return nil
		},
	})

	return cmd
}

func newCheckQATrackCmd(a *app) *cobra.Command {
	var api adapter.APIConfig

	cmd := &cobra.Command{
		Use:   "check-qatrack",
		Short: "Check that a QATrack+ API URL and token are usable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := adapter.ValidateAPIURL(api.URL); errors.Is(err, adapter.ErrNotAPIURL) {
				a.log.Warn().Str("url", api.URL).Msg("QATrack+ API URL should normally end with /api/")
			}

			qatrack, err := adapter.NewQATrackAdapter(a.cfg, api, a.log)
			if err != nil {
				return err
			}

			ctx := a.log.With().Str("command", cmd.Name()).Logger().WithContext(cmd.Context())
			if err = qatrack.CheckAuth(ctx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Connected to %s\n", qatrack.Endpoint(""))
			return nil
		},
	}

	cmd.Flags().StringVar(&api.URL, "url", "", "QATrack+ API URL, e.g. https://qatrack.example.com/api/")
	cmd.Flags().StringVar(&api.Token, "token", "", "QATrack+ API token")
	cmd.Flags().BoolVar(&api.VerifySSL, "verify-ssl", true, "Verify the server TLS certificate")
	cmd.Flags().StringVar(&api.HTTPProxy, "http-proxy", "", "Proxy for http:// requests")
	cmd.Flags().StringVar(&api.HTTPSProxy, "https-proxy", "", "Proxy for https:// requests")
	cmd.Flags().DurationVar(&api.Timeout, "timeout", 10*time.Second, "Timeout of a single request")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("token")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// no configuration needed
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			printBuildInfo(cmd.OutOrStdout())
		},
	}
}
