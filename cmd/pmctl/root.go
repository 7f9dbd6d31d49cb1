package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"pmfin-backend/lib/dashclient"
)

type app struct {
	v       *viper.Viper
	cfgFile string
	client  *dashclient.Client
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	cmd := &cobra.Command{
		Use:           "pmctl",
		Short:         "Operator CLI for the PM Finance dashboard API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.config/pmctl/config.yaml)")
	cmd.PersistentFlags().String("server", "http://127.0.0.1:8080", "API base URL")
	cmd.PersistentFlags().String("token", "", "API token (saved by login)")
	cmd.PersistentFlags().String("log-level", "warn", "log level")
	_ = a.v.BindPFlag("server", cmd.PersistentFlags().Lookup("server"))
	_ = a.v.BindPFlag("token", cmd.PersistentFlags().Lookup("token"))
	_ = a.v.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))

	cmd.AddCommand(a.loginCmd())
	cmd.AddCommand(a.navCmd())
	cmd.AddCommand(a.taskCmd())
	cmd.AddCommand(a.reimbursementCmd())
	cmd.AddCommand(a.notificationsCmd())
	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath(defaultConfigDir())
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
	}
	a.v.SetEnvPrefix("PMCTL")
	a.v.AutomaticEnv()
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return errors.Wrap(err, "failed to read config")
		}
	}

	level, err := log.ParseLevel(a.v.GetString("log_level"))
	if err != nil {
		return err
	}
	log.SetLevel(level)
	log.SetOutput(cmd.ErrOrStderr())

	a.client = dashclient.New(dashclient.Config{
		BaseURL: a.v.GetString("server"),
		Token:   a.v.GetString("token"),
		Toaster: writerToaster{w: cmd.ErrOrStderr()},
	})
	return nil
}

// saveToken stores the token in the config file used by later runs.
func (a *app) saveToken(token string) (string, error) {
	a.v.Set("token", token)
	path := a.v.ConfigFileUsed()
	if path == "" {
		path = filepath.Join(defaultConfigDir(), "config.yaml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", errors.Wrap(err, "failed to create config dir")
	}
	if err := a.v.WriteConfigAs(path); err != nil {
		return "", errors.Wrap(err, "failed to save config")
	}
	return path, nil
}

func defaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "pmctl")
}

type writerToaster struct {
	w io.Writer
}

func (t writerToaster) Success(message string) {
	fmt.Fprintln(t.w, "ok:", message)
}

func (t writerToaster) Error(message string) {
	fmt.Fprintln(t.w, "error:", message)
}
