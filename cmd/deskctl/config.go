package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MrJamesThe3rd/deskboard/internal/config"
	"github.com/MrJamesThe3rd/deskboard/internal/dashboard"
	"github.com/MrJamesThe3rd/deskboard/internal/logging"
	"github.com/MrJamesThe3rd/deskboard/internal/resource"
	"github.com/MrJamesThe3rd/deskboard/internal/session"
)

const (
	configFileName = "deskctl"
	configFileType = "yaml"

	cfgKeyAPI      = "api"
	cfgKeyToken    = "token"
	cfgKeyRole     = "role"
	cfgKeyPageSize = "page_size"
	cfgKeyLogLevel = "log_level"

	// defaultRole applies when neither a token nor a role is configured, which is
	// the case against a local fake API.
	defaultRole = "admin"
)

type dashboardSession struct {
	*dashboard.Board

	Session session.Session
	API     *resource.API
}

// loadSettings layers deskctl.yaml and flags over the environment config.
func loadSettings(cmd *cobra.Command) (*viper.Viper, *config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	v := viper.New()
	v.SetDefault(cfgKeyAPI, cfg.API.BaseURL)
	v.SetDefault(cfgKeyToken, cfg.API.Token)
	v.SetDefault(cfgKeyRole, defaultRole)
	v.SetDefault(cfgKeyPageSize, cfg.Collections.PageSize)
	v.SetDefault(cfgKeyLogLevel, "warn")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")

		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "deskctl"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, nil, fmt.Errorf("read config: %w", err)
		}
	}

	flags := cmd.Flags()
	for key, flag := range map[string]string{
		cfgKeyAPI:      "api",
		cfgKeyToken:    "token",
		cfgKeyRole:     "role",
		cfgKeyPageSize: "page-size",
		cfgKeyLogLevel: "log-level",
	} {
		if f := flags.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, nil, fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}

	return v, cfg, nil
}

func openBoard(cmd *cobra.Command, args []string) error {
	v, cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(v.GetString(cfgKeyLogLevel), cfg.Log.Format, os.Stderr)
	if err != nil {
		return err
	}

	var sess session.Session

	token := v.GetString(cfgKeyToken)
	if token != "" {
		sess, err = session.FromToken(token)
		if err != nil {
			return fmt.Errorf("read token: %w", err)
		}
	} else {
		sess.Role = session.ParseRole(v.GetString(cfgKeyRole))
	}

	api := resource.NewAPI(v.GetString(cfgKeyAPI),
		resource.WithToken(token),
		resource.WithTimeout(cfg.API.Timeout),
		resource.WithAPILogger(logger),
	)

	b := dashboard.New(api, sess.Role, logger,
		resource.WithPageSize(v.GetInt(cfgKeyPageSize)),
		resource.WithSearchLimit(cfg.Collections.SearchLimit),
		resource.WithDebounce(cfg.Collections.Debounce),
	)

	board = &dashboardSession{Board: b, Session: sess, API: api}

	return nil
}

// table resolves a resource name the signed-in role may manage.
func table(name string) (dashboard.Table, error) {
	t, ok := board.Table(name)
	if !ok {
		return nil, fmt.Errorf("unknown or forbidden resource %q for role %s (available: %v)", name, board.Role, board.Names())
	}

	return t, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}

	return context.Background()
}
