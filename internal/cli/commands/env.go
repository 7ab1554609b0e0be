package commands

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"xlsxft/internal/cli"
	"xlsxft/internal/config"
	"xlsxft/internal/logging"
	"xlsxft/internal/storage"
)

// Env holds the components that can only be built once the command line
// has been parsed: the logger and the result store.
type Env struct {
	config *config.Config
	flags  *cli.Flags
	log    *logrus.Logger
	store  storage.Storage
}

// NewEnv creates an Env for cfg. Prepare must run before Logger or Storage.
func NewEnv(cfg *config.Config) *Env {
	return &Env{config: cfg, log: logging.Discard()}
}

// Prepare overlays the environment and the parsed flags onto the config
// and builds the logger.
func (e *Env) Prepare(flags *cli.Flags) error {
	e.flags = flags
	if flags.Project != "" {
		e.config.ProjectPath = flags.Project
	}
	if err := e.config.LoadEnv(); err != nil {
		return err
	}
	e.config.ApplyFlags(flags.ToConfigFlags())

	log, err := logging.New(logging.Options{Level: e.config.LogLevel})
	if err != nil {
		return err
	}
	e.log = log
	e.log.WithFields(logrus.Fields{
		"project": e.config.ProjectPath,
		"exe_dir": e.config.GetExeDir(),
		"ref_dir": e.config.GetReferenceDir(),
		"workers": e.config.Processors,
		"timeout": e.config.Timeout,
		"compare": e.config.Comparator,
		"store":   e.config.Store,
	}).Debug("configuration loaded")
	return nil
}

// Logger returns the configured logger
func (e *Env) Logger() *logrus.Logger {
	return e.log
}

// Storage returns the result store selected by the config, opening it on
// first use
func (e *Env) Storage() (storage.Storage, error) {
	if e.store != nil {
		return e.store, nil
	}
	st, err := storage.New(e.config)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", e.config.Store, err)
	}
	e.store = st
	return st, nil
}

// Close releases the result store if it holds a connection
func (e *Env) Close() error {
	if c, ok := e.store.(io.Closer); ok {
		e.store = nil
		return c.Close()
	}
	return nil
}
