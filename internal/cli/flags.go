package cli

import (
	"time"

	"xlsxft/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	Project          string
	Processors       int
	NameFilter       string
	Suite            string
	From             string
	FailFast         bool
	OnlyFailed       bool
	KeepOutput       bool
	CheckDeterminism bool
	OpenFailures     bool
	ShowPaths        bool
	Timeout          time.Duration
	Compare          string
	Store            string
	LogLevel         string
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Processors:       f.Processors,
		NameFilter:       f.NameFilter,
		Suite:            f.Suite,
		From:             f.From,
		FailFast:         f.FailFast,
		OnlyFailed:       f.OnlyFailed,
		KeepOutput:       f.KeepOutput,
		CheckDeterminism: f.CheckDeterminism,
		OpenFailures:     f.OpenFailures,
		ShowPaths:        f.ShowPaths,
		Timeout:          f.Timeout,
		Compare:          f.Compare,
		Store:            f.Store,
		LogLevel:         f.LogLevel,
	}
}
