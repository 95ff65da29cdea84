package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"scribe/internal/config"
	"scribe/internal/errors"
	"scribe/internal/gui"
	"scribe/internal/instance"
	"scribe/internal/log"
	"scribe/internal/shell"
	"scribe/internal/tui"

	"github.com/spf13/cobra"
)

type frontend int

const (
	frontendGUI frontend = iota
	frontendTUI
)

// NewTUICmd creates the tui command
func NewTUICmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui [file]",
		Short: "Edit in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd, opts, args, frontendTUI)
		},
	}
	cmd.Flags().BoolVar(&opts.newInstance, "new-instance", false, "do not hand the file to a running editor")
	return cmd
}

// runEditor becomes the primary instance, or hands the file to the one
// already running, and then runs the chosen front-end.
func runEditor(cmd *cobra.Command, opts *rootOptions, args []string, fe frontend) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	launch := ""
	if len(args) > 0 {
		launch = args[0]
	}

	if fe == frontendGUI && !gui.IsGUIAvailable() {
		log.Warn("Desktop window not available in this build, using the terminal editor")
		fe = frontendTUI
	}
	if fe == frontendTUI {
		terminalLogging(opts.cfg)
	}

	var inst *instance.Instance
	if !opts.newInstance {
		var err error
		inst, err = instance.Acquire(ctx, instance.RuntimeDir(), launch)
		if errors.Is(err, instance.ErrAlreadyRunning) {
			if launch != "" {
				fmt.Fprintln(cmd.OutOrStdout(), infoText("Opened " + launch + " in the running editor"))
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), warningText("Scribe is already running"))
			}
			return nil
		}
		if err != nil {
			log.LogWithError(err).Warn("Single-instance socket unavailable")
		} else {
			defer inst.Close()
		}
	}

	stores := shell.OpenStores(opts.cfg)
	if fe == frontendTUI {
		return tui.Run(ctx, tui.Options{Config: opts.cfg, Stores: stores, Launch: launch, Instance: inst})
	}
	return gui.Run(ctx, gui.Options{Config: opts.cfg, Stores: stores, Launch: launch, Instance: inst})
}

// terminalLogging keeps log lines off the screen the terminal editor draws
// on. They still reach the configured log file.
func terminalLogging(cfg *config.Config) {
	log.Configure(append(cfg.LogOptions(), log.WithOutput(io.Discard))...)
}
