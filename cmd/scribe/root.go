package main

import (
	"os"

	"scribe/internal/config"
	"scribe/internal/log"

	"github.com/spf13/cobra"
)

// rootOptions are the persistent flags and the configuration they load.
type rootOptions struct {
	cfgFile     string
	dataDir     string
	debug       bool
	newInstance bool

	cfg *config.Config
}

// NewRootCmd creates the root command. Without a subcommand it opens the
// desktop editor.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "scribe [file]",
		Short: "A small text editor",
		Long: `Scribe is a plain-text editor with encoding detection, language
classification, recent files and a single running instance.

Run without a subcommand to open the desktop window, or use "scribe tui"
in a terminal.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd, opts, args, frontendGUI)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/scribe/config.yaml)")
	flags.StringVar(&opts.dataDir, "data-dir", "", "directory holding recent files, preferences and format mappings")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&opts.newInstance, "new-instance", false, "do not hand the file to a running editor")

	rootCmd.AddCommand(NewTUICmd(opts))
	rootCmd.AddCommand(NewDetectCmd(opts))
	rootCmd.AddCommand(NewRecentCmd(opts))
	rootCmd.AddCommand(NewPrefsCmd(opts))

	return rootCmd
}

func (o *rootOptions) load() error {
	var err error
	if o.cfgFile != "" {
		o.cfg, err = config.LoadConfigFile(o.cfgFile)
	} else {
		o.cfg, err = config.LoadConfig()
	}
	if err != nil {
		return err
	}
	if o.dataDir != "" {
		o.cfg.Storage.Dir = o.dataDir
	}

	log.Configure(append(o.cfg.LogOptions(), log.WithOutput(os.Stderr))...)
	if o.debug {
		log.SetDebug(true)
	}
	return nil
}
