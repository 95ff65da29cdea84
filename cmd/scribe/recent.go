package main

import (
	"fmt"

	"scribe/internal/recent"

	"github.com/spf13/cobra"
)

// NewRecentCmd creates the recent command
func NewRecentCmd(opts *rootOptions) *cobra.Command {
	var clearAll bool

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List or clear the recently opened files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := recent.Open(opts.cfg.RecentFilesPath())
			if clearAll {
				if err := m.Clear(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), successText("Recent files cleared"))
				return nil
			}

			paths := m.List()
			if len(paths) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), mutedText("No recent files"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), headerText("Recent files"))
			for i, p := range paths {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d  %s\n", i+1, p)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearAll, "clear", false, "remove every entry")
	return cmd
}
