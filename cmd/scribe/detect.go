package main

import (
	"fmt"

	"scribe/internal/fileio"
	"scribe/internal/language"
	"scribe/internal/store"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// NewDetectCmd creates the detect command
func NewDetectCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "detect <file>...",
		Short: "Show the encoding and language scribe would open files with",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mappings := store.OpenFormatMappings(opts.cfg.FormatMappingsPath()).All()
			bridge := fileio.NewBridge(language.NewResolver(mappings))

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("FILE", "ENCODING", "LANGUAGE", "SIZE")

			failed := 0
			for _, path := range args {
				rec, err := bridge.Read(path)
				if err != nil {
					failed++
					t.Row(path, errorText("error"), err.Error(), "")
					continue
				}
				t.Row(rec.Path, rec.Encoding.Label(), language.DisplayName(rec.Language),
					humanize.Bytes(uint64(rec.Size)))
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())

			if failed > 0 {
				return fmt.Errorf("%d of %d files could not be read", failed, len(args))
			}
			return nil
		},
	}
}
