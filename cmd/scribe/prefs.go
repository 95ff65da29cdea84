package main

import (
	"fmt"
	"sort"

	"scribe/internal/store"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// NewPrefsCmd creates the prefs command
func NewPrefsCmd(opts *rootOptions) *cobra.Command {
	var unset bool

	cmd := &cobra.Command{
		Use:   "prefs [key [value]]",
		Short: "Show or change saved preferences",
		Long: `Without arguments prints every saved preference. With a key prints
its value, and with a key and value stores it. Values are read as JSON
when they parse (true, 14, "dark"), otherwise as plain strings.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs := store.OpenPreferences(opts.cfg.PreferencesPath())

			switch {
			case unset:
				if len(args) != 1 {
					return fmt.Errorf("--unset takes exactly one key")
				}
				return prefs.Delete(args[0])

			case len(args) == 2:
				return prefs.Set(args[0], parsePrefValue(args[1]))

			case len(args) == 1:
				v, ok := prefs.Get(args[0])
				if !ok {
					return fmt.Errorf("preference %q is not set", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatPrefValue(v))
				return nil
			}

			all := prefs.All()
			if len(all) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), mutedText("No saved preferences"))
				return nil
			}
			keys := make([]string, 0, len(all))
			for k := range all {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", k, formatPrefValue(all[k]))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&unset, "unset", false, "remove the given key")
	return cmd
}

func parsePrefValue(s string) interface{} {
	var v interface{}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	return v
}

func formatPrefValue(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
