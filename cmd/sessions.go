package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/virtual-embodiment-lab/obe-new/store"
)

func newSessionsCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List recorded sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(cmd, opts)
			if err != nil {
				return err
			}

			index, err := store.Open(cfg.Store.Path)
			if err != nil {
				return err
			}
			defer index.Close()

			records, err := index.ListSessions()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			if len(records) == 0 {
				fmt.Fprintln(out, "No sessions recorded yet")
				return nil
			}

			data := pterm.TableData{{"Started", "Scene", "Rows", "Hz", "Duration", "File"}}
			for _, r := range records {
				dur := "-"
				if !r.EndedAt.IsZero() {
					dur = r.EndedAt.Sub(r.StartedAt).Round(time.Second).String()
				}
				data = append(data, []string{
					r.StartedAt.Format("2006-01-02 15:04:05"),
					r.Scene,
					fmt.Sprint(r.Rows),
					fmt.Sprint(r.LogHz),
					dur,
					r.FilePath,
				})
			}

			return pterm.DefaultTable.WithHasHeader().WithWriter(out).WithData(data).Render()
		},
	}

	cmd.Flags().String("index", "", "Path of the session index database")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print sessions as JSON")

	return cmd
}
