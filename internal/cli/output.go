package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/seminar-events/internal/config"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// sourceRow is one line of the sources listing
type sourceRow struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Kind        string `json:"kind"`
	URL         string `json:"url"`
	Location    string `json:"location,omitempty"`
	DefaultTime string `json:"default_time,omitempty"`
	Enabled     bool   `json:"enabled"`
}

func newSourcesCmd(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "sources",
		Short: "List the configured seminar sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.setupLogging(cmd.ErrOrStderr()); err != nil {
				return err
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			return WriteSources(cmd.OutOrStdout(), cfg.Sources, OutputFormat(format))
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	return cmd
}

// WriteSources writes the source list in the specified format
func WriteSources(w io.Writer, sources []config.Source, format OutputFormat) error {
	rows := make([]sourceRow, 0, len(sources))
	for _, s := range sources {
		rows = append(rows, sourceRow{
			ID:          s.ID,
			Name:        s.Name,
			Kind:        s.Kind,
			URL:         s.URL,
			Location:    s.Location,
			DefaultTime: s.DefaultTime,
			Enabled:     !s.Disabled,
		})
	}

	switch format {
	case FormatJSON:
		return writeJSON(w, rows)
	case FormatText:
		return writeText(w, rows)
	default:
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", format)
	}
}

// writeJSON outputs the rows as JSON
func writeJSON(w io.Writer, rows []sourceRow) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rows)
}

// writeText outputs the rows as an aligned table
func writeText(w io.Writer, rows []sourceRow) error {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No sources configured.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tTIME\tSTATUS\tURL")
	enabled := 0
	for _, r := range rows {
		status := "disabled"
		if r.Enabled {
			status = "enabled"
			enabled++
		}
		t := r.DefaultTime
		if t == "" {
			t = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Kind, t, status, r.URL)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nTotal: %d sources (%d enabled)\n", len(rows), enabled)
	return nil
}
