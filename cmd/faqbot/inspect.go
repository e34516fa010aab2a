package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Ameytillu/hotel-faq-sentiment-bot/internal/knowledge"
)

const answerPreview = 60

func newInspectCmd(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the selected backend and the flattened knowledge entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts, true)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			st, err := a.engine.Status()
			if err != nil {
				return err
			}

			doc, err := knowledge.Load(a.engine.Path())
			if err != nil {
				return err
			}
			entries, _ := knowledge.Flatten(doc)

			out := cmd.OutOrStdout()
			bold := color.New(color.Bold)

			bold.Fprintf(out, "Backend: %s\n", st.Backend)
			for _, s := range st.Skipped {
				color.New(color.Faint).Fprintf(out, "  skipped %s: %s\n", s.Backend, s.Reason)
			}
			fmt.Fprintf(out, "Source: %s\n", st.Source)
			if st.DBVersion != "" {
				fmt.Fprintf(out, "DB version: %s\n", st.DBVersion)
			}
			fmt.Fprintf(out, "Entries: %d (built in %s)\n", st.Entries, st.BuildDuration)
			if len(st.RoomTypes) > 0 {
				fmt.Fprintf(out, "Room types: %v\n", st.RoomTypes)
			}
			fmt.Fprintln(out)

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tSOURCE\tQUESTION\tANSWER")
			for i, e := range entries {
				if limit > 0 && i >= limit {
					fmt.Fprintf(tw, "...\t\t%d more\t\n", len(entries)-limit)
					break
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i, e.Source, e.Question, preview(e.Answer))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n entries (0 for all)")
	return cmd
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= answerPreview {
		return s
	}
	return string(r[:answerPreview-3]) + "..."
}
