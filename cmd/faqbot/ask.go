package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Ameytillu/hotel-faq-sentiment-bot/pkg/types"
)

func newAskCmd(opts *rootOptions) *cobra.Command {
	var (
		threshold float64
		topK      int
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a single question from the terminal",
		Example: `  faqbot ask -k data/hotel.json "what time is check-in?"
  faqbot ask -k data/hotel.json --json "do you have a king room"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts, true)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if !cmd.Flags().Changed("threshold") {
				threshold = a.cfg.Matching.Threshold
			}
			if !cmd.Flags().Changed("top-k") {
				topK = a.cfg.Matching.TopK
			}

			res, err := a.engine.Answer(cmd.Context(), strings.Join(args, " "), threshold, topK)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			printAnswer(out, res)
			return nil
		},
	}

	cmd.Flags().Float64VarP(&threshold, "threshold", "t", 0.60, "minimum score for an answer (0-1)")
	cmd.Flags().IntVar(&topK, "top-k", 3, "suggestions to show on a miss")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw result as JSON")
	return cmd
}

func printAnswer(w io.Writer, res *types.AnswerResult) {
	dim := color.New(color.Faint)

	if res.Found {
		color.New(color.FgGreen, color.Bold).Fprintln(w, res.Answer)
		detail := fmt.Sprintf("matched %q (score %.2f, %s", res.Question, res.Score, res.Backend)
		if res.Rule != "" {
			detail += ", rule " + res.Rule
		}
		dim.Fprintln(w, detail+")")
		return
	}

	color.New(color.FgYellow).Fprintf(w, "No confident answer (best score %.2f, %s).\n", res.Score, res.Backend)
	if len(res.Suggestions) == 0 {
		return
	}
	fmt.Fprintln(w, "Did you mean:")
	for _, s := range res.Suggestions {
		fmt.Fprintf(w, "  - %s ", s.Question)
		dim.Fprintf(w, "(%.2f)\n", s.Score)
	}
}
