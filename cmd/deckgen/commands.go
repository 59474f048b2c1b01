package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rpggio/deckgen/internal/document"
	"github.com/rpggio/deckgen/internal/domain/asset"
	"github.com/rpggio/deckgen/internal/domain/generation"
	"github.com/rpggio/deckgen/internal/domain/history"
	"github.com/spf13/cobra"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		rosterPath string
		assetsDir  string
		outputPath string
		reset      bool
		asJSON     bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Append one slide per roster record",
		RunE: func(cmd *cobra.Command, args []string) error {
			if rosterPath == "" {
				rosterPath = a.cfg.Roster.Path
			}
			if assetsDir == "" {
				assetsDir = a.cfg.Assets.Dir
			}
			report, err := a.generationService().Generate(cmd.Context(), generation.GenerateRequest{
				DeckPath:   a.cfg.Deck.Path,
				OutputPath: outputPath,
				RosterPath: rosterPath,
				AssetsDir:  assetsDir,
				Reset:      reset,
			})
			if report != nil {
				if asJSON {
					if jsonErr := writeJSON(cmd.OutOrStdout(), report); jsonErr != nil {
						return jsonErr
					}
				} else {
					printReport(cmd.OutOrStdout(), report)
				}
			}
			return err
		},
	}
	cmd.Flags().StringVar(&rosterPath, "roster", "", "roster file, .json or .tsv (default from config)")
	cmd.Flags().StringVar(&assetsDir, "assets", "", "photo directory (default from config)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the deck here instead of overwriting --deck")
	cmd.Flags().BoolVar(&reset, "reset", false, "drop generated slides before generating")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func printReport(w io.Writer, report *generation.Report) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STATE\tSLIDE\tKEY\tNAME\tNOTE")
	for _, o := range report.Outcomes {
		slide := "-"
		if o.SlideIndex >= 0 {
			slide = fmt.Sprint(o.SlideIndex)
		}
		note := o.Reason
		if o.State == generation.StateCommitted && !o.ImageBound {
			note = "no image"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", o.State, slide, o.Record.JoinKey, o.Record.DisplayName, note)
	}
	tw.Flush()

	s := report.Stats
	fmt.Fprintf(w, "\n%d records: %d committed (%d with image, %d without), %d skipped, %d failed; deck has %d slides\n",
		s.Total, s.Committed, s.WithImage, s.WithoutImage, s.Skipped, s.Failed, s.SlidesInDeck)
	if s.OverlayFailures > 0 {
		fmt.Fprintf(w, "%d slides were committed without an info overlay\n", s.OverlayFailures)
	}
	if report.RunID != "" {
		fmt.Fprintf(w, "run %s\n", report.RunID)
	}
}

func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Remove every slide except the template",
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := a.generationService().Reset(cmd.Context(), a.cfg.Deck.Path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d slides from %s\n", removed, a.cfg.Deck.Path)
			return nil
		},
	}
}

func newReorderCmd(a *app) *cobra.Command {
	var backupSuffix string
	cmd := &cobra.Command{
		Use:   "reorder",
		Short: "Sort generated slides by player name",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.reorderService(backupSuffix).Reorder(cmd.Context(), a.cfg.Deck.Path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, k := range result.Order {
				name := k.Name
				if name == "" {
					name = "(unnamed)"
				}
				fmt.Fprintf(out, "%3d  %s  (was %d)\n", i+1, name, k.Index)
			}
			fmt.Fprintf(out, "reordered %d slides; backup at %s\n", len(result.Order), result.BackupPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&backupSuffix, "backup-suffix", "", "suffix for the pre-reorder snapshot (default from config)")
	return cmd
}

func newVerifyCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "List the pictures on every slide",
		RunE: func(cmd *cobra.Command, args []string) error {
			deck, err := a.store.Load(a.cfg.Deck.Path)
			if err != nil {
				return err
			}
			sums := document.Inspect(deck)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), sums)
			}
			printSummaries(cmd.OutOrStdout(), sums)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print summaries as JSON")
	return cmd
}

func printSummaries(w io.Writer, sums []document.SlideSummary) {
	for _, s := range sums {
		label := s.Name
		if s.Template {
			label = "template"
		}
		fmt.Fprintf(w, "slide %d: %s, %d shapes, %d pictures\n", s.Index, label, s.Shapes, len(s.Pictures))
		for _, p := range s.Pictures {
			var flags []string
			if p.Grouped {
				flags = append(flags, "grouped")
			}
			if p.Marked {
				flags = append(flags, "bound")
			}
			suffix := ""
			if len(flags) > 0 {
				suffix = " [" + strings.Join(flags, ",") + "]"
			}
			fmt.Fprintf(w, "  %s: %d bytes%s\n", p.Name, p.Bytes, suffix)
		}
	}
}

func newDedupCmd(a *app) *cobra.Command {
	var (
		assetsDir string
		apply     bool
	)
	cmd := &cobra.Command{
		Use:   "dedup",
		Short: "Find byte-identical photos and optionally delete the extras",
		RunE: func(cmd *cobra.Command, args []string) error {
			if assetsDir == "" {
				assetsDir = a.cfg.Assets.Dir
			}
			curator := asset.NewCurator(a.logger)
			groups, err := curator.FindDuplicates(cmd.Context(), assetsDir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(groups) == 0 {
				fmt.Fprintln(out, "no duplicates found")
				return nil
			}
			for _, g := range groups {
				fmt.Fprintf(out, "keep %s (%dx%d)\n", g.Canonical.Path, g.Canonical.Width, g.Canonical.Height)
				for _, f := range g.Redundant {
					fmt.Fprintf(out, "  dup %s\n", f.Path)
				}
			}
			if !apply {
				fmt.Fprintln(out, "dry run; pass --yes to delete duplicates")
				return nil
			}
			deleted, err := curator.Prune(groups)
			fmt.Fprintf(out, "deleted %d files\n", len(deleted))
			return err
		},
	}
	cmd.Flags().StringVar(&assetsDir, "assets", "", "photo directory (default from config)")
	cmd.Flags().BoolVar(&apply, "yes", false, "delete redundant files")
	return cmd
}

func newHistoryCmd(a *app) *cobra.Command {
	var (
		limit   int
		command string
		runID   string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := a.openHistory()
			if svc == nil {
				return errors.New("run ledger is disabled or unavailable")
			}
			out := cmd.OutOrStdout()
			if runID != "" {
				detail, err := svc.GetRun(cmd.Context(), runID)
				if err != nil {
					return err
				}
				printRun(out, detail.Run)
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "#\tSTATE\tSLIDE\tKEY\tNAME\tNOTE")
				for _, e := range detail.Entries {
					fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\n", e.Position, e.State, e.SlideIndex, e.JoinKey, e.DisplayName, e.Reason)
				}
				return tw.Flush()
			}

			opts := history.ListRunsOptions{Limit: limit}
			if command != "" {
				c := history.Command(command)
				opts.Command = &c
			}
			runs, err := svc.ListRuns(cmd.Context(), opts)
			if err != nil {
				return err
			}
			for _, r := range runs {
				printRun(out, r)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum runs to list")
	cmd.Flags().StringVar(&command, "command", "", "filter by command (generate, reset, reorder)")
	cmd.Flags().StringVar(&runID, "run", "", "show one run with its entries")
	return cmd
}

func printRun(w io.Writer, r history.Run) {
	fmt.Fprintf(w, "%s  %-8s %-9s %s  committed=%d skipped=%d failed=%d slides=%d",
		r.StartedAt.Format("2006-01-02 15:04:05"), r.Command, r.Status, r.ID,
		r.Stats.Committed, r.Stats.Skipped, r.Stats.Failed, r.Stats.Slides)
	if r.Error != "" {
		fmt.Fprintf(w, "  error=%q", r.Error)
	}
	fmt.Fprintln(w)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
