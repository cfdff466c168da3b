package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "View and adjust project scores",
}

var scoresShowCmd = &cobra.Command{
	Use:   "show <project-id>",
	Short: "Show the score breakdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scores, err := api.GetScores(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		var rows [][]string
		for _, d := range scores.Dimensions {
			rows = append(rows, []string{
				d.Dimension,
				strconv.FormatFloat(d.Score, 'f', -1, 64),
				strconv.FormatFloat(d.MaxScore, 'f', -1, 64),
				d.Comments,
			})
			for _, sub := range d.SubDimensions {
				rows = append(rows, []string{
					"  " + sub.SubDimension,
					strconv.FormatFloat(sub.Score, 'f', -1, 64),
					strconv.FormatFloat(sub.MaxScore, 'f', -1, 64),
					sub.Comments,
				})
			}
		}
		table([]string{"DIMENSION", "SCORE", "MAX", "COMMENTS"}, rows)
		return nil
	},
}

var (
	editDimension string
	editScore     float64
	editComments  string
)

var scoresEditCmd = &cobra.Command{
	Use:   "edit <project-id>",
	Short: "Adjust one dimension and save the full score set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Saves always carry the complete dimension set, so fetch the
		// current state and patch the one dimension locally.
		scores, err := api.GetScores(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		found := false
		for i := range scores.Dimensions {
			if scores.Dimensions[i].Dimension != editDimension {
				continue
			}
			found = true
			if cmd.Flags().Changed("score") {
				scores.Dimensions[i].Score = editScore
			}
			if cmd.Flags().Changed("comments") {
				scores.Dimensions[i].Comments = editComments
			}
		}
		if !found {
			return fmt.Errorf("dimension %q not found", editDimension)
		}

		saved, err := api.UpdateScores(cmd.Context(), args[0], scores)
		if err != nil {
			return err
		}

		total := 0.0
		for _, d := range saved.Dimensions {
			total += d.Score
		}
		fmt.Printf("saved, total score %s\n", strconv.FormatFloat(total, 'f', -1, 64))
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary <project-id>",
	Short: "Show the score summary and recommendation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := api.GetScoreSummary(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s / %s\n", s.EnterpriseName, s.ProjectName)
		fmt.Printf("total %.1f / %.1f (%.2f%%)  %s\n\n",
			s.TotalScore, s.TotalPossible, s.OverallPercentage, s.Recommendation)

		var rows [][]string
		for name, d := range s.DimensionBreakdown {
			rows = append(rows, []string{
				name,
				fmt.Sprintf("%.1f/%.1f", d.Score, d.MaxScore),
				fmt.Sprintf("%.2f%%", d.Percentage),
			})
		}
		table([]string{"DIMENSION", "SCORE", "PCT"}, rows)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history <project-id>",
	Short: "Show the score change history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := api.GetScoreHistory(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(h.History) == 0 {
			fmt.Println("no score changes recorded")
			return nil
		}

		rows := make([][]string, 0, len(h.History))
		for _, item := range h.History {
			rows = append(rows, []string{
				item.CreatedAt.Format("2006-01-02 15:04:05"),
				strconv.FormatFloat(item.TotalScore, 'f', -1, 64),
				item.ModifiedBy,
				item.ModificationNotes,
			})
		}
		table([]string{"WHEN", "TOTAL", "BY", "NOTES"}, rows)
		return nil
	},
}

func init() {
	scoresEditCmd.Flags().StringVar(&editDimension, "dimension", "", "dimension name to adjust")
	scoresEditCmd.Flags().Float64Var(&editScore, "score", 0, "new score value")
	scoresEditCmd.Flags().StringVar(&editComments, "comments", "", "new comments")
	scoresEditCmd.MarkFlagRequired("dimension")

	scoresCmd.AddCommand(scoresShowCmd, scoresEditCmd)
}
