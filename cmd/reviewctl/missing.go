package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bp-review/bp-review-go/internal/review/domain"
)

var missingCmd = &cobra.Command{
	Use:   "missing",
	Short: "Track missing information items",
}

var missingListCmd = &cobra.Command{
	Use:   "list <project-id>",
	Short: "List missing information items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := api.GetMissingInfo(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("no missing information recorded")
			return nil
		}

		rows := make([][]string, 0, len(items))
		for _, item := range items {
			rows = append(rows, []string{
				item.ID, item.Dimension, item.InformationType, item.Status, item.Description,
			})
		}
		table([]string{"ID", "DIMENSION", "TYPE", "STATUS", "DESCRIPTION"}, rows)
		return nil
	},
}

var (
	missingDimension   string
	missingType        string
	missingDescription string
)

var missingAddCmd = &cobra.Command{
	Use:   "add <project-id>",
	Short: "Flag a new missing information item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := api.AddMissingInfo(cmd.Context(), args[0], domain.MissingInfo{
			Dimension:       missingDimension,
			InformationType: missingType,
			Description:     missingDescription,
		})
		if err != nil {
			return err
		}
		fmt.Println("added", item.ID)
		return nil
	},
}

var missingDoneCmd = &cobra.Command{
	Use:   "done <project-id> <info-id>",
	Short: "Mark a missing information item as completed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := api.GetMissingInfo(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		for _, item := range items {
			if item.ID != args[1] {
				continue
			}
			item.Status = domain.MissingInfoCompleted
			if _, err := api.UpdateMissingInfo(cmd.Context(), args[0], item.ID, item); err != nil {
				return err
			}
			fmt.Println("completed", item.ID)
			return nil
		}
		return fmt.Errorf("missing information item %q not found", args[1])
	},
}

var missingRmCmd = &cobra.Command{
	Use:   "rm <project-id> <info-id>",
	Short: "Remove a missing information item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := api.DeleteMissingInfo(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Println("removed")
		return nil
	},
}

func init() {
	missingAddCmd.Flags().StringVar(&missingDimension, "dimension", "", "dimension the gap belongs to")
	missingAddCmd.Flags().StringVar(&missingType, "type", "", "information type")
	missingAddCmd.Flags().StringVar(&missingDescription, "description", "", "what is missing")
	missingAddCmd.MarkFlagRequired("dimension")
	missingAddCmd.MarkFlagRequired("type")

	missingCmd.AddCommand(missingListCmd, missingAddCmd, missingDoneCmd, missingRmCmd)
}
