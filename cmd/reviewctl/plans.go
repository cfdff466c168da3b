package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bp-review/bp-review-go/internal/review/client"
	"github.com/bp-review/bp-review-go/internal/review/status"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <project-id> <file.pdf>",
	Short: "Upload a business plan document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[1]
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		name := filepath.Base(path)
		if err := client.ValidateUpload(name, info.Size()); err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := api.UploadBusinessPlan(cmd.Context(), args[0], name, f); err != nil {
			return err
		}
		fmt.Println("uploaded", name)
		return nil
	},
}

var downloadOut string

var downloadCmd = &cobra.Command{
	Use:   "download <bp|report> <project-id>",
	Short: "Download the business plan or the review report",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			dl  client.Download
			err error
		)
		switch args[0] {
		case "bp":
			dl, err = api.DownloadBusinessPlan(cmd.Context(), args[1], "business-plan.pdf")
		case "report":
			dl, err = api.DownloadReport(cmd.Context(), args[1], "report.pdf")
		default:
			return fmt.Errorf("unknown download kind %q, want bp or report", args[0])
		}
		if err != nil {
			return err
		}

		out := downloadOut
		if out == "" {
			out = dl.FileName
		}
		if err := os.WriteFile(out, dl.Data, 0o644); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d bytes)\n", out, len(dl.Data))
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch <project-id>",
	Short: "Follow live processing progress until it finishes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sub, err := status.Subscribe(cmd.Context(), wsBase, args[0])
		if err != nil {
			return err
		}
		defer sub.Close()

		for msg := range sub.Messages() {
			fmt.Printf("%3d%%  %s\n", msg.Progress, msg.Message)
		}
		if err := sub.Err(); err != nil {
			return err
		}
		fmt.Println("processing finished")
		return nil
	},
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadOut, "out", "o", "", "output file (defaults to the server-reported name)")
}
