package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bp-review/bp-review-go/internal/review/domain"
	"github.com/bp-review/bp-review-go/internal/review/view"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage review projects",
}

var (
	listPage   int
	listSize   int
	listStatus string
	listSearch string
)

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v := view.NewProjectListView(api)
		v.Params = domain.ProjectListParams{
			Page:   listPage,
			Size:   listSize,
			Status: listStatus,
			Search: listSearch,
		}
		if err := v.Load(cmd.Context()); err != nil {
			return err
		}

		rows := make([][]string, 0, len(v.List.Items))
		for _, p := range v.List.Items {
			rows = append(rows, []string{
				p.ID, p.EnterpriseName, p.ProjectName, p.Status,
				formatScore(p.TotalScore), p.ReviewResult,
			})
		}
		table([]string{"ID", "ENTERPRISE", "PROJECT", "STATUS", "SCORE", "RESULT"}, rows)
		fmt.Printf("total %d\n", v.List.Total)
		return nil
	},
}

var projectsShowCmd = &cobra.Command{
	Use:   "show <project-id>",
	Short: "Show one project in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := api.GetProject(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		table([]string{"FIELD", "VALUE"}, [][]string{
			{"id", p.ID},
			{"enterprise", p.EnterpriseName},
			{"project", p.ProjectName},
			{"description", p.Description},
			{"team", p.TeamMembers},
			{"status", p.Status},
			{"total_score", formatScore(p.TotalScore)},
			{"review_result", p.ReviewResult},
			{"created_at", p.CreatedAt.Format("2006-01-02 15:04:05")},
		})
		return nil
	},
}

var (
	createEnterprise  string
	createName        string
	createDescription string
)

var projectsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v := view.NewNewProjectView(api)
		v.Form = domain.ProjectCreate{
			EnterpriseName: createEnterprise,
			ProjectName:    createName,
			Description:    createDescription,
		}
		if err := v.Create(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("created project %s (%s)\n", v.Created.ID, v.Created.Status)
		return nil
	},
}

var deleteYes bool

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <project-id>",
	Short: "Delete a project and all its data",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !deleteYes && !confirm(fmt.Sprintf("delete project %s and all its data?", args[0])) {
			fmt.Println("aborted")
			return nil
		}
		if err := api.DeleteProject(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("deleted")
		return nil
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show review statistics and recent projects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v := view.NewDashboardView(api)
		if err := v.Load(cmd.Context()); err != nil {
			return err
		}

		fmt.Printf("pending %d  completed %d  needs-info %d\n\n",
			v.Stats.PendingReview, v.Stats.Completed, v.Stats.NeedsInfo)

		rows := make([][]string, 0, len(v.Stats.RecentProjects))
		for _, p := range v.Stats.RecentProjects {
			rows = append(rows, []string{p.ID, p.EnterpriseName, p.ProjectName, p.Status})
		}
		table([]string{"ID", "ENTERPRISE", "PROJECT", "STATUS"}, rows)
		return nil
	},
}

func init() {
	projectsListCmd.Flags().IntVar(&listPage, "page", 1, "page number")
	projectsListCmd.Flags().IntVar(&listSize, "size", 10, "page size")
	projectsListCmd.Flags().StringVar(&listStatus, "status", "", "filter by status")
	projectsListCmd.Flags().StringVar(&listSearch, "search", "", "search enterprise or project name")

	projectsCreateCmd.Flags().StringVar(&createEnterprise, "enterprise", "", "enterprise name")
	projectsCreateCmd.Flags().StringVar(&createName, "name", "", "project name")
	projectsCreateCmd.Flags().StringVar(&createDescription, "description", "", "project description")
	projectsCreateCmd.MarkFlagRequired("enterprise")
	projectsCreateCmd.MarkFlagRequired("name")

	projectsDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip confirmation")

	projectsCmd.AddCommand(projectsListCmd, projectsShowCmd, projectsCreateCmd, projectsDeleteCmd)
}

func formatScore(score *float64) string {
	if score == nil {
		return "-"
	}
	return strconv.FormatFloat(*score, 'f', -1, 64)
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
