package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/gophtasks/internal/client/client"
)

func newTasksCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage tasks",
	}
	cmd.AddCommand(newTasksListCmd(s))
	cmd.AddCommand(newTasksAddCmd(s))
	cmd.AddCommand(newTasksStatusCmd(s))
	cmd.AddCommand(newTasksDeleteCmd(s))
	return cmd
}

func newTasksListCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := s.tokens.Load()
			if err != nil {
				return err
			}
			tasks, err := s.api.ListTasks(cmd.Context(), token)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no tasks")
				return nil
			}
			return printTasks(cmd.OutOrStdout(), tasks)
		},
	}
}

func newTasksAddCmd(s *session) *cobra.Command {
	var (
		title       string
		description string
		status      string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := s.tokens.Load()
			if err != nil {
				return err
			}

			var desc *string
			if cmd.Flags().Changed("description") {
				desc = &description
			}

			task, err := s.api.CreateTask(cmd.Context(), token, title, desc, status)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created task %d\n", task.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "task title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	cmd.Flags().StringVarP(&status, "status", "s", "new", "new, in_progress or done")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newTasksStatusCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Change a task's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			token, err := s.tokens.Load()
			if err != nil {
				return err
			}
			task, err := s.api.UpdateTaskStatus(cmd.Context(), token, id, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "task %d is now %s\n", task.ID, task.Status)
			return nil
		},
	}
}

func newTasksDeleteCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			token, err := s.tokens.Load()
			if err != nil {
				return err
			}
			if err := s.api.DeleteTask(cmd.Context(), token, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted task %d\n", id)
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}

func printTasks(w io.Writer, tasks []client.Task) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tTITLE\tDESCRIPTION")
	for _, t := range tasks {
		desc := "-"
		if t.Description != nil {
			desc = *t.Description
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", t.ID, t.Status, t.Title, desc)
	}
	return tw.Flush()
}
