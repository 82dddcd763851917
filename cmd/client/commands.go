package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	boardv1 "github.com/gurkanbulca/opsboard/api/board/v1"
	"github.com/gurkanbulca/opsboard/pkg/optional"
)

func listCmd() *cobra.Command {
	var eventID, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in board order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client boardv1.BoardServiceClient) error {
				resp, err := client.ListTasks(ctx, &boardv1.ListTasksRequest{
					OrganizationID: flags.org,
					EventID:        eventID,
					Status:         strings.ToUpper(status),
				})
				if err != nil {
					return err
				}
				if flags.asJSON {
					return printJSON(resp)
				}
				if resp.LoadError != "" {
					fmt.Printf("Board unavailable: %s\n", resp.LoadError)
					return nil
				}
				for _, t := range resp.Tasks {
					printTask(t)
				}
				fmt.Printf("%d task(s)\n", len(resp.Tasks))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&eventID, "event", "e", "", "Only tasks of this event")
	cmd.Flags().StringVarP(&status, "status", "s", "", "Only tasks with this status")
	return cmd
}

func boardCmd() *cobra.Command {
	var eventID string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the board grouped into columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client boardv1.BoardServiceClient) error {
				resp, err := client.GetBoard(ctx, &boardv1.GetBoardRequest{OrganizationID: flags.org, EventID: eventID})
				if err != nil {
					return err
				}
				if flags.asJSON {
					return printJSON(resp)
				}
				if resp.LoadError != "" {
					fmt.Printf("Board unavailable: %s\n", resp.LoadError)
				}
				for _, col := range resp.Columns {
					fmt.Printf("== %s (%d)\n", col.Status, len(col.Tasks))
					for _, t := range col.Tasks {
						printTask(t)
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&eventID, "event", "e", "", "Only tasks of this event")
	return cmd
}

func createCmd() *cobra.Command {
	var req boardv1.CreateTaskRequest
	var assigneeID, assigneeName, due string
	var checklist []string

	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a task at the head of the board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.OrganizationID = flags.org
			req.Title = args[0]
			req.Status = strings.ToUpper(req.Status)
			req.Priority = strings.ToUpper(req.Priority)
			req.Type = strings.ToUpper(req.Type)
			if assigneeName != "" {
				req.Assignee = &boardv1.Assignee{ID: assigneeID, Name: assigneeName}
			}
			if due != "" {
				d, err := time.Parse(time.DateOnly, due)
				if err != nil {
					return fmt.Errorf("invalid --due %q: %w", due, err)
				}
				req.DueDate = &d
			}
			for _, text := range checklist {
				req.Checklist = append(req.Checklist, &boardv1.ChecklistItem{Text: text})
			}

			return withClient(cmd, func(ctx context.Context, client boardv1.BoardServiceClient) error {
				resp, err := client.CreateTask(ctx, &req)
				if err != nil {
					return err
				}
				return showTask(resp)
			})
		},
	}
	f := cmd.Flags()
	f.StringVarP(&req.Description, "description", "d", "", "Task description")
	f.StringVarP(&req.Status, "status", "s", "", "Initial status (default TODO)")
	f.StringVarP(&req.Priority, "priority", "p", "", "Priority (default MEDIUM)")
	f.StringVarP(&req.Type, "type", "t", "", "Task type (default GENERAL)")
	f.StringVarP(&req.EventID, "event", "e", "", "Event ID")
	f.StringVar(&assigneeID, "assignee-id", "", "Assignee user ID")
	f.StringVar(&assigneeName, "assignee", "", "Assignee display name")
	f.StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	f.StringVar(&req.RelatedLabel, "label", "", "Label of the related record")
	f.StringArrayVar(&checklist, "check", nil, "Checklist item text (repeatable)")
	return cmd
}

func updateCmd() *cobra.Command {
	var title, description, status, priority, taskType, assignee, due string
	var unassign, clearDue bool

	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &boardv1.UpdateTaskRequest{OrganizationID: flags.org, TaskID: args[0]}
			f := cmd.Flags()
			if f.Changed("title") {
				req.Title = optional.Of(title)
			}
			if f.Changed("description") {
				req.Description = optional.Of(description)
			}
			if f.Changed("status") {
				req.Status = optional.Of(strings.ToUpper(status))
			}
			if f.Changed("priority") {
				req.Priority = optional.Of(strings.ToUpper(priority))
			}
			if f.Changed("type") {
				req.Type = optional.Of(strings.ToUpper(taskType))
			}
			switch {
			case unassign:
				req.Assignee = optional.Null[boardv1.Assignee]()
			case f.Changed("assignee"):
				req.Assignee = optional.Of(boardv1.Assignee{ID: assignee, Name: assignee})
			}
			switch {
			case clearDue:
				req.DueDate = optional.Null[time.Time]()
			case f.Changed("due"):
				d, err := time.Parse(time.DateOnly, due)
				if err != nil {
					return fmt.Errorf("invalid --due %q: %w", due, err)
				}
				req.DueDate = optional.Of(d)
			}

			return withClient(cmd, func(ctx context.Context, client boardv1.BoardServiceClient) error {
				resp, err := client.UpdateTask(ctx, req)
				if err != nil {
					return err
				}
				return showTask(resp)
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&title, "title", "", "New title")
	f.StringVarP(&description, "description", "d", "", "New description")
	f.StringVarP(&status, "status", "s", "", "New status")
	f.StringVarP(&priority, "priority", "p", "", "New priority")
	f.StringVarP(&taskType, "type", "t", "", "New task type")
	f.StringVar(&assignee, "assignee", "", "Assign to this name")
	f.BoolVar(&unassign, "unassign", false, "Remove the assignee")
	f.StringVar(&due, "due", "", "New due date (YYYY-MM-DD)")
	f.BoolVar(&clearDue, "clear-due", false, "Remove the due date")
	cmd.MarkFlagsMutuallyExclusive("assignee", "unassign")
	cmd.MarkFlagsMutuallyExclusive("due", "clear-due")
	return cmd
}

func moveCmd() *cobra.Command {
	var over string

	cmd := &cobra.Command{
		Use:   "move <task-id> <status>",
		Short: "Move a task to a column, optionally before another task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client boardv1.BoardServiceClient) error {
				resp, err := client.MoveTask(ctx, &boardv1.MoveTaskRequest{
					OrganizationID: flags.org,
					TaskID:         args[0],
					Status:         strings.ToUpper(args[1]),
					OverTaskID:     over,
				})
				if err != nil {
					return err
				}
				return showTask(resp)
			})
		},
	}
	cmd.Flags().StringVar(&over, "over", "", "Drop target task ID")
	return cmd
}

func commentCmd() *cobra.Command {
	var imageURL string

	cmd := &cobra.Command{
		Use:   "comment <task-id> <message>",
		Short: "Add a comment as the --user-name caller",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client boardv1.BoardServiceClient) error {
				resp, err := client.AddComment(ctx, &boardv1.AddCommentRequest{
					OrganizationID: flags.org,
					TaskID:         args[0],
					Message:        args[1],
					ImageURL:       imageURL,
				})
				if err != nil {
					return err
				}
				return showTask(resp)
			})
		},
	}
	cmd.Flags().StringVar(&imageURL, "image", "", "Attached image URL")
	return cmd
}

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Manage task checklists",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <task-id> <text>",
		Short: "Append a checklist item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client boardv1.BoardServiceClient) error {
				resp, err := client.AddChecklistItem(ctx, &boardv1.AddChecklistItemRequest{
					OrganizationID: flags.org,
					TaskID:         args[0],
					Text:           args[1],
				})
				if err != nil {
					return err
				}
				return showTask(resp)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <task-id> <item-id>",
		Short: "Flip a checklist item between open and done",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client boardv1.BoardServiceClient) error {
				resp, err := client.ToggleChecklistItem(ctx, &boardv1.ToggleChecklistItemRequest{
					OrganizationID: flags.org,
					TaskID:         args[0],
					ItemID:         args[1],
				})
				if err != nil {
					return err
				}
				return showTask(resp)
			})
		},
	})
	return cmd
}

func reloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Reload the board from the backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd, func(ctx context.Context, client boardv1.BoardServiceClient) error {
				if _, err := client.ReloadBoard(ctx, &boardv1.ReloadBoardRequest{OrganizationID: flags.org}); err != nil {
					return err
				}
				fmt.Println("Board reloaded")
				return nil
			})
		},
	}
}

func watchCmd() *cobra.Command {
	var eventID string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream board events until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, closeConn, err := dial()
			if err != nil {
				return err
			}
			defer closeConn()

			stream, err := client.WatchBoard(callContext(cmd.Context()), &boardv1.WatchBoardRequest{
				OrganizationID: flags.org,
				EventID:        eventID,
			})
			if err != nil {
				return err
			}
			for {
				ev, err := stream.Recv()
				if errors.Is(err, io.EOF) || cmd.Context().Err() != nil {
					return nil
				}
				if err != nil {
					return err
				}
				if flags.asJSON {
					if err := printJSON(ev); err != nil {
						return err
					}
					continue
				}
				fmt.Printf("%s %s", ev.Timestamp.Local().Format(time.TimeOnly), ev.Type)
				switch {
				case ev.LoadError != "":
					fmt.Printf(" (board unavailable: %s)\n", ev.LoadError)
				case ev.Task != nil:
					fmt.Println()
					printTask(ev.Task)
				default:
					fmt.Printf(" %d task(s)\n", len(ev.Tasks))
				}
			}
		},
	}
	cmd.Flags().StringVarP(&eventID, "event", "e", "", "Only events for tasks of this event")
	return cmd
}

func showTask(resp *boardv1.TaskResponse) error {
	if flags.asJSON {
		return printJSON(resp)
	}
	printTaskDetail(resp.Task)
	return nil
}
