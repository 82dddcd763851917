// cmd/client/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	boardv1 "github.com/gurkanbulca/opsboard/api/board/v1"
	"github.com/gurkanbulca/opsboard/internal/middleware"
)

type globalFlags struct {
	addr     string
	org      string
	userID   string
	userName string
	asJSON   bool
	timeout  time.Duration
}

var flags globalFlags

func main() {
	rootCmd := &cobra.Command{
		Use:          "opsboard",
		Short:        "Ops board command line client",
		Long:         "opsboard talks to the ops board gRPC service: list and move tasks, comment, tick checklists and follow live board events.",
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.addr, "addr", envOr("OPSBOARD_ADDR", "localhost:50051"), "gRPC server address")
	pf.StringVarP(&flags.org, "org", "o", envOr("OPSBOARD_ORG", "org-demo"), "Organization ID")
	pf.StringVar(&flags.userID, "user-id", os.Getenv("OPSBOARD_USER_ID"), "Caller user ID sent as x-user-id")
	pf.StringVar(&flags.userName, "user-name", os.Getenv("OPSBOARD_USER_NAME"), "Caller display name sent as x-user-name")
	pf.BoolVar(&flags.asJSON, "json", false, "Print raw JSON")
	pf.DurationVar(&flags.timeout, "timeout", 10*time.Second, "Per-call timeout")

	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(boardCmd())
	rootCmd.AddCommand(createCmd())
	rootCmd.AddCommand(updateCmd())
	rootCmd.AddCommand(moveCmd())
	rootCmd.AddCommand(commentCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(reloadCmd())
	rootCmd.AddCommand(watchCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// dial opens a client connection; the returned close func must be called.
func dial() (boardv1.BoardServiceClient, func(), error) {
	conn, err := grpc.NewClient(flags.addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to %s: %w", flags.addr, err)
	}
	return boardv1.NewBoardServiceClient(conn), func() { _ = conn.Close() }, nil
}

// callContext attaches the caller identity headers.
func callContext(parent context.Context) context.Context {
	var kv []string
	if flags.userID != "" {
		kv = append(kv, middleware.HeaderUserID, flags.userID)
	}
	if flags.userName != "" {
		kv = append(kv, middleware.HeaderUserName, flags.userName)
	}
	if len(kv) == 0 {
		return parent
	}
	return metadata.AppendToOutgoingContext(parent, kv...)
}

func withClient(cmd *cobra.Command, fn func(ctx context.Context, client boardv1.BoardServiceClient) error) error {
	client, closeConn, err := dial()
	if err != nil {
		return err
	}
	defer closeConn()

	ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
	defer cancel()
	return fn(callContext(ctx), client)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printTask(t *boardv1.Task) {
	if t == nil {
		return
	}
	assignee := "-"
	if t.Assignee != nil {
		assignee = t.Assignee.Name
	}
	fmt.Printf("%s  [%s] %-8s %s\n", t.ID, t.Status, t.Priority, t.Title)
	fmt.Printf("    type=%s assignee=%s checklist=%d/%d comments=%d\n",
		t.Type, assignee, t.ChecklistDone, t.ChecklistTotal, t.CommentsCount)
}

func printTaskDetail(t *boardv1.Task) {
	printTask(t)
	if t == nil {
		return
	}
	for _, item := range t.Checklist {
		mark := " "
		if item.Done {
			mark = "x"
		}
		fmt.Printf("    [%s] %s (%s)\n", mark, item.Text, item.ID)
	}
	for _, a := range t.Activity {
		fmt.Printf("    %s %s: %s\n", a.CreatedAt.Local().Format("2006-01-02 15:04"), a.AuthorName, a.Message)
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
