package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ingestctl/internal/buildinfo"
	"github.com/dmitrijs2005/ingestctl/internal/client/config"
	"github.com/dmitrijs2005/ingestctl/internal/client/models"
	"github.com/spf13/cobra"
)

// newAppFn is a test seam for App construction.
var newAppFn = NewApp

type runner struct {
	streams IO
	app     *App
}

// load builds the App on first use, after flags are parsed. Commands that
// never reach it (help, completion) leave the session database alone.
func (r *runner) load(cmd *cobra.Command) (*App, error) {
	if r.app != nil {
		return r.app, nil
	}
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	app, err := newAppFn(cmd.Context(), cfg, r.streams)
	if err != nil {
		return nil, err
	}
	r.app = app
	return app, nil
}

func (r *runner) close() error {
	if r.app == nil {
		return nil
	}
	return r.app.Close()
}

type handler func(ctx context.Context, a *App, cmd *cobra.Command, args []string) error

func (r *runner) run(h handler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := r.load(cmd)
		if err != nil {
			return err
		}
		return h(cmd.Context(), a, cmd, args)
	}
}

// Execute runs the console with args (without the program name).
func Execute(ctx context.Context, args []string, streams IO) error {
	r := &runner{streams: streams}
	root := newRootCommand(r)
	root.SetArgs(args)
	root.SetIn(streams.In)
	root.SetOut(streams.Out)
	root.SetErr(streams.Err)

	err := root.ExecuteContext(ctx)
	return errors.Join(err, r.close())
}

func newRootCommand(r *runner) *cobra.Command {
	root := &cobra.Command{
		Use:           "ingestctl",
		Short:         "Operate the document ingestion pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		authCommands(r)...,
	)
	root.AddCommand(
		jobsCommand(r), jobCommand(r), cancelCommand(r),
		simple(r, "queues", "Show queue depths", (*App).Queues),
		simple(r, "system", "Show the system health score", (*App).System),
		simple(r, "workers", "Show worker status", (*App).Workers),
		watchCommand(r),
		uploadCommand(r), submitCommand(r),
		approvalsCommand(r), decideCommand(r, "approve", true), decideCommand(r, "reject", false),
		documentsCommand(r), documentCommand(r), searchCommand(r),
		simple(r, "doc-stats", "Show document statistics", (*App).DocStats),
		downloadCommand(r),
		adminCommand(r),
		simple(r, "console", "Start the interactive console", (*App).Console),
		versionCommand(),
	)
	return root
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}

func simple(r *runner, use, short string, f func(*App, context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, a *App, _ *cobra.Command, _ []string) error {
			return f(a, ctx)
		}),
	}
}

func authCommands(r *runner) []*cobra.Command {
	login := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session locally",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, a *App, cmd *cobra.Command, _ []string) error {
			user, _ := cmd.Flags().GetString("username")
			return a.Login(ctx, user)
		}),
	}
	login.Flags().StringP("username", "u", "", "username (prompted when empty)")

	return []*cobra.Command{
		simple(r, "health", "Check that the API is reachable", (*App).Health),
		login,
		simple(r, "logout", "Forget the stored session", (*App).Logout),
		simple(r, "whoami", "Show the signed-in user", (*App).WhoAmI),
	}
}

func jobsCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List processing jobs",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, a *App, cmd *cobra.Command, _ []string) error {
			dashboard, _ := cmd.Flags().GetBool("dashboard")
			limit, _ := cmd.Flags().GetInt("limit")
			return a.Jobs(ctx, dashboard, limit)
		}),
	}
	cmd.Flags().Bool("dashboard", false, "use the dashboard feed of recent jobs")
	cmd.Flags().Int("limit", 0, "maximum number of jobs (dashboard default: --recent-jobs)")
	return cmd
}

func byID(r *runner, use, short string, f func(a *App, ctx context.Context, id string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(ctx context.Context, a *App, _ *cobra.Command, args []string) error {
			return f(a, ctx, args[0])
		}),
	}
}

func jobCommand(r *runner) *cobra.Command {
	return byID(r, "job", "Show one job", (*App).Job)
}

func cancelCommand(r *runner) *cobra.Command {
	return byID(r, "cancel", "Cancel a job", (*App).Cancel)
}

func documentCommand(r *runner) *cobra.Command {
	return byID(r, "document", "Show one document with its content", (*App).Document)
}

func decideCommand(r *runner, use string, approved bool) *cobra.Command {
	verb := "Reject"
	if approved {
		verb = "Approve"
	}
	return byID(r, use, verb+" a pending approval", func(a *App, ctx context.Context, id string) error {
		return a.Decide(ctx, id, approved)
	})
}

func watchCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Refresh the dashboard every poll interval",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, a *App, cmd *cobra.Command, _ []string) error {
			count, _ := cmd.Flags().GetInt("count")
			return a.Watch(ctx, count)
		}),
	}
	cmd.Flags().Int("count", 0, "stop after this many refreshes (0 = until interrupted)")
	return cmd
}

func ingestFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "job name")
	cmd.Flags().Bool("no-approval", false, "skip the approval step")
}

func readIngestOptions(cmd *cobra.Command) ingestOptions {
	name, _ := cmd.Flags().GetString("name")
	noApproval, _ := cmd.Flags().GetBool("no-approval")
	notes, _ := cmd.Flags().GetString("notes")
	return ingestOptions{JobName: name, Notes: notes, ApprovalRequired: !noApproval}
}

func uploadCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload files and start a processing job",
		Args:  cobra.MinimumNArgs(1),
		RunE: r.run(func(ctx context.Context, a *App, cmd *cobra.Command, args []string) error {
			return a.Upload(ctx, args, readIngestOptions(cmd))
		}),
	}
	ingestFlags(cmd)
	return cmd
}

func submitCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit <url>...",
		Short: "Submit web pages for processing",
		Args:  cobra.MinimumNArgs(1),
		RunE: r.run(func(ctx context.Context, a *App, cmd *cobra.Command, args []string) error {
			return a.Submit(ctx, args, readIngestOptions(cmd))
		}),
	}
	ingestFlags(cmd)
	cmd.Flags().String("notes", "", "notes for the reviewer")
	return cmd
}

func approvalsCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approvals",
		Short: "List pending approvals",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, a *App, cmd *cobra.Command, _ []string) error {
			history, _ := cmd.Flags().GetBool("history")
			return a.Approvals(ctx, history)
		}),
	}
	cmd.Flags().Bool("history", false, "list past decisions instead")
	return cmd
}

func documentsCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "documents",
		Short: "List processed documents",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, a *App, cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			offset, _ := cmd.Flags().GetInt("offset")
			return a.Documents(ctx, limit, offset)
		}),
	}
	cmd.Flags().Int("limit", 50, "page size")
	cmd.Flags().Int("offset", 0, "page start")
	return cmd
}

func searchCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search documents",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(ctx context.Context, a *App, cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return a.Search(ctx, args[0], limit)
		}),
	}
	cmd.Flags().Int("limit", 20, "maximum number of results")
	return cmd
}

func downloadCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download <id>",
		Short: "Download a document's content",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(ctx context.Context, a *App, cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			out, _ := cmd.Flags().GetString("out")
			f := models.DownloadFormat(format)
			if f != models.FormatMarkdown && f != models.FormatJSON {
				return fmt.Errorf("unknown format %q (want markdown or json)", format)
			}
			return a.Download(ctx, args[0], f, out)
		}),
	}
	cmd.Flags().String("format", string(models.FormatMarkdown), "markdown or json")
	cmd.Flags().StringP("out", "o", "", "output file, - for stdout (default: server file name)")
	return cmd
}

func adminCommand(r *runner) *cobra.Command {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Destructive maintenance operations",
	}
	destructive := func(use, short string, f func(*App, context.Context, bool) error) *cobra.Command {
		cmd := &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: r.run(func(ctx context.Context, a *App, cmd *cobra.Command, _ []string) error {
				yes, _ := cmd.Flags().GetBool("yes")
				return f(a, ctx, yes)
			}),
		}
		cmd.Flags().Bool("yes", false, "confirm the operation")
		return cmd
	}
	admin.AddCommand(
		destructive("clear-buckets", "Delete every object in the storage buckets", (*App).ClearBuckets),
		destructive("clear-tables", "Delete every job and document record", (*App).ClearTables),
	)
	return admin
}
