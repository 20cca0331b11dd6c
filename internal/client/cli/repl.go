package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

const (
	consoleDocumentsLimit = 20
	consoleSearchLimit    = 20
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Health(ctx context.Context) error
	Login(ctx context.Context, username string) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Jobs(ctx context.Context, dashboard bool, limit int) error
	Job(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
	Queues(ctx context.Context) error
	System(ctx context.Context) error
	Workers(ctx context.Context) error
	Approvals(ctx context.Context, history bool) error
	Decide(ctx context.Context, id string, approved bool) error
	Documents(ctx context.Context, limit, offset int) error
	Document(ctx context.Context, id string) error
	Search(ctx context.Context, query string, limit int) error
	DocStats(ctx context.Context) error
	Upload(ctx context.Context, paths []string, opts ingestOptions) error
	Submit(ctx context.Context, urls []string, opts ingestOptions) error
	Notes() (string, error)
}

// runREPL starts a simple read-eval-print loop for the ingestion console.
//
// It reads a line from in, parses the first token as the
// command and the rest as its arguments, and dispatches to methods on 'a'.
// The loop exits on EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts:
//
//	help                   show available commands
//	health                 probe the API
//	login [user] | logout  open or close the session
//	whoami                 show the signed-in user
//	jobs [all]             recent jobs (all: the full jobs table)
//	job <id> | cancel <id> inspect or cancel a job
//	queues | system | workers
//	approvals [history]    pending approvals or past decisions
//	approve <id> | reject <id>
//	docs [offset]          processed documents
//	doc <id>               one document with its content
//	search <query>         full-text document search
//	stats                  document statistics
//	upload <file>...       upload files as one job
//	submit <url>...        submit web pages (prompts for notes)
//	exit | quit            leave the console
//
// Handler errors are printed and the loop continues.
//
// Prompts issued by handlers (notes, username) must read from the same in:
// the loop consumes exactly one line per command and never reads ahead.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("ingest %s > ", statusFn()))
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn("Error:", err)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn(ctx) {
			printlnFn("Available commands: health, whoami, jobs, job, cancel, queues, system, workers, approvals, approve, reject, docs, doc, search, stats, upload, submit, logout, exit")
		} else {
			printlnFn("Available commands: health, login, jobs, queues, system, workers, docs, stats, exit")
		}
		return nil

	case "health":
		return a.Health(ctx)

	case "login":
		user := ""
		if len(args) > 0 {
			user = args[0]
		}
		return a.Login(ctx, user)

	case "logout":
		return a.Logout(ctx)

	case "whoami":
		return a.WhoAmI(ctx)

	case "jobs":
		all := len(args) > 0 && args[0] == "all"
		return a.Jobs(ctx, !all, 0)

	case "job", "cancel", "approve", "reject", "doc":
		if len(args) != 1 {
			printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
			return nil
		}
		return withID(ctx, a, cmd, args[0])

	case "queues":
		return a.Queues(ctx)

	case "system":
		return a.System(ctx)

	case "workers":
		return a.Workers(ctx)

	case "approvals":
		return a.Approvals(ctx, len(args) > 0 && args[0] == "history")

	case "docs":
		offset := 0
		if len(args) > 0 {
			if _, err := fmt.Sscan(args[0], &offset); err != nil || offset < 0 {
				printlnFn("Usage: docs [offset]")
				return nil
			}
		}
		return a.Documents(ctx, consoleDocumentsLimit, offset)

	case "search":
		if len(args) == 0 {
			printlnFn("Usage: search <query>")
			return nil
		}
		return a.Search(ctx, strings.Join(args, " "), consoleSearchLimit)

	case "stats":
		return a.DocStats(ctx)

	case "upload":
		if len(args) == 0 {
			printlnFn("Usage: upload <file>...")
			return nil
		}
		return a.Upload(ctx, args, ingestOptions{ApprovalRequired: true})

	case "submit":
		if len(args) == 0 {
			printlnFn("Usage: submit <url>...")
			return nil
		}
		notes, err := a.Notes()
		if err != nil {
			return err
		}
		return a.Submit(ctx, args, ingestOptions{Notes: notes, ApprovalRequired: true})

	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}
}

func withID(ctx context.Context, a execIface, cmd, id string) error {
	switch cmd {
	case "job":
		return a.Job(ctx, id)
	case "cancel":
		return a.Cancel(ctx, id)
	case "approve":
		return a.Decide(ctx, id, true)
	case "reject":
		return a.Decide(ctx, id, false)
	default:
		return a.Document(ctx, id)
	}
}

// Console runs the interactive loop on the App's input until the user
// exits. A background watcher keeps the prompt's online state current.
func (a *App) Console(ctx context.Context) error {
	watcher := a.StartOnlineStatusWatcher(ctx, a.cfg.PollInterval)
	defer watcher.Stop()

	status := func() string {
		if user := a.username(ctx); user != "" {
			return fmt.Sprintf("[%s] %s", a.Mode(), user)
		}
		return fmt.Sprintf("[%s]", a.Mode())
	}

	runREPL(ctx, a, status, a.reader)
	return nil
}
