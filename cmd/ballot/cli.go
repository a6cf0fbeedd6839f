package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/peterbourgon/ff/ffcli"

	"github.com/Vinothdevgit/voting-client/internal/bootstrap"
	"github.com/Vinothdevgit/voting-client/internal/domain/countdown"
	"github.com/Vinothdevgit/voting-client/internal/domain/routing"
	apperrors "github.com/Vinothdevgit/voting-client/internal/errors"
	"github.com/Vinothdevgit/voting-client/internal/ports"
)

// cli carries process-wide state shared by every command.
type cli struct {
	ctx    context.Context
	stdin  *bufio.Reader
	stdout io.Writer
	stderr io.Writer

	envFile *string
	output  *string
}

func newCLI(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer) *cli {
	return &cli{
		ctx:    ctx,
		stdin:  bufio.NewReader(stdin),
		stdout: stdout,
		stderr: &lockedWriter{w: stderr},
	}
}

// lockedWriter serialises writes from the countdown goroutine and the
// command goroutine.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func (c *cli) run(args []string) int {
	root := c.rootCommand()
	if err := root.Run(args); err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			return 0
		case errors.Is(err, errUsage):
			return 2
		}
		fmt.Fprintln(c.stderr, "error:", userMessage(err))
		return 1
	}
	return 0
}

func (c *cli) rootCommand() *ffcli.Command {
	fs := newFlagSet("ballot", c.stderr)
	c.envFile = fs.String("env", ".env", "dotenv file applied before reading the environment")
	c.output = fs.String("o", string(formatTable), "output format: table, json or yaml")

	root := &ffcli.Command{
		Usage:     "ballot [flags] <subcommand> [args]",
		ShortHelp: "Campus election client",
		FlagSet:   fs,
		Subcommands: []*ffcli.Command{
			c.loginCommand(),
			c.logoutCommand(),
			c.whoamiCommand(),
			c.openCommand(),
			c.candidatesCommand(),
			c.voteCommand(),
			c.resultsCommand(),
			c.adminCommand(),
		},
	}
	root.Exec = c.usageExec(root)
	return root
}

// errUsage reports that a command group was run without a known subcommand.
var errUsage = errors.New("usage")

func (c *cli) usageExec(cmd *ffcli.Command) func([]string) error {
	return func(args []string) error {
		if len(args) > 0 {
			fmt.Fprintf(c.stderr, "unknown command %q\n\n", args[0])
		}
		fmt.Fprintln(c.stderr, ffcli.DefaultUsageFunc(cmd))
		return errUsage
	}
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

// session opens the wired app, restores any stored session and hands both to
// fn. The app is closed when fn returns.
func (c *cli) session(onTick func(countdown.State), fn func(app *bootstrap.App, home routing.View) error) error {
	cfg, err := bootstrap.LoadConfig(*c.envFile)
	if err != nil {
		return err
	}
	logger := bootstrap.InitLogger(cfg.Observability.Logging, c.stderr)

	if _, err := parseFormat(*c.output); err != nil {
		return err
	}

	app, err := bootstrap.New(c.ctx, bootstrap.AppOptions{
		Config: cfg,
		Logger: logger,
		Navigator: ports.NavigatorFunc(func(v routing.View) {
			logger.Debug("view changed", "view", v.String())
		}),
		OnTick: onTick,
	})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Warn("close app", "error", closeErr)
		}
	}()

	home, err := app.Controller.Restore(c.ctx)
	if err != nil {
		return err
	}
	return fn(app, home)
}

// requireView navigates to view and fails unless the session may stay there.
func requireView(ctx context.Context, app *bootstrap.App, view routing.View) error {
	d, err := app.Controller.Navigate(ctx, string(view))
	if err != nil {
		return err
	}
	if d.View == routing.ViewLogin {
		return apperrors.Unauthenticated("not logged in; run `ballot login` first")
	}
	if d.Redirected {
		return apperrors.Unauthenticated(fmt.Sprintf("%s is not available to this account", view.Title()))
	}
	return nil
}

func (c *cli) printer() printer {
	f, _ := parseFormat(*c.output)
	return printer{w: c.stdout, format: f}
}

func (c *cli) readLine(prompt string) (string, error) {
	fmt.Fprint(c.stderr, prompt)
	line, err := c.stdin.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func userMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		if appErr.Field != "" {
			return appErr.Field + ": " + appErr.Message
		}
		return appErr.Message
	}
	return err.Error()
}
