package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func (c *CLI) newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run commands interactively over one shared cache",
		Long: "Run commands interactively. Every line is parsed like a command line and runs " +
			"against the same query cache, so repeated reads are served from memory and writes " +
			"invalidate what they affect. Logins made elsewhere reset the cache.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				if err := c.app.WatchCredentials(ctx); err != nil {
					_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "warning: not following logins:", err)
				}
				return nil
			})
			g.Go(func() error {
				defer cancel()
				return c.repl(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			})
			return g.Wait()
		},
	}
}

// repl runs each input line as a command until exit, end of input or ctx is done.
func (c *CLI) repl(ctx context.Context, in io.Reader, out, errOut io.Writer) error {
	if !c.app.LoggedIn() {
		_, _ = fmt.Fprintln(errOut, "Not logged in. Run login first.")
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		_, _ = fmt.Fprint(errOut, "depot> ")
		var line string
		select {
		case <-ctx.Done():
			return nil
		case l, ok := <-lines:
			if !ok {
				return nil
			}
			line = strings.TrimSpace(l)
		}

		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		args, err := shlex.Split(line)
		if err != nil {
			_, _ = fmt.Fprintln(errOut, "Error:", err)
			continue
		}
		if len(args) > 0 && args[0] == "shell" {
			continue
		}

		sub := c.child()
		sub.SetArgs(args)
		sub.SetOutput(out, errOut)
		sub.SetInput(strings.NewReader(""))
		if err := sub.Execute(ctx); err != nil && !Shown(err) {
			_, _ = fmt.Fprintln(errOut, "Error:", err)
		}
	}
}

// child returns a fresh command tree carrying the global flags of c.
func (c *CLI) child() *CLI {
	sub := New(c.app)
	pf := sub.rootCmd.PersistentFlags()
	_ = pf.Set("verbose", strconv.FormatBool(c.opts.verbose))
	_ = pf.Set("log-json", strconv.FormatBool(c.opts.logJSON))
	_ = pf.Set("output", c.opts.output)
	return sub
}
