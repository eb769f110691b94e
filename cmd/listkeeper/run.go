package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HendryAvila/listkeeper/internal/actions"
	lkserver "github.com/HendryAvila/listkeeper/internal/server"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Apply newline-delimited action records from stdin",
	Long: `Reads one action record per line from stdin, for example:

  {"actionName":"addItems","parameters":{"listName":"groceries","items":["milk","eggs"]}}

and writes one JSON line per record to stdout: the result, null when the
action produced none, or {"error": "..."} when it failed. A failed record
does not stop the run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, cleanup, err := lkserver.OpenSession(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()
		return runActions(cmd.Context(), sess, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
	},
}

// executor is the part of a session runActions needs.
type executor interface {
	Execute(ctx context.Context, action actions.Action) (*actions.Result, error)
}

type errorLine struct {
	Error string `json:"error"`
}

// maxLineSize bounds one action record.
const maxLineSize = 1 << 20

// runActions applies every record read from in, in order, and writes one
// line per record to out. Blank lines are skipped.
func runActions(ctx context.Context, exec executor, in io.Reader, out io.Writer, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		var payload any
		action, err := actions.Decode([]byte(text))
		if err == nil {
			var r *actions.Result
			r, err = exec.Execute(ctx, action)
			if r != nil {
				payload = r
			}
		}
		if err != nil {
			logger.Warn("action failed", zap.Int("line", line), zap.Error(err))
			payload = errorLine{Error: err.Error()}
		}

		if err := enc.Encode(payload); err != nil {
			return fmt.Errorf("writing result for line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading actions: %w", err)
	}
	return nil
}
