package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
)

const (
	_defaultAddr    = "http://localhost:8080"
	_defaultTimeout = 30 * time.Second
)

type runtimeState struct {
	addr    string
	timeout time.Duration
	client  *Client
	writer  io.Writer
}

type runtimeKey struct{}

// NewRootCommand builds deletereqctl. out receives command output.
func NewRootCommand(out io.Writer) *cobra.Command {
	rt := &runtimeState{writer: out}

	root := &cobra.Command{
		Use:           "deletereqctl",
		Short:         "Operator CLI for the deletion request mailer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if rt.writer == nil {
				rt.writer = os.Stdout
			}
			if rt.addr == "" {
				rt.addr = os.Getenv("DELETEREQ_ADDR")
			}
			if rt.addr == "" {
				rt.addr = _defaultAddr
			}
			rt.client = NewClient(rt.addr, rt.timeout)

			return nil
		},
	}

	root.PersistentFlags().StringVar(&rt.addr, "addr", "", "Mailer base URL (env DELETEREQ_ADDR)")
	root.PersistentFlags().DurationVar(&rt.timeout, "timeout", _defaultTimeout, "Request timeout")

	root.SetContext(context.WithValue(context.Background(), runtimeKey{}, rt))

	root.AddCommand(
		newSendCommand(),
		newReprocessCommand(),
	)

	return root
}

func getRuntime(cmd *cobra.Command) (*runtimeState, error) {
	rt, ok := cmd.Context().Value(runtimeKey{}).(*runtimeState)
	if !ok || rt == nil || rt.client == nil {
		return nil, errors.New("runtime not initialized")
	}

	return rt, nil
}
