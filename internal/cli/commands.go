package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newSendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "send <payload.json|->",
		Short: "Email a delete request payload without storing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}

			body, err := readPayload(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			raw, err := rt.client.Post(cmd.Context(), "/v1/send", body)
			if err != nil {
				return err
			}

			return printJSON(rt.writer, raw)
		},
	}
}

func newReprocessCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reprocess <docId>",
		Short: "Run one processing attempt on a stored delete request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}

			body, err := json.Marshal(map[string]any{"docId": args[0], "force": force})
			if err != nil {
				return err
			}

			raw, err := rt.client.Post(cmd.Context(), "/v1/reprocess", body)
			if err != nil {
				return err
			}

			return printJSON(rt.writer, raw)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Resend even if the request was already sent")

	return cmd
}

func readPayload(stdin io.Reader, path string) ([]byte, error) {
	var (
		body []byte
		err  error
	)

	if path == "-" {
		body, err = io.ReadAll(stdin)
	} else {
		body, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("payload %s is not valid JSON", path)
	}

	return body, nil
}

func printJSON(w io.Writer, raw []byte) error {
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		_, err = w.Write(raw)

		return err
	}
	out.WriteByte('\n')

	_, err := out.WriteTo(w)

	return err
}
