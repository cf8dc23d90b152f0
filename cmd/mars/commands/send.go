package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"mars/internal/domain"
)

// send [<json-object> | -]: replace the stored payload.
func sendCmd(opts *rootOptions) *cobra.Command {
	var sets []string
	cmd := &cobra.Command{
		Use:   "send [<json-object> | -]",
		Short: "Replace the stored payload with a JSON object",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := parsePayload(cmd.InOrStdin(), args, sets)
			if err != nil {
				return err
			}
			n, err := opts.wire.Store.Send(payload)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&sets, "set", nil, "set key=value (value parsed as JSON, else kept as a string)")
	return cmd
}

// parsePayload builds the payload from an argument, stdin ("-") and --set pairs.
// The decoded document is passed to the store as-is so non-objects are
// rejected there.
func parsePayload(stdin io.Reader, args, sets []string) (any, error) {
	var doc any = map[string]any{}
	if len(args) == 1 {
		src := args[0]
		if src == "-" {
			b, err := io.ReadAll(stdin)
			if err != nil {
				return nil, err
			}
			src = string(b)
		}
		if err := json.Unmarshal([]byte(src), &doc); err != nil {
			return nil, fmt.Errorf("parse payload: %w", err)
		}
	}
	if len(sets) == 0 {
		return doc, nil
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("--set needs an object payload, got %T", doc)
	}
	for _, kv := range sets {
		k, v, found := strings.Cut(kv, "=")
		if !found || k == "" {
			return nil, fmt.Errorf("--set %q: want key=value", kv)
		}
		var val any
		if err := json.Unmarshal([]byte(v), &val); err != nil {
			val = v
		}
		obj[k] = val
	}
	return domain.Payload(obj), nil
}
