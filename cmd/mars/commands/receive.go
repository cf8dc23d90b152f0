package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// receive: print the stored payload as indented JSON.
func receiveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "receive",
		Short: "Print the stored payload",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.wire.Store.Receive()
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(p)
		},
	}
}
