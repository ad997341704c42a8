package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reference/internal/errors"
	"github.com/vango-dev/reference/pkg/reactive"
)

func evalCmd(opts *options) *cobra.Command {
	var set string

	cmd := &cobra.Command{
		Use:   "eval <file.json> <path>",
		Short: "Print the value at a dotted path",
		Long: `Load a JSON document and print the value at a dotted property path.

The document is loaded as a deeply constant value, so every path segment is
resolved once and cached. With --set the document is loaded as a mutable
cell instead and the JSON value is written through the path before reading
it back.

Use "-" to read the document from standard input.`,
		Example: `  reference eval config.json server.port
  reference eval users.json 0.name --set '"ada"'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}

			var root *reactive.Reactive[any]
			if cmd.Flags().Changed("set") {
				root = reactive.MutableCell(doc)
			} else {
				root = reactive.DeeplyConstant(doc)
			}
			root = reactive.Describe(root, args[0])
			node := reactive.Path(root, args[1])

			if cmd.Flags().Changed("set") {
				var value any
				if err := json.Unmarshal([]byte(set), &value); err != nil {
					return errors.New("R020").WithDetail("--set: " + err.Error()).Wrap(err)
				}
				if err := reactive.Write(node, normalize(value)); err != nil {
					return err
				}
				opts.logger.Debug("value written", "path", args[1])
			}

			value, err := reactive.Read(node).Get()
			if err != nil {
				return err
			}
			out, err := encodeValue(value)
			if err != nil {
				return err
			}
			fmt.Fprintln(opts.stdout, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&set, "set", "", "JSON value to write at the path before reading it")

	return cmd
}
