package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reference/pkg/iterable"
	"github.com/vango-dev/reference/pkg/reactive"
)

func eachCmd(opts *options) *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "each <file.json> [path]",
		Short: "Print the keyed items of a list",
		Long: `Load a JSON document and iterate the list at a dotted path, printing the
resolved key, memo and value of every item.

Key strategies:
  @key        the item's position (arrays) or property name (objects)
  @index      the item's position as a string
  @identity   the item itself
  a.b.c       a dotted property path read off each item

Repeated keys are disambiguated: the second "x" prints as x#1.`,
		Example: `  reference each users.json users --key id
  reference each tags.json --key @identity`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readDocument(args[0])
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 2 {
				path = args[1]
			}
			if key == "" {
				key = opts.cfg.Iteration.DefaultKey
			}

			list := reactive.Path(reactive.DeeplyConstant[any](doc), path)
			if err := reactive.Read(list).Err(); err != nil {
				return err
			}

			ref, err := iterable.CreateIteratorRef(list, key)
			if err != nil {
				return err
			}
			items := iterable.Collect(reactive.Unwrap(ref))
			opts.logger.Debug("iterated", "path", path, "key", key, "items", len(items))

			names := keyNames{}
			tw := tabwriter.NewWriter(opts.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tMEMO\tVALUE")
			for _, item := range items {
				value, err := encodeCompact(item.Value)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%v\t%s\n", names.format(item.Key), item.Memo, value)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&key, "key", "k", "", "key strategy (default from config, @identity)")

	return cmd
}

// keyNames prints resolved keys. Keys with object identity have no useful
// printed form and are numbered in order of appearance.
type keyNames map[any]string

func (n keyNames) format(key any) string {
	switch k := key.(type) {
	case nil:
		return "<nil>"
	case string:
		return k
	case int, int64, float64, bool:
		return fmt.Sprint(k)
	case *iterable.Occurrence:
		return fmt.Sprintf("%s#%d", n.format(k.Key), k.N)
	}
	if name, ok := n[key]; ok {
		return name
	}
	name := fmt.Sprintf("<object %d>", len(n)+1)
	n[key] = name
	return name
}
