package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/py2rs/logger"
	"github.com/teranos/py2rs/pyast"
)

func newDumpCmd() *cobra.Command {
	var whole bool
	cmd := &cobra.Command{
		Use:   "dump <path>",
		Short: "Print the parse tree of a Python file",
		Long: `Print the front-end parse tree, one top-level statement per line,
prefixed with its source line. Useful when hand-translating a construct
py2rs refuses.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mod, err := pyast.ParseFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if whole {
				fmt.Fprintln(out, pyast.Dump(mod))
				return nil
			}
			for _, stmt := range mod.Body {
				line, _ := pyast.Position(stmt)
				fmt.Fprintf(out, "%4d  %s\n", line, pyast.Dump(stmt))
			}
			logger.Debugw("Dumped statements", logger.FieldFile, args[0], logger.FieldCount, len(mod.Body))
			return nil
		},
	}
	cmd.Flags().BoolVar(&whole, "module", false, "Dump the whole module as a single tree")
	return cmd
}
