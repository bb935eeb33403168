package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func urlForCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "url-for NAME [key=value...]",
		Short:   "Build the URL of a named route",
		Example: `  httpmsg url-for glob_get everything="a b/c"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := make(map[string]string, len(args)-1)
			for _, kv := range args[1:] {
				k, v, err := splitPair(kv)
				if err != nil {
					return err
				}
				params[k] = v
			}

			method, path, err := a.routes.URLFor(args[0], params)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", method, path)
			return nil
		},
	}
}
