package main

import (
	"fmt"
	"text/tabwriter"

	"recruit-workers/pkg/registry"

	"github.com/spf13/cobra"
)

func newTasksCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List the task types served by the worker manager",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := registry.Builtin()
			if file != "" {
				loaded, err := registry.LoadRegistry(file)
				if err != nil {
					return err
				}
				reg = loaded
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TASK TYPE\tCATEGORY\tTIMEOUT\tRETRIES")
			for _, category := range []string{registry.CategoryApplication, registry.CategoryCareer} {
				for _, a := range reg.ByCategory(category) {
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", a.TaskType, a.Category, a.Timeout, a.Retries)
				}
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "read an activity registry JSON file instead of the built-in catalog")
	return cmd
}
