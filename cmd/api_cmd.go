package cmd

import (
	"github.com/spf13/cobra"
)

func newApiCmd(ro *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "api",
		Short: "Serve the http api",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := InitializeDependencies(ro.ConfigPath)
			if err != nil {
				return err
			}
			defer CloseDependencies(deps)

			if port == 0 {
				port = deps.Config.ApiPort
			}
			return deps.StartApi(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "port to listen on, defaults to the configured one")

	return cmd
}
