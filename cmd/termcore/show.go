package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/termcore/internal/config"
)

func newShowConfigCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show-config",
		Short: "Load the configuration and print the effective document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := g.load(cmd)
			_, err := fmt.Fprint(cmd.OutOrStdout(), config.Render(doc))
			return err
		},
	}
}

func newProfilesCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the configured profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := g.load(cmd)
			def := doc.DefaultProfileName.Value()
			for _, name := range doc.ProfileNames() {
				marker := " "
				if name == def {
					marker = "*"
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
