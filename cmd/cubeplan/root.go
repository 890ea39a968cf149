package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cubeplan",
		Short: "Speedcubing competition estimator and multi-day scheduler",
		Long: `cubeplan estimates how many competitors each round of a speedcubing
competition will have, how many groups and how long each round takes, and
lays the rounds out over one to three competition days.

Run "cubeplan serve" for the organiser web API or "cubeplan plan -f comp.yaml"
to plan a competition from a file.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newServeCmd(),
		newPlanCmd(),
		newCatalogCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version and exit",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cubeplan %s\n", version)
		},
	}
}
