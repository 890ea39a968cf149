package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abrezinsky/cubeplan/internal/catalog"
	"github.com/abrezinsky/cubeplan/internal/export"
	"github.com/abrezinsky/cubeplan/internal/planfile"
)

func newPlanCmd() *cobra.Command {
	var (
		file   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a competition described in a YAML file",
		Example: `  cubeplan plan -f spring-open.yaml
  cubeplan plan -f spring-open.yaml --format csv > plan.csv
  cat comp.yaml | cubeplan plan -f -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}

			var p *planfile.Plan
			if file == "-" {
				p, err = planfile.Parse(cmd.InOrStdin(), catalog.Default())
			} else {
				p, err = planfile.Load(file)
			}
			if err != nil {
				return err
			}

			plan, err := p.Build()
			if err != nil {
				return err
			}
			if err := export.WritePlan(cmd.OutOrStdout(), plan, f); err != nil {
				return err
			}

			if n := len(plan.Warnings); n > 0 && f != export.FormatText {
				color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "%d warning(s); run with --format text to read them\n", n)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", `plan file (YAML), "-" for stdin`)
	cmd.Flags().StringVar(&format, "format", string(export.FormatText), "output format: text, csv or json")
	cmd.MarkFlagRequired("file")
	return cmd
}

