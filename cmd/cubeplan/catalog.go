package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abrezinsky/cubeplan/internal/catalog"
	"github.com/abrezinsky/cubeplan/internal/export"
	"github.com/abrezinsky/cubeplan/internal/planner"
)

func newCatalogCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the category catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			t := catalogTable(catalog.Default())
			if f == export.FormatCSV {
				return export.WriteCSV(cmd.OutOrStdout(), t)
			}
			return export.WriteText(cmd.OutOrStdout(), t)
		},
	}

	cmd.Flags().StringVar(&format, "format", string(export.FormatText), "output format: text or csv")
	return cmd
}

func catalogTable(cat *catalog.Catalog) planner.Table {
	t := planner.Table{Headers: []string{"Category", "Registration", "Format", "Attempts", "Scramble", "Tags"}}
	for _, c := range cat.Categories() {
		t.Rows = append(t.Rows, []string{
			c.Name,
			strconv.FormatFloat(c.RegistrationPercentage, 'f', 2, 64) + "%",
			string(c.Format),
			strconv.Itoa(c.Attempts),
			strconv.Itoa(c.ScrambleSeconds) + "s",
			categoryTags(c),
		})
	}
	return t
}

func categoryTags(c catalog.Category) string {
	var tags string
	add := func(on bool, tag string) {
		if !on {
			return
		}
		if tags != "" {
			tags += ","
		}
		tags += tag
	}
	add(c.Popular, "popular")
	add(c.Small, "small")
	add(c.SingleGroup, "single-group")
	add(c.FixedTime, "fixed-time")
	return tags
}
