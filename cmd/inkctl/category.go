package main

import (
	"fmt"

	"inkwell/internal/service"

	"github.com/spf13/cobra"
)

func newCategoryCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage post categories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List categories alphabetically",
		Args:  cobra.NoArgs,
		RunE: withServices(a, func(cmd *cobra.Command, _ []string) error {
			categories, err := a.categories.ListCategories(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, c := range categories {
				fmt.Fprintf(out, "%-24s %s\n", c.Slug, c.Name)
			}
			return nil
		}),
	})

	var slug, description string
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a category",
		Example: `  inkctl category create "Go Tips"
  inkctl category create "Go Tips" --slug golang --description "Small things"`,
		Args: cobra.ExactArgs(1),
		RunE: withServices(a, func(cmd *cobra.Command, args []string) error {
			category, err := a.categories.CreateCategory(cmd.Context(), service.CreateCategoryInput{
				Name:        args[0],
				Slug:        slug,
				Description: description,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created category %s (id %d)\n", category.Slug, category.ID)
			return nil
		}),
	}
	create.Flags().StringVar(&slug, "slug", "", "URL slug (derived from the name when empty)")
	create.Flags().StringVar(&description, "description", "", "Short description")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <slug>",
		Short: "Delete a category; its posts become uncategorized",
		Args:  cobra.ExactArgs(1),
		RunE: withServices(a, func(cmd *cobra.Command, args []string) error {
			if err := a.categories.DeleteCategory(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted category %s\n", args[0])
			return nil
		}),
	})

	return cmd
}
