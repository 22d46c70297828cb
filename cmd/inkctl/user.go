package main

import (
	"fmt"

	"inkwell/internal/service"

	"github.com/spf13/cobra"
)

func newUserCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	var limit, offset int
	list := &cobra.Command{
		Use:   "list",
		Short: "List accounts by username",
		Args:  cobra.NoArgs,
		RunE: withServices(a, func(cmd *cobra.Command, _ []string) error {
			users, err := a.users.ListUsers(cmd.Context(), limit, offset)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, u := range users {
				role := ""
				if u.IsAdmin {
					role = "admin"
				}
				fmt.Fprintf(out, "%-6d %-30s %-40s %s\n", u.ID, u.Username, u.Email, role)
			}
			return nil
		}),
	}
	list.Flags().IntVar(&limit, "limit", 50, "Maximum number of accounts")
	list.Flags().IntVar(&offset, "offset", 0, "Accounts to skip")
	cmd.AddCommand(list)

	var email, password string
	var admin bool
	create := &cobra.Command{
		Use:   "create <username>",
		Short: "Create an account with a default profile",
		Args:  cobra.ExactArgs(1),
		RunE: withServices(a, func(cmd *cobra.Command, args []string) error {
			user, err := a.users.Register(cmd.Context(), service.RegisterInput{
				Username: args[0],
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}
			if admin {
				if user, err = a.users.SetAdmin(cmd.Context(), user.ID, true); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %s (id %d, admin=%t)\n", user.Username, user.ID, user.IsAdmin)
			return nil
		}),
	}
	create.Flags().StringVar(&email, "email", "", "Email address")
	create.Flags().StringVar(&password, "password", "", "Initial password")
	create.Flags().BoolVar(&admin, "admin", false, "Grant admin rights")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <username>",
		Short: "Delete an account with its posts, comments and likes",
		Args:  cobra.ExactArgs(1),
		RunE: withServices(a, func(cmd *cobra.Command, args []string) error {
			user, err := a.users.GetUserByUsername(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := a.users.DeleteUser(cmd.Context(), user.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted user %s\n", user.Username)
			return nil
		}),
	})

	var demote bool
	promote := &cobra.Command{
		Use:   "promote <username>",
		Short: "Grant admin rights, or revoke them with --demote",
		Args:  cobra.ExactArgs(1),
		RunE: withServices(a, func(cmd *cobra.Command, args []string) error {
			user, err := a.users.GetUserByUsername(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if user.IsAdmin == !demote {
				fmt.Fprintf(cmd.OutOrStdout(), "user %s already has admin=%t\n", user.Username, user.IsAdmin)
				return nil
			}
			if user, err = a.users.SetAdmin(cmd.Context(), user.ID, !demote); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %s now has admin=%t\n", user.Username, user.IsAdmin)
			return nil
		}),
	}
	promote.Flags().BoolVar(&demote, "demote", false, "Revoke admin rights instead")
	cmd.AddCommand(promote)

	return cmd
}
