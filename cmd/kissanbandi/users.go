package main

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"
)

// customerLookup is the shape shared by the per-customer read operations.
type customerLookup func(ctx context.Context, userID string) (json.RawMessage, error)

func customerCmd(use, short string, pick func(a *app) customerLookup) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := callContext(cmd)
			defer cancel()
			res, err := pick(appFrom(cmd))(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Inspect and manage customers (admin)",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List customers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := callContext(cmd)
			defer cancel()
			res, err := appFrom(cmd).client.ListCustomers(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	getCmd := customerCmd("get <user-id>", "Fetch one customer",
		func(a *app) customerLookup { return a.client.GetCustomer })
	ordersCmd := customerCmd("orders <user-id>", "List a customer's orders",
		func(a *app) customerLookup { return a.client.CustomerOrders })
	analyticsCmd := customerCmd("analytics <user-id>", "Show a customer's purchase analytics",
		func(a *app) customerLookup { return a.client.CustomerAnalytics })

	var data, file string
	updateCmd := &cobra.Command{
		Use:   "update <user-id>",
		Short: "Update a customer's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readPayload(data, file)
			if err != nil {
				return err
			}
			ctx, cancel := callContext(cmd)
			defer cancel()
			res, err := appFrom(cmd).client.UpdateCustomer(ctx, args[0], body)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	addPayloadFlags(updateCmd, &data, &file)

	cmd.AddCommand(listCmd, getCmd, ordersCmd, analyticsCmd, updateCmd)
	return cmd
}
