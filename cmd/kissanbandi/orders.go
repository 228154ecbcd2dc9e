package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newOrdersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Inspect and manage orders",
	}

	var listParams map[string]string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List a page of orders (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := callContext(cmd)
			defer cancel()
			page, err := appFrom(cmd).client.ListOrders(ctx, listParams)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), page)
		},
	}
	listCmd.Flags().StringToStringVar(&listParams, "param", nil, "Query parameter key=value, e.g. page=2 (repeatable)")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := callContext(cmd)
			defer cancel()
			res, err := appFrom(cmd).client.GetOrder(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	var createData, createFile string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Place an order",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readPayload(createData, createFile)
			if err != nil {
				return err
			}
			ctx, cancel := callContext(cmd)
			defer cancel()
			res, err := appFrom(cmd).client.CreateOrder(ctx, body)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	addPayloadFlags(createCmd, &createData, &createFile)

	rangeCmd := &cobra.Command{
		Use:   "range <start-date> <end-date>",
		Short: "List orders placed between two dates (admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := callContext(cmd)
			defer cancel()
			orders, err := appFrom(cmd).client.OrdersByDateRange(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), orders)
		},
	}

	var statsParams map[string]string
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show order statistics (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := callContext(cmd)
			defer cancel()
			stats, err := appFrom(cmd).client.OrderStats(ctx, statsParams)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), stats)
		},
	}
	statsCmd.Flags().StringToStringVar(&statsParams, "param", nil, "Query parameter key=value (repeatable)")

	statusCmd := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Change an order's status (admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := callContext(cmd)
			defer cancel()
			res, err := appFrom(cmd).client.UpdateOrderStatus(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	var exportFilters map[string]string
	var exportOut string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Download orders as CSV (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := callContext(cmd)
			defer cancel()
			csv, err := appFrom(cmd).client.ExportOrders(ctx, exportFilters)
			if err != nil {
				return err
			}
			if exportOut == "" || exportOut == "-" {
				_, err = cmd.OutOrStdout().Write(csv)
				return err
			}
			return os.WriteFile(exportOut, csv, 0o644)
		},
	}
	exportCmd.Flags().StringToStringVar(&exportFilters, "filter", nil, "Query filter key=value (repeatable)")
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "Write CSV to this file instead of stdout")

	var payData, payFile string
	payCreateCmd := &cobra.Command{
		Use:   "pay-create",
		Short: "Create a payment-gateway order",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readPayload(payData, payFile)
			if err != nil {
				return err
			}
			ctx, cancel := callContext(cmd)
			defer cancel()
			res, err := appFrom(cmd).client.CreatePaymentOrder(ctx, body)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	addPayloadFlags(payCreateCmd, &payData, &payFile)

	var verifyData, verifyFile string
	payVerifyCmd := &cobra.Command{
		Use:   "pay-verify",
		Short: "Verify a payment-gateway signature",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readPayload(verifyData, verifyFile)
			if err != nil {
				return err
			}
			ctx, cancel := callContext(cmd)
			defer cancel()
			res, err := appFrom(cmd).client.VerifyPayment(ctx, body)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	addPayloadFlags(payVerifyCmd, &verifyData, &verifyFile)

	cmd.AddCommand(listCmd, getCmd, createCmd, rangeCmd, statsCmd, statusCmd, exportCmd, payCreateCmd, payVerifyCmd)
	return cmd
}
