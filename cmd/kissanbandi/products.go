package main

import (
	"github.com/spf13/cobra"
)

func newProductsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse and manage the product catalogue",
	}

	var filters map[string]string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List products, bypassing caches",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := callContext(cmd)
			defer cancel()
			products, err := appFrom(cmd).client.ListProducts(ctx, filters)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), products)
		},
	}
	listCmd.Flags().StringToStringVar(&filters, "filter", nil, "Query filter key=value (repeatable)")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := callContext(cmd)
			defer cancel()
			p, err := appFrom(cmd).client.GetProduct(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}

	var createData, createFile string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readPayload(createData, createFile)
			if err != nil {
				return err
			}
			ctx, cancel := callContext(cmd)
			defer cancel()
			res, err := appFrom(cmd).client.CreateProduct(ctx, body)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	addPayloadFlags(createCmd, &createData, &createFile)

	var updateData, updateFile string
	updateCmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a product (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readPayload(updateData, updateFile)
			if err != nil {
				return err
			}
			ctx, cancel := callContext(cmd)
			defer cancel()
			res, err := appFrom(cmd).client.UpdateProduct(ctx, args[0], body)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	addPayloadFlags(updateCmd, &updateData, &updateFile)

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := callContext(cmd)
			defer cancel()
			res, err := appFrom(cmd).client.DeleteProduct(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	var subcategory string
	categoryCmd := &cobra.Command{
		Use:   "category <category>",
		Short: "List products in a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := callContext(cmd)
			defer cancel()
			res, err := appFrom(cmd).client.ProductsByCategory(ctx, args[0], subcategory)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	categoryCmd.Flags().StringVar(&subcategory, "subcategory", "", "Optional subcategory")

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search products by text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := callContext(cmd)
			defer cancel()
			res, err := appFrom(cmd).client.SearchProducts(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	featuredCmd := &cobra.Command{
		Use:   "featured",
		Short: "List featured products",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := callContext(cmd)
			defer cancel()
			res, err := appFrom(cmd).client.FeaturedProducts(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.AddCommand(listCmd, getCmd, createCmd, updateCmd, deleteCmd, categoryCmd, searchCmd, featuredCmd)
	return cmd
}
