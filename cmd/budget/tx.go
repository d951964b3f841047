package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/smart-budget/internal/cli"
	"github.com/Veraticus/smart-budget/internal/common"
	"github.com/Veraticus/smart-budget/internal/engine"
	"github.com/Veraticus/smart-budget/internal/model"
)

func txCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transactions"},
		Short:   "Add, list and recategorize transactions",
	}

	cmd.AddCommand(txAddCmd(opts))
	cmd.AddCommand(txListCmd(opts))
	cmd.AddCommand(txEditCmd(opts))

	return cmd
}

func txAddCmd(opts *rootOptions) *cobra.Command {
	var (
		txType   string
		category string
	)

	cmd := &cobra.Command{
		Use:   "add [description] [amount]",
		Short: "Record a transaction",
		Long: `Record a transaction. The category is suggested from the description
unless --category names one. Missing arguments are asked for interactively.`,
		Args: cobra.MaximumNArgs(2),
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			in := engine.TransactionInput{
				Type:     model.ParseTransactionType(txType),
				Category: category,
			}
			if len(args) > 0 {
				in.Description = args[0]
			}
			if len(args) > 1 {
				in.Amount = args[1]
			}

			if in.Description == "" || in.Amount == "" {
				reader := cli.NewLineReader(cmd.InOrStdin(), cmd.OutOrStdout())
				var err error
				if in.Description == "" {
					if in.Description, err = reader.Ask(cmd.Context(), "Description", ""); err != nil {
						return err
					}
				}
				if in.Amount == "" {
					if in.Amount, err = reader.Ask(cmd.Context(), "Amount", ""); err != nil {
						return err
					}
				}
			}

			txn, ok, err := a.engine.AddTransaction(cmd.Context(), in)
			if err != nil {
				return common.NewUserError("Could not add the transaction", err)
			}
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(out, cli.FormatWarning("Nothing added: a description and an amount are required"))
				return nil
			}

			c := a.engine.State().Categories.Lookup(txn.Category)
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Added %s %s → %s",
				txn.Description, cli.FormatAmount(txn.Amount), cli.CategoryLabel(c.Icon, txn.Category, c.Color))))

			return a.maybeAutoTrain(cmd)
		}),
	}

	cmd.Flags().StringVarP(&txType, "type", "t", string(model.TypeExpense), "expense or income")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category to file under instead of the suggestion")
	return cmd
}

func txListCmd(opts *rootOptions) *cobra.Command {
	var (
		limit    int
		category string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			st := a.engine.State()
			txns := make([]model.Transaction, 0, len(st.Transactions))
			for _, t := range st.Transactions {
				if category != "" && t.Category != category {
					continue
				}
				txns = append(txns, t)
				if limit > 0 && len(txns) == limit {
					break
				}
			}
			return cli.RenderTransactions(cmd.OutOrStdout(), txns, st.Categories)
		}),
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most this many (0 for all)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "only show this category")
	return cmd
}

func txEditCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <category>",
		Short: "Move a transaction to another category",
		Args:  cobra.ExactArgs(2),
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			if err := a.engine.EditTransactionCategory(cmd.Context(), args[0], args[1]); err != nil {
				return common.NewUserError("Could not recategorize the transaction", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Moved %s to %s", args[0], args[1])))
			return nil
		}),
	}
}
