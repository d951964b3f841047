package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/smart-budget/internal/cli"
	"github.com/Veraticus/smart-budget/internal/common"
)

func bankCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bank",
		Short: "Link a bank and import its transactions",
		Long: `Link accounts from the configured bank provider (mock, plaid or ofx)
and import their transactions. Imports skip transactions already present.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "connect",
		Short: "Link the bank's accounts and import their transactions",
		Args:  cobra.NoArgs,
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatInfo("Connecting to your bank..."))

			accounts, err := a.engine.ConnectBank(cmd.Context())
			if err != nil {
				return common.NewUserError("Bank connection failed", err)
			}
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%s Linked %d accounts", cli.BankIcon, len(accounts))))
			if err := cli.RenderAccounts(out, accounts); err != nil {
				return err
			}
			return syncBank(cmd, a)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "sync",
		Short: "Import new transactions from the linked bank",
		Args:  cobra.NoArgs,
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			return syncBank(cmd, a)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "accounts",
		Short: "Show linked accounts and net worth",
		Args:  cobra.NoArgs,
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			st := a.engine.State()
			out := cmd.OutOrStdout()
			if err := cli.RenderAccounts(out, st.Accounts); err != nil {
				return err
			}
			if len(st.Accounts) > 0 {
				fmt.Fprintf(out, "\nNet worth: %s\n", cli.FormatMoney(a.engine.Summary().NetWorth))
				if st.LastSync != nil {
					fmt.Fprintln(out, cli.SubtleStyle.Render("Last synced "+st.LastSync.Local().Format("Jan 2, 2006 15:04")))
				}
			}
			return nil
		}),
	})

	return cmd
}

// syncBank imports new bank transactions, reports the count and trains the
// model if the import made it due.
func syncBank(cmd *cobra.Command, a *app) error {
	added, err := a.engine.SyncBank(cmd.Context())
	if errors.Is(err, common.ErrNotConnected) {
		return common.NewUserError("No bank linked yet, run 'budget bank connect' first", err)
	}
	if err != nil {
		return common.NewUserError("Bank sync failed", err)
	}

	out := cmd.OutOrStdout()
	if added == 0 {
		fmt.Fprintln(out, cli.FormatInfo("Already up to date"))
	} else {
		fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d transactions", added)))
	}
	return a.maybeAutoTrain(cmd)
}
