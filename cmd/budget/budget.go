package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/smart-budget/internal/budget"
	"github.com/Veraticus/smart-budget/internal/cli"
	"github.com/Veraticus/smart-budget/internal/common"
	"github.com/Veraticus/smart-budget/internal/model"
)

func incomeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "income",
		Short: "Set or show the monthly income",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <amount>",
		Short: "Set the monthly income",
		Args:  cobra.ExactArgs(1),
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			income := budget.ParseAmount(args[0])
			if err := a.engine.SetIncome(cmd.Context(), income); err != nil {
				return fmt.Errorf("failed to set income: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatSuccess("Monthly income set to "+cli.FormatAmount(income)))
			fmt.Fprintln(out, cli.StatusLine(a.engine.Summary()))
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the monthly income and allocation status",
		Args:  cobra.NoArgs,
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			s := a.engine.Summary()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Monthly income: %s\n", cli.FormatMoney(s.Income))
			fmt.Fprintf(out, "Allocated:      %s\n", cli.FormatMoney(s.TotalAllocated))
			fmt.Fprintln(out, cli.StatusLine(s))
			return nil
		}),
	})

	return cmd
}

func categoriesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cat"},
		Short:   "Manage budget categories",
		Long:    `List categories with their spending, add your own, and set how much each may spend.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all categories with allocation and spending",
		Args:  cobra.NoArgs,
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			return cli.RenderCategories(cmd.OutOrStdout(), a.engine.Summary().Categories)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name>",
		Short: "Add a custom category",
		Long: `Add a custom category. An icon and color are picked from the name.
Adding a category with an existing name replaces it.`,
		Args: cobra.ExactArgs(1),
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			c, ok, err := a.engine.AddCustomCategory(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to add category: %w", err)
			}
			if !ok {
				return common.NewUserError("Category name cannot be blank", nil)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Added category "+cli.CategoryLabel(c.Icon, c.Name, c.Color)))
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "allocate <name> <amount>",
		Short: "Set the monthly allocation of a category",
		Args:  cobra.ExactArgs(2),
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			amount := budget.ParseAmount(args[1])
			if err := a.engine.SetAllocation(cmd.Context(), args[0], amount); err != nil {
				return common.NewUserError(fmt.Sprintf("Could not allocate to %q", args[0]), err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Allocated %s to %s", cli.FormatAmount(amount), args[0])))
			fmt.Fprintln(out, cli.StatusLine(a.engine.Summary()))
			return nil
		}),
	})

	return cmd
}

func goalsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Track savings goals",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name> <target>",
		Short: "Create a savings goal",
		Args:  cobra.ExactArgs(2),
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			g, ok, err := a.engine.AddGoal(cmd.Context(), args[0], budget.ParseAmount(args[1]))
			if err != nil {
				return fmt.Errorf("failed to add goal: %w", err)
			}
			if !ok {
				return common.NewUserError("A goal needs a name and a positive target", nil)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("%s Created goal %s: %s", cli.GoalIcon, g.Name, cli.FormatAmount(g.Target))))
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List goals and their progress",
		Args:  cobra.NoArgs,
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			return cli.RenderGoals(cmd.OutOrStdout(), a.engine.Summary().Goals)
		}),
	})

	var by float64
	adjust := &cobra.Command{
		Use:   "adjust <goal> --by <amount>",
		Short: "Add to or withdraw from a goal",
		Long: `Move a goal's saved amount. The goal is found by id or by name.
Use a negative amount to withdraw; the saved amount never drops below zero.`,
		Args: cobra.ExactArgs(1),
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, args []string) error {
			id, err := resolveGoal(a.engine.State().Goals, args[0])
			if err != nil {
				return err
			}
			g, err := a.engine.AdjustGoal(cmd.Context(), id, by)
			if err != nil {
				return fmt.Errorf("failed to adjust goal: %w", err)
			}

			msg := fmt.Sprintf("%s: %s of %s", g.Name, cli.FormatAmount(g.Current), cli.FormatAmount(g.Target))
			if g.IsComplete() {
				msg += " 🎉 goal reached!"
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(msg))
			return nil
		}),
	}
	adjust.Flags().Float64Var(&by, "by", 0, "amount to add (negative to withdraw)")
	_ = adjust.MarkFlagRequired("by")
	cmd.AddCommand(adjust)

	return cmd
}

func resolveGoal(goals []model.Goal, ref string) (string, error) {
	for _, g := range goals {
		if g.ID == ref {
			return g.ID, nil
		}
	}
	for _, g := range goals {
		if g.Name == ref {
			return g.ID, nil
		}
	}
	return "", common.NewUserError(fmt.Sprintf("No goal named %q", ref), common.ErrUnknownGoal)
}

func summaryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the budget overview",
		Args:  cobra.NoArgs,
		RunE: opts.withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			return cli.RenderSummary(cmd.OutOrStdout(), a.engine.Summary())
		}),
	}
}
