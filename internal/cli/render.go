package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/smart-budget/internal/budget"
	"github.com/Veraticus/smart-budget/internal/categories"
	"github.com/Veraticus/smart-budget/internal/model"
)

const barWidth = 20

func newTable(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	styled := make([]string, len(headers))
	rules := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = TableHeaderStyle.Render(h)
		rules[i] = strings.Repeat("-", max(len(h), 4))
	}
	fmt.Fprintln(tw, strings.Join(styled, "\t"))
	fmt.Fprintln(tw, strings.Join(rules, "\t"))
	return tw
}

// RenderSummary writes the overview: income, allocation status, spending,
// net worth and the prediction counters.
func RenderSummary(w io.Writer, s budget.Summary) error {
	fmt.Fprintln(w, FormatTitle("Budget overview"))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Monthly income\t%s\n", FormatMoney(s.Income))
	fmt.Fprintf(tw, "Allocated\t%s\n", FormatMoney(s.TotalAllocated))
	fmt.Fprintf(tw, "Status\t%s\n", StatusLine(s))
	fmt.Fprintf(tw, "Spent\t%s\n", FormatMoney(s.TotalSpent))
	fmt.Fprintf(tw, "Received\t%s\n", FormatMoney(s.TotalIncome))
	fmt.Fprintf(tw, "Net worth\t%s\n", FormatMoney(s.NetWorth))
	fmt.Fprintf(tw, "Transactions\t%d (%d imported, %d corrected)\n",
		s.TransactionCount, s.ImportedCount, s.CorrectedPredictions)
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	if err := RenderCategories(w, s.Categories); err != nil {
		return err
	}
	if len(s.Goals) > 0 {
		fmt.Fprintln(w)
		return RenderGoals(w, s.Goals)
	}
	return nil
}

// RenderCategories writes one row per category with its spending meter.
func RenderCategories(w io.Writer, rows []budget.CategoryRow) error {
	tw := newTable(w, "Category", "Allocated", "Spent", "Remaining", "Used", "Txns")
	for _, r := range rows {
		name := CategoryLabel(r.Icon, r.Name, r.Color)
		if r.IsCustom {
			name += SubtleStyle.Render(" (custom)")
		}
		if !r.Known {
			name += SubtleStyle.Render(" (unknown)")
		}

		remaining := FormatMoney(r.Remaining)
		meter := Bar(r.UsedPercent, barWidth)
		if r.OverBudget {
			remaining = ErrorStyle.Render(remaining)
			meter = ErrorStyle.Render(meter)
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s %3.0f%%\t%d\n",
			name,
			FormatMoney(r.Allocated),
			FormatMoney(r.Spent),
			remaining,
			meter, r.UsedPercent,
			r.TransactionCount)
	}
	return tw.Flush()
}

// RenderTransactions writes transactions newest first.
func RenderTransactions(w io.Writer, txns []model.Transaction, store categories.Store) error {
	if len(txns) == 0 {
		fmt.Fprintln(w, InfoStyle.Render("No transactions yet. Use 'budget tx add' or 'budget bank sync'."))
		return nil
	}

	tw := newTable(w, "ID", "Date", "Description", "Category", "Amount", "Flags")
	for _, t := range txns {
		c := store.Lookup(t.Category)

		amount := FormatAmount(t.Amount)
		if t.IsIncome() {
			amount = SuccessStyle.Render("+" + amount)
		}

		var flags []string
		if t.IsImported {
			flags = append(flags, "imported")
		}
		if t.IsEdited {
			flags = append(flags, "edited")
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			SubtleStyle.Render(t.ID),
			t.Date,
			t.Description,
			CategoryLabel(c.Icon, t.Category, c.Color),
			amount,
			SubtleStyle.Render(strings.Join(flags, ",")))
	}
	return tw.Flush()
}

// RenderGoals writes each goal with its progress meter.
func RenderGoals(w io.Writer, goals []budget.GoalProgress) error {
	if len(goals) == 0 {
		fmt.Fprintln(w, InfoStyle.Render("No goals yet. Use 'budget goals add' to create one."))
		return nil
	}

	tw := newTable(w, "ID", "Goal", "Saved", "Target", "Progress")
	for _, g := range goals {
		name := GoalIcon + " " + g.Name
		if g.Complete {
			name = SuccessStyle.Render(name + " " + SuccessIcon)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s %3.0f%%\n",
			SubtleStyle.Render(g.ID),
			name,
			FormatMoney(g.Current),
			FormatMoney(g.Target),
			Bar(g.DisplayPercentage, barWidth), g.Percentage)
	}
	return tw.Flush()
}

// RenderAccounts writes the linked bank accounts.
func RenderAccounts(w io.Writer, accounts []model.Account) error {
	if len(accounts) == 0 {
		fmt.Fprintln(w, InfoStyle.Render("No bank linked. Use 'budget bank connect'."))
		return nil
	}

	tw := newTable(w, "Account", "Institution", "Type", "Balance")
	for _, a := range accounts {
		balance := FormatAmount(a.Balance)
		if a.Balance < 0 {
			balance = ErrorStyle.Render(balance)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			CategoryLabel(BankIcon, a.Name, a.Color),
			a.Institution,
			strings.TrimSpace(a.Type+" "+a.Subtype),
			balance)
	}
	return tw.Flush()
}

// RenderPrediction writes a single classification result.
func RenderPrediction(w io.Writer, description string, p model.Prediction) {
	icon := RulesIcon
	if p.Method == model.MethodAI {
		icon = RobotIcon
	}
	fmt.Fprintf(w, "%s %s → %s %s\n",
		icon,
		description,
		BoldStyle.Render(p.Category),
		SubtleStyle.Render(fmt.Sprintf("(%s, %.0f%% confidence)", p.Method, p.Confidence*100)))
}

// RenderStats writes the model status and prediction counters.
func RenderStats(w io.Writer, stats model.PredictionStats, meta *model.ModelMetadata, ready bool) error {
	fmt.Fprintln(w, FormatTitle("Model statistics"))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	status := WarningStyle.Render("untrained, using rules")
	if ready {
		status = SuccessStyle.Render("ready")
	}
	fmt.Fprintf(tw, "Model\t%s\n", status)
	if meta != nil {
		fmt.Fprintf(tw, "Accuracy\t%.1f%%\n", meta.Accuracy*100)
		fmt.Fprintf(tw, "Trained on\t%d transactions\n", meta.TrainedOn)
		fmt.Fprintf(tw, "Trained at\t%s\n", meta.Date.Local().Format("Jan 2, 2006 15:04"))
	}
	fmt.Fprintf(tw, "Predictions\t%d\n", stats.TotalPredictions)
	fmt.Fprintf(tw, "  %s model\t%d\n", RobotIcon, stats.AIPredictions)
	fmt.Fprintf(tw, "  %s rules\t%d\n", RulesIcon, stats.RulePredictions)
	fmt.Fprintf(tw, "Model share\t%.0f%%\n", stats.AIShare()*100)
	fmt.Fprintf(tw, "Avg confidence\t%.1f%%\n", stats.AverageConfidence*100)
	return tw.Flush()
}
