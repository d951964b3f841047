package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/smart-budget/internal/budget"
	"github.com/Veraticus/smart-budget/internal/cli"
	"github.com/Veraticus/smart-budget/internal/common"
)

const maxCategoryRows = 8

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.theme.Title.Render(cli.BudgetIcon + " Smart Budget"),
		lipgloss.JoinHorizontal(lipgloss.Top, m.overviewView(), " ", m.modelView()),
		m.categoriesView(),
		m.trainingView(),
		m.help.View(m.keymap),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) overviewView() string {
	s := m.summary
	lines := []string{
		m.theme.Bold.Render("Overview"),
		fmt.Sprintf("Income     %s", cli.FormatMoney(s.Income)),
		fmt.Sprintf("Allocated  %s", cli.FormatMoney(s.TotalAllocated)),
		m.statusView(s),
		fmt.Sprintf("Spent      %s", cli.FormatMoney(s.TotalSpent)),
		fmt.Sprintf("Net worth  %s", cli.FormatMoney(s.NetWorth)),
	}
	return m.theme.Panel.Render(strings.Join(lines, "\n"))
}

func (m Model) statusView(s budget.Summary) string {
	switch s.Status {
	case budget.StatusUnallocated:
		return m.theme.StatusWarning.Render(cli.FormatMoney(s.Unallocated) + " to allocate")
	case budget.StatusOverAllocated:
		return m.theme.StatusError.Render(cli.FormatMoney(s.Unallocated.Neg()) + " over")
	default:
		return m.theme.StatusSuccess.Render("Fully allocated")
	}
}

func (m Model) modelView() string {
	st := m.state
	status := m.theme.StatusWarning.Render(cli.RulesIcon + " Rules only")
	if st.AIReady {
		status = m.theme.StatusSuccess.Render(cli.RobotIcon + " Model ready")
	}

	lines := []string{
		m.theme.Bold.Render("Model"),
		status,
	}
	if st.Model != nil {
		lines = append(lines,
			fmt.Sprintf("Accuracy   %.1f%%", st.Model.Accuracy*100),
			fmt.Sprintf("Trained on %d", st.Model.TrainedOn))
	}
	lines = append(lines,
		fmt.Sprintf("Predictions %d (%.0f%% model)", st.Stats.TotalPredictions, st.Stats.AIShare()*100),
		fmt.Sprintf("Categorized %d/%d", st.CategorizedCount(), len(st.Transactions)))
	return m.theme.Panel.Render(strings.Join(lines, "\n"))
}

func (m Model) categoriesView() string {
	rows := m.summary.Categories
	if len(rows) == 0 {
		return ""
	}

	lines := []string{m.theme.Bold.Render("Categories")}
	for i, r := range rows {
		if i == maxCategoryRows {
			lines = append(lines, m.theme.StatusPending.Render(fmt.Sprintf("… %d more", len(rows)-i)))
			break
		}
		meter := cli.Bar(r.UsedPercent, 16)
		if r.OverBudget {
			meter = m.theme.StatusError.Render(meter)
		}
		lines = append(lines, fmt.Sprintf("%-24s %s %s / %s",
			cli.CategoryLabel(r.Icon, r.Name, r.Color),
			meter,
			cli.FormatMoney(r.Spent),
			cli.FormatMoney(r.Allocated)))
	}
	return m.theme.Panel.Render(strings.Join(lines, "\n"))
}

func (m Model) trainingView() string {
	var body string
	switch {
	case m.training:
		p := m.current
		body = fmt.Sprintf("%s Training epoch %d/%d\n%s\naccuracy %.1f%%  loss %.3f",
			m.spinner.View(),
			p.Epoch, p.TotalEpochs,
			m.progress.ViewAs(p.Fraction()),
			p.Accuracy*100, p.Loss)
	case m.lastErr != nil:
		if errors.Is(m.lastErr, common.ErrInsufficientTrainingData) {
			body = m.theme.StatusWarning.Render("Categorize a few more transactions before training")
		} else {
			body = m.theme.StatusError.Render("Training failed: " + m.lastErr.Error())
		}
	case m.lastRun != nil:
		body = m.theme.StatusSuccess.Render(fmt.Sprintf("%s Training complete: %.1f%% accuracy on %d transactions",
			cli.SuccessIcon, m.lastRun.Accuracy*100, m.lastRun.TrainedOn))
	default:
		body = m.theme.StatusPending.Render("Press t to train the model")
	}
	return m.theme.Panel.Render(body)
}
