package wallet

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/dumdum-cli/internal/domain"
	"github.com/bnema/dumdum-cli/internal/ports"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AutoApprover accepts every request. It backs --yes.
type AutoApprover struct{}

func (AutoApprover) Approve(context.Context, ports.ApprovalRequest) (bool, error) {
	return true, nil
}

// ApproverFunc adapts a function to ports.Approver.
type ApproverFunc func(ctx context.Context, req ports.ApprovalRequest) (bool, error)

func (f ApproverFunc) Approve(ctx context.Context, req ports.ApprovalRequest) (bool, error) {
	return f(ctx, req)
}

// TerminalApprover asks on the terminal before connecting or signing.
type TerminalApprover struct {
	Input  io.Reader
	Output io.Writer
}

func (a TerminalApprover) Approve(ctx context.Context, req ports.ApprovalRequest) (bool, error) {
	p := tea.NewProgram(
		newApprovalModel(req),
		tea.WithInput(a.Input),
		tea.WithOutput(a.Output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("run approval prompt: %w", err)
	}

	result, ok := finalModel.(approvalModel)
	if !ok {
		return false, fmt.Errorf("unexpected final approval model type %T", finalModel)
	}

	return result.approved, nil
}

var (
	promptTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	promptDetailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	promptKeyStyle    = lipgloss.NewStyle().Bold(true)
)

type approvalModel struct {
	req      ports.ApprovalRequest
	approved bool
	done     bool
}

func newApprovalModel(req ports.ApprovalRequest) approvalModel {
	return approvalModel{req: req}
}

func (m approvalModel) Init() tea.Cmd {
	return nil
}

func (m approvalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch strings.ToLower(keyMsg.String()) {
	case "y", "enter":
		m.approved = true
		m.done = true
		return m, tea.Quit
	case "n", "esc", "q", "ctrl+c":
		m.done = true
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m approvalModel) View() string {
	if m.done {
		return ""
	}

	lines := []string{promptTitleStyle.Render(approvalTitle(m.req))}
	lines = append(lines, promptDetailStyle.Render("wallet: "+m.req.Address))

	switch m.req.Kind {
	case ports.ApprovalConnect:
		lines = append(lines, promptDetailStyle.Render("permissions: "+joinPermissions(m.req.Permissions)))
	case ports.ApprovalSign:
		target := m.req.ProcessID
		if target == "" {
			target = "(new process)"
		}
		lines = append(lines, promptDetailStyle.Render("process: "+target))
		if len(m.req.Tags) > 0 {
			lines = append(lines, promptDetailStyle.Render("tags: "+describeTags(m.req.Tags)))
		}
	}

	lines = append(lines, promptKeyStyle.Render("approve? [y/n]"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

func approvalTitle(req ports.ApprovalRequest) string {
	if req.Kind == ports.ApprovalConnect {
		return "Connection request"
	}

	return "Signature request"
}

func describeTags(tags domain.Tags) string {
	return strings.ReplaceAll(tags.String(), ",", ", ")
}
