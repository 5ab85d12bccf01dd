package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/avecbanker/backend/internal/application/adapter"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
	"github.com/avecbanker/backend/internal/integration/email/templates"
)

// Notifier implements adapter.GoalNotifier and adapter.BudgetNotifier by rendering
// a template and handing the message to the worker.
type Notifier struct {
	renderer *templates.Renderer
	worker   *Worker
	currency string
}

// NewNotifier creates a new email notifier.
func NewNotifier(renderer *templates.Renderer, worker *Worker, currency string) *Notifier {
	return &Notifier{
		renderer: renderer,
		worker:   worker,
		currency: currency,
	}
}

// NotifyMilestones queues one email covering every mark in the notice.
func (n *Notifier) NotifyMilestones(_ context.Context, notice adapter.MilestoneNotice) error {
	if len(notice.Percents) == 0 && !notice.Completed {
		return nil
	}

	data := templates.MilestoneData{
		Name:      notice.Name,
		GoalName:  notice.GoalName,
		Percents:  joinPercents(notice.Percents),
		Current:   notice.Current.StringFixed(2),
		Target:    notice.Target.StringFixed(2),
		Currency:  n.currency,
		Completed: notice.Completed,
	}

	html, text, err := n.renderer.Render(templates.TemplateGoalMilestone, data)
	if err != nil {
		return domainerror.NewEmailError(domainerror.ErrCodeTemplateRenderFailed, "failed to render milestone email", err)
	}

	subject := fmt.Sprintf("%s passed %s", notice.GoalName, data.Percents)
	if notice.Completed {
		subject = fmt.Sprintf("%s is complete", notice.GoalName)
	}

	return n.worker.Enqueue(adapter.SendEmailInput{
		To:      notice.Email,
		Name:    notice.Name,
		Subject: subject,
		HTML:    html,
		Text:    text,
	})
}

// NotifyBudgetWarning queues one email listing every category at or past its
// warning threshold.
func (n *Notifier) NotifyBudgetWarning(_ context.Context, notice adapter.BudgetWarningNotice) error {
	if len(notice.Categories) == 0 {
		return nil
	}

	data := templates.BudgetWarningData{
		Name:       notice.Name,
		Currency:   n.currency,
		Categories: make([]templates.CategoryWarning, len(notice.Categories)),
	}
	over := false
	for i, c := range notice.Categories {
		data.Categories[i] = templates.CategoryWarning{
			Category: strings.ToUpper(string(c.Category)),
			Spent:    c.Spent.StringFixed(2),
			Budget:   c.Budget.StringFixed(2),
			Percent:  c.Percent.StringFixed(0),
			Over:     c.Severity == adapter.SeverityCritical,
		}
		over = over || c.Severity == adapter.SeverityCritical
	}

	html, text, err := n.renderer.Render(templates.TemplateBudgetWarning, data)
	if err != nil {
		return domainerror.NewEmailError(domainerror.ErrCodeTemplateRenderFailed, "failed to render budget warning email", err)
	}

	subject := "You are close to your budget"
	if over {
		subject = "You are over budget"
	}

	return n.worker.Enqueue(adapter.SendEmailInput{
		To:      notice.Email,
		Name:    notice.Name,
		Subject: subject,
		HTML:    html,
		Text:    text,
	})
}

// joinPercents renders [25 50 75] as "25%, 50% and 75%".
func joinPercents(percents []int) string {
	parts := make([]string, len(percents))
	for i, p := range percents {
		parts[i] = fmt.Sprintf("%d%%", p)
	}
	if len(parts) <= 1 {
		return strings.Join(parts, "")
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
}

var (
	_ adapter.GoalNotifier   = (*Notifier)(nil)
	_ adapter.BudgetNotifier = (*Notifier)(nil)
)
