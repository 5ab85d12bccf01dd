// Package templates provides email template rendering functionality.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed *.html *.txt
var templateFS embed.FS

// TemplateGoalMilestone is sent when a payment moves a goal past a progress mark.
const TemplateGoalMilestone = "goal_milestone"

// TemplateBudgetWarning is sent when logged spending reaches 90% of a category budget.
const TemplateBudgetWarning = "budget_warning"

// Renderer handles email template rendering.
type Renderer struct {
	htmlTemplates *htmltemplate.Template
	textTemplates *texttemplate.Template
}

// NewRenderer creates a new template renderer.
func NewRenderer() (*Renderer, error) {
	htmlTmpl, err := htmltemplate.ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}

	textTmpl, err := texttemplate.ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}

	return &Renderer{
		htmlTemplates: htmlTmpl,
		textTemplates: textTmpl,
	}, nil
}

// Render renders both HTML and text versions of a template.
func (r *Renderer) Render(templateName string, data any) (html string, text string, err error) {
	var htmlBuf bytes.Buffer
	if err := r.htmlTemplates.ExecuteTemplate(&htmlBuf, templateName+".html", data); err != nil {
		return "", "", fmt.Errorf("failed to render HTML template %s: %w", templateName, err)
	}

	// Text is optional.
	var textBuf bytes.Buffer
	if err := r.textTemplates.ExecuteTemplate(&textBuf, templateName+".txt", data); err != nil {
		return htmlBuf.String(), "", nil
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// MilestoneData contains data for the goal milestone email template.
type MilestoneData struct {
	Name      string
	GoalName  string
	Percents  string // e.g. "25% and 50%"
	Current   string
	Target    string
	Currency  string
	Completed bool
}

// BudgetWarningData contains data for the budget warning email template.
type BudgetWarningData struct {
	Name       string
	Currency   string
	Categories []CategoryWarning
}

// CategoryWarning is one line of the budget warning email.
type CategoryWarning struct {
	Category string // Upper case, e.g. "WANTS"
	Spent    string
	Budget   string
	Percent  string
	Over     bool
}
