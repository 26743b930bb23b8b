package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// Template names used by the services.
const (
	TemplateVerification  = "verification"
	TemplatePasswordReset = "password_reset"
	TemplateAgentApproved = "agent_approved"
	TemplateAgentRejected = "agent_rejected"
	TemplateContactToAgent = "contact_to_agent"
)

var builtin = map[string]string{
	TemplateVerification: `
<h2>Welcome to EstateHub, {{.Name}}!</h2>
<p>Please confirm your email address by clicking the link below:</p>
<p><a href="{{.Link}}">Verify my email</a></p>
<p>If you did not create this account, ignore this message.</p>`,

	TemplatePasswordReset: `
<h2>Password reset</h2>
<p>Hello {{.Name}},</p>
<p>We received a request to reset your password. The link below is valid for one hour:</p>
<p><a href="{{.Link}}">Reset my password</a></p>
<p>If you did not request this, your account is safe and you can ignore this message.</p>`,

	TemplateAgentApproved: `
<h2>Your agent account is approved</h2>
<p>Hello {{.Name}},</p>
<p>Your agency profile{{if .Agency}} for {{.Agency}}{{end}} has been reviewed and approved.
You can now publish listings on EstateHub.</p>`,

	TemplateAgentRejected: `
<h2>Agent application update</h2>
<p>Hello {{.Name}},</p>
<p>Unfortunately we could not approve your agent application at this time.
{{if .Reason}}Reason: {{.Reason}}{{end}}</p>`,

	TemplateContactToAgent: `
<h2>New inquiry{{if .Property}} about {{.Property}}{{end}}</h2>
<p>From: {{.Name}} ({{.Email}}{{if .Phone}}, {{.Phone}}{{end}})</p>
<blockquote>{{.Message}}</blockquote>`,
}

// Templates is a parsed registry of the mail bodies.
type Templates struct {
	set map[string]*template.Template
}

func NewTemplates() (*Templates, error) {
	t := &Templates{set: make(map[string]*template.Template, len(builtin))}
	for name, body := range builtin {
		parsed, err := template.New(name).Parse(body)
		if err != nil {
			return nil, fmt.Errorf("parse email template %s: %w", name, err)
		}
		t.set[name] = parsed
	}
	return t, nil
}

func (t *Templates) Render(name string, data TemplateData) (string, error) {
	tpl, ok := t.set[name]
	if !ok {
		return "", fmt.Errorf("unknown email template: %s", name)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render email template %s: %w", name, err)
	}
	return buf.String(), nil
}
