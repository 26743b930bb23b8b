package email

// Message is one outbound email.
type Message struct {
	To      []string
	Subject string
	Body    string
	HTML    bool
}

// TemplateData feeds the named template placeholders.
type TemplateData map[string]interface{}
