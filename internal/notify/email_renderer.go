package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/shanehull/keyinfo/internal/types"
)

// NotificationData is the template input for one announcement.
type NotificationData struct {
	Match    types.Match
	Sections []Section
	Total    int
}

// NewNotificationData prepares a match for rendering.
func NewNotificationData(m types.Match) NotificationData {
	return NotificationData{
		Match:    m,
		Sections: Sections(m.KeyInfo),
		Total:    m.KeyInfo.Total(),
	}
}

// RenderedMessage is a ready-to-send email.
type RenderedMessage struct {
	Subject string
	Text    string
	HTML    string
}

// HTMLEmailRenderer renders notifications as HTML emails with a plain text fallback.
type HTMLEmailRenderer struct {
	tmpl *template.Template
}

// NewHTMLEmailRenderer creates a renderer with the default email template.
func NewHTMLEmailRenderer() *HTMLEmailRenderer {
	t := template.Must(template.New("email").Parse(emailHTMLTemplate))
	return &HTMLEmailRenderer{tmpl: t}
}

// Render produces an HTML email with plain text alternative.
func (r *HTMLEmailRenderer) Render(data NotificationData) (*RenderedMessage, error) {
	subject := fmt.Sprintf("ASX Key Info: %s - %s", data.Match.Ticker, data.Match.Title)

	var htmlBuf bytes.Buffer
	if err := r.tmpl.Execute(&htmlBuf, data); err != nil {
		return nil, fmt.Errorf("failed to render HTML template: %w", err)
	}

	text, err := renderPlainText(data)
	if err != nil {
		return nil, err
	}

	return &RenderedMessage{
		Subject: subject,
		Text:    text,
		HTML:    htmlBuf.String(),
	}, nil
}

// renderPlainText produces a readable plain text version for email clients that don't support HTML.
func renderPlainText(data NotificationData) (string, error) {
	m := data.Match
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s - %s\n", m.Ticker, m.Title))
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	if m.IsPriceSensitive {
		sb.WriteString("⚡ PRICE SENSITIVE\n\n")
	}

	sb.WriteString(fmt.Sprintf("Date: %s\n", m.DateTime.Format("02 Jan 2006 3:04 PM")))
	sb.WriteString(fmt.Sprintf("URL: %s\n\n", m.PDFURL))

	if err := WriteKeyInfo(&sb, m.KeyInfo); err != nil {
		return "", fmt.Errorf("failed to render plain text: %w", err)
	}

	return sb.String(), nil
}
