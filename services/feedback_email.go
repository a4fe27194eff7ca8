package services

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/TiltTrack/tilt-track-backend/types"
	"github.com/russross/blackfriday/v2"
)

// ComposeFeedbackEmail builds the outbound message for one feedback
// submission. It is a pure function of the submission: the body is rendered
// from markdown to an HTML fragment, and a plain-text fallback carries the
// raw message.
func ComposeFeedbackEmail(category types.FeedbackCategory, body, reporterEmail, recipient string) (types.EmailMessage, error) {
	label := category.Label()
	subject := fmt.Sprintf("[%s] from %s", label, reporterEmail)

	text := fmt.Sprintf("From: %s\nType: %s\n\n%s", reporterEmail, label, body)

	rendered := blackfriday.Run([]byte(body))

	tmpl, err := template.New("feedback").Parse(feedbackEmailTemplate)
	if err != nil {
		return types.EmailMessage{}, fmt.Errorf("parse feedback template: %w", err)
	}

	var html bytes.Buffer
	err = tmpl.Execute(&html, map[string]interface{}{
		"From": reporterEmail,
		"Type": label,
		// The fragment is trusted HTML produced by the markdown renderer.
		"Body": template.HTML(rendered),
	})
	if err != nil {
		return types.EmailMessage{}, fmt.Errorf("execute feedback template: %w", err)
	}

	return types.EmailMessage{
		To:      recipient,
		ReplyTo: reporterEmail,
		Subject: subject,
		Text:    text,
		HTML:    html.String(),
	}, nil
}

const feedbackEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>TiltTrack Feedback</title>
</head>
<body style="font-family: sans-serif; color: #333333;">
    <p><b>From:</b> {{.From}}</p>
    <p><b>Type:</b> {{.Type}}</p>
    <hr>
    {{.Body}}
</body>
</html>`
