package types

// EmailMessage is a fully composed outbound email, ready for the mail
// provider. Text is the plain-text fallback for the HTML body.
type EmailMessage struct {
	To      string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}
