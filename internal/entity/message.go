package entity

// OutboundMessage is what gets handed to the mail provider.
type OutboundMessage struct {
	To          []string
	From        string
	Subject     string
	Text        string
	HTML        string
	Attachments []Attachment // at most one
}
