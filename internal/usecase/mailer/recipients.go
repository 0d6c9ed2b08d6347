package mailer

import "strings"

// ParseRecipients splits a comma-separated address list, dropping blanks.
func ParseRecipients(raw string) []string {
	parts := strings.Split(raw, ",")

	recipients := make([]string, 0, len(parts))
	for _, p := range parts {
		if addr := strings.TrimSpace(p); addr != "" {
			recipients = append(recipients, addr)
		}
	}

	return recipients
}
