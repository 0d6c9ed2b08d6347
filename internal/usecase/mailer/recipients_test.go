package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRecipients(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"a@x.com", []string{"a@x.com"}},
		{"a@x.com, b@x.com", []string{"a@x.com", "b@x.com"}},
		{" a@x.com ,,  ,b@x.com, ", []string{"a@x.com", "b@x.com"}},
		{", ,", []string{}},
		{"", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRecipients(tt.raw))
		})
	}
}
