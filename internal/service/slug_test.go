package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Getting Started", "getting-started"},
		{"  Reset Your Password!  ", "reset-your-password"},
		{"FAQ: Billing & Invoices", "faq-billing-invoices"},
		{"already-a-slug", "already-a-slug"},
		{"Multiple   Spaces --- Dashes", "multiple-spaces-dashes"},
		{"Émojis 🎉 stripped", "mojis-stripped"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "Slugify(%q)", tc.in)
	}
}
