package billing

import (
	"net/url"
	"strings"
)

const countryPrefix = "55" // Brazil

// WhatsAppLink builds a wa.me URL for the given phone and message. Non-digit
// characters are stripped and the country prefix added when missing.
func WhatsAppLink(whatsapp, message string) string {
	var digits strings.Builder
	for _, r := range whatsapp {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	phone := digits.String()
	if !strings.HasPrefix(phone, countryPrefix) {
		phone = countryPrefix + phone
	}
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(message)
}
