package order

import (
	"strings"
	"unicode"
)

// encodeComponent percent-encodes text like encodeURIComponent: letters,
// digits and -_.!~*'() stay as they are, everything else is escaped as
// UTF-8 bytes.
func encodeComponent(text string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(text) * 3)
	for i := 0; i < len(text); i++ {
		c := text[i]
		if isUnreservedComponent(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreservedComponent(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

// WhatsAppURL builds a wa.me deep link with the text prefilled.
// Non-digit characters of the phone number are dropped.
func WhatsAppURL(phone, text string) string {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
	return "https://wa.me/" + digits + "?text=" + encodeComponent(text)
}

// MailtoURL builds a mailto link with subject and body prefilled
func MailtoURL(address, subject, body string) string {
	return "mailto:" + address + "?subject=" + encodeComponent(subject) + "&body=" + encodeComponent(body)
}

// MailSubject is the subject line used for emailed orders
func (s Selection) MailSubject() string {
	return "Commande : " + s.product.Name
}
