package handlers

import (
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Validation limits for contact form fields.
const (
	maxNameLen     = 100
	maxPhoneLen    = 40
	maxEmailLen    = 254
	maxServiceLen  = 200
	maxMessageLen  = 5_000
	minPhoneDigits = 1
)

// contactRequest is the contact form payload.
type contactRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Service string `json:"service"`
	Message string `json:"message"`
}

// normalize trims surrounding whitespace from every field.
func (c *contactRequest) normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.TrimSpace(c.Email)
	c.Service = strings.TrimSpace(c.Service)
	c.Message = strings.TrimSpace(c.Message)
}

// missingRequired reports whether a required field is empty.
func (c *contactRequest) missingRequired() bool {
	return c.Name == "" || c.Phone == "" || c.Email == "" || c.Service == ""
}

// validateContact checks field limits and shapes and returns the first
// error found, or "".
func validateContact(c contactRequest) string {
	if utf8.RuneCountInString(c.Name) > maxNameLen {
		return "Name is too long (max 100 characters)."
	}
	if strings.ContainsAny(c.Name, "\r\n") {
		return "Name must be a single line."
	}
	if utf8.RuneCountInString(c.Phone) > maxPhoneLen {
		return "Phone is too long (max 40 characters)."
	}
	if countDigits(c.Phone) < minPhoneDigits {
		return "Please enter a valid phone number."
	}
	if utf8.RuneCountInString(c.Email) > maxEmailLen || !validEmail(c.Email) {
		return "Please enter a valid email address."
	}
	if utf8.RuneCountInString(c.Service) > maxServiceLen {
		return "Service is too long (max 200 characters)."
	}
	if utf8.RuneCountInString(c.Message) > maxMessageLen {
		return "Message is too long (max 5,000 characters)."
	}
	return ""
}

// validEmail accepts a bare address with a dotted domain.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return false
	}
	_, domain, ok := strings.Cut(s, "@")
	return ok && strings.Contains(domain, ".") && !strings.HasSuffix(domain, ".")
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
