package checkout

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Form is the shipping and payment data collected from the checkout page.
// Validation is pattern-level input sanity, not cryptographic card checks.
type Form struct {
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	Zip        string `json:"zip"`
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
	cardPattern  = regexp.MustCompile(`^[0-9]{16}$`)
	cvvPattern   = regexp.MustCompile(`^[0-9]{3}$`)
)

// Validate checks every field and returns a field-keyed error map; an empty
// map means the form may be submitted. Each offending field gets its own
// message so the UI can annotate inputs individually.
func (f Form) Validate(now time.Time) map[string]string {
	errs := make(map[string]string)

	if f.FullName == "" {
		errs["fullName"] = "Full name is required"
	}
	if !emailPattern.MatchString(f.Email) {
		errs["email"] = "Invalid email"
	}
	if !phonePattern.MatchString(f.Phone) {
		errs["phone"] = "Invalid phone number"
	}
	if f.Address == "" {
		errs["address"] = "Address is required"
	}
	if f.City == "" {
		errs["city"] = "City is required"
	}
	if f.State == "" {
		errs["state"] = "State is required"
	}
	if f.Zip == "" {
		errs["zip"] = "Zip code is required"
	}
	if !cardPattern.MatchString(stripSeparators(f.CardNumber)) {
		errs["cardNumber"] = "Invalid card number"
	}
	if !expiryValid(f.Expiry, now) {
		errs["expiry"] = "Invalid expiry date"
	}
	if !cvvPattern.MatchString(f.CVV) {
		errs["cvv"] = "Invalid CVV"
	}

	return errs
}

func stripSeparators(card string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, card)
}

// expiryValid parses MM/YY and requires the expiry month to start strictly
// after now, so a card expiring in the current month is rejected.
func expiryValid(expiry string, now time.Time) bool {
	parts := strings.Split(expiry, "/")
	if len(parts) != 2 {
		return false
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || month < 1 || month > 12 {
		return false
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || year < 0 || year > 99 {
		return false
	}

	expires := time.Date(2000+year, time.Month(month), 1, 0, 0, 0, 0, now.Location())
	return expires.After(now)
}
