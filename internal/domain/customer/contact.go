// Package customer holds the contact details a shopper types at checkout.
package customer

import "strings"

// Contact is remembered between visits so the checkout form comes back filled.
type Contact struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	AddressDetail string `json:"addressDetail"`
}

// Normalized returns a copy with surrounding whitespace removed.
func (c Contact) Normalized() Contact {
	return Contact{
		Name:          strings.TrimSpace(c.Name),
		Phone:         strings.TrimSpace(c.Phone),
		AddressDetail: strings.TrimSpace(c.AddressDetail),
	}
}

// HasNameAndPhone reports whether both name and phone are non-blank.
func (c Contact) HasNameAndPhone() bool {
	n := c.Normalized()
	return n.Name != "" && n.Phone != ""
}
