// Package catalog holds the products the store sells and the reference
// entities an admin manages alongside them: categories, brands and suppliers.
package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Kind tags which admin entity a form or record belongs to.
type Kind string

const (
	KindProduct  Kind = "product"
	KindCategory Kind = "category"
	KindBrand    Kind = "brand"
	KindSupplier Kind = "supplier"
)

// ParseKind accepts the singular or plural route name.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "product", "products":
		return KindProduct, nil
	case "category", "categories":
		return KindCategory, nil
	case "brand", "brands":
		return KindBrand, nil
	case "supplier", "suppliers":
		return KindSupplier, nil
	}
	return "", fmt.Errorf("unknown entity kind %q", s)
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases text, turns every run of characters outside [a-z0-9]
// into a single dash and trims dashes from both ends.
func Slugify(text string) string {
	s := nonSlugChars.ReplaceAllString(strings.ToLower(text), "-")
	return strings.Trim(s, "-")
}

// ProductSlug makes a product slug unique by appending the creation time in
// base 36 milliseconds.
func ProductSlug(name string, now time.Time) string {
	return Slugify(name) + "-" + strconv.FormatInt(now.UnixMilli(), 36)
}
