package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContact_HasNameAndPhone(t *testing.T) {
	tests := []struct {
		name    string
		contact Contact
		want    bool
	}{
		{"complete", Contact{Name: "Budi", Phone: "0812"}, true},
		{"blank phone", Contact{Name: "Budi", Phone: "   "}, false},
		{"empty name", Contact{Phone: "0812"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.contact.HasNameAndPhone())
		})
	}
}

func TestContact_Normalized(t *testing.T) {
	c := Contact{Name: " Budi ", Phone: "0812 ", AddressDetail: "\tJl. Raya 1\n"}.Normalized()
	assert.Equal(t, Contact{Name: "Budi", Phone: "0812", AddressDetail: "Jl. Raya 1"}, c)
}
