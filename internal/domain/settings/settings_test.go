package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "6281234567890", NormalizePhone("0812-3456-7890"))
	assert.Equal(t, "6281234567890", NormalizePhone("+62 812 3456 7890"))
	assert.Equal(t, "", NormalizePhone(" - "))
}

func TestWhatsAppOr(t *testing.T) {
	var none *StoreSettings
	assert.Equal(t, "6281111", none.WhatsAppOr("081111"))
	assert.Equal(t, "6281111", (&StoreSettings{}).WhatsAppOr("6281111"))
	assert.Equal(t, "628222", (&StoreSettings{WhatsAppNumber: "0822 2"}).WhatsAppOr("6281111"))
}
