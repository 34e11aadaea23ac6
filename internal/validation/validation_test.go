package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

func TestStruct_Valid(t *testing.T) {
	fields := Struct(sampleRequest{
		Name:     "Kalem",
		Email:    "satis@example.com",
		Quantity: 3,
	})
	assert.Nil(t, fields)
}

func TestStruct_MissingAndMalformed(t *testing.T) {
	fields := Struct(sampleRequest{
		Email:    "gecersiz-adres",
		Quantity: 0,
	})

	assert.NotNil(t, fields)
	// Alan adları json tag'leriyle dönmeli
	assert.Equal(t, "Bu alan zorunlu", fields["name"])
	assert.Equal(t, "Geçerli bir email adresi girin", fields["email"])
	assert.Contains(t, fields, "quantity")
}

func TestStruct_OmitemptyEmail(t *testing.T) {
	type optionalEmail struct {
		Email string `json:"email" validate:"omitempty,email"`
	}

	assert.Nil(t, Struct(optionalEmail{}))
	assert.NotNil(t, Struct(optionalEmail{Email: "bozuk"}))
}
