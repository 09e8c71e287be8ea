package validate

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qwerty-development/revive-webapp/internal/models"
)

type inner struct {
	EmailAddress string `validate:"required,email"`
}

type sample struct {
	OwnerID   string  `validate:"required"`
	PartySize int     `validate:"gte=1"`
	Notes     string  `validate:"max=3"`
	Kind      string  `validate:"oneof=a b"`
	Price     float64 `validate:"lte=100.5"`
	Contact   inner
}

func TestFields(t *testing.T) {
	t.Parallel()

	err := validator.New().Struct(sample{Notes: "toolong", Kind: "c", Price: 101, Contact: inner{EmailAddress: "nope"}})
	verr := Fields(err)
	require.NotNil(t, verr)

	assert.Equal(t, map[string]string{
		"owner_id":              "is required",
		"party_size":            "must be at least 1",
		"notes":                 "must be at most 3 characters",
		"kind":                  "must be one of: a b",
		"price":                 "must be at most 100.5",
		"contact.email_address": "must be a valid email",
	}, verr.Fields)
	assert.ErrorIs(t, verr, models.ErrValidation)
}

func TestFieldsPassThrough(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Fields(nil))

	verr := Fields(errors.New("boom"))
	require.NotNil(t, verr)
	assert.Equal(t, map[string]string{"input": "boom"}, verr.Fields)
}

func TestAdd(t *testing.T) {
	t.Parallel()

	verr := Add(nil, "price_offer", "must be a finite amount")
	verr = Add(verr, "arrival_time", "must not be in the past")

	assert.Equal(t, "field arrival_time must not be in the past, field price_offer must be a finite amount", verr.Error())
}
