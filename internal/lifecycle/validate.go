package lifecycle

import (
	"math"
	"strings"

	"github.com/qwerty-development/revive-webapp/internal/lib/validate"
	"github.com/qwerty-development/revive-webapp/internal/models"
)

// validateDraft checks d and normalizes it to what persistence stores:
// trimmed contact fields, amounts in cents, timestamps in microseconds.
func (e *Engine) validateDraft(d *models.Draft) error {
	d.VenueID = strings.TrimSpace(d.VenueID)
	d.Contact.FirstName = strings.TrimSpace(d.Contact.FirstName)
	d.Contact.LastName = strings.TrimSpace(d.Contact.LastName)
	d.Contact.Email = strings.TrimSpace(d.Contact.Email)
	d.Contact.PhoneNumber = strings.TrimSpace(d.Contact.PhoneNumber)

	verr := validate.Fields(e.validate.Struct(d))

	if math.IsNaN(d.PriceOffer) || math.IsInf(d.PriceOffer, 0) {
		verr = validate.Add(verr, "price_offer", "must be a finite amount")
	}
	if !d.ArrivalTime.IsZero() && d.ArrivalTime.Before(e.now()) {
		verr = validate.Add(verr, "arrival_time", "must not be in the past")
	}

	if verr != nil {
		return verr
	}

	d.PriceOffer = models.Cents(d.PriceOffer)
	d.ArrivalTime = models.Instant(d.ArrivalTime)

	return nil
}

func (e *Engine) validatePatch(p *models.Patch) error {
	if p.Empty() {
		return models.NewValidationError("patch", "has no fields to update")
	}

	verr := validate.Fields(e.validate.Struct(p))

	if p.PriceOffer != nil && (math.IsNaN(*p.PriceOffer) || math.IsInf(*p.PriceOffer, 0)) {
		verr = validate.Add(verr, "price_offer", "must be a finite amount")
	}
	if p.ArrivalTime != nil {
		if p.ArrivalTime.IsZero() {
			verr = validate.Add(verr, "arrival_time", "is required")
		} else if p.ArrivalTime.Before(e.now()) {
			verr = validate.Add(verr, "arrival_time", "must not be in the past")
		}
	}

	if verr != nil {
		return verr
	}

	if p.PriceOffer != nil {
		price := models.Cents(*p.PriceOffer)
		p.PriceOffer = &price
	}
	if p.ArrivalTime != nil {
		arrival := models.Instant(*p.ArrivalTime)
		p.ArrivalTime = &arrival
	}

	return nil
}
