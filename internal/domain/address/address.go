package address

import (
	"crypto/sha256"
	"encoding/hex"
)

type Address struct {
	AddressID   int64  `json:"addressId"`
	Street      string `json:"street"`
	Street2     string `json:"street2,omitempty"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
	Country     string `json:"country"`
	CustomerID  int64  `json:"customerId"`
	Fingerprint string `json:"-"`
}

// Fingerprint returns the content digest used as the global uniqueness key
// for addresses. Two records with the same field values always hash to the
// same digest regardless of which customer owns them.
//
// The raw string joins street2 and city without a separator. Every stored
// row was hashed with this exact layout, so the concatenation order must
// not be changed.
func Fingerprint(street, street2, city, state, country, pincode string) string {
	raw := street + "|" + street2 + city + "|" + state + "|" + country + "|" + pincode
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// ComputeFingerprint refreshes the digest from the current field values.
// Callers persisting an address must invoke this immediately before the
// write; a stale digest from a prior state is never reused.
func (a *Address) ComputeFingerprint() {
	a.Fingerprint = Fingerprint(a.Street, a.Street2, a.City, a.State, a.Country, a.Pincode)
}

// SetFields overwrites the six caller-mutable fields. The owning customer
// is never changed by an update.
func (a *Address) SetFields(street, street2, city, state, pincode, country string) {
	a.Street = street
	a.Street2 = street2
	a.City = city
	a.State = state
	a.Pincode = pincode
	a.Country = country
}
