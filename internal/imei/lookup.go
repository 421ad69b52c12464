// Package imei resolves device specs from an IMEI using a fixed TAC table.
// The lookup is total: an IMEI that misses both the TAC table and the
// brand-code fallback resolves to the Unknown sentinel.
package imei

import "phone-inspection-backend/internal/model"

// tacLength is the number of leading IMEI digits forming the TAC.
const tacLength = 8

// tacTable maps a full 8-digit TAC to a known device.
var tacTable = map[string]model.PhoneSpecs{
	"35326909": {Brand: "Apple", Model: "iPhone 13 Pro", Storage: "128GB"},
	"35898932": {Brand: "Samsung", Model: "Galaxy S21", Storage: "256GB"},
	"35284610": {Brand: "Google", Model: "Pixel 6", Storage: "128GB"},
	"35715405": {Brand: "OnePlus", Model: "9 Pro", Storage: "256GB"},
}

// brandTable maps the leading 2-digit reporting-body code to a brand when
// the full TAC is not in the table.
var brandTable = map[string]string{
	"01": "Apple",
	"35": "Apple",
	"86": "Samsung",
	"99": "Samsung",
	"49": "Google",
	"53": "LG",
	"44": "Motorola",
}

// Lookup returns the device specs for the given IMEI. It never fails:
// unrecognized IMEIs yield a record with brand "Unknown".
func Lookup(imei string) model.PhoneSpecs {
	tac := imei
	if len(tac) > tacLength {
		tac = tac[:tacLength]
	}

	if specs, ok := tacTable[tac]; ok {
		return specs
	}

	brand := "Unknown"
	if len(tac) >= 2 {
		if b, ok := brandTable[tac[:2]]; ok {
			brand = b
		}
	}

	return model.PhoneSpecs{
		Brand:   brand,
		Model:   "Unknown Model",
		Storage: "Unknown",
	}
}
