package dto

import (
	"strconv"
	"strings"
)

type UploadBenefitRequest struct {
	Name               string      `json:"name"`
	QOfCodes           FlexibleInt `json:"q_of_codes"`
	Discount           FlexibleInt `json:"discount"`
	IDBusinessDiscount FlexibleInt `json:"id_business_discount"`
}

// FlexibleInt accepts a JSON number or a numeric string, mirroring the
// loose values partner upload forms send. Non-numeric input leaves Set
// false instead of failing the whole decode, so the service can answer
// with a field-specific message.
type FlexibleInt struct {
	Value int
	Set   bool
}

func (f *FlexibleInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		f.Value, f.Set = n, true
		return nil
	}
	if x, err := strconv.ParseFloat(s, 64); err == nil {
		f.Value, f.Set = int(x), true
	}
	return nil
}

// IntOr returns the carried value, or def when none arrived.
func (f FlexibleInt) IntOr(def int) int {
	if !f.Set {
		return def
	}
	return f.Value
}
