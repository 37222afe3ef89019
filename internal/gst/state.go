package gst

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	gstinPattern = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	panPattern   = regexp.MustCompile(`^[A-Z]{5}\d{4}[A-Z]$`)
)

// States maps GST state codes to state and union territory names.
var States = map[string]string{
	"01": "Jammu & Kashmir",
	"02": "Himachal Pradesh",
	"03": "Punjab",
	"04": "Chandigarh",
	"05": "Uttarakhand",
	"06": "Haryana",
	"07": "Delhi",
	"08": "Rajasthan",
	"09": "Uttar Pradesh",
	"10": "Bihar",
	"11": "Sikkim",
	"12": "Arunachal Pradesh",
	"13": "Nagaland",
	"14": "Manipur",
	"15": "Mizoram",
	"16": "Tripura",
	"17": "Meghalaya",
	"18": "Assam",
	"19": "West Bengal",
	"20": "Jharkhand",
	"21": "Odisha",
	"22": "Chhattisgarh",
	"23": "Madhya Pradesh",
	"24": "Gujarat",
	"25": "Daman & Diu",
	"26": "Dadra & Nagar Haveli",
	"27": "Maharashtra",
	"28": "Andhra Pradesh (Old)",
	"29": "Karnataka",
	"30": "Goa",
	"31": "Lakshadweep",
	"32": "Kerala",
	"33": "Tamil Nadu",
	"34": "Puducherry",
	"35": "Andaman & Nicobar Islands",
	"36": "Telangana",
	"37": "Andhra Pradesh",
	"38": "Ladakh",
	"97": "Other Territory",
}

// IsValidStateCode reports whether code is a known two digit GST state code.
func IsValidStateCode(code string) bool {
	_, ok := States[code]
	return ok
}

// IsValidGSTIN checks the 15 character GSTIN layout and its state prefix.
func IsValidGSTIN(gstin string) bool {
	return gstinPattern.MatchString(gstin) && IsValidStateCode(gstin[:2])
}

// IsValidPAN checks the 10 character PAN layout.
func IsValidPAN(pan string) bool {
	return panPattern.MatchString(pan)
}

// StateCodeFromGSTIN returns the state code embedded in a GSTIN, or "".
func StateCodeFromGSTIN(gstin string) string {
	gstin = strings.ToUpper(strings.TrimSpace(gstin))
	if !IsValidGSTIN(gstin) {
		return ""
	}
	return gstin[:2]
}

// RegisterValidations adds the gstin, pan and statecode tags to v.
func RegisterValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("gstin", func(fl validator.FieldLevel) bool {
		return IsValidGSTIN(fl.Field().String())
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("pan", func(fl validator.FieldLevel) bool {
		return IsValidPAN(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("statecode", func(fl validator.FieldLevel) bool {
		return IsValidStateCode(fl.Field().String())
	})
}
