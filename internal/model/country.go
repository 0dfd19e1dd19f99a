package model

// countryNames maps the supported ISO 3166-1 alpha-2 codes to their Spanish
// display names. Registration is limited to this list.
var countryNames = map[string]string{
	"AR": "Argentina",
	"BO": "Bolivia",
	"BR": "Brasil",
	"CL": "Chile",
	"CO": "Colombia",
	"CR": "Costa Rica",
	"CU": "Cuba",
	"DO": "República Dominicana",
	"EC": "Ecuador",
	"SV": "El Salvador",
	"GT": "Guatemala",
	"HN": "Honduras",
	"MX": "México",
	"NI": "Nicaragua",
	"PA": "Panamá",
	"PY": "Paraguay",
	"PE": "Perú",
	"PR": "Puerto Rico",
	"UY": "Uruguay",
	"VE": "Venezuela",
}

// IsValidCountry reports whether code is a supported country code.
func IsValidCountry(code string) bool {
	_, ok := countryNames[code]
	return ok
}

// CountryName returns the Spanish display name for a country code,
// or "País desconocido" when the code is not in the supported list.
func CountryName(code string) string {
	if name, ok := countryNames[code]; ok {
		return name
	}
	return "País desconocido"
}
