package nregaportal

// Census-derived location codes the NREGA portal keys its reports on. These
// cover the states and districts the dashboard tracks; the portal has no
// discovery endpoint, so the tables are maintained by hand.

// StateCodes maps state display names to portal state codes.
var StateCodes = map[string]string{
	"Andhra Pradesh": "02",
	"Bihar":          "10",
	"Chhattisgarh":   "22",
	"Gujarat":        "06",
	"Haryana":        "07",
	"Jharkhand":      "20",
	"Karnataka":      "29",
	"Kerala":         "32",
	"Madhya Pradesh": "23",
	"Maharashtra":    "27",
	"Odisha":         "21",
	"Punjab":         "03",
	"Rajasthan":      "08",
	"Tamil Nadu":     "33",
	"Telangana":      "36",
	"Uttar Pradesh":  "09",
	"West Bengal":    "19",
}

// DistrictCodes maps district display names to portal district codes.
var DistrictCodes = map[string]string{
	// Madhya Pradesh
	"Bhopal":      "2301",
	"Indore":      "2318",
	"Jabalpur":    "2320",
	"Gwalior":     "2315",
	"Ujjain":      "2353",
	"Sagar":       "2343",
	"Ratlam":      "2340",
	"Dewas":       "2309",
	"Rewa":        "2341",
	"Satna":       "2346",
	"Hoshangabad": "2317",
	"Chhindwara":  "2306",
	"Dhar":        "2310",
	"Vidisha":     "2354",
	"Betul":       "2302",

	// Chhattisgarh
	"Korba": "2210",

	// Bihar
	"Patna":       "1028",
	"Gaya":        "1012",
	"Muzaffarpur": "1026",
	"Bhagalpur":   "1005",
	"Nalanda":     "1027",

	// Uttar Pradesh
	"Lucknow":      "0938",
	"Kanpur Nagar": "0930",
	"Varanasi":     "0970",
	"Agra":         "0902",
	"Meerut":       "0945",
	"Prayagraj":    "0903",
	"Noida":        "0913", // Gautam Buddha Nagar

	// Maharashtra
	"Mumbai":     "2722",
	"Pune":       "2730",
	"Nagpur":     "2725",
	"Thane":      "2734",
	"Nashik":     "2727",
	"Aurangabad": "2703",
}

// districtState maps a portal district code back to its state code (first two
// digits of the district code).
func districtState(districtCode string) string {
	if len(districtCode) < 2 {
		return ""
	}
	return districtCode[:2]
}
