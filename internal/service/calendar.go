package service

// Indicator is one row of the economic calendar. Rate decisions carry NextMeeting,
// data releases carry NextRelease.
type Indicator struct {
	Name        string `json:"name"`
	Current     string `json:"current"`
	NextMeeting string `json:"next_meeting,omitempty"`
	NextRelease string `json:"next_release,omitempty"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// The calendar is reference data maintained by hand
var economicCalendar = map[string]Indicator{
	"fed_rate": {
		Name:        "FED Faiz Oranı",
		Current:     "4.25% - 4.50%",
		NextMeeting: "29 Ocak 2025",
		Icon:        "🏦",
		Color:       "#10b981",
		Description: "Federal Reserve Para Politikası Toplantısı",
	},
	"tcmb_rate": {
		Name:        "TCMB Faiz Oranı",
		Current:     "47.50%",
		NextMeeting: "23 Ocak 2025",
		Icon:        "🇹🇷",
		Color:       "#ef4444",
		Description: "Türkiye Cumhuriyet Merkez Bankası PPK Toplantısı",
	},
	"us_inflation": {
		Name:        "ABD Enflasyon (CPI)",
		Current:     "2.7% (Aralık)",
		NextRelease: "12 Şubat 2025",
		Icon:        "📊",
		Color:       "#f59e0b",
		Description: "Tüketici Fiyat Endeksi - Ocak Verisi",
	},
	"us_jobs": {
		Name:        "ABD İstihdam Verisi",
		Current:     "256K (Aralık)",
		NextRelease: "7 Şubat 2025",
		Icon:        "👔",
		Color:       "#8b5cf6",
		Description: "Tarım Dışı İstihdam (NFP) - Ocak Verisi",
	},
	"tr_inflation": {
		Name:        "Türkiye Enflasyon",
		Current:     "44.38% (Aralık)",
		NextRelease: "3 Şubat 2025",
		Icon:        "📈",
		Color:       "#ec4899",
		Description: "TÜFE Yıllık - Ocak Verisi",
	},
	"ecb_rate": {
		Name:        "ECB Faiz Oranı",
		Current:     "3.15%",
		NextMeeting: "30 Ocak 2025",
		Icon:        "🇪🇺",
		Color:       "#06b6d4",
		Description: "Avrupa Merkez Bankası Para Politikası Kararı",
	},
}

// EconomicCalendar returns a copy so callers cannot modify the reference table
func EconomicCalendar() map[string]Indicator {
	out := make(map[string]Indicator, len(economicCalendar))
	for k, v := range economicCalendar {
		out[k] = v
	}
	return out
}
