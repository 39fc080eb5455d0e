package weather

// Condition is the display mapping for a provider condition.
type Condition struct {
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// conditionByCode maps WeatherAPI's documented condition codes to a display
// icon and an Indonesian description. Keying by code instead of matching
// substrings of the free-text condition avoids ambiguous overlaps such as
// "Partly cloudy" vs "Cloudy".
var conditionByCode = map[int]Condition{
	1000: {"☀️", "Cerah"},
	1003: {"🌤️", "Sebagian Cerah"},
	1006: {"☁️", "Berawan"},
	1009: {"☁️", "Mendung"},
	1030: {"🌫️", "Berkabut"},
	1063: {"🌧️", "Hujan Ringan"},
	1066: {"❄️", "Salju Ringan"},
	1069: {"❄️", "Hujan Salju"},
	1072: {"🌧️", "Gerimis Beku"},
	1087: {"⛈️", "Badai Petir"},
	1114: {"❄️", "Salju Tertiup Angin"},
	1117: {"❄️", "Badai Salju"},
	1135: {"🌫️", "Berkabut"},
	1147: {"🌫️", "Kabut Beku"},
	1150: {"🌧️", "Gerimis"},
	1153: {"🌧️", "Gerimis"},
	1168: {"🌧️", "Gerimis Beku"},
	1171: {"🌧️", "Gerimis Beku Lebat"},
	1180: {"🌧️", "Hujan Ringan"},
	1183: {"🌧️", "Hujan Ringan"},
	1186: {"🌧️", "Hujan"},
	1189: {"🌧️", "Hujan"},
	1192: {"🌧️", "Hujan Lebat"},
	1195: {"🌧️", "Hujan Lebat"},
	1198: {"🌧️", "Hujan Beku Ringan"},
	1201: {"🌧️", "Hujan Beku"},
	1204: {"❄️", "Hujan Salju Ringan"},
	1207: {"❄️", "Hujan Salju Lebat"},
	1210: {"❄️", "Salju Ringan"},
	1213: {"❄️", "Salju Ringan"},
	1216: {"❄️", "Salju"},
	1219: {"❄️", "Salju"},
	1222: {"❄️", "Salju Lebat"},
	1225: {"❄️", "Salju Lebat"},
	1237: {"❄️", "Hujan Es"},
	1240: {"🌧️", "Hujan Ringan"},
	1243: {"🌧️", "Hujan Lebat"},
	1246: {"🌧️", "Hujan Sangat Lebat"},
	1249: {"❄️", "Hujan Salju Ringan"},
	1252: {"❄️", "Hujan Salju Lebat"},
	1255: {"❄️", "Salju Ringan"},
	1258: {"❄️", "Salju Lebat"},
	1261: {"❄️", "Hujan Es Ringan"},
	1264: {"❄️", "Hujan Es Lebat"},
	1273: {"⛈️", "Hujan Petir Ringan"},
	1276: {"⛈️", "Hujan Petir Lebat"},
	1279: {"⛈️", "Salju Petir Ringan"},
	1282: {"⛈️", "Salju Petir Lebat"},
}

// fallbackIcon is shown for condition codes the table does not know.
const fallbackIcon = "🌤️"

// Lookup resolves a provider condition code to its display mapping. Unknown
// codes fall back to the generic icon and the raw condition text.
func Lookup(code int, text string) Condition {
	if c, ok := conditionByCode[code]; ok {
		return c
	}
	if text == "" {
		text = "Tidak Diketahui"
	}
	return Condition{Icon: fallbackIcon, Description: text}
}
