package weather

// wmoToCoco maps WMO weather interpretation codes, as served by Open-Meteo,
// to Meteostat condition codes, the vocabulary the model was trained on.
var wmoToCoco = map[int]float64{
	0:  1,  // clear sky
	1:  2,  // mainly clear
	2:  3,  // partly cloudy
	3:  4,  // overcast
	45: 5,  // fog
	48: 6,  // depositing rime fog
	51: 7,  // light drizzle
	53: 7,  // moderate drizzle
	55: 8,  // dense drizzle
	56: 10, // light freezing drizzle
	57: 11, // dense freezing drizzle
	61: 7,  // slight rain
	63: 8,  // moderate rain
	65: 9,  // heavy rain
	66: 10, // light freezing rain
	67: 11, // heavy freezing rain
	71: 14, // slight snowfall
	73: 15, // moderate snowfall
	75: 16, // heavy snowfall
	77: 14, // snow grains
	80: 17, // slight rain showers
	81: 17, // moderate rain showers
	82: 18, // violent rain showers
	85: 21, // slight snow showers
	86: 22, // heavy snow showers
	95: 25, // thunderstorm
	96: 24, // thunderstorm with slight hail
	99: 26, // thunderstorm with heavy hail
}

// cocoFromWMO converts a WMO code. Unknown or fractional codes yield nil so
// the value is treated as missing rather than fed to the model.
func cocoFromWMO(code *float64) *float64 {
	if code == nil {
		return nil
	}
	n := int(*code)
	if float64(n) != *code {
		return nil
	}
	c, ok := wmoToCoco[n]
	if !ok {
		return nil
	}
	return &c
}
