package report

import "apiexplorer/internal/openmeteo"

// Weather writes the framed current-weather report of a city
func (p *Printer) Weather(city string, f *openmeteo.ForecastResponse) {
	cw := f.CurrentWeather

	p.Blank()
	p.Banner("Weather in "+Title(city), 40)
	p.Linef("  Temperature: %v°C", cw.Temperature)
	p.Linef("  Wind Speed: %v km/h", cw.WindSpeed)
	p.Linef("  Wind Direction: %v°", cw.WindDirection)
	p.Linef("  Condition: %s", openmeteo.Describe(cw.WeatherCode))
	p.Rule("=", 40)
}

// WeatherBrief writes the short two-line weather summary
func (p *Printer) WeatherBrief(city string, f *openmeteo.ForecastResponse) {
	p.Blank()
	p.Linef("Current weather in %s:", Title(city))
	p.Linef("Temperature: %v°C", f.CurrentWeather.Temperature)
	p.Linef("Wind Speed: %v km/h", f.CurrentWeather.WindSpeed)
}
