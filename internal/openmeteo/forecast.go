package openmeteo

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"apiexplorer/internal/fetcher"
)

// CurrentWeather represents the current_weather block of a forecast
type CurrentWeather struct {
	Time          string  `json:"time"`
	Temperature   float64 `json:"temperature"`
	WindSpeed     float64 `json:"windspeed"`
	WindDirection float64 `json:"winddirection"`
	WeatherCode   int     `json:"weathercode"`
	IsDay         int     `json:"is_day"`
}

// Hourly holds the hourly series requested alongside the current weather
type Hourly struct {
	Time               []string  `json:"time"`
	Temperature2m      []float64 `json:"temperature_2m"`
	RelativeHumidity2m []float64 `json:"relative_humidity_2m"`
}

// ForecastResponse represents the Open-Meteo API response for a forecast
type ForecastResponse struct {
	Latitude       float64        `json:"latitude"`
	Longitude      float64        `json:"longitude"`
	Timezone       string         `json:"timezone"`
	CurrentWeather CurrentWeather `json:"current_weather"`
	Hourly         Hourly         `json:"hourly"`
}

// Client fetches forecasts from Open-Meteo
type Client struct {
	fetcher *fetcher.Fetcher
	baseURL string
}

// NewClient creates a new Open-Meteo client
func NewClient(f *fetcher.Fetcher, baseURL string) *Client {
	return &Client{
		fetcher: f,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Current retrieves the current weather and today's hourly series for a location
func (c *Client) Current(ctx context.Context, at Coordinates) (*ForecastResponse, error) {
	res := c.fetcher.Get(ctx, c.baseURL+"/forecast", map[string]string{
		"latitude":        formatCoord(at.Latitude),
		"longitude":       formatCoord(at.Longitude),
		"current_weather": "true",
		"hourly":          "temperature_2m,relative_humidity_2m",
		"timezone":        "auto",
	})
	if err := res.Require("current_weather.temperature", "current_weather.windspeed"); err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}

	var forecast ForecastResponse
	if err := res.Decode(&forecast); err != nil {
		return nil, fmt.Errorf("failed to parse forecast: %w", err)
	}
	return &forecast, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var weatherCodes = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Foggy",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	71: "Slight snow",
	73: "Moderate snow",
	75: "Heavy snow",
	95: "Thunderstorm",
}

// Describe turns a WMO weather code into text
func Describe(code int) string {
	if s, ok := weatherCodes[code]; ok {
		return s
	}
	return "Unknown"
}
