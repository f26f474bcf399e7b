package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"croppulse/config"
	"croppulse/models"
	"croppulse/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	openWeatherBaseURL = "https://api.openweathermap.org/data/2.5"
	openWeatherOneCall = "https://api.openweathermap.org/data/3.0/onecall"

	currentCacheTTL  = 30 * time.Minute
	forecastCacheTTL = time.Hour
)

// OpenWeatherGateway fetches conditions from the OpenWeatherMap API, caching
// responses in Redis to stay under the upstream rate limits.
type OpenWeatherGateway struct {
	httpClient *http.Client
	cache      *redis.Client
	apiKey     string
}

// NewOpenWeatherGateway builds the gateway with the configured API key.
func NewOpenWeatherGateway(cache *redis.Client) *OpenWeatherGateway {
	return &OpenWeatherGateway{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      cache,
		apiKey:     config.AppConfig.OpenWeatherAPIKey,
	}
}

type owCurrentResponse struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Pressure  int     `json:"pressure"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
	} `json:"wind"`
	Rain struct {
		OneHour float64 `json:"1h"`
	} `json:"rain"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Visibility int   `json:"visibility"`
	Dt         int64 `json:"dt"`
}

func (g *OpenWeatherGateway) getJSON(ctx context.Context, cacheKey, rawURL string, ttl time.Duration, out any) error {
	logger := utils.GetLogger()

	if g.cache != nil {
		cached, err := g.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			return json.Unmarshal([]byte(cached), out)
		}
		if err != redis.Nil {
			logger.Warn("weather cache read failed", zap.Error(err))
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build weather request: %w", err)
	}
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("weather provider returned status %d", resp.StatusCode)
	}

	var body json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode weather response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse weather response: %w", err)
	}

	if g.cache != nil {
		if err := g.cache.Set(ctx, cacheKey, string(body), ttl).Err(); err != nil {
			logger.Warn("weather cache write failed", zap.Error(err))
		}
	}
	return nil
}

func (g *OpenWeatherGateway) Current(ctx context.Context, lat, lon float64) (*models.WeatherData, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%.4f", lat))
	q.Set("lon", fmt.Sprintf("%.4f", lon))
	q.Set("appid", g.apiKey)
	q.Set("units", "metric")

	var raw owCurrentResponse
	cacheKey := fmt.Sprintf("weather:current:%.4f:%.4f", lat, lon)
	if err := g.getJSON(ctx, cacheKey, openWeatherBaseURL+"/weather?"+q.Encode(), currentCacheTTL, &raw); err != nil {
		return nil, err
	}

	d := &models.WeatherData{
		Latitude:    lat,
		Longitude:   lon,
		Temperature: raw.Main.Temp,
		FeelsLike:   &raw.Main.FeelsLike,
		TempMin:     &raw.Main.TempMin,
		TempMax:     &raw.Main.TempMax,
		Humidity:    raw.Main.Humidity,
		Pressure:    raw.Main.Pressure,
		WindSpeed:   raw.Wind.Speed,
		Rainfall:    raw.Rain.OneHour,
		Source:      models.WeatherSourceAPI,
		RecordedAt:  time.Unix(raw.Dt, 0).UTC(),
	}
	wd := raw.Wind.Deg
	d.WindDirection = &wd
	clouds := raw.Clouds.All
	d.Clouds = &clouds
	if raw.Visibility > 0 {
		vis := float64(raw.Visibility) / 1000
		d.Visibility = &vis
	}
	if len(raw.Weather) > 0 {
		d.Condition = raw.Weather[0].Main
		d.Description = raw.Weather[0].Description
		d.Icon = raw.Weather[0].Icon
	}
	return d, nil
}

type owForecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			TempMin  float64 `json:"temp_min"`
			TempMax  float64 `json:"temp_max"`
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Rain struct {
			ThreeHours float64 `json:"3h"`
		} `json:"rain"`
		Pop float64 `json:"pop"`
	} `json:"list"`
}

// Forecast aggregates the provider's 3-hourly forecast into daily entries.
func (g *OpenWeatherGateway) Forecast(ctx context.Context, lat, lon float64, days int) ([]*models.WeatherForecast, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%.4f", lat))
	q.Set("lon", fmt.Sprintf("%.4f", lon))
	q.Set("appid", g.apiKey)
	q.Set("units", "metric")

	var raw owForecastResponse
	cacheKey := fmt.Sprintf("weather:forecast:%.4f:%.4f", lat, lon)
	if err := g.getJSON(ctx, cacheKey, openWeatherBaseURL+"/forecast?"+q.Encode(), forecastCacheTTL, &raw); err != nil {
		return nil, err
	}

	type dayAgg struct {
		tempMin, tempMax, tempSum float64
		humiditySum               int
		windSum, rainSum          float64
		maxPop                    float64
		condition, description    string
		icon                      string
		samples                   int
	}
	byDay := map[string]*dayAgg{}
	var order []string

	for _, entry := range raw.List {
		day := time.Unix(entry.Dt, 0).UTC().Format("2006-01-02")
		agg, ok := byDay[day]
		if !ok {
			agg = &dayAgg{tempMin: entry.Main.TempMin, tempMax: entry.Main.TempMax}
			byDay[day] = agg
			order = append(order, day)
		}
		if entry.Main.TempMin < agg.tempMin {
			agg.tempMin = entry.Main.TempMin
		}
		if entry.Main.TempMax > agg.tempMax {
			agg.tempMax = entry.Main.TempMax
		}
		agg.tempSum += entry.Main.Temp
		agg.humiditySum += entry.Main.Humidity
		agg.windSum += entry.Wind.Speed
		agg.rainSum += entry.Rain.ThreeHours
		if entry.Pop > agg.maxPop {
			agg.maxPop = entry.Pop
		}
		if agg.condition == "" && len(entry.Weather) > 0 {
			agg.condition = entry.Weather[0].Main
			agg.description = entry.Weather[0].Description
			agg.icon = entry.Weather[0].Icon
		}
		agg.samples++
	}

	var out []*models.WeatherForecast
	for _, day := range order {
		if len(out) >= days {
			break
		}
		agg := byDay[day]
		date, _ := time.Parse("2006-01-02", day)
		out = append(out, &models.WeatherForecast{
			Latitude:     lat,
			Longitude:    lon,
			ForecastDate: date,
			TempMin:      agg.tempMin,
			TempMax:      agg.tempMax,
			TempAvg:      agg.tempSum / float64(agg.samples),
			Humidity:     agg.humiditySum / agg.samples,
			WindSpeed:    agg.windSum / float64(agg.samples),
			Rainfall:     agg.rainSum,
			POP:          int(agg.maxPop * 100),
			Condition:    agg.condition,
			Description:  agg.description,
			Icon:         agg.icon,
		})
	}
	return out, nil
}

type owOneCallResponse struct {
	Alerts []struct {
		SenderName  string `json:"sender_name"`
		Event       string `json:"event"`
		Start       int64  `json:"start"`
		End         int64  `json:"end"`
		Description string `json:"description"`
	} `json:"alerts"`
}

// Events returns the provider's active weather alerts for the location.
func (g *OpenWeatherGateway) Events(ctx context.Context, lat, lon float64) ([]*models.WeatherEvent, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%.4f", lat))
	q.Set("lon", fmt.Sprintf("%.4f", lon))
	q.Set("appid", g.apiKey)
	q.Set("exclude", "minutely,hourly,daily,current")

	var raw owOneCallResponse
	cacheKey := fmt.Sprintf("weather:events:%.4f:%.4f", lat, lon)
	if err := g.getJSON(ctx, cacheKey, openWeatherOneCall+"?"+q.Encode(), currentCacheTTL, &raw); err != nil {
		return nil, err
	}

	var out []*models.WeatherEvent
	for _, a := range raw.Alerts {
		out = append(out, &models.WeatherEvent{
			Event:       a.Event,
			Start:       time.Unix(a.Start, 0).UTC(),
			End:         time.Unix(a.End, 0).UTC(),
			Description: a.Description,
			Sender:      a.SenderName,
		})
	}
	return out, nil
}
