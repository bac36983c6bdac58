package fetcher

import (
	"fmt"

	"github.com/rs/zerolog"
	"resty.dev/v3"
)

const userAgent = "apiexplorer/1.0"

// NewHTTPClient creates the resty client shared by the fetcher and the POST helpers.
// Resty's own retry machinery stays disabled; retries are driven by Fetcher.Fetch.
func NewHTTPClient(logger zerolog.Logger) *resty.Client {
	return resty.New().
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent).
		SetRetryCount(0).
		SetLogger(restyLogger{logger: logger.With().Str("component", "resty").Logger()})
}

// restyLogger routes resty's internal messages into zerolog
type restyLogger struct {
	logger zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.logger.Debug().Str("resty_level", "error").Msg(fmt.Sprintf(format, v...))
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.logger.Debug().Str("resty_level", "warn").Msg(fmt.Sprintf(format, v...))
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.logger.Debug().Msg(fmt.Sprintf(format, v...))
}
