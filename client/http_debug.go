package client

import (
	"net/http"
	"net/http/httputil"
	"os"

	"github.com/rs/zerolog"
)

// debugTransport dumps each request and response at debug level.
//
// Enable with WithDebugLogging(true), KISSANBANDI_DEBUG=true or DEBUG=true.
// Dumps contain bearer tokens and customer data; keep it out of production.
type debugTransport struct {
	base http.RoundTripper
	log  zerolog.Logger
}

func debugMiddleware(log zerolog.Logger) Middleware {
	return func(next http.RoundTripper) http.RoundTripper { return &debugTransport{base: next, log: log} }
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		dt.log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", string(reqDump)).Msg("HTTP request")
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		dt.log.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		dt.log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

// debugLoggingRequested checks if HTTP debug logging should be enabled:
// KISSANBANDI_DEBUG=true for this client, DEBUG=true for everything.
func debugLoggingRequested() bool {
	return os.Getenv("KISSANBANDI_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}

// restyLogger routes resty's own diagnostics through zerolog.
type restyLogger struct{ log zerolog.Logger }

func (l restyLogger) Errorf(format string, v ...interface{}) { l.log.Error().Msgf(format, v...) }
func (l restyLogger) Warnf(format string, v ...interface{})  { l.log.Warn().Msgf(format, v...) }
func (l restyLogger) Debugf(format string, v ...interface{}) { l.log.Debug().Msgf(format, v...) }
