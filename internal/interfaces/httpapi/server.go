package httpapi

import (
	"net/http"

	"github.com/riskibarqy/racha-league/internal/platform/logging"
)

// RouterConfig carries the optional pieces of the router. A nil Metrics
// handler leaves GET /metrics unregistered.
type RouterConfig struct {
	Logger             *logging.Logger
	Observer           HTTPObserver
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
	InternalJobToken   string
}

func NewRouter(handler *Handler, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("http")

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.MetricsHandler)
	registerRankingRoutes(mux, handler)
	registerMatchRoutes(mux, handler, cfg.InternalJobToken)
	registerInternalJobRoutes(mux, handler, cfg.InternalJobToken)

	return RequestTracing(
		RequestLogging(logger,
			RequestMetrics(cfg.Observer, mux,
				CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux)))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
