package handler

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"staybook/config"
	"staybook/di"
	"staybook/shared/logger"
	httpTransport "staybook/transport/http"
)

var (
	server  *httpTransport.HTTP
	initErr error
	once    sync.Once
)

// Handler is the serverless entrypoint. The service graph is built on the
// first request and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)

		logger.SetLogLevel(cfg)

		server, initErr = di.InitializeService()
	})

	if initErr != nil {
		log.Error().Err(initErr).Msg("Failed to initialize service")
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)

		return
	}

	server.ServeHTTP(w, r)
}
