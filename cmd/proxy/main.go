// Proxy CORS independiente: reenvía las peticiones del front al API y agrega
// los encabezados CORS que el API no expone. Pensado para desarrollo local y
// despliegues donde el front corre en otro origen.
package main

import (
	"encoding/json"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/rs/cors"

	"github.com/plataforma-app/erp-api/pkg/config"
	"github.com/plataforma-app/erp-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"}).Module("proxy")

	upstream, err := url.Parse(cfg.Proxy.Upstream)
	if err != nil {
		log.Fatal().Err(err).Str("upstream", cfg.Proxy.Upstream).Msg("upstream inválido")
	}

	proxy := httputil.NewSingleHostReverseProxy(upstream)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("upstream inaccesible")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"code":    "PROXY_ERROR",
			"message": "el servicio upstream no respondió",
		})
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Proxy.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	server := &http.Server{
		Addr:         cfg.Proxy.Listen,
		Handler:      c.Handler(proxy),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info().
		Str("listen", cfg.Proxy.Listen).
		Str("upstream", cfg.Proxy.Upstream).
		Msg("proxy CORS escuchando")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("proxy finalizado")
	}
}
