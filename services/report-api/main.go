package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/helpdesk-tools/survey-report/pkg/apihelpers"
	mw "github.com/helpdesk-tools/survey-report/pkg/apihelpers/middlewares"
	"github.com/helpdesk-tools/survey-report/pkg/oauth"
	"github.com/helpdesk-tools/survey-report/pkg/surveyapi"
	"github.com/helpdesk-tools/survey-report/pkg/tokenstore"
	"github.com/helpdesk-tools/survey-report/services/report-api/apihandlers"
)

func main() {
	allowedNetworks, err := mw.ParseNetworks(conf.AllowedNetworks)
	if err != nil {
		slog.Error("Invalid allowed networks", slog.String("error", err.Error()))
		return
	}

	oauthClient, err := oauth.NewClient(conf.OAuth)
	if err != nil {
		slog.Error("Error creating OAuth client", slog.String("error", err.Error()))
		return
	}

	// Start webserver
	router := gin.Default()
	if err := router.SetTrustedProxies(conf.GinConfig.TrustedProxies); err != nil {
		slog.Error("Invalid trusted proxies", slog.String("error", err.Error()))
		return
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     conf.GinConfig.AllowOrigins,
		AllowMethods:     []string{"GET"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", mw.HeaderAPIKey, mw.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Type", "Content-Length", "Content-Disposition", mw.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(mw.RequestID())

	// Add handlers
	router.GET("/", apihandlers.HealthCheckHandle)
	v1Root := router.Group("/v1")
	v1Root.Use(mw.AllowedClients(allowedNetworks, conf.APIKeys))

	surveyAPIConf := conf.SurveyAPI
	v1APIHandlers := apihandlers.NewHTTPHandler(
		tokenstore.NewFileStore(conf.TokenFile),
		func(token string) apihandlers.SurveyClient {
			return surveyapi.NewClient(surveyAPIConf, token)
		},
		oauthClient,
		conf.SurveyTitle,
		conf.Report,
		conf.DefaultNumDays,
	)
	v1APIHandlers.AddResponsesAPI(v1Root)
	v1APIHandlers.AddOAuthAPI(v1Root)

	if conf.GinConfig.DebugMode {
		if err := apihelpers.WriteRoutesToFile(router, "report-api-routes.txt"); err != nil {
			slog.Error("Error writing routes", slog.String("error", err.Error()))
		}
	}

	// Start the server
	slog.Info("Starting Report API", slog.String("port", conf.GinConfig.Port))
	if !conf.GinConfig.MTLS.Use {
		err := router.Run(":" + conf.GinConfig.Port)
		if err != nil {
			slog.Error("Exited Report API", slog.String("error", err.Error()))
			return
		}
	} else {
		// Create tls config for mutual TLS
		tlsConfig, err := apihelpers.LoadTLSConfig(conf.GinConfig.MTLS.CertificatePaths)
		if err != nil {
			slog.Error("Error loading TLS config.", slog.String("error", err.Error()))
			return
		}

		server := &http.Server{
			Addr:      ":" + conf.GinConfig.Port,
			Handler:   router,
			TLSConfig: tlsConfig,
		}

		err = server.ListenAndServeTLS(conf.GinConfig.MTLS.CertificatePaths.ServerCertPath, conf.GinConfig.MTLS.CertificatePaths.ServerKeyPath)
		if err != nil {
			slog.Error("Exited Report API", slog.String("error", err.Error()))
			return
		}
	}
}
