package main

import (
	"net/http"
	"os"
	"time"

	api "github.com/Financial-Times/api-endpoint"
	"github.com/Financial-Times/go-ft-http/fthttp"
	"github.com/Financial-Times/go-logger/v2"
	"github.com/Financial-Times/http-handlers-go/v2/httphandlers"
	status "github.com/Financial-Times/service-status-go/httphandlers"
	"github.com/Financial-Times/vocabulary-query-api/basicauth"
	"github.com/Financial-Times/vocabulary-query-api/handler"
	"github.com/Financial-Times/vocabulary-query-api/health"
	"github.com/Financial-Times/vocabulary-query-api/vocab"
	"github.com/gorilla/mux"
	cli "github.com/jawher/mow.cli"
	metrics "github.com/rcrowley/go-metrics"
	"github.com/sethgrid/pester"
)

const appDescription = "Vocabulary Query API: concept lookups and commodity listing from an RDF/SKOS vocabulary service"

func main() {
	app := cli.App("vocabulary-query-api", appDescription)

	appSystemCode := app.String(cli.StringOpt{
		Name:   "app-system-code",
		Value:  "vocabulary-query-api",
		Desc:   "System Code of the application",
		EnvVar: "APP_SYSTEM_CODE",
	})
	appName := app.String(cli.StringOpt{
		Name:   "app-name",
		Value:  "vocabulary-query-api",
		Desc:   "Application name",
		EnvVar: "APP_NAME",
	})
	port := app.String(cli.StringOpt{
		Name:   "port",
		Value:  "8080",
		Desc:   "Port to listen on",
		EnvVar: "APP_PORT",
	})
	vocabServiceURL := app.String(cli.StringOpt{
		Name:   "vocab-service-url",
		Value:  "http://localhost:8081/vocab-service/query",
		Desc:   "Query endpoint of the RDF/SKOS vocabulary service",
		EnvVar: "VOCAB_SERVICE_URL",
	})
	vocabServiceCredentials := app.String(cli.StringOpt{
		Name:   "vocab-service-credentials",
		Value:  "",
		Desc:   "Optional basic auth credentials for the vocabulary service, in the username:password format",
		EnvVar: "VOCAB_SERVICE_CREDENTIALS",
	})
	commodityRepository := app.String(cli.StringOpt{
		Name:   "commodity-repository",
		Value:  vocab.DefaultCommodityScheme.Repository,
		Desc:   "Vocabulary repository holding the commodity concepts",
		EnvVar: "COMMODITY_REPOSITORY",
	})
	commoditySchemeProperty := app.String(cli.StringOpt{
		Name:   "commodity-scheme-property",
		Value:  vocab.DefaultCommodityScheme.Property,
		Desc:   "Property used to filter commodity concepts by scheme",
		EnvVar: "COMMODITY_SCHEME_PROPERTY",
	})
	commoditySchemeValue := app.String(cli.StringOpt{
		Name:   "commodity-scheme-value",
		Value:  vocab.DefaultCommodityScheme.Value,
		Desc:   "URN of the commodity classification scheme",
		EnvVar: "COMMODITY_SCHEME_VALUE",
	})
	apiYml := app.String(cli.StringOpt{
		Name:   "api-yml",
		Value:  "./_ft/api.yml",
		Desc:   "Location of the API Swagger YML file.",
		EnvVar: "API_YML",
	})
	httpTimeoutDuration := app.String(cli.StringOpt{
		Name:   "http-timeout",
		Value:  "8s",
		Desc:   "Duration to wait before timing out a request",
		EnvVar: "HTTP_TIMEOUT",
	})
	httpMaxRetries := app.Int(cli.IntOpt{
		Name:   "http-max-retries",
		Value:  3,
		Desc:   "Maximum number of attempts for a vocabulary service request",
		EnvVar: "HTTP_MAX_RETRIES",
	})
	logLevel := app.String(cli.StringOpt{
		Name:   "log-level",
		Value:  "INFO",
		Desc:   "Log level",
		EnvVar: "LOG_LEVEL",
	})

	log := logger.NewUPPLogger(*appSystemCode, "INFO")
	log.Infof("[Startup] %v is starting", *appSystemCode)

	app.Action = func() {
		// Setting the real log level here in order to have the startup log
		log = logger.NewUPPLogger(*appSystemCode, *logLevel)
		log.Infof("System code: %s, App Name: %s, Port: %s", *appSystemCode, *appName, *port)

		httpTimeout, err := time.ParseDuration(*httpTimeoutDuration)
		if err != nil {
			log.WithError(err).Fatal("Please provide a valid timeout duration")
		}

		var username, password string
		if *vocabServiceCredentials != "" {
			credentials, err := basicauth.GetBasicAuth(*vocabServiceCredentials)
			if err != nil {
				log.WithError(err).Fatal("Failed to parse the vocabulary service credentials")
			}
			username, password = credentials[0], credentials[1]
		}

		client := getResilientClient(*appSystemCode, httpTimeout, *httpMaxRetries)
		scheme := vocab.CommodityScheme{
			Repository: *commodityRepository,
			Property:   *commoditySchemeProperty,
			Value:      *commoditySchemeValue,
		}

		vocabAPI := vocab.NewServiceAPI(client, *vocabServiceURL, username, password, scheme.Repository, log)
		vocabService := vocab.NewService(vocabAPI, scheme, metrics.DefaultRegistry, log)
		vocabHandler := handler.New(vocabService, httpTimeout, log)
		healthService := health.NewHealthService(*appSystemCode, *appName, appDescription, vocabAPI)

		serveEndpoints(*port, apiYml, vocabHandler, healthService, log)
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Errorf("App could not start, error=[%s]\n", err)
		return
	}
}

func getResilientClient(systemCode string, timeout time.Duration, maxRetries int) *pester.Client {
	c := fthttp.NewClientWithDefaultTimeout("UPP", systemCode)
	c.Timeout = timeout

	client := pester.NewExtendedClient(c)
	client.Backoff = pester.ExponentialBackoff
	client.MaxRetries = maxRetries
	client.Concurrency = 1

	return client
}

func serveEndpoints(port string, apiYml *string, h *handler.Handler, healthService *health.HealthService, log *logger.UPPLogger) {
	r := mux.NewRouter()
	h.RegisterEndpoints(r)

	if apiYml != nil {
		apiEndpoint, err := api.NewAPIEndpointForFile(*apiYml)
		if err != nil {
			log.WithError(err).WithField("file", *apiYml).Warn("Failed to serve the API Endpoint for this service. Please validate the Swagger YML and the file location")
		} else {
			r.HandleFunc(api.DefaultPath, apiEndpoint.ServeHTTP).Methods(http.MethodGet)
		}
	}

	var monitoringRouter http.Handler = r
	monitoringRouter = httphandlers.TransactionAwareRequestLoggingHandler(log, monitoringRouter)
	monitoringRouter = httphandlers.HTTPMetricsHandler(metrics.DefaultRegistry, monitoringRouter)

	http.HandleFunc("/__health", healthService.HealthCheckHandleFunc())
	http.HandleFunc(status.GTGPath, status.NewGoodToGoHandler(healthService.GTG))
	http.HandleFunc(status.BuildInfoPath, status.BuildInfoHandler)

	http.Handle("/", monitoringRouter)

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatalf("Unable to start: %v", err)
	}
}
