package health

import (
	"fmt"
	"net/http"

	fthealth "github.com/Financial-Times/go-fthealth/v1_1"
	"github.com/Financial-Times/service-status-go/gtg"
)

type service interface {
	Endpoint() string
	GTG() error
}

type HealthService struct {
	fthealth.HealthCheck
	vocabService service
}

func NewHealthService(appSystemCode string, appName string, appDescription string, vocabService service) *HealthService {
	hcService := &HealthService{
		vocabService: vocabService,
	}
	hcService.SystemCode = appSystemCode
	hcService.Name = appName
	hcService.Description = appDescription
	hcService.Checks = []fthealth.Check{
		hcService.vocabServiceCheck(),
	}
	return hcService
}

func (service *HealthService) HealthCheckHandleFunc() func(w http.ResponseWriter, r *http.Request) {
	return fthealth.Handler(service)
}

func (service *HealthService) vocabServiceCheck() fthealth.Check {
	return fthealth.Check{
		ID:               "check-vocabulary-service-health",
		BusinessImpact:   "Impossible to serve commodity and concept lookups to clients",
		Name:             "Check Vocabulary Service Health",
		PanicGuide:       "https://runbooks.in.ft.com/vocabulary-query-api",
		Severity:         1,
		TechnicalSummary: fmt.Sprintf("Vocabulary service is not available at %v", service.vocabService.Endpoint()),
		Checker:          service.vocabServiceChecker,
	}
}

func (service *HealthService) vocabServiceChecker() (string, error) {
	if err := service.vocabService.GTG(); err != nil {
		return "", err
	}
	return "Vocabulary service is healthy", nil
}

func (service *HealthService) GTG() gtg.Status {
	for _, check := range service.Checks {
		if _, err := check.Checker(); err != nil {
			return gtg.Status{GoodToGo: false, Message: err.Error()}
		}
	}
	return gtg.Status{GoodToGo: true}
}
