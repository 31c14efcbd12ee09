package health

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	fthealth "github.com/Financial-Times/go-fthealth/v1_1"
	status "github.com/Financial-Times/service-status-go/httphandlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testVocabEndpoint = "http://vocab.example.com/vocab-service/query"

func TestHappyHealthCheck(t *testing.T) {
	vocabService := new(ServiceMock)
	vocabService.On("GTG").Return(nil)
	vocabService.On("Endpoint").Return(testVocabEndpoint)

	h := NewHealthService("vocabulary-query-api", "Vocabulary Query API", "", vocabService)

	req := httptest.NewRequest("GET", "/__health", nil)
	w := httptest.NewRecorder()
	h.HealthCheckHandleFunc()(w, req)

	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result fthealth.HealthResult
	err := json.NewDecoder(resp.Body).Decode(&result)

	assert.NoError(t, err)
	assert.Len(t, result.Checks, 1)
	assert.True(t, result.Ok)

	c := result.Checks[0]
	assert.True(t, c.Ok)
	assert.Equal(t, "check-vocabulary-service-health", c.ID)
	assert.Equal(t, "Vocabulary service is healthy", c.CheckOutput)
	assert.Equal(t, "Vocabulary service is not available at "+testVocabEndpoint, c.TechnicalSummary)

	vocabService.AssertExpectations(t)
}

func TestUnhappyHealthCheck(t *testing.T) {
	vocabService := new(ServiceMock)
	vocabService.On("GTG").Return(errors.New("computer says no"))
	vocabService.On("Endpoint").Return(testVocabEndpoint)

	h := NewHealthService("", "", "", vocabService)

	req := httptest.NewRequest("GET", "/__health", nil)
	w := httptest.NewRecorder()
	h.HealthCheckHandleFunc()(w, req)

	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result fthealth.HealthResult
	err := json.NewDecoder(resp.Body).Decode(&result)

	assert.NoError(t, err)
	assert.Len(t, result.Checks, 1)
	assert.False(t, result.Ok)

	c := result.Checks[0]
	assert.False(t, c.Ok)
	assert.Equal(t, "computer says no", c.CheckOutput)
	assert.Equal(t, "Vocabulary service is not available at "+testVocabEndpoint, c.TechnicalSummary)

	vocabService.AssertExpectations(t)
}

func TestHappyGTG(t *testing.T) {
	vocabService := new(ServiceMock)
	vocabService.On("GTG").Return(nil)
	vocabService.On("Endpoint").Return(testVocabEndpoint)

	h := NewHealthService("", "", "", vocabService)

	req := httptest.NewRequest("GET", "/__gtg", nil)
	w := httptest.NewRecorder()
	status.NewGoodToGoHandler(h.GTG)(w, req)

	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	vocabService.AssertExpectations(t)
}

func TestUnhappyGTG(t *testing.T) {
	vocabService := new(ServiceMock)
	vocabService.On("GTG").Return(errors.New("I am not good at all"))
	vocabService.On("Endpoint").Return(testVocabEndpoint)

	h := NewHealthService("", "", "", vocabService)

	req := httptest.NewRequest("GET", "/__gtg", nil)
	w := httptest.NewRecorder()
	status.NewGoodToGoHandler(h.GTG)(w, req)

	resp := w.Result()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Equal(t, "I am not good at all", string(body))

	vocabService.AssertExpectations(t)
}

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) GTG() error {
	args := m.Called()
	return args.Error(0)
}

func (m *ServiceMock) Endpoint() string {
	args := m.Called()
	return args.String(0)
}
