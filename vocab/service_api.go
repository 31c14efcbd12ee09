package vocab

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/Financial-Times/go-logger/v2"
	tidUtils "github.com/Financial-Times/transactionid-utils-go"
	"github.com/pkg/errors"
)

const acceptHeader = "application/rdf+xml, application/xml;q=0.9, text/xml;q=0.8"

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ServiceAPI performs queries against the remote vocabulary service.
type ServiceAPI interface {
	Query(ctx context.Context, q Query) (string, error)
	Endpoint() string
	GTG() error
}

type vocabServiceAPI struct {
	endpoint   string
	username   string
	password   string
	gtgQuery   Query
	httpClient httpClient
	log        *logger.UPPLogger
}

// NewServiceAPI returns a ServiceAPI calling endpoint with client.
// Basic auth is sent only when username is not empty.
// The good-to-go check queries every label of gtgRepository.
func NewServiceAPI(client httpClient, endpoint string, username string, password string, gtgRepository string, log *logger.UPPLogger) ServiceAPI {
	return &vocabServiceAPI{
		endpoint:   endpoint,
		username:   username,
		password:   password,
		gtgQuery:   ScalarQuery(gtgRepository, "*"),
		httpClient: client,
		log:        log,
	}
}

// Query sends q to the vocabulary service and returns the response body.
// Every failure is returned as a *TransportError.
func (api *vocabServiceAPI) Query(ctx context.Context, q Query) (string, error) {
	tid, err := tidUtils.GetTransactionIDFromContext(ctx)
	if err != nil {
		tid = tidUtils.NewTransactionID()
		api.log.WithTransactionID(tid).
			WithError(err).
			Info("No Transaction ID provided for vocabulary service request, so a new one has been generated.")
		ctx = tidUtils.TransactionAwareContext(ctx, tid)
	}
	queryLog := api.log.WithTransactionID(tid).WithField("query", q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, api.endpoint, nil)
	if err != nil {
		queryLog.WithError(err).Error("Error in creating the HTTP request to the vocabulary service")
		return "", &TransportError{Op: "build request", Err: err}
	}
	if req.URL.RawQuery != "" {
		req.URL.RawQuery += "&" + q.Encode()
	} else {
		req.URL.RawQuery = q.Encode()
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set(tidUtils.TransactionIDHeader, tid)
	if api.username != "" {
		req.SetBasicAuth(api.username, api.password)
	}

	resp, err := api.httpClient.Do(req)
	if err != nil {
		queryLog.WithError(err).Error("Error making the HTTP request to the vocabulary service")
		return "", &TransportError{Op: http.MethodGet, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		err = fmt.Errorf("%s: %w", string(body), ErrUnexpectedResponse)
		queryLog.WithError(err).WithField("status", resp.StatusCode).Error("Error received from the vocabulary service")
		return "", &TransportError{Op: http.MethodGet, StatusCode: resp.StatusCode, Err: err}
	}
	if err != nil {
		queryLog.WithError(err).Error("Error in reading the HTTP response from the vocabulary service")
		return "", &TransportError{Op: "read body", StatusCode: resp.StatusCode, Err: errors.Wrap(err, "failed to read vocabulary service response body")}
	}

	queryLog.Debug("Vocabulary service responded successfully")
	return string(body), nil
}

func (api *vocabServiceAPI) Endpoint() string {
	return api.endpoint
}

func (api *vocabServiceAPI) GTG() error {
	tid := tidUtils.NewTransactionID()
	ctx := tidUtils.TransactionAwareContext(context.Background(), tid)
	_, err := api.Query(ctx, api.gtgQuery)
	if err != nil {
		api.log.WithTransactionID(tid).WithError(err).Error("Vocabulary service is not good-to-go")
	}
	return err
}
