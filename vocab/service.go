package vocab

import (
	"context"
	"errors"

	"github.com/Financial-Times/go-logger/v2"
	tidUtils "github.com/Financial-Times/transactionid-utils-go"
	metrics "github.com/rcrowley/go-metrics"
)

const (
	transportErrorsMetric = "vocab.transport.errors"
	parseErrorsMetric     = "vocab.parse.errors"
)

// Service answers concept queries by combining a vocabulary service call with response extraction.
type Service struct {
	api             ServiceAPI
	scheme          CommodityScheme
	log             *logger.UPPLogger
	transportErrors metrics.Counter
	parseErrors     metrics.Counter
}

// NewService returns a Service listing commodities of scheme through api.
// Failure counters are registered in registry.
func NewService(api ServiceAPI, scheme CommodityScheme, registry metrics.Registry, log *logger.UPPLogger) *Service {
	return &Service{
		api:             api,
		scheme:          scheme,
		log:             log,
		transportErrors: metrics.GetOrRegisterCounter(transportErrorsMetric, registry),
		parseErrors:     metrics.GetOrRegisterCounter(parseErrorsMetric, registry),
	}
}

// LookupScalar retrieves the preferred label and scope note of the concept of repository matching label.
// Failures are reported through the Success flag of the result, with Data holding any body received.
func (s *Service) LookupScalar(ctx context.Context, repository string, label string) ScalarQueryResult {
	lookupLog := s.logEntry(ctx).WithField("repository", repository).WithField("label", label)

	body, err := s.api.Query(ctx, ScalarQuery(repository, label))
	if err != nil {
		s.transportErrors.Inc(1)
		lookupLog.WithError(err).Error("Scalar vocabulary query failed")
		return ScalarQueryResult{Success: false}
	}

	prefLabel, scopeNote, err := ExtractScalarFields(body)
	if err != nil {
		s.parseErrors.Inc(1)
		lookupLog.WithError(err).Error("Scalar vocabulary query returned an unparseable response")
		return ScalarQueryResult{Success: false, Data: body}
	}

	return ScalarQueryResult{
		Success:   true,
		Data:      body,
		ScopeNote: scopeNote,
		Label:     prefLabel,
	}
}

// ListCommodities returns the URN and preferred label of every concept of the commodity scheme.
// Errors are either a *TransportError or a *ParseError.
func (s *Service) ListCommodities(ctx context.Context) ([]Concept, error) {
	listLog := s.logEntry(ctx).WithField("repository", s.scheme.Repository)

	body, err := s.api.Query(ctx, CommodityQuery(s.scheme))
	if err != nil {
		s.transportErrors.Inc(1)
		listLog.WithError(err).Error("Commodity vocabulary query failed")
		var transportErr *TransportError
		if !errors.As(err, &transportErr) {
			err = &TransportError{Op: "query", Err: err}
		}
		return nil, err
	}

	concepts, err := ExtractConcepts(body)
	if err != nil {
		s.parseErrors.Inc(1)
		listLog.WithError(err).Error("Commodity vocabulary query returned an unparseable response")
		return nil, err
	}

	listLog.WithField("count", len(concepts)).Debug("Commodities fetched successfully")
	return concepts, nil
}

func (s *Service) logEntry(ctx context.Context) *logger.LogEntry {
	tid, _ := tidUtils.GetTransactionIDFromContext(ctx)
	return s.log.WithTransactionID(tid)
}
