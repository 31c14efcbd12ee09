package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Financial-Times/go-logger/v2"
	tidutils "github.com/Financial-Times/transactionid-utils-go"
	"github.com/Financial-Times/vocabulary-query-api/vocab"
	"github.com/gorilla/mux"
)

const (
	repositoryParameter = "repository"
	labelParameter      = "label"
)

// VocabularyService answers concept queries against the vocabulary service.
type VocabularyService interface {
	LookupScalar(ctx context.Context, repository string, label string) vocab.ScalarQueryResult
	ListCommodities(ctx context.Context) ([]vocab.Concept, error)
}

// Handler provides endpoints for single concept lookups and commodity listing.
type Handler struct {
	service VocabularyService
	timeout time.Duration
	log     *logger.UPPLogger
}

// New initializes Handler.
func New(service VocabularyService, httpTimeout time.Duration, log *logger.UPPLogger) *Handler {
	return &Handler{
		service: service,
		timeout: httpTimeout,
		log:     log,
	}
}

// RegisterEndpoints adds the vocabulary query endpoints to r.
func (h *Handler) RegisterEndpoints(r *mux.Router) {
	r.HandleFunc("/getScalar.do", h.GetScalar).Methods(http.MethodGet)
	r.HandleFunc("/getCommodities.do", h.GetCommodities).Methods(http.MethodGet)
}

// GetScalar looks up the preferred label and scope note of a single concept.
// Failures of the vocabulary service are reported in the response envelope with a 200 status.
func (h *Handler) GetScalar(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Content-Type", "application/json")

	ctx, cancel := h.requestContext(r)
	defer cancel()

	tID, _ := tidutils.GetTransactionIDFromContext(ctx)
	query := r.URL.Query()
	repository := query.Get(repositoryParameter)
	label := query.Get(labelParameter)
	scalarLog := h.log.WithTransactionID(tID).WithField("repository", repository).WithField("label", label)

	if !query.Has(repositoryParameter) || !query.Has(labelParameter) {
		scalarLog.Info("Scalar query without repository or label")
		writeMessage(w, "Both repository and label query parameters are required", http.StatusBadRequest, h.log)
		return
	}

	result := h.service.LookupScalar(ctx, repository, label)
	if err := json.NewEncoder(w).Encode(&result); err != nil {
		scalarLog.WithError(err).Error("Failed to encode scalar query response")
	}
}

// GetCommodities lists the URN and preferred label of every commodity concept.
func (h *Handler) GetCommodities(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Content-Type", "application/json")

	ctx, cancel := h.requestContext(r)
	defer cancel()

	tID, _ := tidutils.GetTransactionIDFromContext(ctx)
	listLog := h.log.WithTransactionID(tID)

	concepts, err := h.service.ListCommodities(ctx)
	if err != nil {
		handleErrors(err, listLog, w, h.log)
		return
	}

	if err = json.NewEncoder(w).Encode(concepts); err != nil {
		listLog.WithError(err).Error("Failed to encode commodities response")
	}
}

func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	tID := tidutils.GetTransactionIDFromRequest(r)
	return context.WithTimeout(tidutils.TransactionAwareContext(r.Context(), tID), h.timeout)
}

func handleErrors(err error, listLog *logger.LogEntry, w http.ResponseWriter, log *logger.UPPLogger) {
	var transportErr *vocab.TransportError
	var parseErr *vocab.ParseError

	switch {
	case errors.As(err, &transportErr) && transportErr.Timeout():
		listLog.WithError(err).Error("Timeout while listing commodities.")
		writeFailure(w, "Timeout while reading from the vocabulary service", http.StatusGatewayTimeout, log)
	case errors.As(err, &transportErr):
		writeFailure(w, "Vocabulary service unavailable", http.StatusServiceUnavailable, log)
	case errors.As(err, &parseErr):
		writeFailure(w, "Vocabulary service returned an invalid response", http.StatusBadGateway, log)
	default:
		writeFailure(w, fmt.Sprintf("Failed to list commodities: %v", err), http.StatusInternalServerError, log)
	}
}

func writeFailure(w http.ResponseWriter, msg string, status int, log *logger.UPPLogger) {
	writeJSON(w, map[string]interface{}{"success": false, "message": msg}, status, log)
}

func writeMessage(w http.ResponseWriter, msg string, status int, log *logger.UPPLogger) {
	writeJSON(w, map[string]interface{}{"message": msg}, status, log)
}

func writeJSON(w http.ResponseWriter, message map[string]interface{}, status int, log *logger.UPPLogger) {
	w.WriteHeader(status)

	j, err := json.Marshal(&message)
	if err != nil {
		log.WithError(err).Error("Failed to parse provided message to json, this is a bug.")
		return
	}

	_, err = w.Write(j)
	if err != nil {
		log.WithError(err).Error("Failed to write response message.")
	}
}
