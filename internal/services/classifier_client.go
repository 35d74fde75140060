package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mindscribe/mindscribe-backend/internal/logger"
)

// ClassifierClient is the boundary to the external text-classification
// model. Classify returns one score per label in the model's vocabulary,
// each in [0.0, 1.0].
type ClassifierClient interface {
	Classify(ctx context.Context, text string) ([]LabelScore, error)
}

type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type classifierClient struct {
	log        *logger.Logger
	baseURL    string
	model      string
	httpClient *http.Client

	maxRetries int
}

func NewClassifierClient(log *logger.Logger) (ClassifierClient, error) {
	baseURL := os.Getenv("CLASSIFIER_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}

	model := os.Getenv("CLASSIFIER_MODEL")
	if model == "" {
		model = "j-hartmann/emotion-english-distilroberta-base"
	}

	timeoutSec := 30
	if v := os.Getenv("CLASSIFIER_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	maxRetries := 2
	if v := os.Getenv("CLASSIFIER_MAX_RETRIES"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed >= 0 {
			maxRetries = parsed
		}
	}

	return &classifierClient{
		log:        log.With("service", "ClassifierClient"),
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
		maxRetries: maxRetries,
	}, nil
}

type classifierHTTPError struct {
	StatusCode int
	Body       string
}

func (e *classifierHTTPError) Error() string {
	return fmt.Sprintf("classifier http %d: %s", e.StatusCode, e.Body)
}

func isRetryableHTTP(code int) bool {
	if code == 408 || code == 429 {
		return true
	}
	if code >= 500 && code <= 599 {
		return true
	}
	return false
}

func isRetryableErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return true
		}
	}
	var httpErr *classifierHTTPError
	if errors.As(err, &httpErr) {
		return isRetryableHTTP(httpErr.StatusCode)
	}
	return false
}

type classifyRequest struct {
	Inputs string `json:"inputs"`
	Model  string `json:"model,omitempty"`
}

func (cc *classifierClient) Classify(ctx context.Context, text string) ([]LabelScore, error) {
	payload, err := json.Marshal(classifyRequest{Inputs: text, Model: cc.model})
	if err != nil {
		return nil, fmt.Errorf("marshal classify request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= cc.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * 500 * time.Millisecond
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			cc.log.Debug("Retrying classifier call", "attempt", attempt)
		}
		scores, callErr := cc.doClassify(ctx, payload)
		if callErr == nil {
			return scores, nil
		}
		lastErr = callErr
		if !isRetryableErr(callErr) {
			break
		}
	}
	return nil, lastErr
}

func (cc *classifierClient) doClassify(ctx context.Context, payload []byte) ([]LabelScore, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cc.baseURL+"/classify", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build classify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := cc.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read classify response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &classifierHTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	// The inference server returns one score list per input text.
	var results [][]LabelScore
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode classify response: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("classifier returned no results")
	}
	return results[0], nil
}
