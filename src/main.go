package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/google/uuid"

	"crosswarped.com/segdecode"
	"crosswarped.com/segdecode/internal/source"
)

const (
	maxLines   = 10000
	minTimeout = 1 * time.Second
)

type DecodeRequest struct {
	Lines   []string `json:"lines"`
	Policy  string   `json:"policy"`
	Verify  bool     `json:"verify"`
	Workers int      `json:"workers"`
	// BigQueryProject and BigQueryTable load lines from BigQuery instead of Lines.
	BigQueryProject string `json:"bigQueryProject"`
	BigQueryTable   string `json:"bigQueryTable"`
}

type LineResponse struct {
	Line    int      `json:"line"`
	Value   int      `json:"value"`
	Skipped []string `json:"skipped,omitempty"`
	Error   string   `json:"error,omitempty"`
}

type DecodeResponse struct {
	Success     bool           `json:"success"`
	RequestID   string         `json:"requestId"`
	Total       int            `json:"total"`
	UniqueCount int            `json:"uniqueCount"`
	Failed      int            `json:"failed"`
	Results     []LineResponse `json:"results,omitempty"`
	Error       string         `json:"error,omitempty"`
}

func execute(ctx context.Context, req DecodeRequest) (segdecode.Report, error) {
	policy, err := segdecode.ParsePolicy(req.Policy)
	if err != nil {
		return segdecode.Report{}, err
	}
	if req.Workers < 0 || req.Workers > 16 {
		return segdecode.Report{}, fmt.Errorf("workers must be between 0 and 16")
	}

	lines := segdecode.LinesOf(req.Lines)
	if req.BigQueryTable != "" {
		bq, err := source.FromBigQuery(ctx, source.BigQueryParams{
			Project: req.BigQueryProject,
			Table:   req.BigQueryTable,
			Limit:   maxLines,
		})
		if err != nil {
			return segdecode.Report{}, fmt.Errorf("FromBigQuery: %w", err)
		}
		fmt.Printf("Loaded %d lines from %s\n", len(bq), req.BigQueryTable)
		lines = append(lines, bq...)
	}

	if len(lines) == 0 {
		return segdecode.Report{}, fmt.Errorf("lines must not be empty")
	}
	if len(lines) > maxLines {
		return segdecode.Report{}, fmt.Errorf("at most %d lines per request", maxLines)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout(ctx))
	defer cancel()

	rep := segdecode.SolveAll(ctx, lines, segdecode.Options{
		Policy:  policy,
		Workers: req.Workers,
		Verify:  req.Verify,
	})
	return rep, ctx.Err()
}

// requestTimeout leaves a margin before the request deadline to write the
// response, but never drops below minTimeout.
func requestTimeout(ctx context.Context) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return 1 * time.Minute
	}
	timeout := max(time.Until(deadline)-5*time.Second, minTimeout)
	fmt.Printf("Setting timeout to %v\n", timeout)
	return timeout
}

func toResponse(id string, rep segdecode.Report) DecodeResponse {
	resp := DecodeResponse{
		Success:     true,
		RequestID:   id,
		Total:       rep.Total,
		UniqueCount: rep.UniqueCount,
		Failed:      rep.Failed,
		Results:     make([]LineResponse, 0, len(rep.Results)),
	}
	for _, r := range rep.Results {
		lr := LineResponse{Line: r.Line.Number, Value: r.Value, Skipped: r.Skipped}
		if r.Err != nil {
			lr.Value = 0
			lr.Error = r.Err.Error()
		}
		resp.Results = append(resp.Results, lr)
	}
	return resp
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func decode(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	id := uuid.New().String()

	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		json.NewEncoder(w).Encode(DecodeResponse{
			RequestID: id,
			Error:     fmt.Sprintf("Method %s not allowed", r.Method),
		})
		return
	}

	var req DecodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fmt.Printf("[%s] Error parsing JSON body: %v\n", id, err)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(DecodeResponse{
			RequestID: id,
			Error:     fmt.Sprintf("Invalid JSON: %v", err),
		})
		return
	}

	rep, err := execute(r.Context(), req)
	if err != nil {
		fmt.Printf("[%s] Error: %v\n", id, err)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(DecodeResponse{RequestID: id, Error: err.Error()})
		return
	}
	fmt.Printf("[%s] Decoded %d lines, %d failed\n", id, len(rep.Results), rep.Failed)

	if err := json.NewEncoder(w).Encode(toResponse(id, rep)); err != nil {
		fmt.Printf("[%s] Error marshaling response: %v\n", id, err)
	}
}

func main() {
	funcframework.RegisterHTTPFunction("/decode", decode)

	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	hostname := ""
	if localOnly := os.Getenv("LOCAL_ONLY"); localOnly == "true" {
		hostname = "127.0.0.1"
	}
	if err := funcframework.StartHostPort(hostname, port); err != nil {
		log.Fatalf("funcframework.StartHostPort: %v\n", err)
	}
}
