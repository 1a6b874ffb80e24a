package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/rag"
	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/types"
)

type options struct {
	server  string
	dir     string
	timeout time.Duration
}

type summary struct {
	Total    int
	Ingested int
	Failed   int
	Chunks   int
}

// run posts every document in opts.dir and reports per-file failures to out
func run(ctx context.Context, opts options, out io.Writer) (summary, error) {
	docs, err := rag.LoadDir(opts.dir)
	if err != nil {
		return summary{}, err
	}
	if len(docs) == 0 {
		return summary{}, fmt.Errorf("no documents found in %s", opts.dir)
	}

	client := &http.Client{Timeout: opts.timeout}
	url := strings.TrimRight(opts.server, "/") + "/documents"

	s := summary{Total: len(docs)}
	for _, doc := range docs {
		res, err := postDocument(ctx, client, url, doc)
		if err != nil {
			s.Failed++
			fmt.Fprintf(out, "FAILED %s: %v\n", doc.ID, err)
			continue
		}

		s.Ingested++
		s.Chunks += res.Chunks
		slog.Info("Successfully ingested file", "file", doc.ID, "chunks", res.Chunks, "indexed", res.Indexed)
	}

	return s, nil
}

func postDocument(ctx context.Context, client *http.Client, url string, doc rag.Document) (types.IngestResponse, error) {
	jsonData, err := json.Marshal(types.IngestRequest{
		Text:     doc.Text,
		ID:       doc.ID,
		Metadata: doc.Metadata,
	})
	if err != nil {
		return types.IngestResponse{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return types.IngestResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return types.IngestResponse{}, fmt.Errorf("failed to post document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr types.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			return types.IngestResponse{}, fmt.Errorf("status %d: %s", resp.StatusCode, apiErr.Message)
		}
		return types.IngestResponse{}, fmt.Errorf("status %d", resp.StatusCode)
	}

	var res types.IngestResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return types.IngestResponse{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return res, nil
}
