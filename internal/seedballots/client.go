package seedballots

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/itm-analitica/concurso/pkg/logger"
)

// httpClient wraps http.Client with a per-request timeout.
type httpClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *httpClient {
	return &httpClient{client: &http.Client{Timeout: timeout}}
}

func (c *httpClient) getJSON(ctx context.Context, url string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get %s: status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s: %w", url, err)
	}
	return json.Unmarshal(body, v)
}

func (c *httpClient) postJSON(ctx context.Context, url string, body interface{}) (int, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(data))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("post %s: %w", url, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

// submitBallots pushes the generated ballots through a small worker pool.
func submitBallots(ctx context.Context, cfg *Config, ballots []ballot, stats *Stats) error {
	client := newHTTPClient(cfg.Timeout)
	url := cfg.BaseURL + "/ballots"

	jobs := make(chan ballot, cfg.Workers*2)
	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for b := range jobs {
				if ctx.Err() != nil {
					return
				}
				status, err := client.postJSON(ctx, url, b)
				switch {
				case err != nil:
					atomic.AddInt64(&stats.Failed, 1)
					if cfg.Verbose {
						logger.Get().Debug(ctx, "submission failed", logger.Error(err))
					}
				case status == http.StatusCreated:
					atomic.AddInt64(&stats.Accepted, 1)
				default:
					atomic.AddInt64(&stats.Rejected, 1)
					if cfg.Verbose {
						logger.Get().Debug(ctx, "ballot rejected",
							logger.Int("status", status),
							logger.String("team", b.TeamID),
						)
					}
				}
			}
		}()
	}

	for _, b := range ballots {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return ctx.Err()
		case jobs <- b:
		}
	}
	close(jobs)
	wg.Wait()

	logger.Get().Info(ctx, "submission finished",
		logger.Int("accepted", int(stats.Accepted)),
		logger.Int("rejected", int(stats.Rejected)),
		logger.Int("failed", int(stats.Failed)),
	)
	return nil
}
