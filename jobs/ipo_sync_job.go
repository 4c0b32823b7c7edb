package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bluestock/ipo-platform/models"
	"github.com/bluestock/ipo-platform/services"
	"github.com/bluestock/ipo-platform/shared"
	"github.com/sirupsen/logrus"
)

// IPOSyncJob pulls the external IPO feed and upserts each row keyed on its
// source id. Runs are serialized by the ticker loop; a failed run leaves the
// table as the previous run left it for rows not yet reached.
type IPOSyncJob struct {
	Service   *services.IPOService
	SourceURL string
	Metrics   *shared.SyncMetrics

	client      *http.Client
	maxAttempts int
}

func NewIPOSyncJob(service *services.IPOService, sourceURL string) *IPOSyncJob {
	cfg := shared.DefaultSyncClientConfig()
	factory := shared.NewHTTPClientFactory(cfg.RequestTimeout)
	return &IPOSyncJob{
		Service:     service,
		SourceURL:   sourceURL,
		Metrics:     shared.NewSyncMetrics(),
		client:      factory.CreateClient(cfg.RequestTimeout),
		maxAttempts: cfg.MaxRetryAttempts,
	}
}

// Run executes one sync pass. A payload that is not a JSON array aborts
// before any write. A row that fails to upsert aborts the rest of the batch.
func (j *IPOSyncJob) Run(ctx context.Context) error {
	start := time.Now()

	payload, err := j.fetch(ctx)
	if err != nil {
		j.Metrics.RecordRun(0, err)
		logrus.WithError(err).Error("IPO sync fetch failed")
		return err
	}

	var items []models.SyncIPO
	if err := json.Unmarshal(payload, &items); err != nil {
		err = fmt.Errorf("unexpected payload shape: %w", err)
		j.Metrics.RecordRun(0, err)
		logrus.WithError(err).Error("IPO sync aborted, no rows written")
		return err
	}

	upserted := 0
	for _, item := range items {
		if err := j.Service.UpsertSyncedIPO(ctx, item); err != nil {
			j.Metrics.RecordRun(upserted, err)
			logrus.WithFields(logrus.Fields{
				"api_source_id": item.ID,
				"rows_upserted": upserted,
			}).WithError(err).Error("IPO sync aborted mid-batch")
			return err
		}
		upserted++
	}

	j.Metrics.RecordRun(upserted, nil)
	logrus.WithFields(logrus.Fields{
		"rows_upserted": upserted,
		"duration":      time.Since(start).String(),
	}).Info("IPO sync completed")
	return nil
}

func (j *IPOSyncJob) fetch(ctx context.Context) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= j.maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, j.SourceURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := j.client.Do(req)
		if err != nil {
			lastErr = err
		} else {
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				lastErr = readErr
			} else if resp.StatusCode != http.StatusOK {
				lastErr = fmt.Errorf("sync source returned status %d", resp.StatusCode)
			} else {
				return body, nil
			}
		}

		logrus.WithFields(logrus.Fields{
			"attempt": attempt,
			"url":     j.SourceURL,
		}).WithError(lastErr).Warn("IPO sync fetch attempt failed")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}
	return nil, lastErr
}

// Start runs the job immediately and then on every tick until the context is
// cancelled. Intended to be launched as a goroutine from main.
func (j *IPOSyncJob) Start(ctx context.Context, interval time.Duration) {
	logrus.WithFields(logrus.Fields{
		"interval": interval.String(),
		"url":      j.SourceURL,
	}).Info("starting IPO sync job")

	j.Run(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			j.Metrics.LogSummary()
			return
		case <-ticker.C:
			j.Run(ctx)
		}
	}
}
