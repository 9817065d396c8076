// Package meeting provisions external meeting resources for scheduled
// sessions. Provisioning is deliberately outside the booking transaction: a
// slow or down provider can never abort a paid booking. Failures are
// absorbed into session state (created flag + attempt counter) and retried
// by a bounded startup sweep.
package meeting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/arjunmehta12/mockmate/internal/metrics"
	"github.com/arjunmehta12/mockmate/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// MaxAttempts bounds retries by count, not wall-clock deadline.
	MaxAttempts = 5

	sweepLimit      = 25
	durationMinutes = 30
	secretHeader    = "X-Meeting-Secret"
)

type Provisioner struct {
	baseURL    string
	apiSecret  string
	httpClient *http.Client
	repo       *repository.Repository
	log        *zap.Logger
}

func NewProvisioner(baseURL, apiSecret string, timeout time.Duration, repo *repository.Repository, log *zap.Logger) *Provisioner {
	return &Provisioner{
		baseURL:   baseURL,
		apiSecret: apiSecret,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		repo: repo,
		log:  log,
	}
}

type createMeetingRequest struct {
	MeetingID       string    `json:"meetingId"`
	ScheduledAt     time.Time `json:"scheduledAt"`
	DurationMinutes int       `json:"durationMinutes"`
}

// callProvider performs one meeting-creation attempt. 2xx is success; 409
// means the meeting already exists from an earlier attempt, which is success
// too. Everything else, timeouts included, is a countable failure.
func (p *Provisioner) callProvider(ctx context.Context, meetingID uuid.UUID, scheduledAt time.Time) error {
	body, err := json.Marshal(createMeetingRequest{
		MeetingID:       meetingID.String(),
		ScheduledAt:     scheduledAt.UTC(),
		DurationMinutes: durationMinutes,
	})
	if err != nil {
		return fmt.Errorf("marshal meeting request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/internal/meetings", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build meeting request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(secretHeader, p.apiSecret)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call meeting provider: %w", err)
	}
	defer resp.Body.Close()

	if (resp.StatusCode >= 200 && resp.StatusCode < 300) || resp.StatusCode == http.StatusConflict {
		return nil
	}
	return fmt.Errorf("meeting provider returned %d", resp.StatusCode)
}

// Provision attempts meeting creation for one session and records the
// outcome on the session row. The returned error is informational; booking
// callers never see it.
func (p *Provisioner) Provision(ctx context.Context, sessionID, meetingID uuid.UUID, scheduledAt time.Time) error {
	if err := p.callProvider(ctx, meetingID, scheduledAt); err != nil {
		metrics.MeetingProvisionAttempts.WithLabelValues("failure").Inc()
		if dbErr := p.repo.IncrementMeetingAttempts(ctx, sessionID); dbErr != nil {
			p.log.Sugar().Errorw("record provisioning attempt", "session_id", sessionID, "err", dbErr)
		}
		return err
	}
	metrics.MeetingProvisionAttempts.WithLabelValues("success").Inc()
	if err := p.repo.MarkMeetingCreated(ctx, sessionID); err != nil {
		p.log.Sugar().Errorw("mark meeting created", "session_id", sessionID, "err", err)
		return err
	}
	return nil
}

// ProvisionAsync fires Provision on a detached goroutine. It returns
// nothing awaitable: the caller's result cannot depend on provisioning.
func (p *Provisioner) ProvisionAsync(sessionID, meetingID uuid.UUID, scheduledAt time.Time) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.httpClient.Timeout+time.Second)
		defer cancel()
		if err := p.Provision(ctx, sessionID, meetingID, scheduledAt); err != nil {
			p.log.Sugar().Warnw("meeting provisioning failed", "session_id", sessionID, "err", err)
		}
	}()
}

func backoff(attempts int) time.Duration {
	d := 200 * time.Millisecond << uint(attempts)
	if d > 2*time.Second {
		d = 2 * time.Second
	}
	return d
}

// RetryPending sweeps sessions whose meeting is still missing, sequentially
// with capped exponential backoff between items. Invoked once at process
// startup; bounded to one batch.
func (p *Provisioner) RetryPending(ctx context.Context) {
	sessions, err := p.repo.ListUnprovisionedSessions(ctx, MaxAttempts, sweepLimit)
	if err != nil {
		p.log.Sugar().Errorw("list unprovisioned sessions", "err", err)
		return
	}
	if len(sessions) == 0 {
		return
	}
	p.log.Sugar().Infow("retrying meeting provisioning", "count", len(sessions))

	for _, s := range sessions {
		if s.MeetingID == nil || s.ScheduledAt == nil {
			continue
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff(s.MeetingAttempts)):
		}
		if err := p.Provision(ctx, s.SessionID, *s.MeetingID, *s.ScheduledAt); err != nil {
			p.log.Sugar().Warnw("meeting provisioning retry failed", "session_id", s.SessionID, "err", err)
		}
	}
}
