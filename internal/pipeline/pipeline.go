package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/storm-impact-summary/internal/aggregate"
	"github.com/couchcryptid/storm-impact-summary/internal/domain"
	"github.com/couchcryptid/storm-impact-summary/internal/observability"
)

// BatchExtractor reads up to batchSize raw events from the source.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.RawEvent, error)
}

// Transformer normalizes a raw event into a storm impact.
type Transformer interface {
	Transform(ctx context.Context, raw domain.RawEvent) (domain.StormImpact, error)
}

// SnapshotPublisher writes a summary snapshot to the destination.
type SnapshotPublisher interface {
	PublishSnapshot(ctx context.Context, snap aggregate.Snapshot) error
}

// Pipeline orchestrates the extract-transform-accumulate loop and publishes
// summary snapshots on an interval.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	publisher   SnapshotPublisher
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool

	batchSize        int
	snapshotInterval time.Duration

	mu           sync.Mutex
	acc          *aggregate.Accumulator
	lastSnapshot time.Time
}

// New creates a Pipeline with the given stages and observability.
func New(e BatchExtractor, t Transformer, p SnapshotPublisher, logger *slog.Logger, metrics *observability.Metrics, batchSize int, snapshotInterval time.Duration) *Pipeline {
	return &Pipeline{
		extractor:        e,
		transformer:      t,
		publisher:        p,
		logger:           logger,
		metrics:          metrics,
		batchSize:        batchSize,
		snapshotInterval: snapshotInterval,
		acc:              aggregate.NewAccumulator(),
	}
}

// CheckReadiness returns nil if the pipeline has accumulated at least one
// record, or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not accumulated any records yet")
	}
	return nil
}

// CurrentSnapshot returns an immutable view of the running aggregate.
func (p *Pipeline) CurrentSnapshot() aggregate.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.acc.Snapshot(domain.Clock().Now())
}

// Run executes the batch loop until the context is cancelled, then publishes
// a final snapshot so the sink reflects everything accumulated.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started",
		"batch_size", p.batchSize,
		"snapshot_interval", p.snapshotInterval,
	)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	// Keeps retry storms short while avoiding tight loops during Kafka outages.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			p.publishFinalSnapshot()
			return nil
		default:
		}

		if !p.processBatch(ctx, &backoff, maxBackoff) {
			p.publishFinalSnapshot()
			return nil
		}

		p.maybePublishSnapshot(ctx)
	}
}

// processBatch runs one extract-transform-accumulate cycle. Returns false if
// the pipeline should stop.
func (p *Pipeline) processBatch(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	start := time.Now()

	rawBatch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		p.logger.Error("extract batch failed", "error", err)
		return p.backoffOrStop(ctx, backoff, maxBackoff)
	}

	if len(rawBatch) == 0 {
		return ctx.Err() == nil
	}

	p.metrics.RecordsConsumed.Add(float64(len(rawBatch)))
	p.metrics.BatchSize.Observe(float64(len(rawBatch)))
	*backoff = 200 * time.Millisecond

	accumulated := p.accumulate(ctx, rawBatch)

	if accumulated > 0 {
		p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
		p.ready.Store(true)
	}
	return true
}

// accumulate transforms each message in the batch, folds the successes into
// the running aggregate, and commits offsets. Malformed records are skipped
// and reported; their offsets still commit so they are not redelivered.
func (p *Pipeline) accumulate(ctx context.Context, rawBatch []domain.RawEvent) int {
	accumulated := 0

	for _, raw := range rawBatch {
		impact, err := p.transformer.Transform(ctx, raw)
		if err != nil {
			p.logger.Warn("malformed record, skipping",
				"error", err,
				"topic", raw.Topic,
				"partition", raw.Partition,
				"offset", raw.Offset,
			)
			p.metrics.RecordsMalformed.Inc()
			p.commitOffset(ctx, raw)
			continue
		}

		p.mu.Lock()
		p.acc.Add(impact)
		p.mu.Unlock()

		p.metrics.RecordsAccumulated.Inc()
		p.metrics.CategoryRecords.WithLabelValues(impact.Category.Slug()).Inc()
		p.commitOffset(ctx, raw)
		accumulated++
	}

	return accumulated
}

// maybePublishSnapshot publishes the current aggregate to the sink when the
// snapshot interval has elapsed. Publish failures are counted and retried on
// the next cycle; they never stall the consume loop.
func (p *Pipeline) maybePublishSnapshot(ctx context.Context) {
	now := domain.Clock().Now()

	p.mu.Lock()
	due := p.acc.Records() > 0 && now.Sub(p.lastSnapshot) >= p.snapshotInterval
	if due {
		p.lastSnapshot = now
	}
	snap := p.acc.Snapshot(now)
	p.mu.Unlock()

	if !due {
		return
	}

	if err := p.publisher.PublishSnapshot(ctx, snap); err != nil {
		p.logger.Error("snapshot publish failed", "error", err, "records", snap.Records)
		p.metrics.SnapshotPublishErrors.Inc()
		return
	}
	p.metrics.SnapshotsPublished.Inc()
	p.logger.Info("snapshot published", "records", snap.Records, "categories", len(snap.Rows))
}

// publishFinalSnapshot flushes the aggregate once during shutdown, on a
// fresh context since the run context is already cancelled.
func (p *Pipeline) publishFinalSnapshot() {
	p.mu.Lock()
	records := p.acc.Records()
	snap := p.acc.Snapshot(domain.Clock().Now())
	p.mu.Unlock()

	if records == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := p.publisher.PublishSnapshot(ctx, snap); err != nil {
		p.logger.Error("final snapshot publish failed", "error", err)
		p.metrics.SnapshotPublishErrors.Inc()
		return
	}
	p.metrics.SnapshotsPublished.Inc()
	p.logger.Info("final snapshot published", "records", snap.Records)
}

// backoffOrStop checks for context cancellation, sleeps with the current backoff,
// and advances the backoff. Returns false if the pipeline should stop.
func (p *Pipeline) backoffOrStop(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !sleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = nextBackoff(*backoff, maxBackoff)
	return true
}

// commitOffset commits the message offset if a commit function is available.
func (p *Pipeline) commitOffset(ctx context.Context, raw domain.RawEvent) {
	if raw.Commit == nil {
		return
	}
	if err := raw.Commit(ctx); err != nil {
		p.logger.Warn("commit offset failed", "error", err,
			"topic", raw.Topic, "partition", raw.Partition, "offset", raw.Offset)
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
