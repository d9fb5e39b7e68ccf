package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ShabiGardezi/crm-hunfa/internal/domain"
	"github.com/ShabiGardezi/crm-hunfa/internal/repository"
)

const drainTimeout = 5 * time.Second

// DropCounter is notified when an entry is discarded.
type DropCounter interface {
	RecordActivityDrop()
}

// ActivityWorker buffers guard approved attempts and persists them in the
// background. Record never blocks; entries are dropped when the buffer is full.
type ActivityWorker struct {
	queue   chan domain.ActivityEntry
	repo    repository.ActivityRepository
	logger  *zap.Logger
	drops   DropCounter
	now     func() time.Time
	stopped chan struct{}
}

// NewActivityWorker builds a worker with a buffer of size entries.
func NewActivityWorker(repo repository.ActivityRepository, size int, logger *zap.Logger, drops DropCounter) *ActivityWorker {
	if size <= 0 {
		size = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityWorker{
		queue:   make(chan domain.ActivityEntry, size),
		repo:    repo,
		logger:  logger,
		drops:   drops,
		now:     time.Now,
		stopped: make(chan struct{}),
	}
}

// Record enqueues entry.
func (w *ActivityWorker) Record(entry domain.ActivityEntry) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = w.now().UTC()
	}
	select {
	case w.queue <- entry:
	default:
		if w.drops != nil {
			w.drops.RecordActivityDrop()
		}
		w.logger.Warn("activity buffer full, entry dropped",
			zap.String("user_id", entry.UserID),
			zap.String("action", entry.Action))
	}
}

// Run persists entries until ctx is cancelled, then flushes what is buffered.
func (w *ActivityWorker) Run(ctx context.Context) {
	defer close(w.stopped)
	for {
		select {
		case entry := <-w.queue:
			w.persist(ctx, entry)
		case <-ctx.Done():
			w.drain()
			return
		}
	}
}

// Done is closed once Run has returned.
func (w *ActivityWorker) Done() <-chan struct{} {
	return w.stopped
}

func (w *ActivityWorker) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	for {
		select {
		case entry := <-w.queue:
			w.persist(ctx, entry)
		default:
			return
		}
	}
}

func (w *ActivityWorker) persist(ctx context.Context, entry domain.ActivityEntry) {
	if err := w.repo.Create(ctx, &entry); err != nil {
		w.logger.Error("persist activity entry",
			zap.Error(err),
			zap.String("user_id", entry.UserID),
			zap.String("action", entry.Action))
	}
}
