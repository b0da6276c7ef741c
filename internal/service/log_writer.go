package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"site-analytics-service/internal/logging"
	"site-analytics-service/internal/model"
	"site-analytics-service/internal/store"
)

// ErrWriterClosed is returned for operations issued after Shutdown.
var ErrWriterClosed = errors.New("log writer closed")

const saveTimeout = 5 * time.Second

// LogWriter owns all mutation of the analytics document. A single
// goroutine applies appends, runs session reconstruction, and flushes
// to the store, so concurrent ingestion cannot lose updates and
// readers only ever see a complete document.
type LogWriter interface {
	// Append applies one submission to the document and returns once
	// the record is visible to subsequent snapshots. Disk flushes are
	// batched behind a ticker and a dirty-append threshold.
	Append(ctx context.Context, sub model.Submission) error

	// Snapshot returns a deep copy of the current document.
	Snapshot(ctx context.Context) (model.Log, error)

	// Purge drops every record and persists the empty document. The
	// only operation allowed to remove data.
	Purge(ctx context.Context) error

	Shutdown()
}

type command struct {
	sub   *model.Submission
	snap  chan model.Log
	purge bool
	reply chan error
}

type logWriter struct {
	store      store.Store
	cmds       chan command
	quit       chan struct{}
	closeOnce  sync.Once
	wg         sync.WaitGroup
	flushEvery time.Duration
	flushAfter int
}

// NewLogWriter loads the persisted document and starts the owner
// goroutine.
func NewLogWriter(st store.Store, bufferSize, flushAfter int, flushEvery time.Duration) (LogWriter, error) {
	doc, err := st.Load(context.Background())
	if err != nil {
		return nil, err
	}

	w := &logWriter{
		store:      st,
		cmds:       make(chan command, bufferSize),
		quit:       make(chan struct{}),
		flushEvery: flushEvery,
		flushAfter: flushAfter,
	}
	w.wg.Add(1)
	go w.run(doc)
	return w, nil
}

func (w *logWriter) Append(ctx context.Context, sub model.Submission) error {
	return w.send(ctx, command{sub: &sub, reply: make(chan error, 1)})
}

func (w *logWriter) Snapshot(ctx context.Context) (model.Log, error) {
	cmd := command{snap: make(chan model.Log, 1), reply: make(chan error, 1)}
	if err := w.send(ctx, cmd); err != nil {
		return model.Log{}, err
	}
	return <-cmd.snap, nil
}

func (w *logWriter) Purge(ctx context.Context) error {
	return w.send(ctx, command{purge: true, reply: make(chan error, 1)})
}

func (w *logWriter) send(ctx context.Context, cmd command) error {
	select {
	case w.cmds <- cmd:
	case <-w.quit:
		return ErrWriterClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-cmd.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown drains pending commands, flushes once more, and stops the
// owner goroutine. Safe to call more than once.
func (w *logWriter) Shutdown() {
	w.closeOnce.Do(func() { close(w.quit) })
	w.wg.Wait()
}

func (w *logWriter) run(doc *model.Log) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.flushEvery)
	defer ticker.Stop()

	dirty := 0
	for {
		select {
		case cmd := <-w.cmds:
			dirty += w.handle(doc, cmd)
			if dirty >= w.flushAfter {
				dirty = w.flush(doc, dirty)
			}

		case <-ticker.C:
			if dirty > 0 {
				dirty = w.flush(doc, dirty)
			}

		case <-w.quit:
			for {
				select {
				case cmd := <-w.cmds:
					dirty += w.handle(doc, cmd)
				default:
					if dirty > 0 {
						w.flush(doc, dirty)
					}
					return
				}
			}
		}
	}
}

// handle applies one command and reports how many appends dirtied the
// document.
func (w *logWriter) handle(doc *model.Log, cmd command) int {
	switch {
	case cmd.snap != nil:
		cmd.snap <- doc.Clone()
		cmd.reply <- nil
		return 0

	case cmd.purge:
		*doc = *model.NewLog()
		cmd.reply <- w.save(doc)
		return 0

	case cmd.sub != nil:
		w.apply(doc, *cmd.sub)
		cmd.reply <- nil
		return 1
	}
	cmd.reply <- nil
	return 0
}

func (w *logWriter) apply(doc *model.Log, sub model.Submission) {
	switch {
	case sub.PageView != nil:
		pv := *sub.PageView
		doc.PageViews = append(doc.PageViews, pv)
		if doc.FirstDay == 0 || pv.Timestamp < doc.FirstDay {
			doc.FirstDay = pv.Timestamp
		}
		applySession(doc, pv)

	case sub.Click != nil:
		doc.Clicks = append(doc.Clicks, *sub.Click)

	case sub.Event != nil:
		doc.Events = append(doc.Events, *sub.Event)
	}
}

// flush persists the document; on failure the dirty count is kept so
// the next tick retries.
func (w *logWriter) flush(doc *model.Log, dirty int) int {
	if err := w.save(doc); err != nil {
		logging.Error().Err(err).Int("pending", dirty).Msg("flush analytics document")
		return dirty
	}
	logging.Debug().Int("appends", dirty).Msg("analytics document flushed")
	return 0
}

func (w *logWriter) save(doc *model.Log) error {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	return w.store.Save(ctx, doc)
}
