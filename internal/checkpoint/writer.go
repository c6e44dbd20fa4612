// Package checkpoint persists count-table snapshots so a long run leaves a
// usable artifact behind however it ends.
//
// A snapshot replaces the previous one atomically: it is written to a temp
// file next to the target, synced, then renamed over it. Readers never see a
// partial file.
package checkpoint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/charmbracelet/log"

	"vseek/internal/jsonutil"
)

// DefaultRetries is the number of retries after a failed first attempt.
const DefaultRetries = 3

// Error reports a snapshot that could not be persisted.
type Error struct {
	Path     string
	Attempts int
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("checkpoint %s: giving up after %d attempts: %v", e.Path, e.Attempts, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Writer writes snapshots to a single path. It is not safe for concurrent use.
type Writer struct {
	path    string
	retries int
	newBO   func() backoff.BackOff
	logger  *log.Logger
	writes  int
}

// Option configures a Writer.
type Option func(*Writer)

// WithRetries sets how many times a failed write is retried. Negative means 0.
func WithRetries(n int) Option {
	return func(w *Writer) {
		if n < 0 {
			n = 0
		}
		w.retries = n
	}
}

// WithBackoff replaces the exponential backoff policy; newBO is called once
// per Write. Tests use backoff.ZeroBackOff.
func WithBackoff(newBO func() backoff.BackOff) Option {
	return func(w *Writer) { w.newBO = newBO }
}

// WithLogger sets the logger used for retry warnings.
func WithLogger(l *log.Logger) Option {
	return func(w *Writer) { w.logger = l }
}

// New returns a Writer targeting path.
func New(path string, opts ...Option) *Writer {
	w := &Writer{
		path:    path,
		retries: DefaultRetries,
		newBO: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 100 * time.Millisecond
			b.MaxInterval = 2 * time.Second
			return b
		},
		logger: log.Default(),
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Path returns the target path.
func (w *Writer) Path() string { return w.path }

// Writes returns the number of snapshots persisted so far.
func (w *Writer) Writes() int { return w.writes }

// Write encodes v as JSON and replaces the target with it. Failed attempts
// are retried with backoff; ctx only interrupts the waits between them.
func (w *Writer) Write(ctx context.Context, v any) error {
	attempts := 0
	op := func() error {
		attempts++
		return w.writeOnce(v)
	}
	bo := backoff.WithContext(backoff.WithMaxRetries(w.newBO(), uint64(w.retries)), ctx)
	notify := func(err error, wait time.Duration) {
		w.logger.Warn("checkpoint write failed, retrying", "path", w.path, "attempt", attempts, "wait", wait, "err", err)
	}
	if err := backoff.RetryNotify(op, bo, notify); err != nil {
		return &Error{Path: w.path, Attempts: attempts, Err: err}
	}
	w.writes++
	return nil
}

func (w *Writer) writeOnce(v any) (err error) {
	dir := filepath.Dir(w.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(w.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()
	if err = jsonutil.EncodePretty(tmp, v); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), w.path)
}
