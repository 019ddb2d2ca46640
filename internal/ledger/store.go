// Package ledger owns the on-disk expense document and the operations over
// it: expense CRUD, the category registry, the budget table and ID
// allocation. The whole document is loaded on every read and replaced on
// every write, with a single-generation backup taken before each write.
package ledger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"fjacquet/expense-cli/internal/ledgererror"
	"fjacquet/expense-cli/internal/models"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// BackupSuffix is appended to the ledger path to form the backup slot.
const BackupSuffix = ".backup"

// Ledger is the handle to one persisted expense document. Construct it
// once at process start and pass it into every operation; there is no
// package-level singleton.
//
// The ledger provides no cross-process locking: two processes racing on
// the same file resolve last-write-wins on the whole document.
type Ledger struct {
	path       string
	backupPath string
	backup     bool
	now        func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock replaces the wall clock, used by tests and by callers that
// need deterministic "current month/year" behavior.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

// WithoutBackup disables the backup copy before each write.
func WithoutBackup() Option {
	return func(l *Ledger) {
		l.backup = false
	}
}

// New returns a ledger handle for the document at path. The backup slot
// is the sibling file path + ".backup".
func New(path string, opts ...Option) *Ledger {
	l := &Ledger{
		path:       path,
		backupPath: path + BackupSuffix,
		backup:     true,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the document location.
func (l *Ledger) Path() string {
	return l.path
}

// Initialize ensures the storage location exists, writing an empty store
// if the document is absent. It is idempotent and safe to call before
// every read or write.
func (l *Ledger) Initialize() error {
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return &ledgererror.StorageError{Op: "initialize", Path: l.path, Err: err}
		}
	}

	if _, err := os.Stat(l.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return &ledgererror.StorageError{Op: "initialize", Path: l.path, Err: err}
	}

	log.WithField("file", l.path).Debug("Creating empty ledger document")
	return l.writeDocument(models.NewStore())
}

// Read loads and parses the persisted document. A document that is not
// well-formed JSON is a fatal storage error with Corrupt set; there is no
// partial recovery.
func (l *Ledger) Read() (*models.Store, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, &ledgererror.StorageError{Op: "read", Path: l.path, Err: err}
	}

	var store models.Store
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, &ledgererror.StorageError{Op: "read", Path: l.path, Corrupt: true, Err: err}
	}
	store.EnsureCollections()

	return &store, nil
}

// Write replaces the persisted document with store. The currently
// persisted bytes (if any) are first copied to the backup slot,
// overwriting the prior generation. A failed backup copy aborts the write
// and is reported as a fatal storage error, never swallowed.
func (l *Ledger) Write(store *models.Store) error {
	if l.backup {
		if err := l.copyToBackup(); err != nil {
			return err
		}
	}
	return l.writeDocument(store)
}

func (l *Ledger) copyToBackup() error {
	current, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		// Nothing persisted yet, nothing to back up.
		return nil
	}
	if err != nil {
		return &ledgererror.StorageError{Op: "backup", Path: l.path, Err: err}
	}
	if err := os.WriteFile(l.backupPath, current, 0600); err != nil {
		return &ledgererror.StorageError{Op: "backup", Path: l.backupPath, Err: err}
	}
	log.WithField("file", l.backupPath).Debug("Wrote backup generation")
	return nil
}

func (l *Ledger) writeDocument(store *models.Store) error {
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return &ledgererror.StorageError{Op: "write", Path: l.path, Err: err}
	}
	if err := os.WriteFile(l.path, data, 0600); err != nil {
		return &ledgererror.StorageError{Op: "write", Path: l.path, Err: err}
	}
	log.WithFields(logrus.Fields{
		"file":     l.path,
		"expenses": len(store.Expenses),
	}).Debug("Wrote ledger document")
	return nil
}

// NextID returns the next candidate expense ID. It is advisory only: the
// caller must assign it and persist Metadata.LastID in the same Write, or
// two sequential allocations can compute the same candidate.
func (l *Ledger) NextID(store *models.Store) int {
	return store.Metadata.LastID + 1
}

// load initializes the document if needed and reads it. Every operation
// starts here.
func (l *Ledger) load() (*models.Store, error) {
	if err := l.Initialize(); err != nil {
		return nil, err
	}
	return l.Read()
}
