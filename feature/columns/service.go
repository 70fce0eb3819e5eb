package columns

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
	"time"

	"column-sync/core/reconcile"
	"column-sync/core/storage"
	"column-sync/feature/columns/models"
	"column-sync/feature/columns/store"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Result is the outcome of one sync.
type Result struct {
	Run     *reconcile.Run `json:"run"`
	Summary string         `json:"summary"`
	Report  string         `json:"report"`
	// Archive is the object key prefix the input and report were copied
	// to, empty when archival is off or failed.
	Archive string `json:"archive,omitempty"`
}

// Service runs column syncs against the database store.
type Service struct {
	store  *store.Store
	engine *reconcile.Engine
	client storage.Client
	bucket string
	cfg    reconcile.Config
	logger *zap.Logger
	now    func() time.Time

	// Syncs against the same model must not overlap.
	mu sync.Mutex
}

// NewService creates a new column service. client may be nil when no
// object store is configured; object syncs and archival are then disabled.
func NewService(db *gorm.DB, client storage.Client, bucket string, cfg reconcile.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	st := store.New(db)
	return &Service{
		store:  st,
		engine: reconcile.NewEngine(st, logger),
		client: client,
		bucket: bucket,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Options returns the configured per-pass options.
func (s *Service) Options() reconcile.Options {
	return s.cfg.Options()
}

// SyncFile syncs the CSV file at path.
func (s *Service) SyncFile(ctx context.Context, path string, opts reconcile.Options) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", reconcile.ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return s.sync(ctx, data, opts)
}

// SyncObject syncs a CSV object from the configured bucket.
func (s *Service) SyncObject(ctx context.Context, object string, opts reconcile.Options) (*Result, error) {
	if s.client == nil {
		return nil, errors.New("object storage is not configured")
	}

	if _, err := s.client.StatObject(ctx, s.bucket, object, minio.StatObjectOptions{}); err != nil {
		if storage.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s/%s", reconcile.ErrNotFound, s.bucket, object)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", object, err)
	}

	reader, err := s.client.GetObject(ctx, s.bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", object, err)
	}
	defer reader.Close()

	return s.SyncReader(ctx, reader, opts)
}

// SyncReader syncs CSV content read from r.
func (s *Service) SyncReader(ctx context.Context, r io.Reader, opts reconcile.Options) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return s.sync(ctx, data, opts)
}

func (s *Service) sync(ctx context.Context, data []byte, opts reconcile.Options) (*Result, error) {
	table, err := reconcile.ParseTable(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	run, err := s.engine.Sync(ctx, table, opts)
	if err != nil {
		return nil, err
	}

	res := &Result{Run: run, Summary: run.Summary(), Report: run.Report()}
	if s.cfg.Archive {
		res.Archive = s.archive(ctx, data, res.Report)
	}
	return res, nil
}

// List returns the placed columns.
func (s *Service) List(ctx context.Context) ([]models.ColumnView, error) {
	return s.store.List(ctx)
}

// Migrate creates the column tables.
func (s *Service) Migrate(ctx context.Context) error {
	return s.store.Migrate(ctx)
}

// Seed migrates the tables and loads the fixture at path.
func (s *Service) Seed(ctx context.Context, path string) (*models.Fixture, error) {
	fixture, err := LoadFixture(path)
	if err != nil {
		return nil, err
	}
	if err := s.store.Migrate(ctx); err != nil {
		return nil, err
	}
	if err := s.store.Seed(ctx, fixture); err != nil {
		return nil, err
	}
	return fixture, nil
}

// Report returns the text shown to users for a sync outcome: the report,
// or the plain message of a precondition failure. Other errors are
// returned unchanged.
func Report(res *Result, err error) (string, error) {
	if msg, ok := reconcile.PreconditionMessage(err); ok {
		return msg, nil
	}
	if err != nil {
		return "", err
	}
	return res.Report, nil
}
