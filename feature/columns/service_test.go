package columns

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"column-sync/core/database"
	"column-sync/core/reconcile"
	"column-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const header = "column_id,base_level,top_level,alpha_grid,numeric_grid,column_type,size\n"

func setupService(t *testing.T, client *mocks.Client, cfg reconcile.Config) *Service {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	svc := NewService(db, nil, "structure", cfg, zap.NewNop())
	if client != nil {
		svc.client = client
	}
	svc.now = func() time.Time { return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC) }

	_, err = svc.Seed(context.Background(), filepath.Join("testdata", "model.yaml"))
	require.NoError(t, err)
	return svc
}

func TestService_SyncReader(t *testing.T) {
	svc := setupService(t, nil, reconcile.Config{})

	csv := header +
		"A1-L0L1,L0,L1,A,1,RC sq,400mm\n" +
		",L0,L1,B,1,RC sq,400mm\n" +
		"Z9-L0L1,L0,L1,Z,9,RC sq,400mm\n" +
		"C3-L1L2,L1,L2,C,3,rc CIRC,600MM\n"

	res, err := svc.SyncReader(context.Background(), strings.NewReader(csv), svc.Options())
	require.NoError(t, err)

	assert.Equal(t, "Created: 1, Updated: 1, Skipped: 2", res.Summary)
	assert.Contains(t, res.Report, "  - grid not found: 1\n")
	assert.Contains(t, res.Report, "  - missing key: 1\n")
	assert.Empty(t, res.Archive)

	views, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "C3-L1L2", views[1].Mark)
	assert.InDelta(t, 16.0, views[1].X, 1e-9)
	assert.InDelta(t, 12.0, views[1].Y, 1e-9)
	assert.Equal(t, "RC circ", views[1].Family)
	assert.Equal(t, "L2", views[1].TopLevel)
}

func TestService_SyncFile(t *testing.T) {
	svc := setupService(t, nil, reconcile.Config{})
	dir := t.TempDir()

	_, err := svc.SyncFile(context.Background(), filepath.Join(dir, "columns.csv"), reconcile.Options{})
	assert.ErrorIs(t, err, reconcile.ErrNotFound)

	path := filepath.Join(dir, "columns.csv")
	require.NoError(t, os.WriteFile(path, []byte(header+"B2-L0L1,L0,L1,B,2,RC sq,500mm\n"), 0o644))

	first, err := svc.SyncFile(context.Background(), path, reconcile.Options{})
	require.NoError(t, err)
	assert.Equal(t, "Created: 1, Updated: 0, Skipped: 0", first.Summary)

	second, err := svc.SyncFile(context.Background(), path, reconcile.Options{})
	require.NoError(t, err)
	assert.Equal(t, "Created: 0, Updated: 1, Skipped: 0", second.Summary)
}

func TestService_DeleteMissingFromConfig(t *testing.T) {
	svc := setupService(t, nil, reconcile.Config{DeleteMissing: true})

	res, err := svc.SyncReader(context.Background(), strings.NewReader(header+"B2-L0L1,L0,L1,B,2,RC sq,500mm\n"), svc.Options())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Run.Deleted)

	views, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "B2-L0L1", views[0].Mark)
}

func TestService_Preconditions(t *testing.T) {
	svc := setupService(t, nil, reconcile.Config{})

	_, err := svc.SyncReader(context.Background(), strings.NewReader(header), reconcile.Options{})
	assert.ErrorIs(t, err, reconcile.ErrEmpty)

	msg, err := Report(nil, err)
	require.NoError(t, err)
	assert.Equal(t, "Error: CSV file is empty", msg)
}

func TestService_SyncObject(t *testing.T) {
	client := new(mocks.Client)
	svc := setupService(t, client, reconcile.Config{})

	client.On("StatObject", mock.Anything, "structure", "imports/missing.csv", mock.Anything).
		Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"})
	client.On("StatObject", mock.Anything, "structure", "imports/columns.csv", mock.Anything).
		Return(minio.ObjectInfo{Key: "imports/columns.csv"}, nil)
	client.On("GetObject", mock.Anything, "structure", "imports/columns.csv", mock.Anything).
		Return(io.NopCloser(strings.NewReader(header+"A2-L0L1,L0,L1,A,2,RC sq,400mm\n")), nil)

	_, err := svc.SyncObject(context.Background(), "imports/missing.csv", reconcile.Options{})
	assert.ErrorIs(t, err, reconcile.ErrNotFound)

	res, err := svc.SyncObject(context.Background(), "imports/columns.csv", reconcile.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Run.Created)

	client.AssertExpectations(t)
}

func TestService_SyncObjectWithoutStorage(t *testing.T) {
	svc := setupService(t, nil, reconcile.Config{})
	_, err := svc.SyncObject(context.Background(), "imports/columns.csv", reconcile.Options{})
	assert.ErrorContains(t, err, "object storage is not configured")
}

func TestService_Archive(t *testing.T) {
	client := new(mocks.Client)
	svc := setupService(t, client, reconcile.Config{Archive: true, ArchivePrefix: "history"})
	input := header + "A2-L0L1,L0,L1,A,2,RC sq,400mm\n"

	var storedCSV, storedReport []byte
	client.On("PutObject", mock.Anything, "structure", "history/columns_20260304_050607.csv", mock.Anything, int64(len(input)), mock.Anything).
		Run(func(args mock.Arguments) {
			storedCSV, _ = io.ReadAll(args.Get(3).(io.Reader))
		}).
		Return(minio.UploadInfo{}, nil)
	client.On("PutObject", mock.Anything, "structure", "history/columns_20260304_050607.txt", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			storedReport, _ = io.ReadAll(args.Get(3).(io.Reader))
		}).
		Return(minio.UploadInfo{}, nil)

	res, err := svc.SyncReader(context.Background(), bytes.NewReader([]byte(input)), reconcile.Options{})
	require.NoError(t, err)

	assert.Equal(t, "history/columns_20260304_050607", res.Archive)
	assert.Equal(t, input, string(storedCSV))
	assert.Equal(t, res.Report, string(storedReport))
	client.AssertExpectations(t)
}

func TestService_ArchiveFailureIsSwallowed(t *testing.T) {
	client := new(mocks.Client)
	svc := setupService(t, client, reconcile.Config{Archive: true, ArchivePrefix: "history"})

	client.On("PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("bucket is read-only"))

	res, err := svc.SyncReader(context.Background(), strings.NewReader(header+"A2-L0L1,L0,L1,A,2,RC sq,400mm\n"), reconcile.Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Run.Created)
	assert.Empty(t, res.Archive)
	assert.NotContains(t, res.Report, "read-only")
	client.AssertNumberOfCalls(t, "PutObject", 1)
}

func TestReport(t *testing.T) {
	msg, err := Report(&Result{Report: "CSV Sync Complete"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "CSV Sync Complete", msg)

	_, err = Report(nil, errors.New("connection reset"))
	assert.EqualError(t, err, "connection reset")
}
