package columns

import (
	"bytes"
	"context"
	"path"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const archiveTimeFormat = "20060102_150405"

// archive copies the processed input and its report to the bucket under
// <prefix>/columns_<timestamp>. Failures are logged and swallowed; the
// returned key prefix is empty when nothing was stored.
func (s *Service) archive(ctx context.Context, input []byte, report string) string {
	if s.client == nil {
		return ""
	}

	base := path.Join(s.cfg.ArchivePrefix, "columns_"+s.now().Format(archiveTimeFormat))

	if err := s.put(ctx, base+".csv", input, "text/csv"); err != nil {
		s.logger.Warn("Failed to archive sync input", zap.String("object", base+".csv"), zap.Error(err))
		return ""
	}
	if err := s.put(ctx, base+".txt", []byte(report), "text/plain; charset=utf-8"); err != nil {
		s.logger.Warn("Failed to archive sync report", zap.String("object", base+".txt"), zap.Error(err))
	}
	return base
}

func (s *Service) put(ctx context.Context, object string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, object, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	return err
}
