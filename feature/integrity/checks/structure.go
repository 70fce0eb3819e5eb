package checks

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"column-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ImportsFolder holds CSV files uploaded for sync by object name.
const ImportsFolder = "imports"

// RequiredFolders lists the folders that must exist in the bucket: the
// imports folder and the archive prefix of past runs.
func RequiredFolders(archivePrefix string) []string {
	folders := []string{ImportsFolder}
	if p := strings.Trim(archivePrefix, "/"); p != "" && p != ImportsFolder {
		folders = append(folders, p)
	}
	return folders
}

// StructureReport lists what is missing in the bucket.
type StructureReport struct {
	BucketExists bool     `json:"bucket_exists"`
	Missing      []string `json:"missing"`
}

// CheckStructure reports the missing bucket and folders. A missing bucket
// implies every folder is missing.
func CheckStructure(ctx context.Context, client storage.Client, bucket string, folders []string) (*StructureReport, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}

	report := &StructureReport{BucketExists: exists, Missing: []string{}}
	if !exists {
		report.Missing = append(report.Missing, folders...)
		return report, nil
	}

	for _, folder := range folders {
		opts := minio.ListObjectsOptions{
			Prefix:    folderKey(folder),
			Recursive: false,
			MaxKeys:   1,
		}

		found := false
		for obj := range client.ListObjects(ctx, bucket, opts) {
			if obj.Err != nil {
				return nil, fmt.Errorf("failed to list %s: %w", folder, obj.Err)
			}
			found = true
			break
		}

		if !found {
			report.Missing = append(report.Missing, folder)
		}
	}

	return report, nil
}

// FixStructure creates the bucket when needed and a marker object for each
// missing folder.
func FixStructure(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger, report *StructureReport) error {
	if !report.BucketExists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			logger.Error("Failed to create bucket", zap.String("bucket", bucket), zap.Error(err))
			return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
		logger.Info("Created missing bucket", zap.String("bucket", bucket))
	}

	for _, folder := range report.Missing {
		_, err := client.PutObject(ctx, bucket, folderKey(folder), bytes.NewReader([]byte{}), 0, minio.PutObjectOptions{})
		if err != nil {
			logger.Error("Failed to create folder", zap.String("folder", folder), zap.Error(err))
			return err
		}
		logger.Info("Created missing folder", zap.String("folder", folder))
	}
	return nil
}

func folderKey(folder string) string {
	if strings.HasSuffix(folder, "/") {
		return folder
	}
	return folder + "/"
}
