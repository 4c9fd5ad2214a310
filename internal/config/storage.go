package config

import (
	"os"
	"sync"
)

type StorageConfig struct {
	UploadDir string
	ReportDir string
}

var (
	storageConfig *StorageConfig
	storageOnce   sync.Once
)

func LoadStorageConfig() *StorageConfig {
	storageOnce.Do(func() {
		uploadDir := os.Getenv("UPLOAD_DIR")
		if uploadDir == "" {
			uploadDir = "./uploads"
		}
		reportDir := os.Getenv("REPORT_DIR")
		if reportDir == "" {
			reportDir = "./reports"
		}
		storageConfig = &StorageConfig{
			UploadDir: uploadDir,
			ReportDir: reportDir,
		}
	})
	return storageConfig
}
