package config

// StorageConfig describes the object-storage bucket (Cloudflare R2 or any
// S3-compatible endpoint).
type StorageConfig struct {
	Backend   string // "s3" or "memory"
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string
}

func loadStorage() StorageConfig {
	bucket := envOrDefault(envR2Bucket, "")
	if bucket == "" {
		bucket = envOrDefault(envR2BucketName, defaultBucket)
	}
	return StorageConfig{
		Backend:   envOrDefault(envStorageBackend, defaultStorageBackend),
		Endpoint:  envOrDefault(envR2Endpoint, ""),
		AccessKey: envOrDefault(envR2AccessKey, ""),
		SecretKey: envOrDefault(envR2SecretKey, ""),
		Bucket:    bucket,
		PublicURL: envOrDefault(envR2PublicURL, ""),
	}
}
