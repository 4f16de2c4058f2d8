package config

import (
	"encoding/json"
	"os"
	"time"

	"notekeeper/internal/flagx"
	"notekeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so intervals can be given either as strings like "10s" or as
// integer nanoseconds.
type JsonConfig struct {
	DatabasePath          string         `json:"database_path"`
	AuthEndpointURL       string         `json:"auth_endpoint_url"`
	S3Endpoint            string         `json:"s3_endpoint"`
	S3Region              string         `json:"s3_region"`
	S3Bucket              string         `json:"s3_bucket"`
	S3AccessKey           string         `json:"s3_access_key"`
	S3SecretKey           string         `json:"s3_secret_key"`
	OnlineCheckInterval   timex.Duration `json:"online_check_interval"`
	MetadataUploadTimeout timex.Duration `json:"metadata_upload_timeout"`
	MediaUploadTimeout    timex.Duration `json:"media_upload_timeout"`
	FetchTimeout          timex.Duration `json:"fetch_timeout"`
}

// parseJson overlays cfg with values from the JSON file named by the
// -c/-config flags. Absent keys keep their current values; read or
// unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.AuthEndpointURL != "" {
		cfg.AuthEndpointURL = jc.AuthEndpointURL
	}
	if jc.S3Endpoint != "" {
		cfg.S3Endpoint = jc.S3Endpoint
	}
	if jc.S3Region != "" {
		cfg.S3Region = jc.S3Region
	}
	if jc.S3Bucket != "" {
		cfg.S3Bucket = jc.S3Bucket
	}
	if jc.S3AccessKey != "" {
		cfg.S3AccessKey = jc.S3AccessKey
	}
	if jc.S3SecretKey != "" {
		cfg.S3SecretKey = jc.S3SecretKey
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
	}
	if jc.MetadataUploadTimeout.Duration != 0 {
		cfg.MetadataUploadTimeout = time.Duration(jc.MetadataUploadTimeout.Duration)
	}
	if jc.MediaUploadTimeout.Duration != 0 {
		cfg.MediaUploadTimeout = time.Duration(jc.MediaUploadTimeout.Duration)
	}
	if jc.FetchTimeout.Duration != 0 {
		cfg.FetchTimeout = time.Duration(jc.FetchTimeout.Duration)
	}
}
