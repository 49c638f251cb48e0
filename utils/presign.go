package utils

import (
	"fmt"
	"time"

	"vidya/config"

	"github.com/go-resty/resty/v2"
)

// PresignResult is the presign service response we pass back to clients.
type PresignResult struct {
	UploadURL string `json:"upload_url"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expires_in"`
}

// GetUploadURL asks the external object-store presign service for a
// one-time upload URL. The returned key is what clients submit back as
// the content storage key; no file bytes ever pass through this server.
func GetUploadURL(key, contentType string) (*PresignResult, error) {
	client := resty.New().
		SetBaseURL(config.AppConfig.PresignApiURL).
		SetTimeout(10 * time.Second).
		SetHeader("X-Api-Key", config.AppConfig.PresignApiKey)

	result := new(PresignResult)
	resp, err := client.R().
		SetBody(map[string]interface{}{
			"bucket":       config.AppConfig.StorageBucket,
			"key":          key,
			"content_type": contentType,
		}).
		SetResult(result).
		Post("presign/upload")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("presign service returned %d", resp.StatusCode())
	}

	result.Key = key
	return result, nil
}
