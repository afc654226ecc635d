package config

import (
	"time"
)

const (
	apiBaseURLVar    = "API_BASE_URL"
	editorBaseURLVar = "EDITOR_BASE_URL"
	projectIDVar     = "PROJECT_ID"
)

type PlatformConfig interface {
	GetAPIBaseURL() string
	GetEditorBaseURL() string
	GetDefaultProjectID() string
	GetRequestTimeout() time.Duration
}

type Platform struct{}

var _ PlatformConfig = Platform{}

// GetAPIBaseURL returns the base URL for the BaseBase platform API
// (authentication, provisioning, and the project read API all live behind it).
func (Platform) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, "https://api.basebase.ai")
}

func (Platform) GetEditorBaseURL() string {
	return GetEnv(editorBaseURLVar, "https://editor.basebase.ai")
}

// GetDefaultProjectID returns the project scope used when verifying a
// sign-in code without an explicit project.
func (Platform) GetDefaultProjectID() string {
	return GetEnv(projectIDVar, "basebase_platform")
}

func (Platform) GetRequestTimeout() time.Duration {
	return 30 * time.Second
}
