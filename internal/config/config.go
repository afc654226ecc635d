package config

type Config interface {
	EnvConfig
	PlatformConfig
	CacheConfig
}

type mainConfig struct {
	EnvVars
	Platform
	Cache
}

func New() Config {
	return mainConfig{}
}
