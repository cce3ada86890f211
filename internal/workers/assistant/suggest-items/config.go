// internal/workers/assistant/suggest-items/config.go
package suggestitems

import (
	"time"

	"grocery-assistant/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// ServiceTimeout bounds the suggestion collaborator call within a job.
	ServiceTimeout time.Duration
}

func LoadConfig(wcfg config.WorkerConfig, svc config.EndpointConfig) *Config {
	cfg := &Config{Timeout: 15 * time.Second, ServiceTimeout: 5 * time.Second}
	if wcfg.Timeout > 0 {
		cfg.Timeout = config.GetDuration(wcfg.Timeout)
	}
	if svc.Timeout > 0 {
		cfg.ServiceTimeout = config.GetDuration(svc.Timeout)
	}
	return cfg
}
