package config

import (
	"fmt"
	"net/url"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("auth.access_token_ttl must be > 0 (got %v)", c.Auth.AccessTokenTTL)
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.bcrypt_cost must be in [%d, %d] (got %d)", bcrypt.MinCost, bcrypt.MaxCost, c.Auth.BcryptCost)
	}

	if err := c.Notify.validate(); err != nil {
		return fmt.Errorf("notify: %w", err)
	}

	if c.Kafka.Enabled() && c.Kafka.Topic == "" {
		return fmt.Errorf("kafka.topic is required when kafka.brokers is set")
	}

	if c.Alert.Enabled() {
		u, err := url.Parse(c.Alert.WebhookURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("alert.webhook_url must be an absolute URL (got %q)", c.Alert.WebhookURL)
		}
	}

	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing.sample_ratio must be in [0, 1] (got %v)", c.Tracing.SampleRatio)
	}

	return nil
}

func (n *NotifyConfig) validate() error {
	if n.MaxSubscribers <= 0 {
		return fmt.Errorf("max_subscribers must be > 0 (got %d)", n.MaxSubscribers)
	}
	if n.SendTimeout <= 0 {
		return fmt.Errorf("send_timeout must be > 0 (got %v)", n.SendTimeout)
	}
	if n.SendConcurrency <= 0 {
		return fmt.Errorf("send_concurrency must be > 0 (got %d)", n.SendConcurrency)
	}
	if n.WSWriteBuffer <= 0 {
		return fmt.Errorf("ws_write_buffer must be > 0 (got %d)", n.WSWriteBuffer)
	}
	if n.WSPingPeriod <= 0 {
		return fmt.Errorf("ws_ping_period must be > 0 (got %v)", n.WSPingPeriod)
	}
	return nil
}
