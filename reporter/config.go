package reporter

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type Config struct {
	BaseURL   string `mapstructure:"base_url"`
	AuthToken string `mapstructure:"auth_token"`

	// HTTPClient overrides the underlying transport. When nil a pooled
	// client is used.
	HTTPClient *http.Client `mapstructure:"-"`
}

func (c Config) validate() error {
	if c.BaseURL == "" {
		return errors.New("base url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("parse base url: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("base url %q must be absolute", c.BaseURL)
	}
	if !strings.HasSuffix(c.BaseURL, "/") {
		return fmt.Errorf("base url %q must end with /", c.BaseURL)
	}
	return nil
}
