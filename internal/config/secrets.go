package config

import (
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

// LookupProxy reads the proxy URL from the OS keyring. In environments where
// no keyring is available (CI, containers) the GMAPS_PROXY_SECRET variable is
// consulted instead.
func LookupProxy() (string, error) {
	if v := os.Getenv("GMAPS_PROXY_SECRET"); v != "" {
		return v, nil
	}

	p, err := keyring.Get(KeyringService, KeyringProxy)
	if err != nil {
		return "", fmt.Errorf("proxy not found in keyring: %w", err)
	}
	return p, nil
}

// StoreProxy saves the proxy URL to the OS keyring for later runs.
func StoreProxy(proxyURL string) error {
	if proxyURL == "" {
		return fmt.Errorf("proxy URL cannot be empty")
	}
	if err := keyring.Set(KeyringService, KeyringProxy, proxyURL); err != nil {
		return fmt.Errorf("failed to store proxy in keyring: %w", err)
	}
	return nil
}
