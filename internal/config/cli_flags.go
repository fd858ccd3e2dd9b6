package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Emit logs as JSON")
	cmd.PersistentFlags().String("proxy", "", "Upstream proxy URL(s), comma-separated for rotation")
	cmd.PersistentFlags().Bool("proxy-from-keyring", false, "Read the proxy URL from the OS keyring")
	cmd.PersistentFlags().String("timeout", "60s", "Hard timeout for page navigation")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent string")
	cmd.PersistentFlags().Bool("headful", false, "Run the browser with a visible window")
	cmd.PersistentFlags().String("metrics-addr", "", "Listen address for Prometheus metrics (e.g. :9090)")
}
