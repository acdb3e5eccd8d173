// Package twelvedata fetches latest quotes from the Twelve Data market API.
package twelvedata

import "time"

// DefaultBaseURL is used when Config.BaseURL is empty.
const DefaultBaseURL = "https://api.twelvedata.com"

// Config holds configuration for the Twelve Data API client.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}
