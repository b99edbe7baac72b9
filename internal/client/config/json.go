package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/englishhq/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Timeouts are
// given in whole seconds.
type JsonConfig struct {
	APIBaseURL     string `json:"api_base_url"`
	LocalStorePath string `json:"local_store_path"`
	RequestTimeout int    `json:"request_timeout"`
}

// parseJson overlays cfg with values loaded from a JSON file. The file path
// comes from the -c/-config flags via flagx.JsonConfigFlags; when no path is
// given the function is a no-op. Read or unmarshal errors panic.
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

	cfg.APIBaseURL = jc.APIBaseURL
	cfg.LocalStorePath = jc.LocalStorePath
	cfg.RequestTimeout = time.Duration(jc.RequestTimeout) * time.Second
}
