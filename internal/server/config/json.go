package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/englishhq/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. The token
// lifetime is given in whole minutes.
type JsonConfig struct {
	EndpointAddr    string  `json:"endpoint_addr"`
	DatabaseDSN     string  `json:"database_dsn"`
	SecretKey       string  `json:"secret_key"`
	AccessTokenTTL  int     `json:"access_token_ttl"`
	CostPer1KTokens float64 `json:"cost_per_1k_tokens"`
	DoubaoBaseURL   string  `json:"doubao_base_url"`
	DoubaoModel     string  `json:"doubao_model"`
}

// parseJson overlays cfg with values loaded from a JSON file. The file path
// comes from the -c/-config flags via flagx.JsonConfigFlags; when no path is
// given the function is a no-op. Read or unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	cfg.EndpointAddr = c.EndpointAddr
	cfg.DatabaseDSN = c.DatabaseDSN
	cfg.SecretKey = c.SecretKey
	cfg.AccessTokenTTL = time.Duration(c.AccessTokenTTL) * time.Minute
	cfg.CostPer1KTokens = c.CostPer1KTokens
	cfg.DoubaoBaseURL = c.DoubaoBaseURL
	cfg.DoubaoModel = c.DoubaoModel
}
