package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/englishhq/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string    bind address (e.g., ":8000")
//	-d string    PostgreSQL DSN
//	-s string    JWT HMAC secret key
//	-t int       access token validity, minutes
//	-p float     cost per 1000 provider tokens
//	-u string    answer provider base URL
//	-m string    answer provider model name
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-p", "-u", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenTTL := fs.Int("t", int(config.AccessTokenTTL.Minutes()), "access token validity (in minutes)")

	fs.Float64Var(&config.CostPer1KTokens, "p", config.CostPer1KTokens, "cost per 1000 provider tokens")
	fs.StringVar(&config.DoubaoBaseURL, "u", config.DoubaoBaseURL, "answer provider base URL")
	fs.StringVar(&config.DoubaoModel, "m", config.DoubaoModel, "answer provider model")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenTTL = time.Duration(*accessTokenTTL) * time.Minute
}
