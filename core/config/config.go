package config

import (
	"github.com/joeshaw/envdecode"
	"github.com/sirupsen/logrus"
)

// Config holds the configuration for the service, decoded from the
// environment.
//
// use POSTGRES="host=localhost port=5432 user=postgres password=docker dbname=postgres sslmode=disable"
type Config struct {
	Environment string `env:"PROPELLERHEAD_ENV,default=dev" description:"one of dev, production or test"`
	Postgres    string `env:"POSTGRES,required" description:"the connection string for the Postgres DB"`
	Port        int    `env:"PORT,default=3000" description:"the port to listen on"`
	Version     string `env:"VERSION,default=0.0.0" description:"the running version, mirrored into the OpenAPI document"`
	SeedData    bool   `env:"SEED_DATA,default=false" description:"insert the dev seed data on startup"`
}

// Load decodes the configuration from the environment.
func Load() (Config, error) {
	cfg := Config{}
	if err := envdecode.Decode(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LogLevel returns the logrus level for the configured environment. Dev
// environments log everything.
func (c Config) LogLevel() logrus.Level {
	if c.Environment == "dev" {
		return logrus.TraceLevel
	}
	return logrus.InfoLevel
}
