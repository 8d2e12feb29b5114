package config

// ConfigFileName is the name of the config file.
const ConfigFileName = "basehub.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "basehub.yml"

// Default values applied before file, env, and flag overrides.
const (
	DefaultPort     = 8095
	DefaultTokenTTL = "24h"
	DefaultLogLevel = "info"
)

// EnvPrefix is the prefix for environment variable overrides,
// e.g. BASEHUB_PORT, BASEHUB_JWT_SECRET.
const EnvPrefix = "BASEHUB_"
