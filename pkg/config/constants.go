package config

const (
	// EnvPrefix is passed to envconfig; individual fields carry fully
	// prefixed tags so this stays empty.
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN = "CHECKPIX_DB_DSN"
)
