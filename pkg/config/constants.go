package config

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	PersistenceDriverRedis  = "redis"
	PersistenceDriverSQLite = "sqlite"
	PersistenceDriverMemory = "memory"
)
