package config

const (
	EnvPrefix = "KUSINA"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv            = "KUSINA_APP_ENV"
	EnvPort              = "KUSINA_APP_PORT"
	EnvBackOfficeBaseURL = "KUSINA_BACKOFFICE_BASE_URL"
	EnvRedisURL          = "KUSINA_REDIS_URL"
)
