package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyTPMSLogDir   string = "TPMS_LOG_DIR"
	EnvKeyTPMSLogLevel string = "TPMS_LOG_LEVEL"

	EnvKeyTPMSDBType       string = "TPMS_DB_TYPE"
	EnvKeyTPMSDbPath       string = "TPMS_DB_PATH"
	EnvKeyTPMSPostgresDSN  string = "TPMS_POSTGRES_DSN"
	EnvKeyTPMSHttpHostPort string = "TPMS_HTTP_HOST_PORT"
	EnvKeyTPMSGrpcHostPort string = "TPMS_GRPC_HOST_PORT"

	EnvKeyTPMSDefaultRate  string = "TPMS_DEFAULT_RATE"
	EnvKeyTPMSDefaultBurst string = "TPMS_DEFAULT_BURST"

	EnvKeyTPMSJWTSecret string = "TPMS_JWT_SECRET"
	EnvKeyTPMSJWTTTL    string = "TPMS_JWT_TTL"

	EnvKeyTPMSKafkaBrokers string = "TPMS_KAFKA_BROKERS"
	EnvKeyTPMSKafkaTopic   string = "TPMS_KAFKA_TOPIC"

	EnvKeyTPMSRedisAddr     string = "TPMS_REDIS_ADDR"
	EnvKeyTPMSRedisPassword string = "TPMS_REDIS_PASSWORD"
	EnvKeyTPMSRedisDB       string = "TPMS_REDIS_DB"

	DBTypeFile     string = "file"
	DBTypeMemory   string = "memory"
	DBTypePostgres string = "postgres"

	LoggerNameTPMSCore      string = "tpms_core"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameGrpcServer    string = "grpc_server"
	LoggerNameDispatch      string = "dispatch"

	LoggerFieldTPMSCategory        string = "category"
	LoggerCategoryTPMSReading      string = "reading"
	LoggerCategoryTPMSCatalog      string = "catalog"
	LoggerCategoryTPMSNotification string = "notification"
	LoggerCategoryTPMSTire         string = "tire"
	LoggerCategoryTPMSVehicle      string = "vehicle"
	LoggerCategoryTPMSUser         string = "user"
)
