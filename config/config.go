package config

import (
	"github.com/gotify/configor"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr   string `default:"" env:"APP_HOST"`
		Port         int    `default:"8080"  env:"APP_PORT"`
		BodyLimitMb  int64  `default:"50" env:"APP_BODY_LIMIT_MB"`
		ErrNotifyUrl string `default:"" env:"APP_ERR_NOTIFY_URL"`
		SwaggerFile  string `default:"./docs/swagger.json" env:"APP_SWAGGER_FILE"`
		LogLevel     string `default:"info" env:"APP_LOG_LEVEL"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"pmfin" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret      string `default:"change-me" env:"AUTH_JWT_SECRET"`
		JWTExpireInSec int    `default:"86400" env:"AUTH_JWT_EXPIRE_IN_SEC"`
		CookieSecure   *bool  `default:"false" env:"AUTH_COOKIE_SECURE"`
		AdminEmail     string `default:"" env:"AUTH_ADMIN_EMAIL"`
		AdminPassword  string `default:"" env:"AUTH_ADMIN_PASSWORD"`
	}
	S3 struct {
		Endpoint        string `default:"127.0.0.1:9000" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"pmfin" env:"S3_BUCKET_NAME"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
	}
	Kafka struct {
		Brokers []string `env:"KAFKA_BROKERS"`
		Topic   string   `default:"pmfin.events" env:"KAFKA_TOPIC"`
	}
	Company struct {
		Name     string `default:"PM Finance" env:"COMPANY_NAME"`
		Address  string `default:"" env:"COMPANY_ADDRESS"`
		Email    string `default:"" env:"COMPANY_EMAIL"`
		Currency string `default:"USD" env:"COMPANY_CURRENCY"`
	}
	Workers struct {
		OverdueIntervalSec int `default:"3600" env:"WORKER_OVERDUE_INTERVAL_SEC"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	if err := godotenv.Load(); err == nil {
		log.Info(".env loaded")
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
