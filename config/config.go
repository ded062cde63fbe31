package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"solar-projects" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret             string `default:"" env:"JWT_SECRET"`
		JWTExpireInSec        int    `default:"3600" env:"JWT_EXPIRE_IN_SEC"`
		JWTRefreshExpireInSec int    `default:"86400" env:"JWT_REFRESH_EXPIRE_IN_SEC"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
	}
	S3 struct {
		Endpoint        string `default:"127.0.0.1:9000" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		BucketName      string `default:"solar-projects" env:"S3_BUCKET_NAME"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
	}
	Redis struct {
		Addr     string `default:"127.0.0.1:6379" env:"REDIS_ADDR"`
		Password string `default:"" env:"REDIS_PASSWORD"`
		DB       int    `default:"0" env:"REDIS_DB"`
	}
	Approval struct {
		// Requests estimated under both of these limits skip the
		// approval chain entirely.
		AutoApproveCostLimit  float64 `default:"5000" env:"APPROVAL_AUTO_APPROVE_COST_LIMIT"`
		AutoApproveHoursLimit float64 `default:"16" env:"APPROVAL_AUTO_APPROVE_HOURS_LIMIT"`
		// Requests over this estimate additionally need an administrator.
		AdminApprovalCostLimit float64 `default:"50000" env:"APPROVAL_ADMIN_COST_LIMIT"`
		ReminderAfterHours     int     `default:"48" env:"APPROVAL_REMINDER_AFTER_HOURS"`
		ReminderIntervalMin    int     `default:"60" env:"APPROVAL_REMINDER_INTERVAL_MIN"`
	}
	RateLimit struct {
		Enabled           *bool `default:"true" env:"RATE_LIMIT_ENABLED"`
		RequestsPerMinute int   `default:"120" env:"RATE_LIMIT_REQUESTS_PER_MINUTE"`
	}
	Dashboard struct {
		StatsIntervalMin int `default:"5" env:"DASHBOARD_STATS_INTERVAL_MIN"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
