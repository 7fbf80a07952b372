package config

import (
	"errors"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// DefaultUploadMaxBytes caps a single uploaded image.
const DefaultUploadMaxBytes = 5 << 20

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DBType         string        `env:"DB_TYPE" envDefault:"sqlite"`
	DSNURL         string        `env:"DSN_URL" envDefault:""`
	DBUser         string        `env:"DB_USER" envDefault:""`
	DBPassword     string        `env:"DB_PASSWORD" envDefault:""`
	DBAddr         string        `env:"DB_ADDR" envDefault:""`
	DBName         string        `env:"DB_NAME" envDefault:"bulletin"`
	DBPath         string        `env:"DB_PATH" envDefault:"data/bulletin.db"`
	DBPort         string        `env:"DB_PORT" envDefault:"3306"`
	DBMaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	DBMaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBConnTimeout  time.Duration `env:"DB_CONN_TIMEOUT" envDefault:"5s"`

	UploadMaxBytes int64 `env:"UPLOAD_MAX_BYTES" envDefault:"5242880"`

	StorageType          string `env:"STORAGE_TYPE" envDefault:"local"`
	StorageLocalDir      string `env:"STORAGE_LOCAL_DIR" envDefault:"uploads"`
	StoragePublicBaseURL string `env:"STORAGE_PUBLIC_BASE_URL" envDefault:"/uploads"`

	// S3 compatible storage
	StorageS3Region          string `env:"STORAGE_S3_REGION"`
	StorageS3Bucket          string `env:"STORAGE_S3_BUCKET"`
	StorageS3Prefix          string `env:"STORAGE_S3_PREFIX"`
	StorageS3Endpoint        string `env:"STORAGE_S3_ENDPOINT"`
	StorageS3AccessKeyID     string `env:"STORAGE_S3_ACCESS_KEY_ID"`
	StorageS3SecretAccessKey string `env:"STORAGE_S3_SECRET_ACCESS_KEY"`
	StorageS3SessionToken    string `env:"STORAGE_S3_SESSION_TOKEN"`
	StorageS3ForcePathStyle  bool   `env:"STORAGE_S3_FORCE_PATH_STYLE" envDefault:"false"`

	// Aliyun OSS
	StorageOSSEndpoint        string `env:"STORAGE_OSS_ENDPOINT"`
	StorageOSSBucket          string `env:"STORAGE_OSS_BUCKET"`
	StorageOSSPrefix          string `env:"STORAGE_OSS_PREFIX"`
	StorageOSSAccessKeyID     string `env:"STORAGE_OSS_ACCESS_KEY_ID"`
	StorageOSSAccessKeySecret string `env:"STORAGE_OSS_ACCESS_KEY_SECRET"`

	// Tencent COS
	StorageCOSBucketURL string `env:"STORAGE_COS_BUCKET_URL"`
	StorageCOSPrefix    string `env:"STORAGE_COS_PREFIX"`
	StorageCOSSecretID  string `env:"STORAGE_COS_SECRET_ID"`
	StorageCOSSecretKey string `env:"STORAGE_COS_SECRET_KEY"`

	// Cloudflare R2
	StorageR2AccountID       string `env:"STORAGE_R2_ACCOUNT_ID"`
	StorageR2Endpoint        string `env:"STORAGE_R2_ENDPOINT"`
	StorageR2Region          string `env:"STORAGE_R2_REGION" envDefault:"auto"`
	StorageR2Bucket          string `env:"STORAGE_R2_BUCKET"`
	StorageR2Prefix          string `env:"STORAGE_R2_PREFIX"`
	StorageR2AccessKeyID     string `env:"STORAGE_R2_ACCESS_KEY_ID"`
	StorageR2SecretAccessKey string `env:"STORAGE_R2_SECRET_ACCESS_KEY"`

	JWTSecret     string        `env:"JWT_SECRET"`
	JWTIssuer     string        `env:"JWT_ISSUER" envDefault:"bulletin"`
	JWTExpiration time.Duration `env:"JWT_EXPIRATION" envDefault:"24h"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	LoginRatePerMinute int      `env:"LOGIN_RATE_PER_MINUTE" envDefault:"10"`

	BootstrapAdminEmail    string `env:"BOOTSTRAP_ADMIN_EMAIL"`
	BootstrapAdminPassword string `env:"BOOTSTRAP_ADMIN_PASSWORD"`
	BootstrapAdminName     string `env:"BOOTSTRAP_ADMIN_NAME" envDefault:"Administrator"`
}

// ParseConfig loads an optional .env file and then reads the environment.
func ParseConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found; relying on existing environment")
	}

	var conf Config
	if err := env.Parse(&conf); err != nil {
		logrus.WithError(err).Error("env.Parse error")
		return Config{}, err
	}
	if err := conf.Validate(); err != nil {
		return Config{}, err
	}
	return conf, nil
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.UploadMaxBytes <= 0 {
		return errors.New("UPLOAD_MAX_BYTES must be positive")
	}
	if c.DBMaxOpenConns <= 0 {
		return errors.New("DB_MAX_OPEN_CONNS must be positive")
	}
	return nil
}

// LogrusLevel maps LOG_LEVEL to a logrus level, defaulting to info.
func (c Config) LogrusLevel() logrus.Level {
	level, err := logrus.ParseLevel(strings.TrimSpace(c.LogLevel))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
