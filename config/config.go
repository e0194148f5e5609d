package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServicePort   string
	MongoDBConfig MongoDBConfig
	KafkaConfig   KafkaConfig
	SMTPConfig    SMTPConfig
	JWTSecret     string
	TracingConfig TracingConfig

	// CleanupRemovedShadeImages controls whether blobs owned by shades that
	// disappear from an update payload are deleted after the document write.
	// Off keeps the legacy behavior of leaving them in the bucket.
	CleanupRemovedShadeImages bool
}

type MongoDBConfig struct {
	DBHost string
	DBPort string
	DBName string
}

type KafkaConfig struct {
	BrokerAddress   string
	BrokerTopic     string
	BrokerPartition int
}

type SMTPConfig struct {
	Host      string
	Port      int
	Sender    string
	Password  string
	Recipient string
}

type TracingConfig struct {
	CollectorHost string
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		ServicePort: os.Getenv("SERVICE_PORT"),
		MongoDBConfig: MongoDBConfig{
			DBHost: os.Getenv("DB_HOST"),
			DBPort: os.Getenv("DB_PORT"),
			DBName: os.Getenv("DB_NAME"),
		},
		JWTSecret: os.Getenv("JWT_SECRET"),
		KafkaConfig: KafkaConfig{
			BrokerAddress: os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:   os.Getenv("BROKER_TOPIC"),
		},
		SMTPConfig: SMTPConfig{
			Host:      os.Getenv("SMTP_HOST"),
			Sender:    os.Getenv("SMTP_SENDER"),
			Password:  os.Getenv("SMTP_PASSWORD"),
			Recipient: os.Getenv("SMTP_RECIPIENT"),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
	}

	if conf.MongoDBConfig.DBName == "" {
		conf.MongoDBConfig.DBName = "catalog"
	}

	if partition, err := strconv.Atoi(os.Getenv("BROKER_PARTITION")); err == nil {
		conf.KafkaConfig.BrokerPartition = partition
	}

	if port, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil {
		conf.SMTPConfig.Port = port
	}

	if cleanup, err := strconv.ParseBool(os.Getenv("CLEANUP_REMOVED_SHADE_IMAGES")); err == nil {
		conf.CleanupRemovedShadeImages = cleanup
	}

	return &conf
}
