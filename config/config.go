package config

import (
	"log"
	"sync"
	"time"

	"github.com/MichaelMansour256/Diwan-Mansour/pkg/kafka"
	"github.com/MichaelMansour256/Diwan-Mansour/pkg/logger"
	"github.com/MichaelMansour256/Diwan-Mansour/pkg/postgres"
	"github.com/kelseyhightower/envconfig"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"HTTP_HOST"`
	Port         string        `yaml:"port" envconfig:"HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"10s"`
	WriteTimeout time.Duration
}

// Identity is the remote credential check. The endpoint is opaque: it takes
// an email/password pair and answers success or failure.
type Identity struct {
	URL string `yaml:"url" envconfig:"IDENTITY_URL"`
}

type ImageStore struct {
	URL string `yaml:"url" envconfig:"IMAGE_STORE_URL" default:"https://api.imgbb.com/1/upload"`
	Key string `yaml:"key" envconfig:"IMAGE_STORE_KEY"`
}

type Checkout struct {
	WhatsAppNumber string `yaml:"whatsappNumber" envconfig:"WHATSAPP_NUMBER" default:"201201129135"`
}

type Sweep struct {
	Interval       time.Duration `yaml:"interval" envconfig:"SWEEP_INTERVAL" default:"30m"`
	ReservationTTL time.Duration `yaml:"reservationTTL" envconfig:"RESERVATION_TTL" default:"24h"`
}

type Config struct {
	Server     HTTPServer  `yaml:"server"`
	Database   postgres.DB `yaml:"db"`
	Kafka      kafka.Config
	Identity   Identity   `yaml:"identity"`
	ImageStore ImageStore `yaml:"imageStore"`
	Checkout   Checkout   `yaml:"checkout"`
	Sweep      Sweep      `yaml:"sweep"`
	Log        logger.Log `yaml:"log"`
	JWTKey     string     `envconfig:"JWT_KEY" default:"dm-admin-secret"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = &config
	})

	return cfg
}
