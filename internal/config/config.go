/**
 * @description
 * Configuration management for the insights-service.
 */
package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	ServerPort     string `mapstructure:"SERVER_PORT"`
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	RabbitMQURL    string `mapstructure:"RABBITMQ_URL"`
	InternalAPIKey string `mapstructure:"INTERNAL_API_KEY"`
	EventExchange  string `mapstructure:"EVENT_EXCHANGE"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (config Config, err error) {
	viper.SetDefault("SERVER_PORT", "8086")
	viper.SetDefault("EVENT_EXCHANGE", "insights_events")
	viper.AutomaticEnv()

	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("PORT")
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("INTERNAL_API_KEY")
	_ = viper.BindEnv("EVENT_EXCHANGE")

	if err = viper.Unmarshal(&config); err != nil {
		return
	}
	if port := os.Getenv("PORT"); port != "" {
		config.ServerPort = port
	}
	if config.DatabaseURL == "" {
		err = errors.New("DATABASE_URL must be set")
	}
	return
}
