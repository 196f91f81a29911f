package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// ResubmitPolicy values for the submission ledger. Upsert overwrites the row
// for (user, test, question); append keeps every row and finalize takes the
// latest submission per question.
const (
	ResubmitUpsert = "upsert"
	ResubmitAppend = "append"
)

type Config struct {
	Server    Server
	Database  Database
	JWTSecret string
	Scoring   Scoring
}

type Server struct {
	Port string
}
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}
type Scoring struct {
	ResubmitPolicy string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SCORING_RESUBMIT_POLICY", ResubmitUpsert)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.JWTSecret = viper.GetString("JWT_SECRET")
	config.Scoring.ResubmitPolicy = viper.GetString("SCORING_RESUBMIT_POLICY")

	if config.Scoring.ResubmitPolicy != ResubmitUpsert && config.Scoring.ResubmitPolicy != ResubmitAppend {
		log.Warn().Str("policy", config.Scoring.ResubmitPolicy).Msg("Unknown resubmit policy, falling back to upsert")
		config.Scoring.ResubmitPolicy = ResubmitUpsert
	}

	log.Info().Str("port", config.Server.Port).Str("resubmit_policy", config.Scoring.ResubmitPolicy).Msg("Config loaded")
	return &config, nil
}
