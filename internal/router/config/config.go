package config

import "github.com/spf13/viper"

// Config - структура для хранения конфигураций приложения
type Config struct {
	ServerAddress        string `mapstructure:"SERVER_ADDRESS"`
	PostgresConn         string `mapstructure:"POSTGRES_CONN"`
	MigrationURL         string `mapstructure:"MIGRATION_URL"`
	JWTSecret            string `mapstructure:"JWT_SECRET"`
	AccessTokenDuration  string `mapstructure:"ACCESS_TOKEN_DURATION"`
	RefreshTokenDuration string `mapstructure:"REFRESH_TOKEN_DURATION"`
	UploadDir            string `mapstructure:"UPLOAD_DIR"`
	SMTPHost             string `mapstructure:"SMTP_HOST"`
	SMTPPort             string `mapstructure:"SMTP_PORT"`
	SMTPUsername         string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword         string `mapstructure:"SMTP_PASSWORD"`
}

// LoadConfig загружает конфигурацию из файла
func LoadConfig(path string) (cfg Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	err = viper.ReadInConfig()
	if err != nil {
		return
	}
	err = viper.Unmarshal(&cfg)
	return
}
