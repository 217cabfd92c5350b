package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string            `yaml:"env" env-default:"local"`
	ConfigDir   string            `yaml:"config_dir" env-default:"config"`
	Categories  []string          `yaml:"categories" env-default:"landscape,portrait,snapshot,other"`
	HTTP        HTTPConfig        `yaml:"http"`
	FileStorage FileStorageConfig `yaml:"file_storage"`
	Admin       AdminConfig       `yaml:"admin"`
	Thumbnail   ThumbnailConfig   `yaml:"thumbnail"`
}

type HTTPConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port" env-default:"8080"`
}

type FileStorageConfig struct {
	BaseDir string `yaml:"base_dir" env-default:"uploads"`
	BaseURL string `yaml:"base_url" env-default:"/uploads"`
	MaxSize int64  `yaml:"max_size" env-default:"33554432"`
}

type AdminConfig struct {
	PasswordHash  string        `yaml:"password_hash" env:"ADMIN_PASSWORD_HASH" env-required:"true"`
	SessionSecret string        `yaml:"session_secret" env:"SESSION_SECRET" env-required:"true"`
	TokenSecret   string        `yaml:"token_secret" env:"TOKEN_SECRET" env-required:"true"`
	TokenTTL      time.Duration `yaml:"token_ttl" env-default:"12h"`
}

type ThumbnailConfig struct {
	MaxWidth       int           `yaml:"max_width" env-default:"300"`
	MaxHeight      int           `yaml:"max_height" env-default:"300"`
	OptimizeMaxDim int           `yaml:"optimize_max_dim" env-default:"1600"`
	Quality        int           `yaml:"quality" env-default:"85"`
	CacheTTL       time.Duration `yaml:"cache_ttl" env-default:"30m"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
