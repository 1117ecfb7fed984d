package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "STOREFRONT_CONFIG_FILE"
	envPrefix         = "STOREFRONT"
)

type Mongo struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type Auth struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type CORS struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type Cart struct {
	MaxSessions int `mapstructure:"max_sessions"`
}

type Checkout struct {
	WhatsAppPhone string `mapstructure:"whatsapp_phone"`
	Greeting      string `mapstructure:"greeting"`
}

type Catalog struct {
	FeaturedLimit int `mapstructure:"featured_limit"`
}

type Logger struct {
	Mode       string `mapstructure:"mode"`
	Level      string `mapstructure:"level"`
	FileEnable bool   `mapstructure:"file_enable"`
	Filename   string `mapstructure:"filename"`
}

type Config struct {
	HTTPAddr string   `mapstructure:"http_addr"`
	Mongo    Mongo    `mapstructure:"mongo"`
	Auth     Auth     `mapstructure:"auth"`
	CORS     CORS     `mapstructure:"cors"`
	Cart     Cart     `mapstructure:"cart"`
	Checkout Checkout `mapstructure:"checkout"`
	Catalog  Catalog  `mapstructure:"catalog"`
	Logger   Logger   `mapstructure:"logger"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_addr", ":5000")
	v.SetDefault("mongo.uri", defaultMongoURI())
	v.SetDefault("mongo.database", "storefront")
	v.SetDefault("mongo.connect_timeout", 10*time.Second)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 30*24*time.Hour)
	v.SetDefault("cors.allow_origins", []string{"*"})
	v.SetDefault("cart.max_sessions", 10000)
	v.SetDefault("checkout.whatsapp_phone", "")
	v.SetDefault("checkout.greeting", "")
	v.SetDefault("catalog.featured_limit", 6)
	v.SetDefault("logger.mode", "development")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.file_enable", false)
	v.SetDefault("logger.filename", "storefront.log")
}

// Load reads the config file named by --config (or STOREFRONT_CONFIG_FILE)
// and applies STOREFRONT_* environment overrides. A missing file is not an
// error; defaults and the environment are enough to run.
func Load(args []string) (Config, error) {
	const op = "config.Load"

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := configFilepath(args); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("%s: %w", op, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", op, err)
	}
	return cfg, nil
}

func configFilepath(args []string) string {
	cmdLine := pflag.NewFlagSet("storefront", pflag.ContinueOnError)
	cmdLine.ParseErrorsWhitelist.UnknownFlags = true
	arg := cmdLine.String("config", "", "config file")
	_ = cmdLine.Parse(args)
	if env, ok := os.LookupEnv(configFileEnvName); ok {
		return env
	}
	return *arg
}

// defaultMongoURI honours the variables older deployments were configured
// with; the config file and STOREFRONT_MONGO_URI still take precedence.
func defaultMongoURI() string {
	if uri := os.Getenv("MONGO_PUBLIC_URL"); uri != "" {
		return uri
	}
	if uri := os.Getenv("MONGO_URL"); uri != "" {
		return uri
	}
	return "mongodb://localhost:27017"
}

func (c Config) validate() error {
	switch {
	case c.Auth.JWTSecret == "":
		return errors.New("auth.jwt_secret is required")
	case c.Cart.MaxSessions <= 0:
		return errors.New("cart.max_sessions must be positive")
	case c.Mongo.Database == "":
		return errors.New("mongo.database is required")
	}
	return nil
}

// redactURI masks the password of a connection string. Unparsable values
// are hidden entirely.
func redactURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "<redacted>"
	}
	return u.Redacted()
}

func (c Config) Print() {
	template := `
	General:
	HTTPAddr=%q
	Mongo:
		URI=%q
		Database=%q
		ConnectTimeout=%s
	Auth:
		TokenTTL=%s
	CORS:
		AllowOrigins=%q
	Cart:
		MaxSessions=%d
	Checkout:
		WhatsAppPhone=%q
	Catalog:
		FeaturedLimit=%d
	Logger:
		Mode=%q
		Level=%q
		FileEnable=%t
		Filename=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(template, "\n"),
		c.HTTPAddr,
		redactURI(c.Mongo.URI),
		c.Mongo.Database,
		c.Mongo.ConnectTimeout,
		c.Auth.TokenTTL,
		c.CORS.AllowOrigins,
		c.Cart.MaxSessions,
		c.Checkout.WhatsAppPhone,
		c.Catalog.FeaturedLimit,
		c.Logger.Mode,
		c.Logger.Level,
		c.Logger.FileEnable,
		c.Logger.Filename,
	)
}
