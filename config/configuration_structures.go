package config

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
	Local    bool   `yaml:"local"`
}

type JWTConfig struct {
	SecretKey      string `yaml:"secret_key"`
	AccessTokenTTL string `yaml:"access_token_ttl"`
}

// SecretLinkConfig : ключ подписи/шифрования токенов и время жизни токена подтверждения email
type SecretLinkConfig struct {
	SecretKey            string `yaml:"secret_key"`
	EmailConfirmationTTL string `yaml:"email_confirmation_ttl"`
	LinkEndpoint         string `yaml:"link_endpoint"`
}

// SiteConfig : используется при построении абсолютных ссылок в письмах
type SiteConfig struct {
	BaseURL    string `yaml:"base_url"`
	ForceHTTPS bool   `yaml:"force_https"`
}

type MailConfig struct {
	From      string `yaml:"from"`
	OutboxKey string `yaml:"outbox_key"`
}

type TTL struct {
	S3AndRedis int `yaml:"S3AndRedis"`
}
