package config

import (
	"fmt"
	"time"

	"orrery-server/internal/shared/utils"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Auth       AuthConfig
	Frontend   FrontendConfig
	Logging    LoggingConfig
	RateLimit  RateLimitConfig
	Simulation SimulationConfig
	Camera     CameraConfig
}

type ServerConfig struct {
	Port         string
	URL          string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Enabled         bool
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MigrationsPath  string
}

type RedisConfig struct {
	Enabled  bool
	URL      string
	Host     string
	Port     string
	Password string
	DB       int
}

type AuthConfig struct {
	ControlSecret   string
	TokenExpiration time.Duration
}

type FrontendConfig struct {
	URL       string
	CORSDebug bool
}

type LoggingConfig struct {
	Level      string
	Format     string
	JSONFormat bool
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
	TrustProxy        bool
}

// SimulationConfig controls the frame loop, the asteroid belt and asset loading
type SimulationConfig struct {
	FrameRate      float64
	StreamRate     float64
	AsteroidCount  int
	AsteroidSeed   uint64
	AssetDir       string
	EnvironmentMap string
}

type CameraConfig struct {
	FOV       float64
	Near      float64
	Far       float64
	PositionX float64
	PositionY float64
	PositionZ float64
}

var GlobalConfig *Config

func Init() error {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	config, err := load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := config.validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	GlobalConfig = config
	return nil
}

func load() (*Config, error) {
	config := &Config{
		Server:     loadServerConfig(),
		Database:   loadDatabaseConfig(),
		Redis:      loadRedisConfig(),
		Auth:       loadAuthConfig(),
		Frontend:   loadFrontendConfig(),
		Logging:    loadLoggingConfig(),
		RateLimit:  loadRateLimitConfig(),
		Simulation: loadSimulationConfig(),
		Camera:     loadCameraConfig(),
	}

	return config, nil
}

func loadServerConfig() ServerConfig {
	readTimeout := utils.GetEnvInt("SERVER_READ_TIMEOUT_SECONDS", 15)
	writeTimeout := utils.GetEnvInt("SERVER_WRITE_TIMEOUT_SECONDS", 15)
	idleTimeout := utils.GetEnvInt("SERVER_IDLE_TIMEOUT_SECONDS", 60)

	return ServerConfig{
		Port:         utils.GetEnv("SERVER_PORT", "8080"),
		URL:          utils.GetEnv("SERVER_URL", "http://localhost:8080"),
		Environment:  utils.GetEnv("ENVIRONMENT", "development"),
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
		IdleTimeout:  time.Duration(idleTimeout) * time.Second,
	}
}

func loadDatabaseConfig() DatabaseConfig {
	connMaxLifetime := utils.GetEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 5)

	return DatabaseConfig{
		Enabled:         utils.GetEnv("DB_ENABLED", "false") == "true",
		Host:            utils.GetEnv("DB_HOST", "localhost"),
		Port:            utils.GetEnv("DB_PORT", "5432"),
		User:            utils.GetEnv("DB_USER", "postgres"),
		Password:        utils.GetEnv("DB_PASSWORD", "postgres"),
		Name:            utils.GetEnv("DB_NAME", "orrery"),
		SSLMode:         utils.GetEnv("DB_SSLMODE", "disable"),
		MaxOpenConns:    utils.GetEnvInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    utils.GetEnvInt("DB_MAX_IDLE_CONNS", 2),
		ConnMaxLifetime: time.Duration(connMaxLifetime) * time.Minute,
		MigrationsPath:  utils.GetEnv("DB_MIGRATIONS_PATH", "migrations"),
	}
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		Enabled:  utils.GetEnv("REDIS_ENABLED", "false") == "true",
		URL:      utils.GetEnv("REDIS_URL", ""),
		Host:     utils.GetEnv("REDIS_HOST", "localhost"),
		Port:     utils.GetEnv("REDIS_PORT", "6379"),
		Password: utils.GetEnv("REDIS_PASSWORD", ""),
		DB:       utils.GetEnvInt("REDIS_DB", 0),
	}
}

func loadAuthConfig() AuthConfig {
	tokenExpiration := utils.GetEnvInt("CONTROL_TOKEN_EXPIRATION_HOURS", 24)

	return AuthConfig{
		ControlSecret:   utils.GetEnv("CONTROL_SECRET", ""),
		TokenExpiration: time.Duration(tokenExpiration) * time.Hour,
	}
}

func loadFrontendConfig() FrontendConfig {
	return FrontendConfig{
		URL:       utils.GetEnv("FRONTEND_URL", "http://localhost:5173"),
		CORSDebug: utils.GetEnv("CORS_DEBUG", "") == "true",
	}
}

func loadLoggingConfig() LoggingConfig {
	environment := utils.GetEnv("ENVIRONMENT", "development")
	format := utils.GetEnv("LOG_FORMAT", "text")

	return LoggingConfig{
		Level:      utils.GetEnv("LOG_LEVEL", "debug"),
		Format:     format,
		JSONFormat: environment == "production" || format == "json",
	}
}

func loadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:           utils.GetEnv("RATE_LIMIT_ENABLED", "true") == "true",
		RequestsPerSecond: utils.GetEnvFloat("RATE_LIMIT_REQUESTS_PER_SECOND", 10),
		BurstSize:         utils.GetEnvInt("RATE_LIMIT_BURST_SIZE", 20),
		TrustProxy:        utils.GetEnvBool("RATE_LIMIT_TRUST_PROXY", false),
	}
}

func loadSimulationConfig() SimulationConfig {
	return SimulationConfig{
		FrameRate:      utils.GetEnvFloat("SIM_FRAME_RATE", 60),
		StreamRate:     utils.GetEnvFloat("SIM_STREAM_RATE", 30),
		AsteroidCount:  utils.GetEnvInt("SIM_ASTEROID_COUNT", 1000),
		AsteroidSeed:   uint64(utils.GetEnvInt("SIM_ASTEROID_SEED", 0)),
		AssetDir:       utils.GetEnv("SIM_ASSET_DIR", "static"),
		EnvironmentMap: utils.GetEnv("SIM_ENVIRONMENT_MAP", "textures/background/HDR_hazy_nebulae_4k.hdr"),
	}
}

func loadCameraConfig() CameraConfig {
	return CameraConfig{
		FOV:       utils.GetEnvFloat("CAMERA_FOV", 75),
		Near:      utils.GetEnvFloat("CAMERA_NEAR", 0.1),
		Far:       utils.GetEnvFloat("CAMERA_FAR", 1000),
		PositionX: utils.GetEnvFloat("CAMERA_POSITION_X", 0),
		PositionY: utils.GetEnvFloat("CAMERA_POSITION_Y", 1.25),
		PositionZ: utils.GetEnvFloat("CAMERA_POSITION_Z", 14),
	}
}

func (c *Config) validate() error {
	if c.Auth.ControlSecret == "" {
		return fmt.Errorf("CONTROL_SECRET is required")
	}

	if len(c.Auth.ControlSecret) < 32 {
		return fmt.Errorf("CONTROL_SECRET must be at least 32 characters long")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.Enabled && c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required when the database is enabled")
	}

	if c.Simulation.FrameRate <= 0 {
		return fmt.Errorf("SIM_FRAME_RATE must be positive")
	}

	if c.Simulation.StreamRate <= 0 {
		return fmt.Errorf("SIM_STREAM_RATE must be positive")
	}

	if c.Simulation.AsteroidCount < 0 {
		return fmt.Errorf("SIM_ASTEROID_COUNT must not be negative")
	}

	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("CAMERA_FOV must be between 0 and 180 degrees")
	}

	return nil
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
