package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"` // "sqlite:<file>" selects sqlite, otherwise postgres
	} `yaml:"database"`

	Email struct {
		Mode         string `yaml:"mode"` // smtp, log
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		UseTLS       bool   `yaml:"use_tls"`
		TemplatesDir string `yaml:"templates_dir"`
	} `yaml:"email"`

	JWT struct {
		Secret   string `yaml:"secret"`
		TTLHours int    `yaml:"ttl_hours"`
	} `yaml:"jwt"`

	Storage struct {
		Type       string `yaml:"type"`        // local, s3, cloudflare_r2
		BasePath   string `yaml:"base_path"`   // For local storage
		BaseURL    string `yaml:"base_url"`    // Public URL base for mirrored objects
		Bucket     string `yaml:"bucket"`      // For S3/R2
		Region     string `yaml:"region"`      // For S3
		AccessKey  string `yaml:"access_key"`  // For S3/R2
		SecretKey  string `yaml:"secret_key"`  // For S3/R2
		Endpoint   string `yaml:"endpoint"`    // For R2 or custom S3
		PublicRead bool   `yaml:"public_read"` // Make objects public
	} `yaml:"storage"`

	Upload struct {
		Root         string              `yaml:"root"`
		PublicPrefix string              `yaml:"public_prefix"`
		MaxSize      int64               `yaml:"max_size"`
		Allowed      map[string][]string `yaml:"allowed"` // category -> extensions
	} `yaml:"upload"`

	Media struct {
		FFmpegPath        string `yaml:"ffmpeg_path"`
		FFprobePath       string `yaml:"ffprobe_path"`
		PdftoppmPath      string `yaml:"pdftoppm_path"`
		MaxDimension      int    `yaml:"max_dimension"`
		ThumbnailSize     int    `yaml:"thumbnail_size"`
		JPEGQuality       int    `yaml:"jpeg_quality"`
		PDFDPI            int    `yaml:"pdf_dpi"`
		VideoPlaceholder  string `yaml:"video_placeholder"`
		PDFPlaceholder    string `yaml:"pdf_placeholder"`
		StaticDir         string `yaml:"static_dir"`
		ProcessTimeoutSec int    `yaml:"process_timeout"`
	} `yaml:"media"`

	Transcription struct {
		Engine            string `yaml:"engine"` // whisper, google, none
		Model             string `yaml:"model"`  // tiny, base, small, medium, large
		Language          string `yaml:"language"`
		WhisperPath       string `yaml:"whisper_path"`
		GoogleCredentials string `yaml:"google_credentials"`
	} `yaml:"transcription"`

	RateLimit struct {
		Backend            string `yaml:"backend"` // memory, redis
		RedisAddr          string `yaml:"redis_addr"`
		RedisPassword      string `yaml:"redis_password"`
		PostsPerHour       int    `yaml:"posts_per_hour"`
		CommentsPerHour    int    `yaml:"comments_per_hour"`
		LoginAttempts      int    `yaml:"login_attempts"`
		LoginWindowMinutes int    `yaml:"login_window_minutes"`
	} `yaml:"rate_limit"`

	Security struct {
		IFSPEmailDomain   string `yaml:"ifsp_email_domain"`
		BPRegex           string `yaml:"bp_regex"`
		AutoHideThreshold int    `yaml:"auto_hide_threshold"`
	} `yaml:"security"`

	CORS struct {
		Origins []string `yaml:"origins"`
	} `yaml:"cors"`

	FirstAdmin struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"first_admin"`

	Workers struct {
		CleanupIntervalMinutes int `yaml:"cleanup_interval_minutes"`
	} `yaml:"workers"`
}

var AppConfig *Config

// LoadConfig читает config.yaml, либо переменные окружения, если задан DATABASE_URL.
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}
		log.Printf("Loading configuration from %s", configPath)

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		cfg.ApplyDefaults()
		AppConfig = &cfg
		return
	}

	log.Println("Loading configuration from environment variables")
	AppConfig = FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() *Config {
	var cfg Config

	cfg.Database.DSN = os.Getenv("DATABASE_URL")
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port = envInt("SERVER_PORT", 0)
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTLHours = envInt("JWT_EXPIRATION_HOURS", 0)

	cfg.Email.Mode = os.Getenv("EMAIL_MODE")
	cfg.Email.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.Email.SMTPPort = envInt("SMTP_PORT", 0)
	cfg.Email.SMTPUsername = os.Getenv("SMTP_USER")
	cfg.Email.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.Email.FromEmail = os.Getenv("EMAIL_FROM")
	cfg.Email.UseTLS = os.Getenv("SMTP_USE_TLS") == "true"
	cfg.Email.TemplatesDir = os.Getenv("TEMPLATES_DIR")

	cfg.Storage.Type = os.Getenv("STORAGE_TYPE")
	cfg.Storage.Bucket = os.Getenv("STORAGE_BUCKET")
	cfg.Storage.Region = os.Getenv("STORAGE_REGION")
	cfg.Storage.AccessKey = os.Getenv("STORAGE_ACCESS_KEY")
	cfg.Storage.SecretKey = os.Getenv("STORAGE_SECRET_KEY")
	cfg.Storage.Endpoint = os.Getenv("STORAGE_ENDPOINT")
	cfg.Storage.BaseURL = os.Getenv("STORAGE_BASE_URL")

	cfg.Upload.Root = os.Getenv("UPLOAD_FOLDER")
	cfg.Upload.MaxSize = int64(envInt("MAX_FILE_SIZE", 0))
	cfg.Upload.Allowed = map[string][]string{}
	for category, key := range map[string]string{
		"imagem": "ALLOWED_IMAGE_FORMATS",
		"video":  "ALLOWED_VIDEO_FORMATS",
		"audio":  "ALLOWED_AUDIO_FORMATS",
		"pdf":    "ALLOWED_DOC_FORMATS",
	} {
		if v := os.Getenv(key); v != "" {
			cfg.Upload.Allowed[category] = splitList(v)
		}
	}

	cfg.Media.StaticDir = os.Getenv("STATIC_DIR")

	cfg.Transcription.Engine = os.Getenv("TRANSCRIPTION_ENGINE")
	cfg.Transcription.Model = os.Getenv("WHISPER_MODEL")
	cfg.Transcription.GoogleCredentials = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")

	cfg.RateLimit.Backend = os.Getenv("RATE_LIMIT_BACKEND")
	cfg.RateLimit.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.RateLimit.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RateLimit.PostsPerHour = envInt("RATE_LIMIT_POSTS_PER_HOUR", 0)
	cfg.RateLimit.CommentsPerHour = envInt("RATE_LIMIT_COMMENTS_PER_HOUR", 0)
	cfg.RateLimit.LoginAttempts = envInt("RATE_LIMIT_LOGIN_ATTEMPTS", 0)

	cfg.Security.IFSPEmailDomain = os.Getenv("IFSP_EMAIL_DOMAIN")
	cfg.Security.BPRegex = os.Getenv("BP_REGEX")
	cfg.Security.AutoHideThreshold = envInt("AUTO_HIDE_THRESHOLD", 0)

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORS.Origins = splitList(v)
	}

	cfg.FirstAdmin.Email = os.Getenv("FIRST_ADMIN_EMAIL")
	cfg.FirstAdmin.Password = os.Getenv("FIRST_ADMIN_PASSWORD")
	cfg.Workers.CleanupIntervalMinutes = envInt("CLEANUP_INTERVAL_MINUTES", 0)

	cfg.ApplyDefaults()
	return &cfg
}

// ApplyDefaults fills every zero value with its production default.
func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.JWT.TTLHours == 0 {
		c.JWT.TTLHours = 24
	}
	if c.Email.Mode == "" {
		c.Email.Mode = "log"
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 465
	}
	if c.Email.FromEmail == "" {
		c.Email.FromEmail = "noreply@ifsp.edu.br"
	}
	if c.Email.FromName == "" {
		c.Email.FromName = "Mural IFSP"
	}
	if c.Storage.Type == "" {
		c.Storage.Type = "local"
	}

	if c.Upload.Root == "" {
		c.Upload.Root = "./static/uploads"
	}
	if c.Storage.BasePath == "" {
		c.Storage.BasePath = c.Upload.Root
	}
	if c.Upload.PublicPrefix == "" {
		c.Upload.PublicPrefix = "/static/uploads"
	}
	if c.Upload.MaxSize == 0 {
		c.Upload.MaxSize = DefaultMaxUploadSize
	}
	if c.Upload.Allowed == nil {
		c.Upload.Allowed = map[string][]string{}
	}
	for category, exts := range DefaultAllowedExtensions {
		if len(c.Upload.Allowed[category]) == 0 {
			c.Upload.Allowed[category] = exts
		}
	}

	if c.Media.FFmpegPath == "" {
		c.Media.FFmpegPath = "ffmpeg"
	}
	if c.Media.FFprobePath == "" {
		c.Media.FFprobePath = "ffprobe"
	}
	if c.Media.PdftoppmPath == "" {
		c.Media.PdftoppmPath = "pdftoppm"
	}
	if c.Media.MaxDimension == 0 {
		c.Media.MaxDimension = 1920
	}
	if c.Media.ThumbnailSize == 0 {
		c.Media.ThumbnailSize = 400
	}
	if c.Media.JPEGQuality == 0 {
		c.Media.JPEGQuality = 85
	}
	if c.Media.PDFDPI == 0 {
		c.Media.PDFDPI = 150
	}
	if c.Media.VideoPlaceholder == "" {
		c.Media.VideoPlaceholder = "/static/images/video-placeholder.png"
	}
	if c.Media.PDFPlaceholder == "" {
		c.Media.PDFPlaceholder = "/static/images/pdf-placeholder.png"
	}
	if c.Media.StaticDir == "" {
		c.Media.StaticDir = "./static"
	}
	if c.Media.ProcessTimeoutSec == 0 {
		c.Media.ProcessTimeoutSec = 120
	}

	if c.Transcription.Engine == "" {
		c.Transcription.Engine = "whisper"
	}
	if c.Transcription.Model == "" {
		c.Transcription.Model = "base"
	}
	if c.Transcription.Language == "" {
		c.Transcription.Language = "pt"
	}
	if c.Transcription.WhisperPath == "" {
		c.Transcription.WhisperPath = "whisper"
	}

	if c.RateLimit.Backend == "" {
		c.RateLimit.Backend = "memory"
	}
	if c.RateLimit.PostsPerHour == 0 {
		c.RateLimit.PostsPerHour = 10
	}
	if c.RateLimit.CommentsPerHour == 0 {
		c.RateLimit.CommentsPerHour = 50
	}
	if c.RateLimit.LoginAttempts == 0 {
		c.RateLimit.LoginAttempts = 5
	}
	if c.RateLimit.LoginWindowMinutes == 0 {
		c.RateLimit.LoginWindowMinutes = 15
	}

	if c.Security.IFSPEmailDomain == "" {
		c.Security.IFSPEmailDomain = "@aluno.ifsp.edu.br"
	}
	if c.Security.BPRegex == "" {
		c.Security.BPRegex = DefaultBPRegex
	}
	if c.Security.AutoHideThreshold == 0 {
		c.Security.AutoHideThreshold = 3
	}

	if len(c.CORS.Origins) == 0 {
		c.CORS.Origins = []string{"http://localhost:5000"}
	}

	if c.Workers.CleanupIntervalMinutes == 0 {
		c.Workers.CleanupIntervalMinutes = 30
	}
}

func (c *Config) JWTTTL() time.Duration {
	return time.Duration(c.JWT.TTLHours) * time.Hour
}

func (c *Config) ProcessTimeout() time.Duration {
	return time.Duration(c.Media.ProcessTimeoutSec) * time.Second
}

func (c *Config) LoginWindow() time.Duration {
	return time.Duration(c.RateLimit.LoginWindowMinutes) * time.Minute
}

func (c *Config) CleanupInterval() time.Duration {
	return time.Duration(c.Workers.CleanupIntervalMinutes) * time.Minute
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Ignoring invalid integer in %s: %q", key, v)
		return def
	}
	return n
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
