package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTPConfig      HTTPConfig      `yaml:"http"`
	ServerConfig    ServerConfig    `yaml:"server"`
	SourcesConfig   SourcesConfig   `yaml:"sources"`
	ReadinessConfig ReadinessConfig `yaml:"readiness"`
	LogConfig       LogConfig       `yaml:"log"`
	SiteName        string          `yaml:"site_name"`
}

type HTTPConfig struct {
	Timeout         time.Duration `yaml:"timeout"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	MaxConnsPerHost int           `yaml:"max_conns_per_host"`
	UserAgent       string        `yaml:"user_agent"`
	IdleConnTimeout time.Duration `yaml:"idle_conn_timeout"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	CondolenceRate  float64       `yaml:"condolence_rate_per_min"`
	CondolenceBurst int           `yaml:"condolence_burst"`
	PerPage         int           `yaml:"per_page"`
}

type SourcesConfig struct {
	ManifestLocation string        `yaml:"manifest_location"`
	LocalCacheDir    string        `yaml:"local_cache_dir"`
	LocalCacheKey    string        `yaml:"local_cache_key"`
	LocalCacheTTL    time.Duration `yaml:"local_cache_ttl"`
	RefreshInterval  time.Duration `yaml:"refresh_interval"`
}

type ReadinessConfig struct {
	PollInterval  time.Duration `yaml:"poll_interval"`
	MaxPolls      int           `yaml:"max_polls"`
	ProbeAttempts int           `yaml:"probe_attempts"`
	ProbeDelay    time.Duration `yaml:"probe_delay"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type DbConfig struct {
	Backend       string `yaml:"backend"`
	Driver        string `yaml:"driver"`
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	User          string `yaml:"user"`
	Password      string `yaml:"-"`
	DBName        string `yaml:"db_name"`
	DSN           string `yaml:"-"`
	MongoURI      string `yaml:"-"`
	MongoDatabase string `yaml:"mongo_database"`
	Timezone      string `yaml:"timezone"`
}

const (
	BackendNone  = "none"
	BackendSQL   = "sql"
	BackendMongo = "mongo"
)

func NewConfig(v *viper.Viper) *Config {
	v.AutomaticEnv()
	httptimeout := LoadDefaultInt(v, "HTTP_TIMEOUT_SECS", 30)
	maxidleconns := LoadDefaultInt(v, "HTTP_MAX_IDLE_CONNS", 100)
	maxconnsperhost := LoadDefaultInt(v, "HTTP_MAX_CONNS_PER_HOST", 10)
	idleconntimeout := LoadDefaultInt(v, "HTTP_IDLE_CONN_TIMEOUT_SECS", 30)
	useragent := LoadDefaultString(v, "HTTP_USER_AGENT", "goobituaries/1.0")
	addr := LoadDefaultString(v, "SERVER_ADDR", ":8080")
	readtimeout := LoadDefaultInt(v, "SERVER_READ_TIMEOUT_SECS", 10)
	writetimeout := LoadDefaultInt(v, "SERVER_WRITE_TIMEOUT_SECS", 10)
	condolencerate := LoadDefaultInt(v, "CONDOLENCE_RATE_PER_MIN", 6)
	condolenceburst := LoadDefaultInt(v, "CONDOLENCE_BURST", 3)
	perpage := LoadDefaultInt(v, "OBITUARIES_PER_PAGE", 6)
	manifest := LoadDefaultString(v, "MANIFEST_LOCATION", "data/necrologi.json")
	localdir := LoadDefaultString(v, "LOCAL_CACHE_DIR", ".necrologi-cache")
	localkey := LoadDefaultString(v, "LOCAL_CACHE_KEY", "adminObituaries")
	localttl := LoadDefaultInt(v, "LOCAL_CACHE_TTL_SECS", 30)
	refresh := LoadDefaultInt(v, "SNAPSHOT_REFRESH_SECS", 300)
	pollinterval := LoadDefaultInt(v, "READINESS_POLL_INTERVAL_MS", 300)
	maxpolls := LoadDefaultInt(v, "READINESS_MAX_POLLS", 20)
	probeattempts := LoadDefaultInt(v, "READINESS_PROBE_ATTEMPTS", 3)
	probedelay := LoadDefaultInt(v, "READINESS_PROBE_DELAY_MS", 1000)
	return &Config{
		HTTPConfig: HTTPConfig{
			Timeout:         time.Duration(httptimeout) * time.Second,
			MaxIdleConns:    maxidleconns,
			MaxConnsPerHost: maxconnsperhost,
			UserAgent:       useragent,
			IdleConnTimeout: time.Duration(idleconntimeout) * time.Second,
		},
		ServerConfig: ServerConfig{
			Addr:            addr,
			ReadTimeout:     time.Duration(readtimeout) * time.Second,
			WriteTimeout:    time.Duration(writetimeout) * time.Second,
			CondolenceRate:  float64(condolencerate),
			CondolenceBurst: condolenceburst,
			PerPage:         perpage,
		},
		SourcesConfig: SourcesConfig{
			ManifestLocation: manifest,
			LocalCacheDir:    localdir,
			LocalCacheKey:    localkey,
			LocalCacheTTL:    time.Duration(localttl) * time.Second,
			RefreshInterval:  time.Duration(refresh) * time.Second,
		},
		ReadinessConfig: ReadinessConfig{
			PollInterval:  time.Duration(pollinterval) * time.Millisecond,
			MaxPolls:      maxpolls,
			ProbeAttempts: probeattempts,
			ProbeDelay:    time.Duration(probedelay) * time.Millisecond,
		},
		LogConfig: LogConfig{
			Level:       LoadDefaultString(v, "LOG_LEVEL", "info"),
			Development: LoadDefaultBool(v, "LOG_DEVELOPMENT", false),
		},
		SiteName: LoadDefaultString(v, "SITE_NAME", "Onoranze Funebri Santaniello"),
	}
}

func NewDbConfig(v *viper.Viper) *DbConfig {
	v.AutomaticEnv()
	driver := strings.ToLower(LoadDefaultString(v, "DB_DRIVER", "sqlserver"))
	return &DbConfig{
		Backend:       strings.ToLower(LoadDefaultString(v, "REMOTE_BACKEND", BackendNone)),
		Driver:        driver,
		Host:          LoadDefaultString(v, "DB_HOST", "localhost"),
		Port:          LoadDefaultInt(v, "DB_PORT", defaultPort(driver)),
		User:          v.GetString("DB_USER"),
		Password:      v.GetString("DB_PASSWORD"),
		DBName:        LoadDefaultString(v, "DB_NAME", "necrologi"),
		DSN:           v.GetString("DB_DSN"),
		MongoURI:      LoadDefaultString(v, "MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: LoadDefaultString(v, "MONGO_DATABASE", "necrologi"),
		Timezone:      LoadDefaultString(v, "DB_TIMEZONE", "Europe/Rome"),
	}
}

func defaultPort(driver string) int {
	switch driver {
	case "postgres":
		return 5432
	default:
		return 1433
	}
}

func LoadDefaultInt(v *viper.Viper, name string, defaultValue int) int {
	value, err := strconv.Atoi(strings.TrimSpace(v.GetString(name)))
	if err != nil {
		return defaultValue
	}
	return value
}

func LoadDefaultString(v *viper.Viper, name string, defaultValue string) string {
	value := v.GetString(name)
	if value == "" {
		return defaultValue
	}
	return value
}

func LoadDefaultBool(v *viper.Viper, name string, defaultValue bool) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(v.GetString(name)))
	if err != nil {
		return defaultValue
	}
	return value
}
