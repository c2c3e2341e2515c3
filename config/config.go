package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// DefaultConfigYAML 바이너리에 내장된 기본 설정
//
//go:embed default.yaml
var DefaultConfigYAML []byte

// Config 애플리케이션 설정
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Email    EmailConfig    `mapstructure:"email"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Ingest   IngestConfig   `mapstructure:"ingest"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig 서버 설정
type ServerConfig struct {
	Port        string   `mapstructure:"port"`
	Mode        string   `mapstructure:"mode"`
	BaseURL     string   `mapstructure:"base_url"`
	CORSOrigins []string `mapstructure:"cors_origins"`

	// 로그인 시도 제한: 윈도우(초) 안에 허용하는 횟수
	LoginMaxAttempts   int `mapstructure:"login_max_attempts"`
	LoginWindowSeconds int `mapstructure:"login_window_seconds"`
}

// LoginWindow 로그인 시도 제한 윈도우
func (s ServerConfig) LoginWindow() time.Duration {
	return time.Duration(s.LoginWindowSeconds) * time.Second
}

// DatabaseConfig 데이터베이스 설정
// Driver: mysql | postgres | sqlite
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Charset  string `mapstructure:"charset"`
	SSLMode  string `mapstructure:"sslmode"`
	Path     string `mapstructure:"path"`
	LogLevel string `mapstructure:"log_level"`
}

// JWTConfig JWT 설정
type JWTConfig struct {
	Secret      string        `mapstructure:"secret"`
	ExpireHours int           `mapstructure:"expire_hours"`
	ExpireTime  time.Duration `mapstructure:"-"`
}

// EmailConfig 메일 설정
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// LLMConfig 분석 문장 생성용 언어모델 설정
// Provider 가 비어 있으면 문장 생성은 비활성화된다.
type LLMConfig struct {
	Provider       string `mapstructure:"provider"`
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// Timeout 요청 타임아웃
func (c LLMConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 120 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// IngestConfig 업로드 처리 설정
type IngestConfig struct {
	ChunkSize       int  `mapstructure:"chunk_size"`
	ReplaceExisting bool `mapstructure:"replace_existing"`
	MaxUploadMB     int  `mapstructure:"max_upload_mb"`
}

// LogConfig 로그 설정
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig 설정 로드
// 우선순위: 환경변수 > 외부 설정 파일 > 내장 기본 설정
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("내장 설정 읽기 실패: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			log.Warn().Err(err).Str("path", configPath).Msg("지정한 설정 파일을 읽을 수 없습니다")
		} else {
			log.Info().Str("path", configPath).Msg("외부 설정 파일 병합")
		}
	} else {
		external := viper.New()
		external.SetConfigName("config")
		external.SetConfigType("yaml")
		external.AddConfigPath(".")
		external.AddConfigPath("./config")
		external.AddConfigPath("/etc/salonledger")
		external.AddConfigPath("$HOME/.salonledger")

		if err := external.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(external.AllSettings()); err != nil {
				log.Warn().Err(err).Msg("외부 설정 병합 실패")
			} else {
				log.Info().Str("path", external.ConfigFileUsed()).Msg("외부 설정 파일 병합")
			}
		}
	}

	v.SetEnvPrefix("SALON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("설정 파싱 실패: %w", err)
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// MustLoadConfig 설정 로드, 실패 시 panic
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("설정 로드 실패: %v", err))
	}
	return cfg
}

func (c *Config) applyDefaults() {
	if c.JWT.ExpireHours <= 0 {
		c.JWT.ExpireHours = 24
	}
	c.JWT.ExpireTime = time.Duration(c.JWT.ExpireHours) * time.Hour

	if c.Ingest.ChunkSize <= 0 {
		c.Ingest.ChunkSize = 500
	}
	if c.Ingest.MaxUploadMB <= 0 {
		c.Ingest.MaxUploadMB = 20
	}
	if c.Server.LoginMaxAttempts <= 0 {
		c.Server.LoginMaxAttempts = 10
	}
	if c.Server.LoginWindowSeconds <= 0 {
		c.Server.LoginWindowSeconds = 300
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "mysql"
	}
}

// SafeErrorMessage release 모드에서는 내부 오류 내용을 클라이언트에 노출하지 않는다
func (c *Config) SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if c != nil && c.Server.Mode == "release" {
		return fallback
	}
	return err.Error()
}

// PrintConfig 현재 설정 출력 (민감 정보 제외)
func (c *Config) PrintConfig() {
	log.Info().
		Str("port", c.Server.Port).
		Str("mode", c.Server.Mode).
		Msg("서버 설정")
	log.Info().
		Str("driver", c.Database.Driver).
		Str("target", c.Database.Username+"@"+c.Database.Host+":"+c.Database.Port+"/"+c.Database.DBName).
		Msg("데이터베이스 설정")
	log.Info().
		Bool("email", c.Email.Enabled).
		Str("llm", c.LLM.Provider).
		Bool("replace_existing", c.Ingest.ReplaceExisting).
		Msg("부가 기능")
}
