package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/reusedev/meme-hub/internal/consts"
	"github.com/reusedev/meme-hub/internal/modules/ai"
	"gopkg.in/yaml.v3"
)

var GConfig *Config

// Init loads and verifies filePath into GConfig. A missing file leaves every setting at
// its default.
func Init(filePath string) error {
	cfg, err := Load(filePath)
	if err != nil {
		return err
	}
	if err := cfg.Verify(); err != nil {
		return err
	}
	GConfig = cfg
	return nil
}

// Load reads filePath without verifying it, so callers can lay overrides on top first.
func Load(filePath string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(filePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read settings: %w", err)
	default:
		if err := initFromYaml(data, cfg); err != nil {
			return nil, err
		}
	}
	cfg.applyDefaults()
	return cfg, nil
}

func initFromYaml(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse settings: %w", err)
	}
	return nil
}

type Config struct {
	LogLevel      string `yaml:"log_level"`
	LogFile       string `yaml:"log_file"`
	LogMaxSize    int    `yaml:"log_max_size"`
	LogMaxBackups int    `yaml:"log_max_backups"`
	LogMaxAge     int    `yaml:"log_max_age"`
	APIKeysFile   string `yaml:"api_keys_file"`
	AI            `yaml:"ai"`
	Meme          `yaml:"meme"`
	Output        `yaml:"output"`
	Stability     `yaml:"stability"`
	OpenAIImage   `yaml:"openai_image"`
	ClipDrop      `yaml:"clipdrop"`
	AliOss        `yaml:"ali_oss"`
}

func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFile == "" {
		c.LogFile = consts.DefaultLogFile
	}
	if c.LogMaxSize == 0 {
		c.LogMaxSize = 10
	}
	if c.LogMaxBackups == 0 {
		c.LogMaxBackups = 3
	}
	if c.LogMaxAge == 0 {
		c.LogMaxAge = 28
	}
	if c.APIKeysFile == "" {
		c.APIKeysFile = consts.DefaultAPIKeysFile
	}
	if c.AI.ChatModel == "" {
		c.AI.ChatModel = consts.DefaultChatModel
	}
	if c.AI.Temperature == nil {
		t := consts.DefaultTemperature
		c.AI.Temperature = &t
	}
	if c.AI.ImagePlatform == "" {
		c.AI.ImagePlatform = consts.DefaultImagePlatform.String()
	}
	if c.AI.RequestTimeout == "" {
		c.AI.RequestTimeout = "2m"
	}
	if c.Meme.BasicInstructions == "" {
		c.Meme.BasicInstructions = consts.DefaultBasicInstructions
	}
	if c.Meme.ImageSpecialInstructions == "" {
		c.Meme.ImageSpecialInstructions = consts.DefaultImageInstructions
	}
	if c.Output.Folder == "" {
		c.Output.Folder = consts.DefaultOutputFolder
	}
	if c.Output.BaseFileName == "" {
		c.Output.BaseFileName = consts.DefaultBaseFileName
	}
}

func (c *Config) Verify() error {
	if _, ok := consts.LookupImagePlatform(c.AI.ImagePlatform); !ok {
		return &ai.InvalidImagePlatformError{GivenPlatform: c.AI.ImagePlatform, ValidPlatforms: consts.ImagePlatformNames()}
	}
	if t := *c.AI.Temperature; t < 0 || t > 2 {
		return fmt.Errorf("ai.temperature must be between 0 and 2, got %v", t)
	}
	if _, err := time.ParseDuration(c.AI.RequestTimeout); err != nil {
		return fmt.Errorf("ai.request_timeout: %w", err)
	}
	if c.Stability.Width < 0 || c.Stability.Height < 0 || c.Stability.Steps < 0 {
		return fmt.Errorf("stability width, height and steps must not be negative")
	}
	if c.AliOss.Enabled {
		if c.AliOss.Bucket == "" || c.AliOss.Region == "" {
			return fmt.Errorf("ali_oss.bucket and ali_oss.region are required when ali_oss is enabled")
		}
	}
	return nil
}

// Timeout is the per-request network timeout. Verify guarantees it parses.
func (c *Config) Timeout() time.Duration {
	d, _ := time.ParseDuration(c.AI.RequestTimeout)
	return d
}

type AI struct {
	ChatModel      string   `yaml:"chat_model"`
	ChatBaseURL    string   `yaml:"chat_base_url"`
	Temperature    *float64 `yaml:"temperature"`
	ImagePlatform  string   `yaml:"image_platform"`
	RequestTimeout string   `yaml:"request_timeout"`
}

type Meme struct {
	BasicInstructions        string `yaml:"basic_instructions"`
	ImageSpecialInstructions string `yaml:"image_special_instructions"`
	FontFile                 string `yaml:"font_file"`
}

type Output struct {
	Folder       string `yaml:"folder"`
	BaseFileName string `yaml:"base_file_name"`
	NoFileSave   bool   `yaml:"no_file_save"`
}

type Stability struct {
	BaseURL  string  `yaml:"base_url"`
	Engine   string  `yaml:"engine"`
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	Steps    int     `yaml:"steps"`
	CfgScale float64 `yaml:"cfg_scale"`
	Sampler  string  `yaml:"sampler"`
	Seed     uint32  `yaml:"seed"`
}

type OpenAIImage struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	Size    string `yaml:"size"`
}

type ClipDrop struct {
	BaseURL string `yaml:"base_url"`
}

type AliOss struct {
	Enabled         bool   `yaml:"enabled"`
	AccessKeyId     string `yaml:"access_key_id"`
	AccessKeySecret string `yaml:"access_key_secret"`
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	Directory       string `yaml:"directory"`
}
