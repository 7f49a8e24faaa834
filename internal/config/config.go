package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/mgpai22/fansub/internal/subtitle"
	"gopkg.in/yaml.v3"
)

const envPrefix = "FANSUB_"

type Config struct {
	Script Script `yaml:"script"`
	Style  Style  `yaml:"style"`
	// length of events created without an explicit end
	EventDurationMs int64  `yaml:"event_duration_ms"`
	FFmpegPath      string `yaml:"ffmpeg_path"`
	FFprobePath     string `yaml:"ffprobe_path"`
}

// defaults for new scripts
type Script struct {
	Title          string `yaml:"title"`
	OriginalScript string `yaml:"original_script"`
	Translator     string `yaml:"translator"`
	PlayResX       int    `yaml:"play_res_x"`
	PlayResY       int    `yaml:"play_res_y"`
}

// overrides on top of the built in Default style; zero values keep the default
type Style struct {
	FontName       string  `yaml:"font_name"`
	FontSize       int     `yaml:"font_size"`
	PrimaryColor   string  `yaml:"primary_color"`
	SecondaryColor string  `yaml:"secondary_color"`
	OutlineColor   string  `yaml:"outline_color"`
	ShadowColor    string  `yaml:"shadow_color"`
	Bold           bool    `yaml:"bold"`
	Italic         bool    `yaml:"italic"`
	Outline        float64 `yaml:"outline"`
	Shadow         float64 `yaml:"shadow"`
	Alignment      int     `yaml:"alignment"`
	MarginV        int     `yaml:"margin_v"`
}

// reads .env (if present), the YAML file at path or $FANSUB_CONFIG, then
// FANSUB_* environment overrides
func Load(path string) (*Config, error) {
	// Load .env file (silently ignore if it doesn't exist)
	_ = godotenv.Load()

	def := subtitle.DefaultScript()
	cfg := &Config{
		Script: Script{
			Title:          def.Title,
			OriginalScript: def.OriginalScript,
			PlayResX:       def.PlayResX,
			PlayResY:       def.PlayResY,
		},
		EventDurationMs: 3000,
	}

	if path == "" {
		path = os.Getenv(envPrefix + "CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.Script.Title = getEnv("TITLE", cfg.Script.Title)
	cfg.Script.OriginalScript = getEnv("ORIGINAL_SCRIPT", cfg.Script.OriginalScript)
	cfg.Script.Translator = getEnv("TRANSLATOR", cfg.Script.Translator)
	cfg.FFmpegPath = getEnv("FFMPEG_PATH", cfg.FFmpegPath)
	cfg.FFprobePath = getEnv("FFPROBE_PATH", cfg.FFprobePath)

	if v := getEnv("EVENT_DURATION_MS", ""); v != "" {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil || ms <= 0 {
			return nil, fmt.Errorf("invalid %sEVENT_DURATION_MS %q", envPrefix, v)
		}
		cfg.EventDurationMs = ms
	}

	if cfg.EventDurationMs <= 0 {
		return nil, fmt.Errorf("event_duration_ms must be positive, got %d", cfg.EventDurationMs)
	}

	return cfg, nil
}

// empty script built from the configured defaults
func (c *Config) NewDocument(title string) subtitle.Document {
	doc := subtitle.NewDocument(c.Script.Title)
	if title != "" {
		doc.Script.Title = title
	}
	doc.Script.OriginalScript = c.Script.OriginalScript
	doc.Script.Translator = c.Script.Translator
	if c.Script.PlayResX > 0 {
		doc.Script.PlayResX = c.Script.PlayResX
	}
	if c.Script.PlayResY > 0 {
		doc.Script.PlayResY = c.Script.PlayResY
	}
	return doc.UpdateStyle(subtitle.DefaultStyleName, c.DefaultStyle())
}

// the Default style with configured overrides applied
func (c *Config) DefaultStyle() subtitle.Style {
	s := subtitle.DefaultStyle()
	o := c.Style

	if o.FontName != "" {
		s.FontName = o.FontName
	}
	if o.FontSize > 0 {
		s.FontSize = o.FontSize
	}
	if o.PrimaryColor != "" {
		s.PrimaryColor = subtitle.ParseASSColor(o.PrimaryColor)
	}
	if o.SecondaryColor != "" {
		s.SecondaryColor = subtitle.ParseASSColor(o.SecondaryColor)
	}
	if o.OutlineColor != "" {
		s.OutlineColor = subtitle.ParseASSColor(o.OutlineColor)
	}
	if o.ShadowColor != "" {
		s.ShadowColor = subtitle.ParseASSColor(o.ShadowColor)
	}
	s.Bold = o.Bold
	s.Italic = o.Italic
	if o.Outline > 0 {
		s.Outline = o.Outline
	}
	if o.Shadow > 0 {
		s.Shadow = o.Shadow
	}
	if o.Alignment > 0 {
		s.Alignment = o.Alignment
	}
	if o.MarginV > 0 {
		s.MarginV = o.MarginV
	}
	return s
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(envPrefix + key); value != "" {
		return value
	}
	return defaultValue
}
