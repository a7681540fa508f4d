// 指示: miu200521358
// Package config はCLIとボーン操作の設定を読み込む。
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/miu200521358/mu_bonetools/pkg/shared/logging"
	"github.com/spf13/viper"
)

// EnvPrefix は環境変数の接頭辞。
const EnvPrefix = "MU_BONETOOLS"

// Config は設定全体を表す。
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Geometry GeometryConfig `mapstructure:"geometry"`
	Output   OutputConfig   `mapstructure:"output"`
}

// LoggingConfig はログ設定を表す。
type LoggingConfig struct {
	// Level は DEBUG, INFO, WARN, ERROR のいずれか。
	Level string `mapstructure:"level"`
}

// GeometryConfig はボーン幾何の設定を表す。
type GeometryConfig struct {
	// DefaultBoneLength は行列指定時の既定ボーン長。
	DefaultBoneLength float64 `mapstructure:"default_bone_length"`
	// NearAbsTolerance は近似一致判定の絶対誤差。
	NearAbsTolerance float64 `mapstructure:"near_abs_tolerance"`
	// NearRelTolerance は近似一致判定の相対誤差。
	NearRelTolerance float64 `mapstructure:"near_rel_tolerance"`
}

// OutputConfig は出力先の設定を表す。
type OutputConfig struct {
	// Suffix は出力パス未指定時に入力ファイル名へ付ける接尾辞。
	Suffix string `mapstructure:"suffix"`
}

// Default は既定設定を返す。
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "INFO"},
		Geometry: GeometryConfig{
			DefaultBoneLength: 1.0,
			NearAbsTolerance:  1e-6,
			NearRelTolerance:  1e-9,
		},
		Output: OutputConfig{Suffix: "_out"},
	}
}

// SetDefaults は viper へ既定値を登録する。
func SetDefaults(v *viper.Viper) {
	defaults := Default()
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("geometry.default_bone_length", defaults.Geometry.DefaultBoneLength)
	v.SetDefault("geometry.near_abs_tolerance", defaults.Geometry.NearAbsTolerance)
	v.SetDefault("geometry.near_rel_tolerance", defaults.Geometry.NearRelTolerance)
	v.SetDefault("output.suffix", defaults.Output.Suffix)
}

// NewViper は既定値・環境変数・設定ファイルを反映した viper を生成する。
// configFile が空の場合はカレントディレクトリの mu_bonetools.yaml を探し、無ければ既定値を使う。
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("設定ファイルの読み込みに失敗しました: %w", err)
		}
		return v, nil
	}

	v.SetConfigName("mu_bonetools")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("設定ファイルの読み込みに失敗しました: %w", err)
		}
	}
	return v, nil
}

// Load は viper から設定を読み込み、検証する。
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("設定の解析に失敗しました: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate は設定値を検証する。
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	if c.Geometry.DefaultBoneLength <= 0 {
		return fmt.Errorf("既定ボーン長は正の値を指定してください: %f", c.Geometry.DefaultBoneLength)
	}
	if c.Geometry.NearAbsTolerance < 0 || c.Geometry.NearRelTolerance < 0 {
		return fmt.Errorf("許容誤差は0以上を指定してください")
	}
	if strings.ContainsAny(c.Output.Suffix, `/\`) {
		return fmt.Errorf("出力接尾辞にパス区切りは使えません: %s", c.Output.Suffix)
	}
	return nil
}

// LogLevel は設定済みログレベルを返す。
func (c *Config) LogLevel() logging.LogLevel {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return logging.LOG_LEVEL_INFO
	}
	return level
}
