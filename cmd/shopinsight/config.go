package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the config file schema. Every field mirrors a global flag.
type FileConfig struct {
	DB      string        `yaml:"db" json:"db"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
	Render  bool          `yaml:"render" json:"render"`
	Browser string        `yaml:"browser" json:"browser"`
	Verbose bool          `yaml:"verbose" json:"verbose"`

	Gemini struct {
		APIKey string `yaml:"key" json:"key"`
	} `yaml:"gemini" json:"gemini"`

	LLM struct {
		BaseURL string `yaml:"base" json:"base"`
		Model   string `yaml:"model" json:"model"`
		APIKey  string `yaml:"key" json:"key"`
	} `yaml:"llm" json:"llm"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch filepath.Ext(path) {
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	}
	return fc, nil
}

// ExplicitFlags returns the names of the flags set on the command line or
// through their environment variable, as opposed to left at their default.
func ExplicitFlags(ctx *kong.Context) map[string]bool {
	explicit := make(map[string]bool)
	for _, f := range ctx.Flags() {
		if f.Set {
			explicit[f.Name] = true
		}
	}
	return explicit
}

// ApplyFileConfig fills globals that flags and environment left unset.
// explicit names the flags that were set; flags with a non-zero default
// are only taken from the file when absent from it.
func ApplyFileConfig(g *Globals, fc FileConfig, explicit map[string]bool) {
	if g.DB == "" && fc.DB != "" {
		g.DB = fc.DB
	}
	if !explicit["timeout"] && fc.Timeout > 0 {
		g.Timeout = fc.Timeout
	}
	if !g.Render && fc.Render {
		g.Render = true
	}
	if g.BrowserBin == "" && fc.Browser != "" {
		g.BrowserBin = fc.Browser
	}
	if !g.Verbose && fc.Verbose {
		g.Verbose = true
	}
	if g.GeminiKey == "" && fc.Gemini.APIKey != "" {
		g.GeminiKey = fc.Gemini.APIKey
	}
	if g.LLMKey == "" && fc.LLM.APIKey != "" {
		g.LLMKey = fc.LLM.APIKey
	}
	if g.LLMBaseURL == "" && fc.LLM.BaseURL != "" {
		g.LLMBaseURL = fc.LLM.BaseURL
	}
	if g.LLMModel == "" && fc.LLM.Model != "" {
		g.LLMModel = fc.LLM.Model
	}
}
