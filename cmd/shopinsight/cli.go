package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/shopinsight"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Brands   shopinsight.BrandService
	Insights shopinsight.InsightService
}

// Globals are flags shared by every command.
type Globals struct {
	Config     string        `help:"YAML or JSON config file" type:"path" env:"SHOPINSIGHT_CONFIG"`
	DB         string        `help:"SQLite database path" env:"SHOPINSIGHT_DB"`
	Timeout    time.Duration `short:"t" default:"10s" help:"Fetch timeout per request" env:"SHOPINSIGHT_TIMEOUT"`
	Render     bool          `help:"Render main pages in a headless browser"`
	BrowserBin string        `name:"browser-bin" help:"Chrome or Chromium binary used with --render" env:"SHOPINSIGHT_BROWSER"`
	Headful    bool          `help:"Show the browser window when rendering"`
	Verbose    bool          `short:"v" help:"Log debug output to stderr"`
	GeminiKey  string        `name:"gemini-key" help:"Gemini API key" env:"GEMINI_API_KEY"`
	LLMKey     string        `name:"llm-key" help:"OpenAI-compatible API key (Groq by default)" env:"GROQ_API_KEY,OPENAI_API_KEY"`
	LLMBaseURL string        `name:"llm-base-url" help:"OpenAI-compatible API base URL" env:"SHOPINSIGHT_LLM_BASE_URL"`
	LLMModel   string        `name:"llm-model" help:"Model used to structure insights" env:"SHOPINSIGHT_LLM_MODEL"`
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Globals

	Fetch  FetchCmd  `cmd:"" help:"Extract insights for one store"`
	Batch  BatchCmd  `cmd:"" help:"Extract insights for stores listed in a file"`
	List   ListCmd   `cmd:"" help:"List stored brands"`
	Show   ShowCmd   `cmd:"" help:"Print the stored insights of a store"`
	Delete DeleteCmd `cmd:"" help:"Delete a stored brand"`
	Import ImportCmd `cmd:"" help:"Store insights from an exported XML or JSON file"`
	Serve  ServeCmd  `cmd:"" help:"Serve the insights HTTP API"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	URL         string `arg:"" help:"Store URL"`
	Format      string `short:"f" enum:"json,xml,text" default:"json" help:"Output format (json, xml, text)"`
	NoStore     bool   `help:"Do not save insights to the database"`
	NoStructure bool   `help:"Print extracted insights without structuring them"`
	OutDir      string `type:"path" help:"Also write the result as JSON into this directory"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	File        string  `arg:"" help:"File with one store URL per line ('-' for stdin)"`
	Concurrency int     `short:"c" default:"4" help:"Stores processed at once"`
	RPS         float64 `default:"1" help:"Requests per second per host (0 disables)"`
	Retries     int     `default:"3" help:"Retries for unreachable stores"`
	OutDir      string  `type:"path" help:"Write one JSON file per store into this directory"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Limit  int `default:"0" help:"Maximum brands to list (0 lists all)"`
	Offset int `default:"0" help:"Brands to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	URL    string `arg:"" help:"Store URL"`
	Format string `short:"f" enum:"json,xml,text" default:"json" help:"Output format (json, xml, text)"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	URL   string `arg:"" help:"Store URL"`
	Force bool   `help:"Confirm deletion"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	File string `arg:"" type:"existingfile" help:"File written by 'fetch --no-structure' or 'show' (.xml or .json)"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8080" help:"Listen address" env:"SHOPINSIGHT_ADDR"`
}
