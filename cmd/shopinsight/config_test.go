package main_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/shopinsight/cmd/shopinsight"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("reads yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
db: /tmp/shops.db
timeout: 30s
render: true
browser: /usr/bin/chromium
gemini:
  key: g-key
llm:
  base: https://api.openai.com/v1
  model: gpt-4o-mini
  key: o-key
`), 0644))

		fc, err := main.LoadConfigFile(path)

		require.NoError(t, err)
		assert.Equal(t, "/tmp/shops.db", fc.DB)
		assert.Equal(t, 30*time.Second, fc.Timeout)
		assert.True(t, fc.Render)
		assert.Equal(t, "/usr/bin/chromium", fc.Browser)
		assert.Equal(t, "g-key", fc.Gemini.APIKey)
		assert.Equal(t, "https://api.openai.com/v1", fc.LLM.BaseURL)
		assert.Equal(t, "gpt-4o-mini", fc.LLM.Model)
		assert.Equal(t, "o-key", fc.LLM.APIKey)
	})

	t.Run("reads json", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"db": "/tmp/shops.db", "llm": {"key": "o-key"}}`), 0644))

		fc, err := main.LoadConfigFile(path)

		require.NoError(t, err)
		assert.Equal(t, "/tmp/shops.db", fc.DB)
		assert.Equal(t, "o-key", fc.LLM.APIKey)
	})

	t.Run("rejects malformed file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("db: [unterminated"), 0644))

		_, err := main.LoadConfigFile(path)

		require.Error(t, err)
	})
}

func TestApplyFileConfig(t *testing.T) {
	t.Parallel()

	t.Run("fills unset globals", func(t *testing.T) {
		t.Parallel()

		g := main.Globals{Timeout: 10 * time.Second}
		var fc main.FileConfig
		fc.DB = "/tmp/shops.db"
		fc.Timeout = time.Minute
		fc.LLM.Model = "llama"
		fc.Browser = "/usr/bin/chromium"

		main.ApplyFileConfig(&g, fc, nil)

		assert.Equal(t, "/tmp/shops.db", g.DB)
		assert.Equal(t, time.Minute, g.Timeout)
		assert.Equal(t, "llama", g.LLMModel)
		assert.Equal(t, "/usr/bin/chromium", g.BrowserBin)
	})

	t.Run("explicit values win", func(t *testing.T) {
		t.Parallel()

		g := main.Globals{DB: "/flag.db", Timeout: 5 * time.Second, LLMKey: "flag-key"}
		var fc main.FileConfig
		fc.DB = "/file.db"
		fc.Timeout = time.Minute
		fc.LLM.APIKey = "file-key"

		main.ApplyFileConfig(&g, fc, map[string]bool{"timeout": true})

		assert.Equal(t, "/flag.db", g.DB)
		assert.Equal(t, 5*time.Second, g.Timeout)
		assert.Equal(t, "flag-key", g.LLMKey)
	})

	t.Run("explicit timeout equal to the default wins", func(t *testing.T) {
		t.Parallel()

		g := main.Globals{Timeout: 10 * time.Second}
		var fc main.FileConfig
		fc.Timeout = time.Minute

		main.ApplyFileConfig(&g, fc, map[string]bool{"timeout": true})

		assert.Equal(t, 10*time.Second, g.Timeout)
	})
}

func TestExplicitFlags(t *testing.T) {
	t.Parallel()

	parse := func(t *testing.T, args ...string) map[string]bool {
		t.Helper()
		var cli main.CLI
		parser, err := kong.New(&cli, kong.Exit(func(int) {}))
		require.NoError(t, err)
		ctx, err := parser.Parse(args)
		require.NoError(t, err)
		return main.ExplicitFlags(ctx)
	}

	t.Run("flag given on the command line", func(t *testing.T) {
		t.Parallel()

		explicit := parse(t, "--timeout", "10s", "list")

		assert.True(t, explicit["timeout"])
	})

	t.Run("default is not explicit", func(t *testing.T) {
		t.Parallel()

		explicit := parse(t, "list")

		assert.False(t, explicit["timeout"])
	})
}
