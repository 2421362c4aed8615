package pursuit

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCommaList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitCommaList("a,b"))
	assert.Equal(t, []string{"a", "b"}, splitCommaList(" a , b ,, "))
	assert.Nil(t, splitCommaList(""))
	assert.Nil(t, splitCommaList(" , ,"))
}

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"NEWS_URLS", "FEED_URLS", "GEMINI_API_KEY", "GEMINI_CACHE_DIR",
		"DISCORD_WEBHOOK", "LOG_WEBHOOK", "NOTION_TOKEN", "NOTION_DATABASE_ID",
		"LAST_CHASE_FILE", "PURSUIT_LOG_FILE",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg := FromEnv()
	urls := cfg.Input.URLs()
	assert.Len(t, urls, 18)
	assert.Equal(t, "https://www.nbclosangeles.com/", urls[0])
	assert.Empty(t, cfg.Input.Feeds())
	assert.Equal(t, defaultCacheDir, cfg.Oracle.CacheDir)
	assert.Equal(t, DefaultLastChasePath, cfg.State.LastChasePath)
	assert.Equal(t, DefaultPursuitLogPath, cfg.State.PursuitLog)
	assert.False(t, cfg.Notify.NotionEnabled())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("NEWS_URLS", "https://one.example.com, https://two.example.com")
	t.Setenv("FEED_URLS", "https://one.example.com/rss")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("DISCORD_WEBHOOK", "https://discord.example.com/hook")

	cfg := FromEnv()
	assert.Equal(t, []string{"https://one.example.com", "https://two.example.com"}, cfg.Input.URLs())
	assert.Equal(t, []string{"https://one.example.com/rss"}, cfg.Input.Feeds())
	assert.Equal(t, "key", cfg.Oracle.APIKey)
	assert.Equal(t, "https://discord.example.com/hook", cfg.Notify.AlertWebhook)
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MissingAPIKey(t *testing.T) {
	cfg := &ScannerConfig{}
	cfg.Input.URLsRaw = "https://one.example.com"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestValidate_NoURLs(t *testing.T) {
	cfg := &ScannerConfig{}
	cfg.Oracle.APIKey = "key"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no news URLs")
}

func TestNotionEnabled_RequiresBothValues(t *testing.T) {
	assert.False(t, (&NotifyConfig{NotionToken: "t"}).NotionEnabled())
	assert.False(t, (&NotifyConfig{NotionDatabaseID: "d"}).NotionEnabled())
	assert.True(t, (&NotifyConfig{NotionToken: "t", NotionDatabaseID: "d"}).NotionEnabled())
}

func TestDefaultNewsURLsAreWellFormed(t *testing.T) {
	for _, u := range splitCommaList(defaultNewsURLs) {
		assert.True(t, strings.HasPrefix(u, "https://"), u)
		assert.NotEmpty(t, domainOf(u), u)
	}
}
