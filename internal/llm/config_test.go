package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFor(t *testing.T) {
	tests := []struct {
		provider Provider
		want     Provider
		lite     string
		advanced string
	}{
		{provider: "", want: ProviderGemini, lite: "gemini-2.5-flash-lite", advanced: "gemini-2.5-pro"},
		{provider: ProviderGemini, want: ProviderGemini, lite: "gemini-2.5-flash-lite", advanced: "gemini-2.5-pro"},
		{provider: ProviderOpenAI, want: ProviderOpenAI, lite: "gpt-4o-mini", advanced: "gpt-4.1"},
	}
	for _, tt := range tests {
		t.Run(string(tt.want)+"/"+string(tt.provider), func(t *testing.T) {
			cfg := ConfigFor(tt.provider)
			assert.Equal(t, tt.want, cfg.Provider)
			assert.Equal(t, tt.lite, cfg.GetModel(TierLite))
			assert.Equal(t, tt.advanced, cfg.GetModel(TierAdvanced))
		})
	}
	assert.Equal(t, ProviderGemini, DefaultConfig().Provider)
}

func TestParseProvider(t *testing.T) {
	for in, want := range map[string]Provider{" OpenAI ": ProviderOpenAI, "": ProviderGemini, "GEMINI": ProviderGemini} {
		got, err := ParseProvider(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseProvider("anthropic")
	assert.ErrorContains(t, err, "unsupported LLM provider")
}

func TestGetModel_TierFallback(t *testing.T) {
	onlyLite := &Config{Models: map[ModelTier]string{TierLite: "small"}}
	assert.Equal(t, "small", onlyLite.GetModel(TierAdvanced))

	liteAndStandard := &Config{Models: map[ModelTier]string{TierLite: "small", TierStandard: "medium"}}
	assert.Equal(t, "medium", liteAndStandard.GetModel(TierAdvanced))
	assert.Equal(t, "small", liteAndStandard.GetModel(TierLite))

	empty := &Config{Models: map[ModelTier]string{}}
	assert.Empty(t, empty.GetModel(TierStandard))
}

func TestWithModel_CopiesSettings(t *testing.T) {
	base := DefaultOpenAIConfig()
	base.BaseURL = "http://localhost:11434/v1"
	base.Temperature = 0.2

	custom := base.WithModel(TierLite, "llama3")

	assert.Equal(t, "gpt-4o-mini", base.GetModel(TierLite))
	assert.Equal(t, "llama3", custom.GetModel(TierLite))
	assert.Equal(t, "gpt-4o", custom.GetModel(TierStandard))
	assert.Equal(t, base.BaseURL, custom.BaseURL)
	assert.InDelta(t, 0.2, custom.temperature(), 1e-6)
}

func TestTemperatureDefault(t *testing.T) {
	assert.Equal(t, DefaultTemperature, DefaultConfig().temperature())
}
