package expanderconfig

import (
	"fmt"

	"github.com/lisanmuaddib/expander-go/pkg/llm"
	"github.com/lisanmuaddib/expander-go/pkg/llm/huggingface"
	"github.com/lisanmuaddib/expander-go/pkg/llm/openai"
	"github.com/sirupsen/logrus"
)

type ProviderConfig struct {
	// Provider names the completion backend; empty selects Hugging Face.
	Provider string
	Logger   *logrus.Logger
}

// ConfigureLLM sets up the selected completion provider. Provider configs
// are loaded from the environment, so a missing credential fails here,
// before any expansion is attempted.
func ConfigureLLM(config ProviderConfig) (llm.LLM, error) {
	switch config.Provider {
	case "", huggingface.ProviderName:
		hfConfig, err := huggingface.NewHuggingFaceConfig()
		if err != nil {
			return nil, err
		}
		if config.Logger != nil {
			hfConfig.Logger = config.Logger
		}
		return huggingface.NewClient(hfConfig)

	case openai.ProviderName:
		oaConfig, err := openai.NewOpenAIConfig()
		if err != nil {
			return nil, err
		}
		if config.Logger != nil {
			oaConfig.Logger = config.Logger
		}
		return openai.NewClient(oaConfig)

	default:
		return nil, fmt.Errorf("unknown provider %q (expected %q or %q)",
			config.Provider, huggingface.ProviderName, openai.ProviderName)
	}
}
