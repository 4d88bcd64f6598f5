package config

// EnvFile is the subset of settings the setup wizard writes to <runtime>/.env.
type EnvFile struct {
	SlackBotToken string `env:"SLACK_BOT_TOKEN"`
	SlackAppToken string `env:"SLACK_APP_TOKEN"`
	Workspace     string `env:"slack_workspace"`
	Channel       string `env:"slack_channel"`
	Provider      string `env:"LLM_PROVIDER"`
	Model         string `env:"LLM_MODEL"`
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	MemorySource  string `env:"MEMORY_SOURCE"`
	MemoryPath    string `env:"MEMORY_PATH"`
	MemoryURL     string `env:"MEMORY_URL"`
	Diagnostics   bool   `env:"DIAGNOSTICS"`
}
