package installer

import "github.com/sandevgo/slackrelay/internal/config"

type InstallState struct {
	Env config.EnvFile
}

func NewInstallState() *InstallState {
	return &InstallState{
		Env: config.EnvFile{
			Workspace:    "secondstate",
			Channel:      "collaborative-chat",
			Provider:     config.ProviderOpenAI,
			Model:        "gpt-3.5-turbo",
			MemorySource: config.MemorySourceFile,
		},
	}
}
