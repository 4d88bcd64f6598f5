package core

type MemoryConfig interface {
	GetMemorySource() string
	GetMemoryPath() string
	GetMemoryURL() string
}
