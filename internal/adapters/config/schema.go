package config

// Projectfile is the structure of the taskrun.yaml configuration file.
type Projectfile struct {
	EnvPrefix      string            `yaml:"envPrefix"`
	InputMethod    string            `yaml:"inputMethod"`
	Timeout        string            `yaml:"timeout"`
	MaxOutputBytes int               `yaml:"maxOutputBytes"`
	Interpreters   map[string]string `yaml:"interpreters"`
	Environment    map[string]string `yaml:"environment"`
}

// Metadatafile is the structure of the JSON metadata shipped next to a task.
type Metadatafile struct {
	Description  string                  `yaml:"description"`
	InputMethod  string                  `yaml:"input_method"`
	Parameters   map[string]ParameterDTO `yaml:"parameters"`
	SupportsNoop bool                    `yaml:"supports_noop"`
}

// ParameterDTO describes one declared task parameter.
type ParameterDTO struct {
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
	Sensitive   bool   `yaml:"sensitive"`
}
