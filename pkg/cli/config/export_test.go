package config

// NewAgentForTest creates an Agent config for testing purposes
func NewAgentForTest(id, encoded, configPath string) *Agent {
	return &Agent{
		id:         id,
		encoded:    encoded,
		configPath: configPath,
	}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}
