package config

import "os"

// Config holds everything the service reads from the environment.
// godotenv is loaded once in main before Load runs.
type Config struct {
	Port          string
	WorkspaceDir  string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	WhisperModel  string
	FFmpegPath    string
}

func Load() Config {
	return Config{
		Port:          envOr("PORT", "3001"),
		WorkspaceDir:  envOr("WORKSPACE_DIR", "temp"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: envOr("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		WhisperModel:  envOr("WHISPER_MODEL", "whisper-1"),
		FFmpegPath:    envOr("FFMPEG_PATH", "ffmpeg"),
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
