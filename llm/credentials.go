package llm

import (
	"encoding/json"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables consulted for the Gemini API key, in preference
// order. GOOGLE_API_KEY is the primary name, GEMINI_API_KEY the fallback.
const (
	EnvGoogleAPIKey = "GOOGLE_API_KEY"
	EnvGeminiAPIKey = "GEMINI_API_KEY"
)

// Credential holds a resolved API key. String and JSON renderings are
// masked so keys never reach logs.
type Credential struct {
	APIKey string
	Source string // the environment variable the key came from
}

func (c Credential) String() string {
	if c.APIKey == "" {
		return "Credential{}"
	}
	return "Credential{APIKey:***, Source:" + c.Source + "}"
}

func (c Credential) MarshalJSON() ([]byte, error) {
	type masked struct {
		APIKey string `json:"api_key,omitempty"`
		Source string `json:"source,omitempty"`
	}
	out := masked{Source: c.Source}
	if c.APIKey != "" {
		out.APIKey = "***"
	}
	return json.Marshal(out)
}

// ResolveAPIKey looks up the Gemini API key from the environment, loading a
// .env file first if one is present in the working directory. A missing key
// is not an error: it returns ok=false and callers treat generation as
// disabled.
func ResolveAPIKey() (Credential, bool) {
	// Best effort; a missing .env file just means plain os.Getenv.
	_ = godotenv.Load()

	for _, name := range []string{EnvGoogleAPIKey, EnvGeminiAPIKey} {
		if key := os.Getenv(name); key != "" {
			return Credential{APIKey: key, Source: name}, true
		}
	}
	return Credential{}, false
}
