package embedder

// Environment variables consulted by the provider factory.
const (
	// EnvProvider forces a specific provider (jina, openai, local).
	EnvProvider = "TEXTCHUNK_EMBEDDING_PROVIDER"

	// EnvJinaAPIKey holds the Jina AI API key.
	EnvJinaAPIKey = "JINA_API_KEY"

	// EnvOpenAIAPIKey holds the OpenAI API key.
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
)
