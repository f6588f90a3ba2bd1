package main

import (
	"v2t/cmd/v2t/cmd"

	// Import model families to register their loaders
	_ "v2t/internal/app/api/gemini"
	_ "v2t/internal/app/api/openai/whisper"
	_ "v2t/internal/app/api/whisper"
	_ "v2t/internal/app/api/whisper_cpp"
)

func main() {
	cmd.Execute()
}
