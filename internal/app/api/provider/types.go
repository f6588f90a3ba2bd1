package provider

import (
	"strings"

	"github.com/samber/lo"

	apperrors "v2t/internal/app/errors"
)

// Family is one supported kind of speech-recognition model. The set is closed;
// every value binds to exactly one loader.
type Family string

const (
	// FamilyWhisper loads ggml whisper weights in-process through the whisper.cpp Go bindings.
	FamilyWhisper Family = "whisper"
	// FamilyWhisperCpp runs the whisper.cpp command line binary.
	FamilyWhisperCpp Family = "whisper_cpp"
	// FamilyOpenAI calls the OpenAI audio transcription endpoint.
	FamilyOpenAI Family = "openai"
	// FamilyGemini sends the audio inline to a Gemini model.
	FamilyGemini Family = "gemini"
)

// DefaultFamily is used when no identifier is configured.
const DefaultFamily = FamilyWhisper

var families = []Family{FamilyWhisper, FamilyWhisperCpp, FamilyOpenAI, FamilyGemini}

// ProviderType tells whether a family runs locally or needs the network.
type ProviderType string

const (
	ProviderTypeLocal  ProviderType = "local"
	ProviderTypeRemote ProviderType = "remote"
)

// FamilyInfo describes a family for listings.
type FamilyInfo struct {
	Family       Family
	DisplayName  string
	Type         ProviderType
	DefaultModel string
	Requires     string
}

var familyInfo = map[Family]FamilyInfo{
	FamilyWhisper: {
		Family:       FamilyWhisper,
		DisplayName:  "Whisper (in-process whisper.cpp)",
		Type:         ProviderTypeLocal,
		DefaultModel: "ggml-" + DefaultModelSize + ".bin",
		Requires:     "binary built with -tags whisper_cpp, ggml model in models dir",
	},
	FamilyWhisperCpp: {
		Family:       FamilyWhisperCpp,
		DisplayName:  "Whisper.cpp (CLI)",
		Type:         ProviderTypeLocal,
		DefaultModel: "ggml-" + DefaultModelSize + ".bin",
		Requires:     "whisper.cpp binary on PATH or WHISPER_CPP_BINARY",
	},
	FamilyOpenAI: {
		Family:       FamilyOpenAI,
		DisplayName:  "OpenAI Whisper API",
		Type:         ProviderTypeRemote,
		DefaultModel: DefaultOpenAIModel,
		Requires:     "OPENAI_API_KEY",
	},
	FamilyGemini: {
		Family:       FamilyGemini,
		DisplayName:  "Google Gemini",
		Type:         ProviderTypeRemote,
		DefaultModel: DefaultGeminiModel,
		Requires:     "GEMINI_API_KEY",
	},
}

// ParseFamily maps an identifier to its Family. Matching ignores case and surrounding
// spaces. Unknown identifiers fail with ErrUnsupportedModel.
func ParseFamily(identifier string) (Family, error) {
	f := Family(strings.ToLower(strings.TrimSpace(identifier)))
	if !f.Valid() {
		return "", apperrors.UnsupportedModel(identifier)
	}
	return f, nil
}

// Valid reports whether f is one of the supported families.
func (f Family) Valid() bool {
	return lo.Contains(families, f)
}

func (f Family) String() string { return string(f) }

// Info returns the listing metadata of f.
func (f Family) Info() FamilyInfo {
	return familyInfo[f]
}

// Families returns all supported families in listing order.
func Families() []Family {
	return append([]Family(nil), families...)
}

// FamilyNames returns the identifiers accepted by ParseFamily.
func FamilyNames() []string {
	return lo.Map(families, func(f Family, _ int) string { return f.String() })
}
