package sarvam

import "slices"

// Chat models
const (
	ModelSarvamM    = "sarvam-m"
	ModelSarvam30B  = "sarvam-30b"
	ModelSarvam105B = "sarvam-105b"
)

// Speech, transcription and translation models
const (
	ModelBulbulV2 = "bulbul:v2"
	ModelBulbulV3 = "bulbul:v3"

	ModelSaarikaV25   = "saarika:v2.5"
	ModelSaarikaV2    = "saarika:v2"
	ModelSaarikaV1    = "saarika:v1"
	ModelSaarikaFlash = "saarika:flash"

	ModelSaarasV25 = "saaras:v2.5"
	ModelSaarasV2  = "saaras:v2"

	ModelMayuraV1          = "mayura:v1"
	ModelSarvamTranslateV1 = "sarvam-translate:v1"
)

// Defaults used when a request leaves the model or voice empty.
const (
	DefaultChatModel              = ModelSarvamM
	DefaultSpeechModel            = ModelBulbulV2
	DefaultTranscriptionModel     = ModelSaarikaV25
	DefaultSpeechTranslationModel = ModelSaarasV25
	DefaultTranslationModel       = ModelMayuraV1
	DefaultVoice                  = "anushka"
)

// Language codes accepted by the speech and text endpoints.
const (
	LanguageBengali   = "bn-IN"
	LanguageEnglish   = "en-IN"
	LanguageGujarati  = "gu-IN"
	LanguageHindi     = "hi-IN"
	LanguageKannada   = "kn-IN"
	LanguageMalayalam = "ml-IN"
	LanguageMarathi   = "mr-IN"
	LanguageOdia      = "od-IN"
	LanguagePunjabi   = "pa-IN"
	LanguageTamil     = "ta-IN"
	LanguageTelugu    = "te-IN"

	// LanguageAuto asks translation and transliteration to detect the source.
	LanguageAuto = "auto"
	// LanguageUnknown asks transcription to detect the spoken language.
	LanguageUnknown = "unknown"
)

// ModelKind groups models by the endpoint that serves them.
type ModelKind string

const (
	KindChat              ModelKind = "chat"
	KindSpeech            ModelKind = "speech"
	KindTranscription     ModelKind = "transcription"
	KindSpeechTranslation ModelKind = "speech-translation"
	KindTranslation       ModelKind = "translation"
)

// ModelInfo describes a catalog entry.
type ModelInfo struct {
	ID   string
	Kind ModelKind

	NativeToolCalling bool
	Reasoning         bool
	// MaxInputChars bounds text inputs for speech and translation models; zero means no local check
	MaxInputChars int
	Voices        []string
}

var supportedLanguages = []string{
	LanguageBengali, LanguageEnglish, LanguageGujarati, LanguageHindi, LanguageKannada, LanguageMalayalam,
	LanguageMarathi, LanguageOdia, LanguagePunjabi, LanguageTamil, LanguageTelugu,
}

// extendedLanguages are the scheduled languages only sarvam-translate:v1 handles.
var extendedLanguages = []string{
	"as-IN", "brx-IN", "doi-IN", "kok-IN", "ks-IN", "mai-IN", "mni-IN", "ne-IN", "sa-IN", "sat-IN", "sd-IN", "ur-IN",
}

var bulbulV2Voices = []string{"anushka", "abhilash", "manisha", "vidya", "arya", "karun", "hitesh"}

var bulbulV3Voices = []string{
	"aditya", "ritu", "priya", "neha", "rahul", "pooja", "rohan", "simran", "kavya", "amit", "dev",
	"ishita", "shreya", "ratan", "varun", "manan", "sumit", "roopa", "kabir", "aayan", "shubh",
}

var catalog = map[string]ModelInfo{
	ModelSarvamM:    {ID: ModelSarvamM, Kind: KindChat, Reasoning: true},
	ModelSarvam30B:  {ID: ModelSarvam30B, Kind: KindChat, NativeToolCalling: true, Reasoning: true},
	ModelSarvam105B: {ID: ModelSarvam105B, Kind: KindChat, NativeToolCalling: true, Reasoning: true},

	ModelBulbulV2: {ID: ModelBulbulV2, Kind: KindSpeech, MaxInputChars: 1500, Voices: bulbulV2Voices},
	ModelBulbulV3: {ID: ModelBulbulV3, Kind: KindSpeech, MaxInputChars: 2500, Voices: bulbulV3Voices},

	ModelSaarikaV25:   {ID: ModelSaarikaV25, Kind: KindTranscription},
	ModelSaarikaV2:    {ID: ModelSaarikaV2, Kind: KindTranscription},
	ModelSaarikaV1:    {ID: ModelSaarikaV1, Kind: KindTranscription},
	ModelSaarikaFlash: {ID: ModelSaarikaFlash, Kind: KindTranscription},

	ModelSaarasV25: {ID: ModelSaarasV25, Kind: KindSpeechTranslation},
	ModelSaarasV2:  {ID: ModelSaarasV2, Kind: KindSpeechTranslation},

	ModelMayuraV1:          {ID: ModelMayuraV1, Kind: KindTranslation, MaxInputChars: 1000},
	ModelSarvamTranslateV1: {ID: ModelSarvamTranslateV1, Kind: KindTranslation, MaxInputChars: 2000},
}

// GetModelInfo looks a model up in the catalog.
func GetModelInfo(model string) (ModelInfo, bool) {
	info, ok := catalog[model]
	return info, ok
}

// Models lists the catalog identifiers of the given kind, sorted.
func Models(kind ModelKind) []string {
	var ids []string
	for id, info := range catalog {
		if info.Kind == kind {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// VoicesFor returns the speakers a speech model accepts, or nil for unknown models.
func VoicesFor(model string) []string {
	info, ok := catalog[model]
	if !ok {
		return nil
	}
	return slices.Clone(info.Voices)
}

// IsValidLanguage reports whether code is one of the eleven languages every
// speech and text endpoint supports.
func IsValidLanguage(code string) bool {
	return slices.Contains(supportedLanguages, code)
}

// SupportedLanguages returns the language codes accepted by every endpoint.
func SupportedLanguages() []string {
	return slices.Clone(supportedLanguages)
}

// isTranslationLanguage also admits the scheduled languages of sarvam-translate:v1.
func isTranslationLanguage(model, code string) bool {
	if IsValidLanguage(code) {
		return true
	}
	return model == ModelSarvamTranslateV1 && slices.Contains(extendedLanguages, code)
}
