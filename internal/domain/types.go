package domain

// ItemStatus tracks the generation lifecycle of a single imported file.
type ItemStatus string

const (
	ItemStatusPending    ItemStatus = "pending"
	ItemStatusGenerating ItemStatus = "generating"
	ItemStatusSuccess    ItemStatus = "success"
	ItemStatusFailed     ItemStatus = "failed"
)

// GenerationMode selects what kind of text the backend is asked for.
type GenerationMode string

const (
	ModeMetadata GenerationMode = "metadata"
	ModePrompt   GenerationMode = "prompt"
)

// Platform identifies the stock marketplace the metadata targets.
type Platform string

const (
	PlatformAdobe        Platform = "adobe"
	PlatformFreepik      Platform = "freepik"
	PlatformShutterstock Platform = "shutterstock"
	PlatformGeneral      Platform = "general"
	PlatformVecteezy     Platform = "vecteezy"
)

// KnownPlatforms lists every supported marketplace identifier.
var KnownPlatforms = []Platform{
	PlatformAdobe,
	PlatformFreepik,
	PlatformShutterstock,
	PlatformGeneral,
	PlatformVecteezy,
}

// SourceFile is the immutable handle to an imported asset on disk.
type SourceFile struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
}

// FileItem is one row of the working set: a source file plus its
// user-editable metadata and generation status.
type FileItem struct {
	ID          string     `json:"id"`
	Source      SourceFile `json:"source"`
	Title       string     `json:"title"`
	Keywords    string     `json:"keywords"`
	Description string     `json:"description"`
	Status      ItemStatus `json:"status"`
	Error       string     `json:"error,omitempty"`
}

// GenerationConfig contains user-tunable knobs read at the start of each
// item's generation. A batch run re-reads it per item, never mid-item.
type GenerationConfig struct {
	Mode                  GenerationMode `json:"mode"`
	Platform              Platform       `json:"platform"`
	Model                 string         `json:"model"`
	TitleLength           int            `json:"titleLength"`
	KeywordsCount         int            `json:"keywordsCount"`
	DescriptionLength     int            `json:"descriptionLength"`
	AutoRemoveDupKeywords bool           `json:"autoRemoveDupKeywords"`
	BulkKeywordText       string         `json:"bulkKeywordText"`
	BulkKeywordEnabled    bool           `json:"bulkKeywordEnabled"`
	PrefixText            string         `json:"prefixText"`
	PrefixEnabled         bool           `json:"prefixEnabled"`
	SuffixText            string         `json:"suffixText"`
	SuffixEnabled         bool           `json:"suffixEnabled"`
}

// Bounds for the GenerationConfig numeric fields.
const (
	TitleLengthMin       = 10
	TitleLengthMax       = 120
	KeywordsCountMin     = 5
	KeywordsCountMax     = 50
	DescriptionLengthMin = 50
	DescriptionLengthMax = 200
)

// MaxCredentials caps how many API keys can be stored and rotated.
const MaxCredentials = 5

// Settings is the persisted application state: the credential list plus the
// current generation configuration.
type Settings struct {
	Credentials []string         `json:"credentials"`
	Generation  GenerationConfig `json:"generation"`
}
