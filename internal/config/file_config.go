package config

// DefaultMaxUploadSize is 50 MiB.
const DefaultMaxUploadSize int64 = 50 * 1024 * 1024

// DefaultBPRegex matches an IFSP "prontuário", e.g. SP3012345X.
const DefaultBPRegex = `^[A-Z]{2}[0-9]{6}[A-Z0-9]{1,2}$`

// DefaultAllowedExtensions maps each media category with a file to its accepted extensions.
var DefaultAllowedExtensions = map[string][]string{
	"imagem": {"jpg", "jpeg", "png", "gif", "webp"},
	"video":  {"mp4", "webm", "mov"},
	"audio":  {"mp3", "wav", "ogg"},
	"pdf":    {"pdf"},
	"gif":    {"gif"},
}
