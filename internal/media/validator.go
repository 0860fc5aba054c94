package media

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"
)

type ValidationKind string

const (
	KindFilename  ValidationKind = "filename"
	KindExtension ValidationKind = "extension"
	KindSize      ValidationKind = "size"
	KindCategory  ValidationKind = "category"
)

// ValidationError is a rejected upload with a human-readable reason.
type ValidationError struct {
	Kind    ValidationKind
	Message string
	MaxSize int64
}

func (e *ValidationError) Error() string { return e.Message }

type FormatValidator struct {
	allowed map[Category]map[string]struct{}
	maxSize int64
}

// NewFormatValidator copies the allow-lists; extensions are lower-cased, dots stripped.
func NewFormatValidator(allowed map[Category][]string, maxSize int64) *FormatValidator {
	v := &FormatValidator{
		allowed: make(map[Category]map[string]struct{}, len(allowed)),
		maxSize: maxSize,
	}
	for cat, exts := range allowed {
		set := make(map[string]struct{}, len(exts))
		for _, ext := range exts {
			set[strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")] = struct{}{}
		}
		v.allowed[cat] = set
	}
	return v
}

// AllowedFromConfig converts the config map keyed by category name.
func AllowedFromConfig(allowed map[string][]string) map[Category][]string {
	out := make(map[Category][]string, len(allowed))
	for name, exts := range allowed {
		cat, err := ParseCategory(name)
		if err != nil || !cat.HasAsset() {
			continue
		}
		out[cat] = exts
	}
	return out
}

func (v *FormatValidator) MaxSize() int64 { return v.maxSize }

// Extension returns the lower-cased extension without the dot.
func Extension(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}

func (v *FormatValidator) ValidateExtension(filename string, cat Category) error {
	if !cat.HasAsset() {
		return &ValidationError{Kind: KindCategory, Message: "Postagens de texto não aceitam arquivos"}
	}
	if strings.TrimSpace(filename) == "" || !strings.Contains(filename, ".") {
		return &ValidationError{Kind: KindFilename, Message: "Nome de arquivo inválido"}
	}

	ext := Extension(filename)
	if ext == "" {
		return &ValidationError{Kind: KindFilename, Message: "Nome de arquivo inválido"}
	}
	if _, ok := v.allowed[cat][ext]; !ok {
		return &ValidationError{
			Kind: KindExtension,
			Message: fmt.Sprintf("Formato .%s não aceito para %s. Formatos aceitos: %s",
				ext, cat, strings.Join(v.AllowedList(cat), ", ")),
		}
	}
	return nil
}

func (v *FormatValidator) ValidateSize(n int64) error {
	if n > v.maxSize {
		return &ValidationError{
			Kind:    KindSize,
			Message: fmt.Sprintf("Arquivo muito grande. Tamanho máximo: %dMB", MaxSizeMB(v.maxSize)),
			MaxSize: v.maxSize,
		}
	}
	return nil
}

// Validate checks the extension, then the size.
func (v *FormatValidator) Validate(filename string, size int64, cat Category) error {
	if err := v.ValidateExtension(filename, cat); err != nil {
		return err
	}
	return v.ValidateSize(size)
}

// AllowedList is the sorted allow-list for cat.
func (v *FormatValidator) AllowedList(cat Category) []string {
	list := make([]string, 0, len(v.allowed[cat]))
	for ext := range v.allowed[cat] {
		list = append(list, ext)
	}
	sort.Strings(list)
	return list
}

// MaxSizeMB rounds a byte count to whole MiB.
func MaxSizeMB(n int64) int64 {
	return int64(math.Round(float64(n) / (1024 * 1024)))
}
