package service

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/atlasbridge/console/internal/domain"
	"go.uber.org/zap"
)

// DocInfo — элемент списка документации: slug и человекочитаемый заголовок.
type DocInfo struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// Doc — сырой markdown, рендерит клиент.
type Doc struct {
	Slug    string `json:"slug"`
	Content string `json:"content"`
}

// slugSanitizer вычищает из slug все, кроме букв, цифр и дефисов,
// до сборки пути — защита от path traversal.
var slugSanitizer = regexp.MustCompile(`[^a-zA-Z0-9-]`)

// DocsService отдает markdown-файлы из фиксированного каталога.
type DocsService struct {
	dir    string
	logger *zap.Logger
}

func NewDocsService(dir string, logger *zap.Logger) *DocsService {
	return &DocsService{
		dir:    dir,
		logger: logger.Named("docs-service"),
	}
}

// List перечисляет .md-файлы каталога. Любая ошибка ФС деградирует
// в пустой список, а не в 500 — документация не критична для консоли.
func (s *DocsService) List() []DocInfo {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Debug("docs directory unreadable", zap.String("dir", s.dir), zap.Error(err))
		return []DocInfo{}
	}

	docs := []DocInfo{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		slug := strings.TrimSuffix(e.Name(), ".md")
		docs = append(docs, DocInfo{Slug: slug, Title: titleFromSlug(slug)})
	}
	return docs
}

// Get читает один документ по санитизированному slug.
func (s *DocsService) Get(slug string) (*Doc, error) {
	clean := slugSanitizer.ReplaceAllString(slug, "")
	path := filepath.Join(s.dir, clean+".md")

	if _, err := os.Stat(path); err != nil {
		return nil, domain.NewNotFoundError("Document not found")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		s.logger.Error("doc read failed", zap.String("path", path), zap.Error(err))
		return nil, domain.NewInternalError("Failed to read document")
	}

	return &Doc{Slug: clean, Content: string(content)}, nil
}

// titleFromSlug: "getting-started" -> "Getting Started".
func titleFromSlug(slug string) string {
	words := strings.Split(strings.ReplaceAll(slug, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
