package cv

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
)

// Parser extracts plain text from uploaded résumé documents.
type Parser struct {
	uploadsDir string
}

func NewParser(uploadsDir string) *Parser {
	return &Parser{
		uploadsDir: uploadsDir,
	}
}

// Extract returns the text content of a résumé document. The document is
// saved under the uploads dir first so docconv can convert it by path.
// A corrupt or unsupported document yields a descriptive error; callers
// embed it in their result instead of aborting.
func (p *Parser) Extract(filename string, data []byte) (string, error) {
	fileType := strings.ToLower(filepath.Ext(filename))

	switch fileType {
	case ".pdf", ".docx", ".doc", ".rtf", ".odt":
		filePath, err := p.save(filename, data)
		if err != nil {
			return "", err
		}
		res, err := docconv.ConvertPath(filePath)
		if err != nil {
			return "", fmt.Errorf("failed to parse document: %w", err)
		}
		if strings.TrimSpace(res.Body) == "" {
			return "", fmt.Errorf("document %s contains no extractable text", filename)
		}
		return res.Body, nil
	case ".txt":
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported file type: %s", fileType)
	}
}

// ExtractReader is a convenience wrapper for streamed uploads.
func (p *Parser) ExtractReader(filename string, reader io.Reader) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	return p.Extract(filename, buf.Bytes())
}

func (p *Parser) save(filename string, data []byte) (string, error) {
	if err := os.MkdirAll(p.uploadsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create uploads dir: %w", err)
	}
	filePath := filepath.Join(p.uploadsDir, filepath.Base(filename))
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return filePath, nil
}
