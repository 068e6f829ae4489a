package speech

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewClientRequiresCredentials(t *testing.T) {
	if _, err := NewClient("", "westeurope", "", zap.NewNop()); err == nil {
		t.Fatalf("expected error for missing key")
	}
	if _, err := NewClient("key", " ", "", zap.NewNop()); err == nil {
		t.Fatalf("expected error for missing region")
	}
}

func TestSynthesizeEmptyTextIsNoOp(t *testing.T) {
	client, err := NewClient("key", "westeurope", "", zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	audio, err := client.Synthesize(context.Background(), "   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if audio != nil {
		t.Fatalf("expected no audio for empty text")
	}
}

func TestRecognizeEmptyAudio(t *testing.T) {
	client, err := NewClient("key", "westeurope", "", zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := client.Recognize(context.Background(), nil); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestBuildSSMLEscapesText(t *testing.T) {
	ssml := buildSSML("en-US-AriaNeural", `Tell me about the <script> & "edge" cases`)

	if strings.Contains(ssml, "<script>") {
		t.Fatalf("markup not escaped: %s", ssml)
	}
	if !strings.Contains(ssml, "&lt;script&gt;") || !strings.Contains(ssml, "&amp;") {
		t.Fatalf("expected escaped entities: %s", ssml)
	}
	if !strings.Contains(ssml, "name='en-US-AriaNeural'") {
		t.Fatalf("voice missing: %s", ssml)
	}
}

func TestStoreUniqueNamesAndCleanup(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, zap.NewNop())

	first, err := store.Save([]byte("audio-one"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := store.Save([]byte("audio-two"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first == second {
		t.Fatalf("artifacts must be uniquely named")
	}
	if _, err := os.Stat(first); !os.IsNotExist(err) {
		t.Fatalf("previous artifact must be removed before the next is written")
	}

	matches, _ := filepath.Glob(filepath.Join(dir, artifactPattern))
	if len(matches) != 1 {
		t.Fatalf("expected exactly one artifact on disk, got %d", len(matches))
	}

	store.Cleanup()
	matches, _ = filepath.Glob(filepath.Join(dir, artifactPattern))
	if len(matches) != 0 {
		t.Fatalf("cleanup left artifacts behind: %v", matches)
	}
}
