package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	httpclient "github.com/mohitcdry/automatic-recruitment-system/pkg/http"
)

// Sentinel results of a recognition attempt that are not transport errors:
// the recognizer heard nothing usable, or the request was canceled. Both
// end the current interview cycle without recording a turn.
var (
	ErrNoMatch  = errors.New("no speech could be recognized")
	ErrCanceled = errors.New("speech recognition canceled")
)

const (
	ttsEndpointFormat = "https://%s.tts.speech.microsoft.com/cognitiveservices/v1"
	sttEndpointFormat = "https://%s.stt.speech.microsoft.com/speech/recognition/conversation/cognitiveservices/v1?language=%s"

	outputFormat = "audio-16khz-128kbitrate-mono-mp3"
	language     = "en-US"
)

// Client talks to the Azure Cognitive Services Speech REST API.
type Client struct {
	key    string
	region string
	voice  string
	http   *httpclient.Client
	logger *zap.Logger
}

func NewClient(key, region, voice string, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(key) == "" || strings.TrimSpace(region) == "" {
		return nil, errors.New("speech key and region are required")
	}
	if voice == "" {
		voice = "en-US-AriaNeural"
	}
	return &Client{
		key:    key,
		region: region,
		voice:  voice,
		http:   httpclient.NewClient(60 * time.Second),
		logger: logger,
	}, nil
}

// Synthesize converts text to MP3 audio. Empty text is a no-op.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	ssml := buildSSML(c.voice, text)
	url := fmt.Sprintf(ttsEndpointFormat, c.region)

	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(ssml))
	if err != nil {
		return nil, fmt.Errorf("build synthesis request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", outputFormat)

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("synthesis request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("synthesis failed: status %d: %s", resp.StatusCode, body)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read synthesized audio: %w", err)
	}

	c.logger.Debug("synthesized utterance",
		zap.Int("text_length", len(text)),
		zap.Int("audio_bytes", len(audio)),
	)

	return audio, nil
}

type recognitionResponse struct {
	RecognitionStatus string `json:"RecognitionStatus"`
	DisplayText       string `json:"DisplayText"`
}

// Recognize transcribes one WAV utterance. Returns ErrNoMatch when no
// speech was detected and ErrCanceled when the service aborted the
// request.
func (c *Client) Recognize(ctx context.Context, wav []byte) (string, error) {
	if len(wav) == 0 {
		return "", ErrNoMatch
	}

	url := fmt.Sprintf(sttEndpointFormat, c.region, language)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(wav))
	if err != nil {
		return "", fmt.Errorf("build recognition request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)
	req.Header.Set("Content-Type", "audio/wav; codecs=audio/pcm; samplerate=16000")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return "", fmt.Errorf("recognition request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("recognition failed: status %d: %s", resp.StatusCode, body)
	}

	var result recognitionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode recognition response: %w", err)
	}

	switch result.RecognitionStatus {
	case "Success":
		text := strings.TrimSpace(result.DisplayText)
		if text == "" {
			return "", ErrNoMatch
		}
		return text, nil
	case "NoMatch", "InitialSilenceTimeout", "BabbleTimeout":
		return "", ErrNoMatch
	default:
		return "", ErrCanceled
	}
}

func buildSSML(voice, text string) string {
	var escaped bytes.Buffer
	xml.EscapeText(&escaped, []byte(text)) //nolint:errcheck // bytes.Buffer never fails

	return fmt.Sprintf(
		`<speak version='1.0' xml:lang='%s'><voice xml:lang='%s' name='%s'>%s</voice></speak>`,
		language, language, voice, escaped.String(),
	)
}
