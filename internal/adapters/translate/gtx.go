package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"

	"geo-route-service/internal/domain"
	"geo-route-service/internal/platform/obs"
)

// GTXTranslator translates text through the public gtx endpoint of Google
// Translate. Source and target languages are fixed at construction; route
// instructions arrive in English and are served in Spanish by default.
type GTXTranslator struct {
	client *http.Client
	source language.Tag
	target language.Tag
	// baseURL is overrideable in tests.
	baseURL string
}

func NewGTXTranslator(source, target language.Tag) *GTXTranslator {
	return &GTXTranslator{
		client:  &http.Client{Timeout: 10 * time.Second},
		source:  source,
		target:  target,
		baseURL: "https://translate.googleapis.com/translate_a/single",
	}
}

// NewInstructionTranslator is the en -> es translator used for driving
// instructions.
func NewInstructionTranslator() *GTXTranslator {
	return NewGTXTranslator(language.English, language.Spanish)
}

func (t *GTXTranslator) Translate(ctx context.Context, text string) (_ string, err error) {
	defer obs.Time(ctx, "gtx.translate")(&err)

	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", t.source.String())
	q.Set("tl", t.target.String())
	q.Set("dt", "t")
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", domain.ErrTranslationFailed, err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTranslationFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", domain.ErrTranslationFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", domain.ErrTranslationFailed, resp.StatusCode)
	}

	translated, err := decodeGTX(body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTranslationFailed, err)
	}
	return translated, nil
}

// decodeGTX unpacks the gtx nested-array shape:
// [[["Gire a la izquierda","Turn left",...], ...], null, "en", ...].
// The translation is the concatenation of each segment's first element.
func decodeGTX(body []byte) (string, error) {
	var outer []json.RawMessage
	if err := json.Unmarshal(body, &outer); err != nil {
		return "", fmt.Errorf("decode response: %v", err)
	}
	if len(outer) == 0 {
		return "", fmt.Errorf("empty response")
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(outer[0], &segments); err != nil {
		return "", fmt.Errorf("decode segments: %v", err)
	}

	var b strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		var part string
		if err := json.Unmarshal(seg[0], &part); err != nil {
			return "", fmt.Errorf("decode segment text: %v", err)
		}
		b.WriteString(part)
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("no translation segments")
	}
	return b.String(), nil
}
