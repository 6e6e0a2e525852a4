package receipt

import (
	"fmt"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// Recognizer is the text-recognition service the pipeline consumes. It is an
// injected capability so tests can run the extraction rules without Tesseract.
type Recognizer interface {
	// Recognize returns best-effort text for a full receipt image.
	Recognize(path string) (string, error)
	// RecognizeDigits re-scans a cropped band with a digits-and-mask whitelist.
	RecognizeDigits(path string) (string, error)
}

// Characters that appear on the supported receipt layouts. Restricting the
// recognizer to these cuts down on garbage lines.
const receiptWhitelist = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz .,:/()-*"

// Engine wraps a single long-lived Tesseract client. Initialization dominates
// per-call cost, so the client is created once per process and recognition
// calls are serialized against it; reconfiguring a shared client concurrently
// corrupts its state.
type Engine struct {
	mu     sync.Mutex
	lang   string
	client *gosseract.Client
}

// NewEngine creates the shared recognizer handle. lang defaults to "ind+eng",
// the mix the modeled receipts are printed in.
func NewEngine(lang string) *Engine {
	if strings.TrimSpace(lang) == "" {
		lang = "ind+eng"
	}
	client := gosseract.NewClient()
	_ = client.SetLanguage(strings.Split(lang, "+")...)
	_ = client.SetWhitelist(receiptWhitelist)
	_ = client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK)
	return &Engine{lang: lang, client: client}
}

// Close releases the underlying Tesseract client.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.client.Close()
}

// Recognize runs the shared client over one image.
func (e *Engine) Recognize(path string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.client.SetImage(path); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	return text, nil
}

// RecognizeDigits uses a short-lived, narrowly-configured client per call.
// These scans are cheap (tiny crops, single line) and independent, so they may
// run concurrently without touching the shared client.
func (e *Engine) RecognizeDigits(path string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()
	_ = client.SetLanguage("ind")
	_ = client.SetWhitelist("0123456789*")
	_ = client.SetPageSegMode(gosseract.PSM_SINGLE_LINE)
	if err := client.SetImage(path); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize digits: %w", err)
	}
	return text, nil
}
