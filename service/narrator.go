package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"salonledger/config"

	"google.golang.org/genai"
)

// ErrNarratorDisabled 문장 생성기가 설정되지 않음
var ErrNarratorDisabled = errors.New("분석 문장 생성이 설정되지 않았습니다")

// Narrator 계산 결과를 설명하는 문장을 생성한다
type Narrator interface {
	Narrate(ctx context.Context, prompt string) (string, error)
}

// NewNarrator llm.provider 에 따라 생성기를 고른다. 비어 있으면 비활성 생성기
func NewNarrator(cfg config.LLMConfig) (Narrator, error) {
	switch strings.ToLower(cfg.Provider) {
	case "":
		return disabledNarrator{}, nil
	case "openai":
		return NewChatCompletionNarrator(cfg, nil), nil
	case "gemini":
		return NewGeminiNarrator(cfg), nil
	default:
		return nil, fmt.Errorf("지원하지 않는 llm.provider: %s", cfg.Provider)
	}
}

type disabledNarrator struct{}

func (disabledNarrator) Narrate(context.Context, string) (string, error) {
	return "", ErrNarratorDisabled
}

// ChatCompletionNarrator OpenAI 호환 chat/completions 호출
type ChatCompletionNarrator struct {
	cfg    config.LLMConfig
	client *http.Client
}

// NewChatCompletionNarrator client 가 nil 이면 설정의 타임아웃으로 새로 만든다
func NewChatCompletionNarrator(cfg config.LLMConfig, client *http.Client) *ChatCompletionNarrator {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout()}
	}
	return &ChatCompletionNarrator{cfg: cfg, client: client}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Narrate 문장 생성
func (n *ChatCompletionNarrator) Narrate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    n.cfg.Model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("요청 생성 실패: %w", err)
	}

	url := strings.TrimRight(n.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("요청 생성 실패: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+n.cfg.APIKey)

	resp, err := n.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("모델 호출 실패: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("응답 읽기 실패: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("모델 응답 오류 (%d): %s", resp.StatusCode, truncate(string(raw), 300))
	}

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("응답 파싱 실패: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("모델 오류: %s", out.Error.Message)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", errors.New("모델 응답이 비어 있습니다")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

// GeminiNarrator google genai SDK 사용
type GeminiNarrator struct {
	cfg config.LLMConfig
}

// NewGeminiNarrator 생성
func NewGeminiNarrator(cfg config.LLMConfig) *GeminiNarrator {
	return &GeminiNarrator{cfg: cfg}
}

// Narrate 문장 생성
func (n *GeminiNarrator) Narrate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, n.cfg.Timeout())
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      n.cfg.APIKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("genai 클라이언트 생성 실패: %w", err)
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}
	resp, err := client.Models.GenerateContent(ctx, n.cfg.Model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("모델 호출 실패: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("모델 응답이 비어 있습니다")
	}
	return text, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
