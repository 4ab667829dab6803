package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.5-flash"
)

// Persona do assistente do funil. A API em si é opaca: mandamos texto,
// recebemos texto.
const systemInstruction = `You are "ZeroBot", a compassionate, firm, and knowledgeable addiction recovery specialist integrated into the "Zero Vício" app.
Your goal is to help users maintain sobriety, overcome cravings, and stay motivated.
- Be empathetic but encouraging of discipline.
- If a user feels like relapsing, offer immediate grounding techniques (breathing, distraction).
- Keep responses concise and readable on mobile.
- Do not provide medical advice; suggest professional help for physical withdrawal symptoms.`

const motivationPrompt = "Generate a short, powerful quote or tip in Portuguese for someone recovering from addiction today. Maximum 2 sentences."

type Client struct {
	baseURL string
	model   string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		model:   defaultModel,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientWithURL existe pros testes apontarem pra um servidor local.
func NewClientWithURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	SystemInstruction *content  `json:"system_instruction,omitempty"`
	Contents          []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// SendMessage envia a mensagem dentro da sessão e devolve o texto da
// resposta. A sessão é um objeto explícito do chamador; nada de estado
// global de processo.
func (c *Client) SendMessage(ctx context.Context, session *Session, message string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY not set")
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	contents := append(append([]content{}, session.history...), content{
		Role:  "user",
		Parts: []part{{Text: message}},
	})

	reply, err := c.generate(ctx, generateRequest{
		SystemInstruction: &content{Parts: []part{{Text: systemInstruction}}},
		Contents:          contents,
	})
	if err != nil {
		return "", err
	}

	session.history = append(contents, content{
		Role:  "model",
		Parts: []part{{Text: reply}},
	})

	return reply, nil
}

// GenerateMotivation é um one-shot, sem sessão.
func (c *Client) GenerateMotivation(ctx context.Context) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY not set")
	}
	return c.generate(ctx, generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: motivationPrompt}}}},
	})
}

func (c *Client) generate(ctx context.Context, reqBody generateRequest) (string, error) {
	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini error %d: %s", resp.StatusCode, string(body))
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, cand := range parsed.Candidates {
		for _, p := range cand.Content.Parts {
			if strings.TrimSpace(p.Text) == "" {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(p.Text)
		}
	}

	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", fmt.Errorf("empty response from model")
	}

	return out, nil
}
