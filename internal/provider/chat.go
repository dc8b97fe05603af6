package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/misterclayt0n/hygie/internal/models"
)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.3-70b-versatile"
)

const systemPrompt = "You are a strength and conditioning coach. " +
	"Answer with a single JSON document and nothing else unless told otherwise."

// ChatClient asks an OpenAI compatible chat-completions endpoint for session content.
type ChatClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func NewChatClient(baseURL, apiKey, model string) *ChatClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &ChatClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (c *ChatClient) GeneratePlan(ctx context.Context, profile *models.Profile, minutes int, focus string) (models.WorkoutPlan, error) {
	prompt := fmt.Sprintf(
		"Build a %d minute workout focused on %q for this athlete: %s.\n"+
			`Return {"title": string, "warmup": [phase], "stretch_prep": [phase], "cooldown": [phase], "exercises": [exercise]} `+
			`where phase is {"name", "instruction", "duration" (seconds)} and exercise is `+
			`{"name", "sets", "reps" (text such as "10-12" or "Max"), "rest" (seconds), "description", "suggested_load" (text such as "40kg")}.`,
		minutes, focus, athleteSummary(profile),
	)

	var plan models.WorkoutPlan
	if err := c.askJSON(ctx, prompt, &plan); err != nil {
		return models.WorkoutPlan{}, fmt.Errorf("generate plan: %w", err)
	}
	if len(plan.Warmup) == 0 && len(plan.Cooldown) == 0 && len(plan.Exercises) == 0 {
		return models.WorkoutPlan{}, errors.New("generate plan: empty plan")
	}
	return plan, nil
}

func (c *ChatClient) SubstituteExercise(ctx context.Context, profile *models.Profile, current models.Exercise) (models.Exercise, error) {
	prompt := fmt.Sprintf(
		"The athlete (%s) cannot do %q (%d sets of %s). Suggest one different exercise training the same muscles. "+
			`Return {"name", "sets", "reps", "rest", "description", "suggested_load"}.`,
		athleteSummary(profile), current.Name, current.Sets, current.Reps,
	)

	var ex models.Exercise
	if err := c.askJSON(ctx, prompt, &ex); err != nil {
		return models.Exercise{}, fmt.Errorf("substitute exercise: %w", err)
	}
	if ex.Name == "" || strings.EqualFold(ex.Name, current.Name) {
		return models.Exercise{}, ErrNoSubstitute
	}
	if ex.Sets <= 0 {
		ex.Sets = current.Sets
	}
	if ex.Reps == "" {
		ex.Reps = current.Reps
	}
	if ex.Rest <= 0 {
		ex.Rest = current.Rest
	}
	return ex, nil
}

func (c *ChatClient) GenerateSessionFeedback(ctx context.Context, profile *models.Profile, metrics []models.PerformanceMetric) (string, error) {
	prompt := fmt.Sprintf(
		"Write three short sentences of feedback, as plain text, for this session of %s. Sets: %s",
		athleteSummary(profile), metricsSummary(metrics),
	)

	text, err := c.chat(ctx, []chatMessage{
		{Role: "system", Content: "You are a strength and conditioning coach."},
		{Role: "user", Content: prompt},
	}, 0.7)
	if err != nil {
		return "", fmt.Errorf("session feedback: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func (c *ChatClient) AnalyzeGoalProgress(ctx context.Context, profile *models.Profile, metrics []models.PerformanceMetric) (models.GoalProgress, error) {
	goal := "none"
	if profile != nil && profile.Goal != nil {
		goal = fmt.Sprintf("%q at %.0f%%", profile.Goal.Title, profile.Goal.Current)
	}
	prompt := fmt.Sprintf(
		"Athlete %s, active goal %s. Estimate how this session moved the goal. Sets: %s\n"+
			`Return {"progress_increment": number of percentage points, "is_on_track": bool, `+
			`"adjustment_advice": string, "current_estimated_completion": number 0-100}.`,
		athleteSummary(profile), goal, metricsSummary(metrics),
	)

	var progress models.GoalProgress
	if err := c.askJSON(ctx, prompt, &progress); err != nil {
		return models.GoalProgress{}, fmt.Errorf("goal progress: %w", err)
	}
	return progress, nil
}

func (c *ChatClient) askJSON(ctx context.Context, prompt string, out any) error {
	text, err := c.chat(ctx, []chatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	}, 0.4)
	if err != nil {
		return err
	}

	doc := extractJSON(text)
	if doc == "" {
		return errors.New("no json object in the answer")
	}
	if err := json.Unmarshal([]byte(doc), out); err != nil {
		return fmt.Errorf("decode answer: %w", err)
	}
	return nil
}

func (c *ChatClient) chat(ctx context.Context, messages []chatMessage, temperature float64) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   2048,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(raw, &chatResp); err != nil {
		return "", fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("api error: %s", chatResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if len(chatResp.Choices) == 0 {
		return "", errors.New("empty answer")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// extractJSON cuts the outermost object out of an answer that may be wrapped in prose or fences.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}

func athleteSummary(profile *models.Profile) string {
	if profile == nil {
		return "unknown athlete"
	}
	tier := string(profile.Experience)
	if tier == "" {
		tier = "unknown level"
	}
	return fmt.Sprintf("%s, %.1f kg, %s", profile.Name, profile.BodyWeight, tier)
}

func metricsSummary(metrics []models.PerformanceMetric) string {
	if len(metrics) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(metrics))
	for _, m := range metrics {
		parts = append(parts, fmt.Sprintf("%s %.1fkg x %d (%ds)", m.ExerciseName, m.Weight, m.Reps, m.EffortSeconds))
	}
	return strings.Join(parts, "; ")
}
