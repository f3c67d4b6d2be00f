package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

var errEmptyResponse = errors.New("empty agent response")

// agentRunner runs a single llm agent, one throwaway session per call.
type agentRunner struct {
	name     string
	runner   *runner.Runner
	sessions session.Service
}

func newModel(ctx context.Context, apiKey, modelName string) (model.LLM, error) {
	m, err := gemini.NewModel(ctx, modelName, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}
	return m, nil
}

func GetAgent(m model.LLM, agentName, description, instruction string) (agent.Agent, error) {
	customAgent, err := llmagent.New(llmagent.Config{
		Name:        agentName,
		Model:       m,
		Description: description,
		Instruction: instruction,
		GenerateContentConfig: &genai.GenerateContentConfig{
			Temperature: genai.Ptr[float32](0.7),
			TopP:        genai.Ptr[float32](0.9),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}
	return customAgent, nil
}

func newAgentRunner(m model.LLM, agentName, description, instruction string) (*agentRunner, error) {
	a, err := GetAgent(m, agentName, description, instruction)
	if err != nil {
		return nil, err
	}

	sessions := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        a.Name(),
		Agent:          a,
		SessionService: sessions,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}
	return &agentRunner{name: a.Name(), runner: r, sessions: sessions}, nil
}

// Generate sends prompt to the agent and returns the text of its final response.
func (a *agentRunner) Generate(ctx context.Context, userID, prompt string) (string, error) {
	created, err := a.sessions.Create(ctx, &session.CreateRequest{
		AppName:   a.name,
		UserID:    userID,
		SessionID: uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	defer func() {
		_ = a.sessions.Delete(context.WithoutCancel(ctx), &session.DeleteRequest{
			AppName:   a.name,
			UserID:    created.Session.UserID(),
			SessionID: created.Session.ID(),
		})
	}()

	stream := a.runner.Run(ctx, created.Session.UserID(), created.Session.ID(), &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			{Text: prompt},
		},
	}, agent.RunConfig{})

	var output string
	for event, err := range stream {
		if err != nil {
			return "", fmt.Errorf("agent %s: %w", a.name, err)
		}
		if event == nil || !event.IsFinalResponse() || event.Content == nil {
			continue
		}
		var b strings.Builder
		for _, part := range event.Content.Parts {
			if part != nil {
				b.WriteString(part.Text)
			}
		}
		output = b.String()
	}

	if strings.TrimSpace(output) == "" {
		return "", fmt.Errorf("agent %s: %w", a.name, errEmptyResponse)
	}
	return output, nil
}
