// internal/services/agent_service.go
package services

import (
	"context"
	"unicode/utf8"

	"assistant-backend/internal/quota"
)

// AgentResult is what the content-processing agent reports back after doing
// billable work.
type AgentResult struct {
	Output string
	Tokens int64
	Cost   float64
}

// AgentService is the boundary to the document/image/video/audio processing
// agents. The platform treats them as external collaborators; the engine
// only ever sees the token and cost outcome.
type AgentService interface {
	Process(ctx context.Context, modality quota.Modality, content string) (*AgentResult, error)
}

// Per-token price applied by the built-in agent, by modality.
var modalityRates = map[quota.Modality]float64{
	quota.ModalityVideo:    0.00004,
	quota.ModalityAudio:    0.00002,
	quota.ModalityDocument: 0.00001,
	quota.ModalityImage:    0.00003,
}

type echoAgentService struct{}

// NewEchoAgentService returns a stand-in agent that derives token counts
// from content length. Real deployments plug model-backed agents in behind
// the same interface.
func NewEchoAgentService() AgentService {
	return &echoAgentService{}
}

func (s *echoAgentService) Process(_ context.Context, modality quota.Modality, content string) (*AgentResult, error) {
	// Rough heuristic: one token per four characters, minimum one.
	tokens := int64(utf8.RuneCountInString(content)) / 4
	if tokens < 1 {
		tokens = 1
	}

	return &AgentResult{
		Output: content,
		Tokens: tokens,
		Cost:   float64(tokens) * modalityRates[modality],
	}, nil
}
