package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/wanderstone-dev/wanderstone/pkg/domain/types"
)

// Service turns a stone's journey into a short story for the chat
// message that accompanies the rendered map.
type Service interface {
	Journey(ctx context.Context, req *Request) (string, error)
}

// Request describes one journey to narrate. Stops are place labels in
// chronological order; unlocated sightings are counted but not named.
type Request struct {
	StoneName string
	Stops     []string
	Sightings int
	Language  types.Language
}

var languageNames = map[types.Language]string{
	types.LanguagePolish:  "Polish",
	types.LanguageEnglish: "English",
	types.LanguageRussian: "Russian",
}

// client implements Service interface
type client struct {
	llmClient gollem.LLMClient
}

// New creates a narrative service with the provided LLM client
func New(llmClient gollem.LLMClient) (Service, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}

	return &client{llmClient: llmClient}, nil
}

func (c *client) Journey(ctx context.Context, req *Request) (string, error) {
	if req == nil || req.StoneName == "" {
		return "", goerr.New("journey request is empty")
	}

	session, err := c.llmClient.NewSession(ctx,
		gollem.WithSessionSystemPrompt(systemPrompt(req.Language)),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(userPrompt(req)))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate journey narrative")
	}
	if len(resp.Texts) == 0 {
		return "", goerr.New("LLM returned no narrative")
	}

	return strings.TrimSpace(resp.Texts[0]), nil
}

func systemPrompt(lang types.Language) string {
	name, ok := languageNames[lang]
	if !ok {
		name = languageNames[types.DefaultLanguage]
	}
	return "You write one short, warm paragraph about the travels of a painted stone " +
		"that people hide and find outdoors. Answer in " + name +
		". Never invent places that are not listed."
}

func userPrompt(req *Request) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Stone name: %s\n", req.StoneName)
	fmt.Fprintf(&sb, "Times found: %d\n", req.Sightings)
	if len(req.Stops) > 0 {
		sb.WriteString("Journey stops in order:\n")
		for i, stop := range req.Stops {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, stop)
		}
	} else {
		sb.WriteString("No stop has a known location.\n")
	}
	return sb.String()
}
