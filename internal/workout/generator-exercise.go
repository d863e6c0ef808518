package workout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// exerciseGenerator writes catalog exercise descriptions using the OpenAI API.
type exerciseGenerator struct {
	client openai.Client
}

func newExerciseGenerator(openaiAPIKey string) *exerciseGenerator {
	return &exerciseGenerator{
		client: openai.NewClient(option.WithAPIKey(openaiAPIKey)),
	}
}

// Describe generates a markdown description for the named exercise.
func (eg *exerciseGenerator) Describe(ctx context.Context, name string, categoryName string) (string, error) {
	if name == "" {
		return "", errors.New("exercise name cannot be empty")
	}

	prompt := fmt.Sprintf(`Write a markdown description for the strength exercise "%s"
(category: %s) following this exact structure:

## Instructions
[Provide 3-5 numbered steps explaining how to perform the exercise correctly]

## Common Mistakes
[List 3-4 common form errors as bullet points]

Important guidelines:
- Instructions should be clear, concise, and focus on proper form
- Use simple, direct language that beginners can understand
- Highlight safety considerations where relevant

The description should be comprehensive yet concise, totaling around 100-150 words.
Respond with the markdown only, no preamble.`, name, categoryName)

	chat, err := eg.client.Chat.Completions.New(ctx,
		openai.ChatCompletionNewParams{ //nolint:exhaustruct // only need to set a few fields.
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(prompt),
			},
			Model: openai.ChatModelGPT4o,
		})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(chat.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	description := strings.TrimSpace(chat.Choices[0].Message.Content)
	if description == "" {
		return "", errors.New("generated description is empty")
	}
	return description, nil
}

// fallbackDescription is used when no API key is configured or generation
// fails. The catalog entry stays usable and can be regenerated later.
func fallbackDescription(name string) string {
	return fmt.Sprintf("## %s\n\nNo description yet.\n", name)
}
