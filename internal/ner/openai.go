package ner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/invopop/jsonschema"
	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/shared"
	"go.uber.org/zap"

	"travelrag/internal/domain"
)

const nerInstruction = `You are a named-entity recognizer for travel queries.
Tag every span that is a geo-political entity (GPE), monetary amount (MONEY),
date or duration (DATE), organization (ORG) or nationality/group (NORP).
Return only the entities present in the input, in order of appearance.`

type taggedEntity struct {
	Text  string `json:"text" jsonschema:"title=text,description=The exact span of input text."`
	Label string `json:"label" jsonschema:"title=label,description=One of GPE MONEY DATE ORG NORP."`
}

type taggedEntities struct {
	Entities []taggedEntity `json:"entities" jsonschema:"title=entities,description=All recognized entities in order of appearance."`
}

// LLM is a recognizer backed by a chat-completion model with a structured
// output schema. Callers treat failures as "no entities" per the extraction
// contract, so errors here carry context but no retry logic.
type LLM struct {
	client openai.Client
	model  shared.ChatModel
	logger *zap.Logger
}

// NewLLM creates an LLM-backed recognizer using the given chat model.
func NewLLM(client openai.Client, model string, logger *zap.Logger) *LLM {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLM{client: client, model: shared.ChatModel(model), logger: logger}
}

func entitySchema() openai.ChatCompletionNewParamsResponseFormatUnion {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(taggedEntities{})
	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
			JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
				Name:        "tagged_entities",
				Description: openai.String("named entities recognized in the query"),
				Schema:      schema,
				Strict:      openai.Bool(true),
			},
		},
	}
}

// Recognize tags entities in the text via one completion call.
func (l *LLM) Recognize(ctx context.Context, text string) ([]domain.Entity, error) {
	completion, err := l.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(nerInstruction),
			openai.UserMessage(text),
		},
		Model:          l.model,
		ResponseFormat: entitySchema(),
		Temperature:    openai.Float(0),
	})
	if err != nil {
		return nil, fmt.Errorf("entity recognition call: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, errors.New("entity recognition returned no choices")
	}
	var tagged taggedEntities
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &tagged); err != nil {
		return nil, fmt.Errorf("decoding entities: %w", err)
	}
	entities := make([]domain.Entity, 0, len(tagged.Entities))
	for _, e := range tagged.Entities {
		label := domain.EntityLabel(e.Label)
		switch label {
		case domain.LabelGPE, domain.LabelMoney, domain.LabelDate, domain.LabelOrg, domain.LabelNorp:
			entities = append(entities, domain.Entity{Text: e.Text, Label: label})
		default:
			l.logger.Debug("dropping entity with unknown label", zap.String("label", e.Label))
		}
	}
	return entities, nil
}
