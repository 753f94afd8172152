package service

import (
	"context"

	"doc-quiz/internal/domain"
	"doc-quiz/internal/logger"

	"go.uber.org/zap"
)

// SystemPrompt is the fixed instruction sent ahead of the document text.
const SystemPrompt = `
You are an AI quiz generator. Your task is to create a set of multiple-choice quiz questions based on the text provided by the user. Follow these rules:

1. Generate exactly 5–10 questions (depending on text length).
2. Each question must have:
   - A clear, concise question stem.
   - Four answer choices labeled A, B, C, D.
   - Exactly one correct answer, indicated in the metadata (do not reveal it in the choices).
3. Distractors (wrong answers) should be plausible but clearly incorrect if one reads the text carefully.
4. Return the result as a JSON array of objects, each with the following structure:
   {
     "question": "...",
     "choices": {
       "A": "...",
       "B": "...",
       "C": "...",
       "D": "..."
     },
     "correct": "A"
   }
5. Do not include any additional commentary or explanation—only the JSON array.
`

// QuizService defines the interface for quiz generation
type QuizService interface {
	GenerateQuiz(ctx context.Context, req domain.QuizRequest) (domain.Quiz, error)
}

// quizService implements QuizService
type quizService struct {
	client domain.CompletionClient
}

// NewQuizService creates a new instance of quizService
func NewQuizService(client domain.CompletionClient) QuizService {
	return &quizService{client: client}
}

// GenerateQuiz implements QuizService. It issues exactly one completion call;
// failures are returned to the caller as is, without retry.
func (s *quizService) GenerateQuiz(ctx context.Context, req domain.QuizRequest) (domain.Quiz, error) {
	l := logger.Get()
	l.Info("Generating quiz",
		zap.Int("text_length", len(req.Text)),
		zap.String("model", req.Model),
		zap.Float64("temperature", req.Temperature),
		zap.Int("max_tokens", req.MaxTokens))

	content, err := s.client.Complete(ctx, domain.CompletionRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Messages: []domain.Message{
			{Role: domain.RoleSystem, Content: SystemPrompt},
			{Role: domain.RoleUser, Content: req.Text},
		},
	})
	if err != nil {
		l.Error("Error calling LLM provider", zap.Error(err))
		return nil, domain.NewProviderError(err)
	}

	l.Debug("Raw AI response", zap.String("raw_response", content))

	quiz, err := ParseQuiz(content)
	if err != nil {
		l.Error("Failed to parse quiz JSON", zap.Error(err), zap.String("raw_response", content))
		return nil, err
	}

	l.Info("Quiz generated and parsed successfully", zap.Int("questions", len(quiz)))
	return quiz, nil
}
