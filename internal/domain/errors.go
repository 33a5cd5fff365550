package domain

import "errors"

var (
	// ErrDataLoad signals that the ranking dataset is missing or malformed.
	// Fatal for answering questions, reported once; the process stays up.
	ErrDataLoad = errors.New("dataset load failed")
	// ErrIntentExtraction signals that the interpretation call failed or
	// returned a non-conforming payload. Safe to retry with a new question.
	ErrIntentExtraction = errors.New("intent extraction failed")
	// ErrComposer signals that the summarization call failed.
	ErrComposer = errors.New("answer composition failed")
	// ErrLLMProvider signals a transport-level failure of the model service.
	ErrLLMProvider = errors.New("llm provider error")
)
