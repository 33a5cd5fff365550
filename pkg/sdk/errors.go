package atletismo

import "github.com/kinhostella/atletismo/internal/domain"

// Sentinel errors re-exported for errors.Is checks by SDK users.
var (
	// ErrDataLoad indicates the ranking dataset could not be read.
	ErrDataLoad = domain.ErrDataLoad
	// ErrIntentExtraction indicates the model reply could not be parsed
	// into a query intent.
	ErrIntentExtraction = domain.ErrIntentExtraction
	// ErrComposer indicates the final answer could not be generated.
	ErrComposer = domain.ErrComposer
	// ErrLLMProvider indicates a transport failure talking to the model.
	ErrLLMProvider = domain.ErrLLMProvider
)
