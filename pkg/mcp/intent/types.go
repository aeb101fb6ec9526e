package intent

// IntentName identifica uma categoria de comando reconhecida pelo classificador
type IntentName string

const (
	TimeChange     IntentName = "time_change"
	LocationChange IntentName = "location_change"
	SpeakerChange  IntentName = "speaker_change"
	CancelEvent    IntentName = "cancel_event"
	AddEvent       IntentName = "add_event"
	QueryInfo      IntentName = "query_info"
	Unknown        IntentName = "unknown"
)

// Status values of a CommandResult.
const (
	StatusCompleted      = "completed"
	StatusClassifiedOnly = "classified_only"
)

// Classification representa a intenção detectada em um comando
type Classification struct {
	// Intenção vencedora, ou Unknown
	Intent IntentName `json:"intent"`

	// Confiança na identificação (0-1)
	Confidence float64 `json:"confidence"`

	// Parâmetros extraídos do texto para a intenção vencedora
	Parameters map[string]string `json:"parameters"`

	// Ação sugerida em linguagem natural
	SuggestedAction string `json:"suggested_action"`
}

// ExecutionOutcome representa o resultado de uma mutação disparada por um comando
type ExecutionOutcome struct {
	Executed bool       `json:"executed"`
	Action   IntentName `json:"action"`
	Details  string     `json:"details"`
}

// CommandResult is the response of Executor.Process. ExecutionResult is nil
// when nothing was attempted.
type CommandResult struct {
	OriginalCommand string            `json:"original_command"`
	Classification  Classification    `json:"classification"`
	ExecutionResult *ExecutionOutcome `json:"execution_result"`
	Status          string            `json:"status"`
}

// Score is the raw score of one intent before capping.
type Score struct {
	Intent IntentName `json:"intent"`
	Score  float64    `json:"score"`
}
