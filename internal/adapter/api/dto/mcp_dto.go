package dto

// CommandRequest representa um comando de voz a ser processado. Comando vazio
// é classificado como unknown e não é executado.
type CommandRequest struct {
	Command     string `json:"command"`
	AutoExecute *bool  `json:"auto_execute"`
}

// ShouldExecute returns the auto_execute flag, true when omitted.
func (r CommandRequest) ShouldExecute() bool {
	return r.AutoExecute == nil || *r.AutoExecute
}

// ClassifyRequest representa um texto a ser classificado. Texto vazio é
// classificado como unknown.
type ClassifyRequest struct {
	Text string `json:"text"`
}

// ToolCallRequest são os argumentos de uma ferramenta chamada via REST
type ToolCallRequest map[string]any
