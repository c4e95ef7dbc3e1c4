package messages

import "encoding/json"

// ReportQueueMessage is published once per batch run when queue publishing is enabled.
type ReportQueueMessage struct {
	Type      string          `json:"type"`
	MessageID string          `json:"message_id"`
	Ok        bool            `json:"ok"`
	Payload   json.RawMessage `json:"payload"`
}

// ReportPayload is the summary carried by a ReportQueueMessage.
type ReportPayload struct {
	SuccessCount int             `json:"success_count"`
	FailureCount int             `json:"failure_count"`
	Successes    []string        `json:"successes"`
	Failures     []string        `json:"failures"`
	Results      []ResultPayload `json:"results"`
}

type ResultPayload struct {
	FileName string `json:"file_name"`
	Status   string `json:"status"`
	Reason   string `json:"reason"`
	ExitCode int    `json:"exit_code"`
	TimeMs   int64  `json:"time_ms"`
}
