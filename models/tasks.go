package models

// PurgePayload is the queue payload for retrying an assignment purge whose
// inline attempt could not be persisted. Kind is one of the schedule kind
// constants; IDs are the appointment IDs to strip from the stored board.
type PurgePayload struct {
	UserID string   `json:"user_id"`
	Kind   string   `json:"kind"`
	IDs    []string `json:"ids"`
}
