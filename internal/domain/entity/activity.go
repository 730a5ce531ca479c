package entity

// ActivityAction enumerates the recorded user actions.
type ActivityAction string

const (
	ActionSave        ActivityAction = "SAVE"
	ActionAITranslate ActivityAction = "AI_TRANSLATE"
	ActionAIImageEdit ActivityAction = "AI_IMAGE_EDIT"
	ActionLogin       ActivityAction = "LOGIN"
	ActionNFCWrite    ActivityAction = "NFC_WRITE"
	ActionOrderNFC    ActivityAction = "ORDER_NFC"
)

// ActivityLog is one append-only audit entry. The stored list is
// newest-first and capped at the most recent 1000 entries.
type ActivityLog struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	UserEmail string         `json:"userEmail"`
	Action    ActivityAction `json:"action"`
	Details   string         `json:"details"`
	Timestamp int64          `json:"timestamp"` // epoch millis
}
