package entity

// WalletEntry is a full card snapshot saved by a viewer, possibly
// anonymous, for offline recall. Entries are keyed by card id and
// independent of the owning user's live copy.
type WalletEntry struct {
	CardID  string       `json:"cardId"`
	Card    BusinessCard `json:"card"`
	SavedAt int64        `json:"savedAt"` // epoch millis
}
