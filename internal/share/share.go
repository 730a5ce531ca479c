// Package share builds the card sharing payloads: public links, vCard
// records, offline fragments and the physical-card order link.
package share

import (
	"fmt"
	"net/url"
	"strings"

	"tapify/internal/domain/entity"
)

const orderMessageFormat = "Hi, I just designed a digital business card on TAPIFY and I'd like to order a physical NFC version!\n\nName: %s\nTitle: %s\nCard Link: %s"

// CardURL builds the public share link for a card id.
func CardURL(baseURL, cardID string) string {
	return strings.TrimSuffix(baseURL, "/") + "?card=" + cardID
}

// OrderURL builds the WhatsApp link that opens a pre-filled order
// message for a physical NFC card.
func OrderURL(whatsAppNumber string, card *entity.BusinessCard, shareURL string) string {
	message := fmt.Sprintf(orderMessageFormat, card.Name, card.Title, shareURL)

	return "https://wa.me/" + whatsAppNumber + "?text=" + encodeURIComponent(message)
}

// encodeURIComponent matches the JavaScript encoding the original link
// format was defined with. url.QueryEscape encodes spaces as '+', which
// WhatsApp renders literally.
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
