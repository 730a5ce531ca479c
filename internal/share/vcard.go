package share

import (
	"strings"

	"tapify/internal/domain/entity"
)

// VCard renders the card as a vCard 3.0 record. Empty fields keep their
// keys so downstream parsers see a stable line set.
func VCard(card *entity.BusinessCard) string {
	lines := []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"FN:" + valueOr(card.Name, "Contact"),
		"N:" + valueOr(reverseNameParts(card.Name), "Contact"),
		"TITLE:" + card.Title,
		"ORG:" + card.Company,
		"EMAIL;TYPE=INTERNET,WORK:" + card.Email,
		"TEL;TYPE=CELL:" + card.Phone,
		"URL:" + card.Website,
		"ADR;TYPE=WORK:;;" + card.Address + ";;;;",
		"NOTE:" + card.Bio,
		"END:VCARD",
	}

	return strings.Join(lines, "\n")
}

// VCardFilename is the suggested download name for the record.
func VCardFilename(card *entity.BusinessCard) string {
	return valueOr(card.Name, "contact") + ".vcf"
}

// reverseNameParts turns "Jane van Doe" into "Doe;van;Jane", the
// surname-first component order the N property expects.
func reverseNameParts(name string) string {
	if name == "" {
		return ""
	}

	parts := strings.Split(name, " ")
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}

	return strings.Join(parts, ";")
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
