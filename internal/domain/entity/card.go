package entity

import (
	"time"

	"github.com/google/uuid"
)

// CardTemplate selects one of the visual card layouts.
type CardTemplate string

const (
	TemplateModern    CardTemplate = "modern"
	TemplateClassic   CardTemplate = "classic"
	TemplateCreative  CardTemplate = "creative"
	TemplateMinimal   CardTemplate = "minimal"
	TemplateExecutive CardTemplate = "executive"
	TemplateTech      CardTemplate = "tech"
	TemplateBold      CardTemplate = "bold"
	TemplateSleek     CardTemplate = "sleek"
)

// CardTheme selects the color treatment applied to a template.
type CardTheme string

const (
	ThemeLight  CardTheme = "light"
	ThemeDark   CardTheme = "dark"
	ThemeGlass  CardTheme = "glass"
	ThemeMesh   CardTheme = "mesh"
	ThemeNeon   CardTheme = "neon"
	ThemeAurora CardTheme = "aurora"
	ThemeRetro  CardTheme = "retro"
	ThemeGold   CardTheme = "gold"
)

// CardOrientation is the card aspect mode.
type CardOrientation string

const (
	OrientationLandscape CardOrientation = "landscape"
	OrientationPortrait  CardOrientation = "portrait"
)

// CardLanguage is the display language of the card's text fields.
type CardLanguage string

const (
	LanguageEnglish CardLanguage = "en"
	LanguageNepali  CardLanguage = "ne"
)

// Defaults applied when a card is provisioned for a fresh account.
const (
	DefaultThemeColor   = "#4f46e5"
	DefaultProfileImage = "https://images.unsplash.com/photo-1511367461989-f85a21fda167?w=400&h=400&fit=crop"
)

// BusinessCard is a user's designed digital business card. UserID is set
// once at creation and never reassigned; under normal operation exactly
// one card exists per user.
type BusinessCard struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	Name           string          `json:"name"`
	Title          string          `json:"title"`
	Company        string          `json:"company"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Website        string          `json:"website"`
	LinkedIn       string          `json:"linkedin"`
	Twitter        string          `json:"twitter"`
	Facebook       string          `json:"facebook,omitempty"`
	Instagram      string          `json:"instagram,omitempty"`
	WhatsAppNumber string          `json:"whatsappNumber,omitempty"`
	Address        string          `json:"address"`
	ProfileImage   string          `json:"profileImage"`
	BackgroundURL  string          `json:"backgroundUrl,omitempty"`
	BackgroundBlur int             `json:"backgroundBlur,omitempty"` // 0-20
	ThemeColor     string          `json:"themeColor"`
	Template       CardTemplate    `json:"template"`
	Theme          CardTheme       `json:"theme"`
	Orientation    CardOrientation `json:"orientation"`
	FontFamily     string          `json:"fontFamily,omitempty"`
	Language       CardLanguage    `json:"language,omitempty"`
	Bio            string          `json:"bio"`
	CreatedAt      int64           `json:"createdAt"` // epoch millis

	OrderRedirectURL string `json:"orderRedirectUrl,omitempty"`
	IsOrderEnabled   bool   `json:"isOrderEnabled,omitempty"`
}

// NewCardID generates a new card identifier.
func NewCardID() string {
	return "card_" + uuid.NewString()
}

// NewDefaultCard synthesizes the card a user starts with: name derived
// from the email local-part and the stock template, theme, color and
// placeholder portrait.
func NewDefaultCard(user User) BusinessCard {
	return BusinessCard{
		ID:           NewCardID(),
		UserID:       user.ID,
		Name:         DisplayNameFromEmail(user.Email),
		Email:        user.Email,
		ProfileImage: DefaultProfileImage,
		ThemeColor:   DefaultThemeColor,
		Template:     TemplateModern,
		Theme:        ThemeLight,
		Orientation:  OrientationLandscape,
		CreatedAt:    time.Now().UnixMilli(),
	}
}
