package models

import "time"

// SettingsID is the well-known id of the single settings document shared by
// the whole deployment.
const SettingsID = "military_unit_settings"

// Settings holds unit-wide display strings. Exactly one document ever
// exists; it is created lazily on first write.
type Settings struct {
	ID           string    `json:"id" bson:"id"`
	UnitName     string    `json:"unit_name" bson:"unit_name"`
	UnitSubtitle string    `json:"unit_subtitle" bson:"unit_subtitle"`
	UnitIcon     string    `json:"unit_icon" bson:"unit_icon"`
	NewsTitle    string    `json:"news_title" bson:"news_title"`
	NewsSubtitle string    `json:"news_subtitle" bson:"news_subtitle"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// DefaultSettings returns the settings served before an admin customizes them
func DefaultSettings() *Settings {
	return &Settings{
		ID:           SettingsID,
		UnitName:     "Військова Частина",
		UnitSubtitle: "Інформаційна Система",
		UnitIcon:     "https://cdn-icons-png.flaticon.com/512/2913/2913133.png",
		NewsTitle:    "Новини Частини",
		NewsSubtitle: "Актуальна інформація та оголошення військової частини",
		UpdatedAt:    time.Now().UTC(),
	}
}

// SettingsUpdate is a partial update for the settings document
type SettingsUpdate struct {
	UnitName     *string `json:"unit_name,omitempty"`
	UnitSubtitle *string `json:"unit_subtitle,omitempty"`
	UnitIcon     *string `json:"unit_icon,omitempty"`
	NewsTitle    *string `json:"news_title,omitempty"`
	NewsSubtitle *string `json:"news_subtitle,omitempty"`
}
