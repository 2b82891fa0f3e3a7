package models

type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

type PrimaryColor string

const (
	ColorTeal   PrimaryColor = "teal"
	ColorBlue   PrimaryColor = "blue"
	ColorIndigo PrimaryColor = "indigo"
	ColorViolet PrimaryColor = "violet"
	ColorRose   PrimaryColor = "rose"
	ColorAmber  PrimaryColor = "amber"
)

// Preferences é a configuração visual do painel. Ela é carregada e salva
// explicitamente pelo Store e entregue à camada de apresentação.
type Preferences struct {
	Mode         ThemeMode    `bson:"mode" json:"mode" validate:"required,oneof=light dark"`
	PrimaryColor PrimaryColor `bson:"primary_color" json:"primaryColor" validate:"required,oneof=teal blue indigo violet rose amber"`
}

func DefaultPreferences() Preferences {
	return Preferences{Mode: ThemeLight, PrimaryColor: ColorTeal}
}
