package models

import "time"

type Color string

const (
	ColorRed    Color = "RED"
	ColorGreen  Color = "GREEN"
	ColorYellow Color = "YELLOW"
	ColorBlue   Color = "BLUE"
	ColorWhite  Color = "WHITE"
)

var Colors = []Color{ColorRed, ColorGreen, ColorYellow, ColorBlue, ColorWhite}

func (c Color) Valid() bool {
	for _, color := range Colors {
		if c == color {
			return true
		}
	}
	return false
}

type Emoji string

const (
	EmojiThumbsUp Emoji = "THUMBSUP"
	EmojiParty    Emoji = "PARTY"
	EmojiHandsUp  Emoji = "HANDSUP"
)

var Emojis = []Emoji{EmojiThumbsUp, EmojiParty, EmojiHandsUp}

func (e Emoji) Valid() bool {
	for _, emoji := range Emojis {
		if e == emoji {
			return true
		}
	}
	return false
}

// Glyph returns the rendered character for an emoji name.
func (e Emoji) Glyph() string {
	switch e {
	case EmojiThumbsUp:
		return "👍"
	case EmojiParty:
		return "🎉"
	case EmojiHandsUp:
		return "🙌"
	default:
		return ""
	}
}

// KudoStyle is the visual treatment of a kudo. Styles are shared rows:
// many kudos reference the same (background, text, emoji) triple.
type KudoStyle struct {
	ID              string `json:"id"`
	BackgroundColor Color  `json:"backgroundColor"`
	TextColor       Color  `json:"textColor"`
	Emoji           Emoji  `json:"emoji"`
}

// Kudo is a recognition message between two users. Rows are immutable
// after creation.
type Kudo struct {
	ID          string    `json:"id"`
	Message     string    `json:"message"`
	AuthorID    string    `json:"authorId"`
	RecipientID string    `json:"recipientId"`
	Style       KudoStyle `json:"style"`
	CreatedAt   time.Time `json:"createdAt"`
}

// KudoWithAuthor is a feed row: a kudo joined with its author's profile.
type KudoWithAuthor struct {
	Kudo
	AuthorProfile Profile `json:"authorProfile"`
}

// RecentKudo is a row of the system-wide recent-activity rail.
type RecentKudo struct {
	ID               string  `json:"id"`
	Emoji            Emoji   `json:"emoji"`
	RecipientID      string  `json:"recipientId"`
	RecipientProfile Profile `json:"recipientProfile"`
}

// KudoSort selects the feed ordering. Exactly one is recognized per
// request; any other value leaves the result unordered.
type KudoSort string

const (
	KudoSortDate   KudoSort = "date"
	KudoSortSender KudoSort = "sender"
	KudoSortEmoji  KudoSort = "emoji"
)
