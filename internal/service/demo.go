package service

import "github.com/verbumdei/lectio/internal/liturgy"

// DemoData returns a fixed offline fixture: the readings for Monday
// of the Third Week of Advent, December 15, 2025 (Lectionary 187).
// It is static sample content, not derived from live data, and is
// meant for demos and tests that must not touch the network.
func DemoData() liturgy.DailyReadings {
	return liturgy.DailyReadings{
		Date:        "2025-12-15",
		DisplayDate: "Monday, December 15, 2025",
		Title:       "Monday of the Third Week of Advent",
		Season:      liturgy.SeasonAdvent,
		Rank:        liturgy.RankFerial,
		Lectionary:  "187",
		Readings: []liturgy.Reading{
			{
				Name:         "Reading 1",
				Reference:    "Nm 24:2-7, 15-17a",
				ReferenceURL: "https://bible.usccb.gov/bible/numbers/24?2",
				Text: "When Balaam raised his eyes and saw Israel\n" +
					"encamped, tribe by tribe,\n" +
					"the spirit of God came upon him,\n" +
					"and he recited his poem:\n\n" +
					"The oracle of Balaam, son of Beor,\n" +
					"the oracle of the man whose eye is true.",
			},
			{
				Name:         "Responsorial Psalm",
				Reference:    "Ps 25:4-5ab, 6 and 7bc, 8-9",
				ReferenceURL: "https://bible.usccb.gov/bible/psalms/25?4",
				Text: "R. (4) Teach me your ways, O Lord.\n\n" +
					"Your ways, O LORD, make known to me;\n" +
					"teach me your paths,\n" +
					"Guide me in your truth and teach me,\n" +
					"for you are God my savior.\n\n" +
					"R. Teach me your ways, O Lord.",
			},
			{
				Name:         "Alleluia",
				Reference:    "Ps 85:8",
				ReferenceURL: "https://bible.usccb.gov/bible/psalms/85?8",
				Text: "R. Alleluia, alleluia.\n" +
					"Show us, LORD, your love,\n" +
					"and grant us your salvation.\n" +
					"R. Alleluia, alleluia.",
			},
			{
				Name:         "Gospel",
				Reference:    "Mt 21:23-27",
				ReferenceURL: "https://bible.usccb.gov/bible/matthew/21?23",
				Text: "When Jesus had come into the temple area,\n" +
					"the chief priests and the elders of the people approached him\n" +
					"as he was teaching and said,\n" +
					"\"By what authority are you doing these things?\"",
			},
		},
	}
}
