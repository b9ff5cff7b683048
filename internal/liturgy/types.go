// Package liturgy defines the structured records extracted from the
// upstream readings pages, and the heuristics that classify them.
package liturgy

// Season is a named period of the church calendar.
type Season string

// Season values. Unknown is used when no title could be extracted.
const (
	SeasonAdvent       Season = "Advent"
	SeasonChristmas    Season = "Christmas"
	SeasonLent         Season = "Lent"
	SeasonEaster       Season = "Easter"
	SeasonPentecost    Season = "Pentecost"
	SeasonOrdinaryTime Season = "Ordinary Time"
	SeasonUnknown      Season = "Unknown"
)

// Rank is the relative solemnity of a day's observance.
type Rank string

// Rank values, highest first.
const (
	RankSolemnity Rank = "Solemnity"
	RankFeast     Rank = "Feast"
	RankMemorial  Rank = "Memorial"
	RankFerial    Rank = "Ferial"
)

// Reading is a single scriptural excerpt with its label and citation.
type Reading struct {
	Name         string `json:"name"`
	Reference    string `json:"reference"`
	ReferenceURL string `json:"reference_url"`
	Text         string `json:"text"`
}

// DailyReadings is the full record for one calendar date. It is a
// value object: once produced it is never mutated, and cache tiers
// store and hand out copies.
type DailyReadings struct {
	Date        string    `json:"date"`
	DisplayDate string    `json:"display_date"`
	Title       string    `json:"title"`
	Season      Season    `json:"season"`
	Rank        Rank      `json:"rank"`
	Lectionary  string    `json:"lectionary"`
	Readings    []Reading `json:"readings"`
}

// Clone returns a deep copy, so callers can hold cache entries without
// aliasing the stored readings slice.
func (d DailyReadings) Clone() DailyReadings {
	out := d
	out.Readings = make([]Reading, len(d.Readings))
	copy(out.Readings, d.Readings)
	return out
}
