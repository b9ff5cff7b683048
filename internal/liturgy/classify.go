package liturgy

import "strings"

// Classification is keyword matching over free-text titles. It is a
// heuristic, not authoritative liturgical data: a day whose title
// mentions a saint without "memorial" is ranked Memorial, and feasts
// that double as memorials resolve by tier order alone. The rules are
// plain data so the policy can be tested and extended on its own.

// seasonRule maps a case-sensitive title substring to a season.
type seasonRule struct {
	keyword string
	season  Season
}

// seasonRules are checked in order; the first match wins.
var seasonRules = []seasonRule{
	{keyword: "Advent", season: SeasonAdvent},
	{keyword: "Christmas", season: SeasonChristmas},
	{keyword: "Lent", season: SeasonLent},
	{keyword: "Easter", season: SeasonEaster},
	{keyword: "Pentecost", season: SeasonPentecost},
	{keyword: "Ordinary Time", season: SeasonOrdinaryTime},
}

// rankRule maps a set of case-insensitive title substrings to a rank.
type rankRule struct {
	keywords []string
	rank     Rank
}

// rankRules are checked in tier order; the first tier with any
// matching keyword wins.
var rankRules = []rankRule{
	{
		keywords: []string{
			"solemnity", "christmas", "epiphany", "easter", "pentecost",
			"ascension", "assumption", "all saints", "immaculate conception",
		},
		rank: RankSolemnity,
	},
	{keywords: []string{"feast"}, rank: RankFeast},
	{keywords: []string{"memorial"}, rank: RankMemorial},
	{keywords: []string{"st. ", "saint "}, rank: RankMemorial},
}

// ClassifySeason derives the season from a liturgical title. An empty
// title yields SeasonUnknown; a non-empty title that matches no
// keyword falls back to Ordinary Time.
func ClassifySeason(title string) Season {
	if title == "" {
		return SeasonUnknown
	}
	for _, rule := range seasonRules {
		if strings.Contains(title, rule.keyword) {
			return rule.season
		}
	}
	return SeasonOrdinaryTime
}

// ClassifyRank derives the rank from a liturgical title. Titles that
// match no tier are Ferial.
func ClassifyRank(title string) Rank {
	lower := strings.ToLower(title)
	for _, rule := range rankRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.rank
			}
		}
	}
	return RankFerial
}
