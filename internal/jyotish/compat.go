package jyotish

// Luck labels and scores.
const (
	LabelFavorable   = "favorable"
	LabelUnfavorable = "unfavorable"
	LabelNeutral     = "neutral"

	ScoreFavorable   = 100
	ScoreUnfavorable = 20
	ScoreNeutral     = 50
)

type relation struct {
	friends []Planet
	enemies []Planet
}

var friendships = map[Planet]relation{
	Sun:     {friends: []Planet{Moon, Mars, Jupiter}, enemies: []Planet{Venus, Saturn, Rahu, Ketu}},
	Moon:    {friends: []Planet{Sun, Mercury}, enemies: []Planet{Rahu, Ketu, Saturn}},
	Mars:    {friends: []Planet{Sun, Moon, Jupiter}, enemies: []Planet{Mercury, Rahu}},
	Mercury: {friends: []Planet{Sun, Venus}, enemies: []Planet{Moon}},
	Jupiter: {friends: []Planet{Sun, Moon, Mars}, enemies: []Planet{Mercury, Venus}},
	Venus:   {friends: []Planet{Mercury, Saturn, Rahu}, enemies: []Planet{Sun, Moon}},
	Saturn:  {friends: []Planet{Mercury, Venus, Rahu}, enemies: []Planet{Sun, Moon, Mars}},
	Rahu:    {friends: []Planet{Venus, Saturn, Mercury}, enemies: []Planet{Sun, Moon, Mars}},
	Ketu:    {friends: []Planet{Mars, Jupiter}, enemies: []Planet{Sun, Moon}},
}

// Luck is the compatibility between a person's lord and a hora ruler.
type Luck struct {
	Label string
	Score int
}

// Display returns the short badge text for the luck.
func (l Luck) Display() string {
	switch l.Score {
	case ScoreFavorable:
		return "Lucky"
	case ScoreUnfavorable:
		return "Avoid"
	default:
		return "Neutral"
	}
}

// Relations returns copies of the friend and enemy sets of p. Unknown
// planets have neither.
func Relations(p Planet) (friends, enemies []Planet) {
	rel, ok := friendships[p]
	if !ok {
		return nil, nil
	}
	friends = append([]Planet(nil), rel.friends...)
	enemies = append([]Planet(nil), rel.enemies...)
	return friends, enemies
}

// Compatibility classifies horaPlanet against personLord's friendships.
func Compatibility(personLord, horaPlanet Planet) Luck {
	rel := friendships[personLord]
	switch {
	case contains(rel.friends, horaPlanet):
		return Luck{Label: LabelFavorable, Score: ScoreFavorable}
	case contains(rel.enemies, horaPlanet):
		return Luck{Label: LabelUnfavorable, Score: ScoreUnfavorable}
	default:
		return Luck{Label: LabelNeutral, Score: ScoreNeutral}
	}
}

// Contains reports whether p is in set.
func Contains(set []Planet, p Planet) bool {
	return contains(set, p)
}

func contains(set []Planet, p Planet) bool {
	for _, s := range set {
		if s == p {
			return true
		}
	}
	return false
}
