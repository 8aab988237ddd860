package rewards

// Grade is the headline shown on the results screen.
type Grade string

const (
	GradeChampion   Grade = "champion"
	GradeGreat      Grade = "great"
	GradeGood       Grade = "good"
	GradeKeepRacing Grade = "keep-racing"
)

// GradeFor returns the grade for a race accuracy (0.0-1.0).
func GradeFor(accuracy float64) Grade {
	switch {
	case accuracy >= 0.90:
		return GradeChampion
	case accuracy >= 0.70:
		return GradeGreat
	case accuracy >= 0.50:
		return GradeGood
	default:
		return GradeKeepRacing
	}
}

// DisplayName returns the banner text for the grade.
func (g Grade) DisplayName() string {
	switch g {
	case GradeChampion:
		return "CHAMPION!"
	case GradeGreat:
		return "GREAT RACE!"
	case GradeGood:
		return "GOOD JOB!"
	default:
		return "KEEP RACING!"
	}
}

// Icon returns the trophy icon for the grade.
func (g Grade) Icon() string {
	switch g {
	case GradeChampion:
		return "🏆"
	case GradeGreat:
		return "🥈"
	case GradeGood:
		return "🥉"
	default:
		return "💪"
	}
}
