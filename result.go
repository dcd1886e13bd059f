package main

import (
	"fmt"
	"sort"
)

// resolveResult determines the outcome from the two innings. Deciding WHEN
// the match is over (overs exhausted, ten wickets, target passed) is the
// caller's job; by the time this runs the chase is final.
func resolveResult(first, second *Innings) MatchResult {
	switch {
	case second.Runs > first.Runs:
		wicketsLeft := WicketsPerInnings - second.Wickets
		winner := second.BattingTeamID
		return MatchResult{
			WinnerTeamID: &winner,
			MarginKind:   "wickets",
			MarginValue:  wicketsLeft,
			Margin:       pluralize(wicketsLeft, "wicket"),
		}
	case second.Runs < first.Runs:
		runs := first.Runs - second.Runs
		winner := first.BattingTeamID
		return MatchResult{
			WinnerTeamID: &winner,
			MarginKind:   "runs",
			MarginValue:  runs,
			Margin:       pluralize(runs, "run"),
		}
	default:
		// Equal scores with the second innings finished is a tie, which
		// is not the same thing as "not yet decided".
		return MatchResult{Tie: true}
	}
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// MatchCandidate is one ranked man-of-the-match contender. Score is the
// run-equivalent value used to compare across disciplines: a batter scores
// their runs, a bowler scores WicketRunValue per wicket.
type MatchCandidate struct {
	PlayerID     int     `json:"player_id"`
	Discipline   string  `json:"discipline"`
	Score        float64 `json:"score"`
	Runs         int     `json:"runs,omitempty"`
	BallsFaced   int     `json:"balls_faced,omitempty"`
	StrikeRate   float64 `json:"strike_rate,omitempty"`
	Wickets      int     `json:"wickets,omitempty"`
	RunsConceded int     `json:"runs_conceded,omitempty"`
	Overs        string  `json:"overs,omitempty"`
	Economy      float64 `json:"economy_rate,omitempty"`
	Reason       string  `json:"reason"`
}

type MatchSuggestion struct {
	PlayerID int    `json:"player_id"`
	Reason   string `json:"reason"`
}

// suggestManOfMatch ranks every batting and bowling line across the match
// and proposes the strongest single performance with a human-readable
// justification. The suggestion is advisory: the confirmed pick is an
// explicit external write and is free to disagree. Returns nil when no
// figures exist yet.
func suggestManOfMatch(batting []*BattingRecord, bowling []*BowlingRecord) (*MatchSuggestion, []MatchCandidate) {
	candidates := make([]MatchCandidate, 0, len(batting)+len(bowling))

	for _, rec := range batting {
		if rec.BallsFaced == 0 && rec.Runs == 0 {
			continue
		}
		candidates = append(candidates, MatchCandidate{
			PlayerID:   rec.PlayerID,
			Discipline: "batting",
			Score:      float64(rec.Runs),
			Runs:       rec.Runs,
			BallsFaced: rec.BallsFaced,
			StrikeRate: rec.StrikeRate,
			Reason: fmt.Sprintf("scored %s off %s at a strike rate of %.1f",
				pluralize(rec.Runs, "run"), pluralize(rec.BallsFaced, "ball"), rec.StrikeRate),
		})
	}

	for _, rec := range bowling {
		if rec.Balls == 0 {
			continue
		}
		candidates = append(candidates, MatchCandidate{
			PlayerID:     rec.PlayerID,
			Discipline:   "bowling",
			Score:        float64(rec.Wickets * WicketRunValue),
			Wickets:      rec.Wickets,
			RunsConceded: rec.RunsConceded,
			Overs:        rec.Overs,
			Economy:      rec.Economy,
			Reason: fmt.Sprintf("took %s for %s in %s overs at an economy of %.2f",
				pluralize(rec.Wickets, "wicket"), pluralize(rec.RunsConceded, "run"),
				rec.Overs, rec.Economy),
		})
	}

	if len(candidates) == 0 {
		return nil, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		// Same headline value: strike rate separates batters, economy
		// separates bowlers, and a wicket haul edges out equal runs.
		if a.Discipline == "batting" && b.Discipline == "batting" {
			return a.StrikeRate > b.StrikeRate
		}
		if a.Discipline == "bowling" && b.Discipline == "bowling" {
			return a.Economy < b.Economy
		}
		return a.Discipline == "bowling"
	})

	top := candidates[0]
	return &MatchSuggestion{PlayerID: top.PlayerID, Reason: top.Reason}, candidates
}
