package main

import (
	"fmt"
	"sort"
	"time"
)

// playerInningsKey identifies one player's figures in one innings.
type playerInningsKey struct {
	PlayerID int
	Innings  int
}

// MatchSession is the live scoring state for one match: the two innings
// plus every batting and bowling row, all derived from the delivery log.
// It is passed explicitly into every scoring call; nothing in the engine
// reads ambient globals. Callers serialize deliveries per match.
type MatchSession struct {
	MatchID       int
	Config        MatchConfig
	HomeTeamID    int
	AwayTeamID    int
	Innings       [InningsPerMatch]*Innings
	CurrentInning int
	Batting       map[playerInningsKey]*BattingRecord
	Bowling       map[playerInningsKey]*BowlingRecord
	FallOfWickets []FallOfWicket
	LastSeq       int64
}

func newMatchSession(m *Match) *MatchSession {
	s := &MatchSession{
		MatchID:    m.ID,
		Config:     m.Config,
		HomeTeamID: m.HomeTeam.ID,
		AwayTeamID: m.AwayTeam.ID,
		Batting:    make(map[playerInningsKey]*BattingRecord),
		Bowling:    make(map[playerInningsKey]*BowlingRecord),
	}
	s.openInnings(1)
	return s
}

func (s *MatchSession) openInnings(number int) {
	batting := s.Config.battingTeamForInnings(number, s.HomeTeamID, s.AwayTeamID)
	bowling := s.HomeTeamID
	if batting == s.HomeTeamID {
		bowling = s.AwayTeamID
	}
	s.Innings[number-1] = &Innings{
		Number:        number,
		BattingTeamID: batting,
		BowlingTeamID: bowling,
		Overs:         oversString(0),
		LastUpdate:    time.Now(),
	}
	s.CurrentInning = number
}

// closeCurrentInnings marks the open innings closed and, after the first,
// opens the second. Returns the closed innings number. When a match is
// complete (overs exhausted or ten down) is the caller's decision; the
// engine never closes an innings on its own.
func (s *MatchSession) closeCurrentInnings() (int, error) {
	inn := s.Innings[s.CurrentInning-1]
	if inn == nil || inn.Closed {
		return 0, &ConflictError{Reason: "no open innings to close"}
	}
	inn.Closed = true
	inn.LastUpdate = time.Now()
	closed := inn.Number
	for key, rec := range s.Batting {
		if key.Innings == closed {
			rec.IsBatting = false
		}
	}
	if closed < InningsPerMatch {
		s.openInnings(closed + 1)
	}
	return closed, nil
}

func (s *MatchSession) bothInningsClosed() bool {
	for _, inn := range s.Innings {
		if inn == nil || !inn.Closed {
			return false
		}
	}
	return true
}

// normalizeDelivery validates a delivery against the session and fills in
// the lenient defaults. A wicket with no kind, or the literal kind "out",
// becomes "bowled" — that default is deliberate scorer-friendliness, not a
// masked error. Validation must fully pass before any state is touched.
func (s *MatchSession) normalizeDelivery(d Delivery) (Delivery, error) {
	if d.InningsNumber < 1 || d.InningsNumber > InningsPerMatch {
		return Delivery{}, invalidField("innings_number", "must be 1 or 2")
	}
	if d.OverNumber < 0 {
		return Delivery{}, invalidField("over_number", "must not be negative")
	}
	if d.BallNumber < 1 {
		return Delivery{}, invalidField("ball_number", "must be at least 1")
	}
	if d.BowlerID <= 0 {
		return Delivery{}, invalidField("bowler_id", "is required")
	}
	if d.StrikerID <= 0 {
		return Delivery{}, invalidField("striker_id", "is required")
	}
	if d.RunsScored < 0 {
		return Delivery{}, invalidField("runs_scored", "must not be negative")
	}
	if d.ExtraRuns < 0 {
		return Delivery{}, invalidField("extra_runs", "must not be negative")
	}

	if d.ExtraType == "" {
		d.ExtraType = ExtraNone
	}
	if d.ExtraType != ExtraNone && !extraTypes[d.ExtraType] {
		return Delivery{}, invalidField("extra_type", "must be one of wide, noball, bye, legbye")
	}

	if d.IsWicket {
		switch {
		case d.WicketType == "" || d.WicketType == "out":
			d.WicketType = WicketBowled
		case !wicketTypes[d.WicketType]:
			return Delivery{}, invalidField("wicket_type", "unknown dismissal kind")
		}
	} else {
		d.WicketType = ""
		d.WicketPlayerID = 0
	}

	inn := s.Innings[d.InningsNumber-1]
	if inn == nil {
		return Delivery{}, invalidField("innings_number", "innings has not started")
	}
	if inn.Closed {
		return Delivery{}, invalidField("innings_number", "innings is closed")
	}

	d.MatchID = s.MatchID
	return d, nil
}

// applyDelivery folds one normalized delivery into the innings totals and
// the per-player figures. It cannot fail: every rejection happens in
// normalizeDelivery so a store failure in between never leaves a partial
// increment behind.
func (s *MatchSession) applyDelivery(d Delivery) {
	inn := s.Innings[d.InningsNumber-1]
	legal := d.legalBall()

	// Innings totals. Every extra kind counts toward the team total;
	// byes and leg-byes just never reach the striker or the bowler.
	inn.Runs += d.RunsScored + d.ExtraRuns
	if legal {
		inn.LegalBalls++
	}
	switch d.ExtraType {
	case ExtraWide:
		inn.Extras.Wides += d.ExtraRuns
	case ExtraNoBall:
		inn.Extras.NoBalls += d.ExtraRuns
	case ExtraBye:
		inn.Extras.Byes += d.ExtraRuns
	case ExtraLegBye:
		inn.Extras.LegByes += d.ExtraRuns
	}
	if d.IsWicket {
		inn.Wickets++
		s.FallOfWickets = append(s.FallOfWickets, FallOfWicket{
			InningsNumber: d.InningsNumber,
			Wicket:        inn.Wickets,
			Runs:          inn.Runs,
			Over:          oversString(inn.LegalBalls),
			PlayerID:      d.WicketPlayerID,
			WicketType:    d.WicketType,
		})
	}
	inn.Overs = oversString(inn.LegalBalls)
	inn.LastUpdate = time.Now()

	// Striker. Bye and leg-bye runs are team runs, not batting credit,
	// but the ball still counts as faced.
	striker := s.battingRecord(d.StrikerID, d.InningsNumber)
	battingRuns := d.RunsScored
	if d.ExtraType == ExtraBye || d.ExtraType == ExtraLegBye {
		battingRuns = 0
	}
	striker.Runs += battingRuns
	if legal {
		striker.BallsFaced++
	}
	if battingRuns == 4 {
		striker.Fours++
	}
	if battingRuns == 6 {
		striker.Sixes++
	}
	striker.StrikeRate = strikeRate(striker.Runs, striker.BallsFaced)

	// Non-striker is only kept present as currently batting.
	if d.NonStrikerID > 0 {
		s.battingRecord(d.NonStrikerID, d.InningsNumber)
	}

	// The credited player id is authoritative for the dismissal: a
	// run-out can remove the non-striker, so the striker is never assumed.
	if d.IsWicket && d.WicketPlayerID > 0 {
		out := s.battingRecord(d.WicketPlayerID, d.InningsNumber)
		out.IsOut = true
		out.WicketType = d.WicketType
		out.IsBatting = false
		out.StrikeRate = strikeRate(out.Runs, out.BallsFaced)
	}

	// Bowler. Wides and no-balls are debited to the bowler; byes and
	// leg-byes are fielding extras and are not.
	bowler := s.bowlingRecord(d.BowlerID, d.InningsNumber)
	if legal {
		bowler.Balls++
	}
	conceded := d.RunsScored
	if d.ExtraType == ExtraWide || d.ExtraType == ExtraNoBall {
		conceded += d.ExtraRuns
	}
	bowler.RunsConceded += conceded
	if d.IsWicket && bowlerCreditedWickets[d.WicketType] {
		bowler.Wickets++
	}
	bowler.Overs = oversString(bowler.Balls)
	bowler.Economy = economyRate(bowler.RunsConceded, bowler.Balls)

	s.LastSeq = d.Seq
}

func (s *MatchSession) battingRecord(playerID, innings int) *BattingRecord {
	key := playerInningsKey{PlayerID: playerID, Innings: innings}
	rec, ok := s.Batting[key]
	if !ok {
		rec = &BattingRecord{
			MatchID:       s.MatchID,
			PlayerID:      playerID,
			InningsNumber: innings,
		}
		s.Batting[key] = rec
	}
	if !rec.IsOut {
		rec.IsBatting = true
	}
	return rec
}

func (s *MatchSession) bowlingRecord(playerID, innings int) *BowlingRecord {
	key := playerInningsKey{PlayerID: playerID, Innings: innings}
	rec, ok := s.Bowling[key]
	if !ok {
		rec = &BowlingRecord{
			MatchID:       s.MatchID,
			PlayerID:      playerID,
			InningsNumber: innings,
			Overs:         oversString(0),
		}
		s.Bowling[key] = rec
	}
	return rec
}

// battingRecords returns the batting rows for an innings (0 for all),
// ordered by runs descending.
func (s *MatchSession) battingRecords(innings int) []*BattingRecord {
	list := make([]*BattingRecord, 0, len(s.Batting))
	for key, rec := range s.Batting {
		if innings != 0 && key.Innings != innings {
			continue
		}
		list = append(list, rec)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].InningsNumber != list[j].InningsNumber {
			return list[i].InningsNumber < list[j].InningsNumber
		}
		if list[i].Runs != list[j].Runs {
			return list[i].Runs > list[j].Runs
		}
		return list[i].PlayerID < list[j].PlayerID
	})
	return list
}

// bowlingRecords returns the bowling rows for an innings (0 for all),
// ordered by wickets then economy.
func (s *MatchSession) bowlingRecords(innings int) []*BowlingRecord {
	list := make([]*BowlingRecord, 0, len(s.Bowling))
	for key, rec := range s.Bowling {
		if innings != 0 && key.Innings != innings {
			continue
		}
		list = append(list, rec)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].InningsNumber != list[j].InningsNumber {
			return list[i].InningsNumber < list[j].InningsNumber
		}
		if list[i].Wickets != list[j].Wickets {
			return list[i].Wickets > list[j].Wickets
		}
		if list[i].Economy != list[j].Economy {
			return list[i].Economy < list[j].Economy
		}
		return list[i].PlayerID < list[j].PlayerID
	})
	return list
}

// rebuildSession replays a match's delivery log into a fresh session,
// proving the live state is a pure function of the log. Innings closure is
// not a logged event, so the first delivery of the second innings implies
// the first innings closed.
func rebuildSession(m *Match, deliveries []Delivery) (*MatchSession, error) {
	s := newMatchSession(m)
	for _, d := range deliveries {
		if d.InningsNumber == 2 && s.CurrentInning == 1 {
			if _, err := s.closeCurrentInnings(); err != nil {
				return nil, fmt.Errorf("replay innings transition: %w", err)
			}
		}
		normalized, err := s.normalizeDelivery(d)
		if err != nil {
			return nil, fmt.Errorf("replay seq %d: %w", d.Seq, err)
		}
		normalized.Seq = d.Seq
		s.applyDelivery(normalized)
	}
	return s, nil
}

// oversString renders a legal-ball count in the base-6 cricket notation,
// e.g. 0.1 after one ball and 4.0 after four full overs. Stored state keeps
// the raw ball count so 0.10 can never be confused with 0.1.
func oversString(balls int) string {
	return fmt.Sprintf("%d.%d", balls/BallsPerOver, balls%BallsPerOver)
}

func strikeRate(runs, balls int) float64 {
	if balls == 0 {
		return 0
	}
	return float64(runs) * 100 / float64(balls)
}

func economyRate(conceded, balls int) float64 {
	if balls == 0 {
		return 0
	}
	return float64(conceded) * BallsPerOver / float64(balls)
}

func runRate(runs, balls int) float64 {
	if balls == 0 {
		return 0
	}
	return float64(runs) * BallsPerOver / float64(balls)
}
