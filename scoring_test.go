package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatch(overs int) (*Match, *MatchSession) {
	m := &Match{
		ID:       1,
		HomeTeam: TeamInfo{ID: 1, Name: "Monsoon Riders", ShortName: "MNR"},
		AwayTeam: TeamInfo{ID: 2, Name: "Harbour Kings", ShortName: "HBK"},
		Config: MatchConfig{
			OversPerInnings: overs,
			TossWinnerID:    1,
			TossDecision:    TossBat,
		},
		Status:  StatusInProgress,
		Summary: MatchSummary{Status: StatusInProgress},
	}
	return m, newMatchSession(m)
}

func ball(innings, over, ballNo, runs int) Delivery {
	return Delivery{
		MatchID:       1,
		InningsNumber: innings,
		OverNumber:    over,
		BallNumber:    ballNo,
		BowlerID:      201,
		StrikerID:     101,
		NonStrikerID:  102,
		RunsScored:    runs,
	}
}

func record(t *testing.T, s *MatchSession, d Delivery) Delivery {
	t.Helper()
	normalized, err := s.normalizeDelivery(d)
	require.NoError(t, err)
	s.applyDelivery(normalized)
	return normalized
}

func TestTossDerivesBattingOrder(t *testing.T) {
	cfg := MatchConfig{TossWinnerID: 2, TossDecision: TossBowl}
	assert.Equal(t, 1, cfg.battingTeamForInnings(1, 1, 2))
	assert.Equal(t, 2, cfg.battingTeamForInnings(2, 1, 2))

	cfg = MatchConfig{TossWinnerID: 2, TossDecision: TossBat}
	assert.Equal(t, 2, cfg.battingTeamForInnings(1, 1, 2))
	assert.Equal(t, 1, cfg.battingTeamForInnings(2, 1, 2))
}

func TestNormalDeliveryCreditsEveryone(t *testing.T) {
	_, s := newTestMatch(20)

	record(t, s, ball(1, 0, 1, 4))

	inn := s.Innings[0]
	assert.Equal(t, 4, inn.Runs)
	assert.Equal(t, 1, inn.LegalBalls)
	assert.Equal(t, "0.1", inn.Overs)
	assert.Equal(t, 0, inn.Wickets)

	striker := s.battingRecord(101, 1)
	assert.Equal(t, 4, striker.Runs)
	assert.Equal(t, 1, striker.BallsFaced)
	assert.Equal(t, 1, striker.Fours)
	assert.InDelta(t, 400.0, striker.StrikeRate, 0.001)
	assert.True(t, striker.IsBatting)

	bowler := s.bowlingRecord(201, 1)
	assert.Equal(t, 1, bowler.Balls)
	assert.Equal(t, 4, bowler.RunsConceded)
	assert.InDelta(t, 24.0, bowler.Economy, 0.001)
}

func TestWideDoesNotAdvanceOver(t *testing.T) {
	_, s := newTestMatch(20)

	d := ball(1, 0, 1, 0)
	d.ExtraType = ExtraWide
	d.ExtraRuns = 1
	record(t, s, d)

	inn := s.Innings[0]
	assert.Equal(t, 1, inn.Runs)
	assert.Equal(t, 0, inn.LegalBalls)
	assert.Equal(t, "0.0", inn.Overs)
	assert.Equal(t, 1, inn.Extras.Wides)

	striker := s.battingRecord(101, 1)
	assert.Equal(t, 0, striker.Runs)
	assert.Equal(t, 0, striker.BallsFaced)

	bowler := s.bowlingRecord(201, 1)
	assert.Equal(t, 0, bowler.Balls)
	assert.Equal(t, 1, bowler.RunsConceded, "wides are debited to the bowler")
}

func TestNoBallWithRunsOffTheBat(t *testing.T) {
	_, s := newTestMatch(20)

	d := ball(1, 0, 1, 4)
	d.ExtraType = ExtraNoBall
	d.ExtraRuns = 1
	record(t, s, d)

	inn := s.Innings[0]
	assert.Equal(t, 5, inn.Runs)
	assert.Equal(t, 0, inn.LegalBalls)
	assert.Equal(t, 1, inn.Extras.NoBalls)

	striker := s.battingRecord(101, 1)
	assert.Equal(t, 4, striker.Runs, "bat runs on a no-ball still belong to the striker")
	assert.Equal(t, 0, striker.BallsFaced)
	assert.Equal(t, 1, striker.Fours)

	bowler := s.bowlingRecord(201, 1)
	assert.Equal(t, 0, bowler.Balls)
	assert.Equal(t, 5, bowler.RunsConceded)
}

func TestByesAdvanceOverWithoutBattingCredit(t *testing.T) {
	_, s := newTestMatch(20)

	d := ball(1, 0, 1, 0)
	d.ExtraType = ExtraBye
	d.ExtraRuns = 2
	record(t, s, d)

	leg := ball(1, 0, 2, 0)
	leg.ExtraType = ExtraLegBye
	leg.ExtraRuns = 1
	record(t, s, leg)

	inn := s.Innings[0]
	assert.Equal(t, 3, inn.Runs)
	assert.Equal(t, 2, inn.LegalBalls)
	assert.Equal(t, 2, inn.Extras.Byes)
	assert.Equal(t, 1, inn.Extras.LegByes)

	striker := s.battingRecord(101, 1)
	assert.Equal(t, 0, striker.Runs)
	assert.Equal(t, 2, striker.BallsFaced, "byes still count as balls faced")

	bowler := s.bowlingRecord(201, 1)
	assert.Equal(t, 2, bowler.Balls)
	assert.Equal(t, 0, bowler.RunsConceded, "byes are fielding extras, not bowler runs")
}

func TestRunOutIsNotABowlerWicket(t *testing.T) {
	_, s := newTestMatch(20)

	d := ball(1, 0, 1, 1)
	d.IsWicket = true
	d.WicketType = WicketRunOut
	d.WicketPlayerID = 102
	record(t, s, d)

	inn := s.Innings[0]
	assert.Equal(t, 1, inn.Wickets)

	bowler := s.bowlingRecord(201, 1)
	assert.Equal(t, 0, bowler.Wickets)

	out := s.battingRecord(102, 1)
	assert.True(t, out.IsOut)
	assert.Equal(t, WicketRunOut, out.WicketType)
	assert.False(t, out.IsBatting)

	require.Len(t, s.FallOfWickets, 1)
	assert.Equal(t, 1, s.FallOfWickets[0].Wicket)
	assert.Equal(t, 1, s.FallOfWickets[0].Runs)
	assert.Equal(t, 102, s.FallOfWickets[0].PlayerID)
}

func TestBareOutNormalizesToBowled(t *testing.T) {
	_, s := newTestMatch(20)

	d := ball(1, 0, 1, 0)
	d.IsWicket = true
	d.WicketType = "out"
	d.WicketPlayerID = 101
	normalized := record(t, s, d)

	assert.Equal(t, WicketBowled, normalized.WicketType)
	assert.Equal(t, 1, s.bowlingRecord(201, 1).Wickets)

	empty := ball(1, 0, 2, 0)
	empty.IsWicket = true
	empty.WicketPlayerID = 103
	normalized = record(t, s, empty)
	assert.Equal(t, WicketBowled, normalized.WicketType)
}

func TestWicketWithoutCreditedBatterStillCounts(t *testing.T) {
	_, s := newTestMatch(20)

	d := ball(1, 0, 1, 0)
	d.IsWicket = true
	d.WicketType = WicketCaught
	record(t, s, d)

	assert.Equal(t, 1, s.Innings[0].Wickets)
	striker := s.battingRecord(101, 1)
	assert.False(t, striker.IsOut, "no credited player id means no batter is marked out")
}

func TestEleventhWicketIsTolerated(t *testing.T) {
	_, s := newTestMatch(20)

	for i := 1; i <= WicketsPerInnings+1; i++ {
		d := ball(1, (i-1)/BallsPerOver, (i-1)%BallsPerOver+1, 0)
		d.IsWicket = true
		d.WicketType = WicketBowled
		d.WicketPlayerID = 100 + i
		record(t, s, d)
	}

	assert.Equal(t, WicketsPerInnings+1, s.Innings[0].Wickets)
	assert.Len(t, s.FallOfWickets, WicketsPerInnings+1)
}

func TestOversNotationIsBaseSix(t *testing.T) {
	assert.Equal(t, "0.0", oversString(0))
	assert.Equal(t, "0.1", oversString(1))
	assert.Equal(t, "0.5", oversString(5))
	assert.Equal(t, "1.0", oversString(6))
	assert.Equal(t, "1.1", oversString(7))
	assert.Equal(t, "4.0", oversString(24))
}

func TestRunConservation(t *testing.T) {
	_, s := newTestMatch(20)

	record(t, s, ball(1, 0, 1, 4))
	record(t, s, ball(1, 0, 2, 1))

	wide := ball(1, 0, 3, 0)
	wide.ExtraType = ExtraWide
	wide.ExtraRuns = 5
	record(t, s, wide)

	bye := ball(1, 0, 3, 0)
	bye.ExtraType = ExtraBye
	bye.ExtraRuns = 4
	record(t, s, bye)

	noBall := ball(1, 0, 4, 2)
	noBall.ExtraType = ExtraNoBall
	noBall.ExtraRuns = 1
	record(t, s, noBall)

	inn := s.Innings[0]
	battingRuns := 0
	for _, rec := range s.battingRecords(1) {
		battingRuns += rec.Runs
	}
	assert.Equal(t, inn.Runs, battingRuns+inn.Extras.Total(),
		"innings total must equal batting runs plus extras")
}

func TestNormalizeRejectsBadDeliveries(t *testing.T) {
	_, s := newTestMatch(20)

	cases := []struct {
		name   string
		mutate func(*Delivery)
		field  string
	}{
		{"bad innings", func(d *Delivery) { d.InningsNumber = 3 }, "innings_number"},
		{"negative over", func(d *Delivery) { d.OverNumber = -1 }, "over_number"},
		{"zero ball", func(d *Delivery) { d.BallNumber = 0 }, "ball_number"},
		{"missing bowler", func(d *Delivery) { d.BowlerID = 0 }, "bowler_id"},
		{"missing striker", func(d *Delivery) { d.StrikerID = 0 }, "striker_id"},
		{"negative runs", func(d *Delivery) { d.RunsScored = -1 }, "runs_scored"},
		{"negative extras", func(d *Delivery) { d.ExtraRuns = -2 }, "extra_runs"},
		{"unknown extra", func(d *Delivery) { d.ExtraType = "overthrow" }, "extra_type"},
		{"unknown dismissal", func(d *Delivery) {
			d.IsWicket = true
			d.WicketType = "absent"
		}, "wicket_type"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := ball(1, 0, 1, 0)
			tc.mutate(&d)
			_, err := s.normalizeDelivery(d)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestNormalizeRejectsClosedInnings(t *testing.T) {
	_, s := newTestMatch(20)

	_, err := s.normalizeDelivery(ball(2, 0, 1, 0))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr, "second innings has not started yet")

	closed, err := s.closeCurrentInnings()
	require.NoError(t, err)
	assert.Equal(t, 1, closed)
	assert.Equal(t, 2, s.CurrentInning)

	_, err = s.normalizeDelivery(ball(1, 5, 1, 0))
	require.ErrorAs(t, err, &verr, "first innings is closed")

	_, err = s.normalizeDelivery(ball(2, 0, 1, 0))
	require.NoError(t, err)
}

func TestCloseInningsTransitions(t *testing.T) {
	_, s := newTestMatch(20)

	record(t, s, ball(1, 0, 1, 1))

	closed, err := s.closeCurrentInnings()
	require.NoError(t, err)
	assert.Equal(t, 1, closed)
	assert.False(t, s.bothInningsClosed())
	assert.Equal(t, 2, s.Innings[1].BattingTeamID, "toss loser bats second")

	for _, rec := range s.battingRecords(1) {
		assert.False(t, rec.IsBatting, "closing an innings retires the not-out batters")
	}

	closed, err = s.closeCurrentInnings()
	require.NoError(t, err)
	assert.Equal(t, 2, closed)
	assert.True(t, s.bothInningsClosed())

	_, err = s.closeCurrentInnings()
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestRebuildSessionReproducesLiveState(t *testing.T) {
	m, live := newTestMatch(20)
	store := newMemoryDeliveryStore()
	ctx := context.Background()

	feed := []Delivery{
		ball(1, 0, 1, 4),
		ball(1, 0, 2, 0),
		ball(1, 0, 3, 6),
	}
	wide := ball(1, 0, 4, 0)
	wide.ExtraType = ExtraWide
	wide.ExtraRuns = 1
	feed = append(feed, wide)

	wicket := ball(1, 0, 4, 0)
	wicket.IsWicket = true
	wicket.WicketType = WicketCaught
	wicket.WicketPlayerID = 101
	feed = append(feed, wicket)

	chase := ball(2, 0, 1, 2)
	chase.StrikerID = 301
	chase.BowlerID = 401
	feed = append(feed, chase)

	for _, d := range feed {
		if d.InningsNumber == 2 && live.CurrentInning == 1 {
			_, err := live.closeCurrentInnings()
			require.NoError(t, err)
		}
		normalized, err := live.normalizeDelivery(d)
		require.NoError(t, err)
		stored, err := store.AppendDelivery(ctx, normalized)
		require.NoError(t, err)
		live.applyDelivery(stored)
	}

	logged, err := store.ListDeliveries(ctx, m.ID, 0)
	require.NoError(t, err)
	rebuilt, err := rebuildSession(m, logged)
	require.NoError(t, err)

	for i := range live.Innings {
		require.NotNil(t, rebuilt.Innings[i])
		assert.Equal(t, live.Innings[i].Runs, rebuilt.Innings[i].Runs)
		assert.Equal(t, live.Innings[i].Wickets, rebuilt.Innings[i].Wickets)
		assert.Equal(t, live.Innings[i].LegalBalls, rebuilt.Innings[i].LegalBalls)
		assert.Equal(t, live.Innings[i].Extras, rebuilt.Innings[i].Extras)
		assert.Equal(t, live.Innings[i].Closed, rebuilt.Innings[i].Closed)
	}
	assert.Equal(t, live.battingRecords(0), rebuilt.battingRecords(0))
	assert.Equal(t, live.bowlingRecords(0), rebuilt.bowlingRecords(0))
	assert.Equal(t, live.FallOfWickets, rebuilt.FallOfWickets)
	assert.Equal(t, live.LastSeq, rebuilt.LastSeq)
}
