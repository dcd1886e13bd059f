package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChaseWonByWickets(t *testing.T) {
	first := &Innings{Number: 1, BattingTeamID: 1, BowlingTeamID: 2, Runs: 150, Wickets: 8, Closed: true}
	second := &Innings{Number: 2, BattingTeamID: 2, BowlingTeamID: 1, Runs: 151, Wickets: 6, Closed: true}

	result := resolveResult(first, second)

	require.NotNil(t, result.WinnerTeamID)
	assert.Equal(t, 2, *result.WinnerTeamID)
	assert.Equal(t, "wickets", result.MarginKind)
	assert.Equal(t, 4, result.MarginValue)
	assert.Equal(t, "4 wickets", result.Margin)
	assert.False(t, result.Tie)
}

func TestTargetDefendedByRuns(t *testing.T) {
	first := &Innings{Number: 1, BattingTeamID: 1, Runs: 180, Closed: true}
	second := &Innings{Number: 2, BattingTeamID: 2, Runs: 155, Wickets: 10, Closed: true}

	result := resolveResult(first, second)

	require.NotNil(t, result.WinnerTeamID)
	assert.Equal(t, 1, *result.WinnerTeamID)
	assert.Equal(t, "runs", result.MarginKind)
	assert.Equal(t, 25, result.MarginValue)
	assert.Equal(t, "25 runs", result.Margin)
}

func TestSingularMarginReadsNaturally(t *testing.T) {
	first := &Innings{Number: 1, BattingTeamID: 1, Runs: 160, Closed: true}
	second := &Innings{Number: 2, BattingTeamID: 2, Runs: 159, Wickets: 10, Closed: true}

	result := resolveResult(first, second)
	assert.Equal(t, "1 run", result.Margin)

	first = &Innings{Number: 1, BattingTeamID: 1, Runs: 120, Closed: true}
	second = &Innings{Number: 2, BattingTeamID: 2, Runs: 121, Wickets: 9, Closed: true}

	result = resolveResult(first, second)
	assert.Equal(t, "1 wicket", result.Margin)
}

func TestEqualScoresAreATie(t *testing.T) {
	first := &Innings{Number: 1, BattingTeamID: 1, Runs: 142, Closed: true}
	second := &Innings{Number: 2, BattingTeamID: 2, Runs: 142, Wickets: 7, Closed: true}

	result := resolveResult(first, second)

	assert.True(t, result.Tie)
	assert.Nil(t, result.WinnerTeamID)
	assert.Empty(t, result.Margin)
}

func TestBowlingHaulOutranksFifty(t *testing.T) {
	batting := []*BattingRecord{
		{PlayerID: 101, InningsNumber: 1, Runs: 80, BallsFaced: 50, StrikeRate: 160.0},
		{PlayerID: 102, InningsNumber: 1, Runs: 34, BallsFaced: 28, StrikeRate: 121.4},
	}
	bowling := []*BowlingRecord{
		{PlayerID: 201, InningsNumber: 2, Balls: 24, Overs: "4.0", RunsConceded: 22, Wickets: 4, Economy: 5.5},
		{PlayerID: 202, InningsNumber: 2, Balls: 24, Overs: "4.0", RunsConceded: 40, Wickets: 1, Economy: 10.0},
	}

	suggestion, candidates := suggestManOfMatch(batting, bowling)

	require.NotNil(t, suggestion)
	assert.Equal(t, 201, suggestion.PlayerID, "4 wickets outweigh 80 runs at 25 runs per wicket")
	assert.Equal(t, "took 4 wickets for 22 runs in 4.0 overs at an economy of 5.50", suggestion.Reason)

	require.Len(t, candidates, 4)
	assert.Equal(t, 201, candidates[0].PlayerID)
	assert.Equal(t, 101, candidates[1].PlayerID)
	assert.Equal(t, "scored 80 runs off 50 balls at a strike rate of 160.0", candidates[1].Reason)
}

func TestStrikeRateBreaksEqualRuns(t *testing.T) {
	batting := []*BattingRecord{
		{PlayerID: 101, InningsNumber: 1, Runs: 45, BallsFaced: 40, StrikeRate: 112.5},
		{PlayerID: 102, InningsNumber: 2, Runs: 45, BallsFaced: 25, StrikeRate: 180.0},
	}

	suggestion, _ := suggestManOfMatch(batting, nil)

	require.NotNil(t, suggestion)
	assert.Equal(t, 102, suggestion.PlayerID)
}

func TestEconomyBreaksEqualWickets(t *testing.T) {
	bowling := []*BowlingRecord{
		{PlayerID: 201, InningsNumber: 1, Balls: 24, Overs: "4.0", RunsConceded: 35, Wickets: 2, Economy: 8.75},
		{PlayerID: 202, InningsNumber: 2, Balls: 24, Overs: "4.0", RunsConceded: 19, Wickets: 2, Economy: 4.75},
	}

	suggestion, _ := suggestManOfMatch(nil, bowling)

	require.NotNil(t, suggestion)
	assert.Equal(t, 202, suggestion.PlayerID)
}

func TestZeroInvolvementRowsAreSkipped(t *testing.T) {
	batting := []*BattingRecord{
		{PlayerID: 101, InningsNumber: 1, Runs: 0, BallsFaced: 0},
	}
	bowling := []*BowlingRecord{
		{PlayerID: 201, InningsNumber: 1, Balls: 0},
	}

	suggestion, candidates := suggestManOfMatch(batting, bowling)
	assert.Nil(t, suggestion)
	assert.Nil(t, candidates)

	suggestion, candidates = suggestManOfMatch(nil, nil)
	assert.Nil(t, suggestion)
	assert.Nil(t, candidates)
}

func TestDuckOffOneBallStillCounts(t *testing.T) {
	batting := []*BattingRecord{
		{PlayerID: 101, InningsNumber: 1, Runs: 0, BallsFaced: 1, IsOut: true},
	}

	suggestion, candidates := suggestManOfMatch(batting, nil)

	require.NotNil(t, suggestion)
	assert.Equal(t, 101, suggestion.PlayerID)
	require.Len(t, candidates, 1)
	assert.Equal(t, "scored 0 runs off 1 ball at a strike rate of 0.0", candidates[0].Reason)
}
