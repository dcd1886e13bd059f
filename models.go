package main

import (
	"fmt"
	"sync"
	"time"
)

// String constants for optimization
const (
	// Match statuses
	StatusScheduled  = "SCHEDULED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"

	// Extra types
	ExtraNone   = "none"
	ExtraWide   = "wide"
	ExtraNoBall = "noball"
	ExtraBye    = "bye"
	ExtraLegBye = "legbye"

	// Wicket types
	WicketBowled           = "bowled"
	WicketCaught           = "caught"
	WicketLBW              = "lbw"
	WicketRunOut           = "run_out"
	WicketStumped          = "stumped"
	WicketHitWicket        = "hit_wicket"
	WicketCaughtAndBowled  = "caught_and_bowled"
	WicketRetiredHurt      = "retired_hurt"
	WicketObstructingField = "obstructing_field"
	WicketHitBallTwice     = "hit_ball_twice"
	WicketTimedOut         = "timed_out"

	// Toss decisions
	TossBat  = "bat"
	TossBowl = "bowl"

	// Player roles
	RoleBatter     = "Batter"
	RoleBowler     = "Bowler"
	RoleAllRounder = "All-rounder"
	RoleKeeper     = "Wicket-keeper"

	// Batting/bowling styles
	StyleRightHand = "Right-hand bat"
	StyleLeftHand  = "Left-hand bat"
	StyleRightFast = "Right-arm fast"
	StyleRightSpin = "Right-arm off spin"
	StyleLeftOrtho = "Left-arm orthodox"
	StyleLeftFast  = "Left-arm fast-medium"
	StyleLegBreak  = "Leg break"
	StyleNone      = ""

	// Game constants
	BallsPerOver      = 6
	WicketsPerInnings = 10
	InningsPerMatch   = 2
	WicketRunValue    = 25 // run-equivalent of a wicket when ranking all disciplines
)

var (
	extraTypes = map[string]bool{
		ExtraWide:   true,
		ExtraNoBall: true,
		ExtraBye:    true,
		ExtraLegBye: true,
	}

	wicketTypes = map[string]bool{
		WicketBowled:           true,
		WicketCaught:           true,
		WicketLBW:              true,
		WicketRunOut:           true,
		WicketStumped:          true,
		WicketHitWicket:        true,
		WicketCaughtAndBowled:  true,
		WicketRetiredHurt:      true,
		WicketObstructingField: true,
		WicketHitBallTwice:     true,
		WicketTimedOut:         true,
	}

	// Dismissals credited to the bowler. Run-outs and the oddities
	// (retired hurt, obstruction, hit twice, timed out) are not.
	bowlerCreditedWickets = map[string]bool{
		WicketBowled:          true,
		WicketCaught:          true,
		WicketLBW:             true,
		WicketStumped:         true,
		WicketHitWicket:       true,
		WicketCaughtAndBowled: true,
	}
)

type TeamInfo struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	ShortName  string `json:"short_name"`
	LogoURL    string `json:"logo_url"`
	HomeGround string `json:"home_ground"`
	Founded    int    `json:"founded"`
	Captain    string `json:"captain"`
}

type Player struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	TeamID       int       `json:"team_id"`
	BattingStyle string    `json:"batting_style"`
	BowlingStyle string    `json:"bowling_style,omitempty"`
	AvatarURL    string    `json:"avatar_url"`
	LastUpdate   time.Time `json:"last_update"`
}

// Delivery is one recorded ball. Deliveries are immutable once recorded;
// a misrecorded ball is corrected by recording a compensating delivery,
// never by editing the log.
type Delivery struct {
	MatchID        int       `json:"match_id"`
	Seq            int64     `json:"seq"`
	InningsNumber  int       `json:"innings_number"`
	OverNumber     int       `json:"over_number"`
	BallNumber     int       `json:"ball_number"`
	BowlerID       int       `json:"bowler_id"`
	StrikerID      int       `json:"striker_id"`
	NonStrikerID   int       `json:"non_striker_id,omitempty"`
	RunsScored     int       `json:"runs_scored"`
	ExtraType      string    `json:"extra_type"`
	ExtraRuns      int       `json:"extra_runs"`
	IsWicket       bool      `json:"is_wicket"`
	WicketType     string    `json:"wicket_type,omitempty"`
	WicketPlayerID int       `json:"wicket_player_id,omitempty"`
	RecordedAt     time.Time `json:"recorded_at"`
}

// legalBall reports whether the delivery advances the over. Wides and
// no-balls are re-bowled and do not count.
func (d Delivery) legalBall() bool {
	return d.ExtraType == ExtraNone || d.ExtraType == ExtraBye || d.ExtraType == ExtraLegBye
}

type ExtrasBreakdown struct {
	Wides   int `json:"wides"`
	NoBalls int `json:"no_balls"`
	Byes    int `json:"byes"`
	LegByes int `json:"leg_byes"`
}

func (e ExtrasBreakdown) Total() int {
	return e.Wides + e.NoBalls + e.Byes + e.LegByes
}

// Innings holds the running totals for one team's turn at batting. It is
// derived state: it must always be reproducible from the delivery log.
type Innings struct {
	Number        int             `json:"number"`
	BattingTeamID int             `json:"batting_team_id"`
	BowlingTeamID int             `json:"bowling_team_id"`
	Runs          int             `json:"runs"`
	Wickets       int             `json:"wickets"`
	LegalBalls    int             `json:"legal_balls"`
	Overs         string          `json:"overs"`
	Extras        ExtrasBreakdown `json:"extras"`
	Closed        bool            `json:"closed"`
	LastUpdate    time.Time       `json:"last_update"`
}

// BattingRecord is one player's figures for one innings, keyed by
// (match, player, innings).
type BattingRecord struct {
	MatchID       int     `json:"match_id"`
	PlayerID      int     `json:"player_id"`
	InningsNumber int     `json:"innings_number"`
	Runs          int     `json:"runs_scored"`
	BallsFaced    int     `json:"balls_faced"`
	Fours         int     `json:"fours"`
	Sixes         int     `json:"sixes"`
	StrikeRate    float64 `json:"strike_rate"`
	IsOut         bool    `json:"is_out"`
	WicketType    string  `json:"wicket_type,omitempty"`
	IsBatting     bool    `json:"is_batting"`
}

// BowlingRecord is one bowler's figures for one innings. Balls are stored
// as a legal-ball count and rendered with a six-ball modulus so 0.5 overs
// never collides with 5.0.
type BowlingRecord struct {
	MatchID       int     `json:"match_id"`
	PlayerID      int     `json:"player_id"`
	InningsNumber int     `json:"innings_number"`
	Balls         int     `json:"legal_balls"`
	Overs         string  `json:"overs_bowled"`
	RunsConceded  int     `json:"runs_conceded"`
	Wickets       int     `json:"wickets_taken"`
	Economy       float64 `json:"economy_rate"`
}

type FallOfWicket struct {
	InningsNumber int    `json:"innings_number"`
	Wicket        int    `json:"wicket"`
	Runs          int    `json:"runs"`
	Over          string `json:"over"`
	PlayerID      int    `json:"player_id,omitempty"`
	WicketType    string `json:"wicket_type"`
}

// MatchConfig captures the pre-match decisions: format length and the toss.
// The toss winner plus their decision derives who bats first, replacing the
// per-sport toss dialogs the older scoreboards carried.
type MatchConfig struct {
	OversPerInnings int    `json:"overs_per_innings"`
	TossWinnerID    int    `json:"toss_winner_id"`
	TossDecision    string `json:"toss_decision"`
}

// battingTeamForInnings derives the batting side for an innings number from
// the toss alone.
func (c MatchConfig) battingTeamForInnings(innings, homeTeamID, awayTeamID int) int {
	first := c.TossWinnerID
	if c.TossDecision == TossBowl {
		if first == homeTeamID {
			first = awayTeamID
		} else {
			first = homeTeamID
		}
	}
	second := homeTeamID
	if first == homeTeamID {
		second = awayTeamID
	}
	if innings == 1 {
		return first
	}
	return second
}

type MatchResult struct {
	WinnerTeamID *int   `json:"winner_team_id"`
	Tie          bool   `json:"tie"`
	MarginKind   string `json:"margin_kind,omitempty"`
	MarginValue  int    `json:"margin_value,omitempty"`
	Margin       string `json:"margin,omitempty"`
}

// MatchSummary is the final derived state. The man-of-the-match id is a
// human-confirmed choice, not the advisor's output.
type MatchSummary struct {
	Result          *MatchResult `json:"result,omitempty"`
	ManOfTheMatchID *int         `json:"man_of_the_match_id"`
	Status          string       `json:"status"`
	CompletedAt     *time.Time   `json:"completed_at,omitempty"`
}

type Match struct {
	ID         int          `json:"id"`
	HomeTeam   TeamInfo     `json:"home_team"`
	AwayTeam   TeamInfo     `json:"away_team"`
	Venue      string       `json:"venue"`
	Config     MatchConfig  `json:"config"`
	Status     string       `json:"status"`
	Summary    MatchSummary `json:"summary"`
	StartTime  time.Time    `json:"start_time"`
	LastUpdate time.Time    `json:"last_update"`
}

// In-memory database
var (
	teams    = make(map[int]*TeamInfo)
	players  = make(map[int]*Player)
	matches  = make(map[int]*Match)
	sessions = make(map[int]*MatchSession) // matchID -> live scoring state

	// Counters and synchronization
	matchCounter = 0
	mutex        = &sync.RWMutex{}
	version      = "1.0.0"

	// Per-match serialization points for delivery recording. Two deliveries
	// for the same match must never interleave their read-modify-write.
	matchLocks     = make(map[int]*sync.Mutex)
	matchLockGuard = &sync.Mutex{}

	startTime = time.Now()
)

func lockForMatch(matchID int) *sync.Mutex {
	matchLockGuard.Lock()
	defer matchLockGuard.Unlock()
	if l, ok := matchLocks[matchID]; ok {
		return l
	}
	l := &sync.Mutex{}
	matchLocks[matchID] = l
	return l
}

// Team and player data
var teamData = []struct {
	ID         int
	Name       string
	ShortName  string
	HomeGround string
	Captain    string
	Founded    int
}{
	{1, "Monsoon Riders", "MNR", "Lakeview Oval", "Arjun Mehta", 2041},
	{2, "Harbour Kings", "HBK", "Seawall Stadium", "Dylan Cooper", 2038},
	{3, "Desert Falcons", "DFL", "Dune Park", "Imran Qureshi", 2043},
	{4, "Highland Chargers", "HLC", "Summit Ground", "Angus Reid", 2040},
	{5, "Delta Titans", "DLT", "Riverbend Arena", "Kumar Sanga", 2039},
	{6, "Thunder Bay CC", "TBC", "Stormfront Oval", "Wade Marshall", 2042},
	{7, "Crimson Spinners", "CSP", "Old Mill Ground", "Ravi Chandra", 2037},
	{8, "Polar Strikers", "PLS", "Aurora Field", "Erik Lindqvist", 2044},
}

var playerNames = []struct {
	Name         string
	Role         string
	BattingStyle string
	BowlingStyle string
}{
	{"Rohan Iyer", RoleBatter, StyleRightHand, StyleNone},
	{"Liam Baxter", RoleBatter, StyleLeftHand, StyleNone},
	{"Tariq Aziz", RoleBatter, StyleRightHand, StyleNone},
	{"Devon Walsh", RoleBatter, StyleRightHand, StyleLegBreak},
	{"Santiago Cruz", RoleBatter, StyleLeftHand, StyleNone},
	{"Nathan Pryce", RoleKeeper, StyleRightHand, StyleNone},
	{"Ishan Varma", RoleKeeper, StyleLeftHand, StyleNone},
	{"Omar Siddiqui", RoleAllRounder, StyleRightHand, StyleRightSpin},
	{"Jake Morrow", RoleAllRounder, StyleLeftHand, StyleLeftOrtho},
	{"Ben Whitfield", RoleAllRounder, StyleRightHand, StyleRightFast},
	{"Kane Albright", RoleBowler, StyleRightHand, StyleRightFast},
	{"Farhan Malik", RoleBowler, StyleRightHand, StyleRightFast},
	{"Dusan Kovac", RoleBowler, StyleLeftHand, StyleLeftFast},
	{"Pieter Vos", RoleBowler, StyleRightHand, StyleRightSpin},
	{"Angelo Perera", RoleBowler, StyleLeftHand, StyleLeftOrtho},
}

func initializeData() {
	mutex.Lock()
	defer mutex.Unlock()

	for _, t := range teamData {
		teams[t.ID] = &TeamInfo{
			ID:         t.ID,
			Name:       t.Name,
			ShortName:  t.ShortName,
			LogoURL:    fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=random&size=128", t.ShortName),
			HomeGround: t.HomeGround,
			Founded:    t.Founded,
			Captain:    t.Captain,
		}
	}

	playerID := 1
	for _, t := range teamData {
		for _, template := range playerNames {
			players[playerID] = &Player{
				ID:           playerID,
				Name:         fmt.Sprintf("%s %s", template.Name, romanSquadSuffix(t.ID)),
				Role:         template.Role,
				TeamID:       t.ID,
				BattingStyle: template.BattingStyle,
				BowlingStyle: template.BowlingStyle,
				AvatarURL:    fmt.Sprintf("https://i.pravatar.cc/150?img=%d", (playerID%70)+1),
				LastUpdate:   time.Now(),
			}
			playerID++
		}
	}
}

// romanSquadSuffix keeps seeded player names unique across squads.
func romanSquadSuffix(teamID int) string {
	suffixes := []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII"}
	if teamID >= 1 && teamID <= len(suffixes) {
		return suffixes[teamID-1]
	}
	return fmt.Sprintf("%d", teamID)
}
