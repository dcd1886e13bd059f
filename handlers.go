package main

import (
	"encoding/json"
	"log"
	"net/http"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
)

type deliveryRequest struct {
	InningsNumber  *int   `json:"innings_number"`
	OverNumber     *int   `json:"over_number"`
	BallNumber     *int   `json:"ball_number"`
	BowlerID       *int   `json:"bowler_id"`
	StrikerID      *int   `json:"striker_id"`
	NonStrikerID   int    `json:"non_striker_id"`
	RunsScored     int    `json:"runs_scored"`
	ExtraType      string `json:"extra_type"`
	ExtraRuns      int    `json:"extra_runs"`
	IsWicket       bool   `json:"is_wicket"`
	WicketType     string `json:"wicket_type"`
	WicketPlayerID int    `json:"wicket_player_id"`
}

// recordDelivery is the single write path for live scoring. Validation runs
// first, the append to the store second, and only then does the delivery
// fold into the innings and player figures — so a store failure leaves the
// scoreboard exactly as it was. Deliveries for one match are serialized.
func recordDelivery(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "Invalid match ID", http.StatusBadRequest)
		return
	}

	var req deliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	switch {
	case req.InningsNumber == nil:
		writeError(w, invalidField("innings_number", "is required"))
		return
	case req.OverNumber == nil:
		writeError(w, invalidField("over_number", "is required"))
		return
	case req.BallNumber == nil:
		writeError(w, invalidField("ball_number", "is required"))
		return
	case req.BowlerID == nil:
		writeError(w, invalidField("bowler_id", "is required"))
		return
	case req.StrikerID == nil:
		writeError(w, invalidField("striker_id", "is required"))
		return
	}

	lock := lockForMatch(id)
	lock.Lock()
	defer lock.Unlock()

	mutex.RLock()
	match, exists := matches[id]
	session := sessions[id]
	mutex.RUnlock()

	if !exists || session == nil {
		writeError(w, &NotFoundError{Resource: "match", ID: id})
		return
	}
	if match.Status != StatusInProgress {
		writeError(w, &ConflictError{Reason: "match is not in progress"})
		return
	}

	delivery := Delivery{
		MatchID:        id,
		InningsNumber:  *req.InningsNumber,
		OverNumber:     *req.OverNumber,
		BallNumber:     *req.BallNumber,
		BowlerID:       *req.BowlerID,
		StrikerID:      *req.StrikerID,
		NonStrikerID:   req.NonStrikerID,
		RunsScored:     req.RunsScored,
		ExtraType:      req.ExtraType,
		ExtraRuns:      req.ExtraRuns,
		IsWicket:       req.IsWicket,
		WicketType:     req.WicketType,
		WicketPlayerID: req.WicketPlayerID,
	}

	mutex.RLock()
	normalized, err := session.normalizeDelivery(delivery)
	mutex.RUnlock()
	if err != nil {
		writeError(w, err)
		return
	}

	stored, err := deliveryStore.AppendDelivery(r.Context(), normalized)
	if err != nil {
		log.Printf("❌ Failed to append delivery for match %d: %v", id, err)
		writeError(w, &PersistenceError{Op: "append delivery", Err: err})
		return
	}

	mutex.Lock()
	session.applyDelivery(stored)
	match.LastUpdate = time.Now()
	mutex.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(stored)
}

func listDeliveries(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "Invalid match ID", http.StatusBadRequest)
		return
	}

	mutex.RLock()
	_, exists := matches[id]
	mutex.RUnlock()
	if !exists {
		writeError(w, &NotFoundError{Resource: "match", ID: id})
		return
	}

	innings := 0
	if v := r.URL.Query().Get("innings"); v != "" {
		innings, err = strconv.Atoi(v)
		if err != nil || innings < 1 || innings > InningsPerMatch {
			writeError(w, invalidField("innings", "must be 1 or 2"))
			return
		}
	}

	deliveries, err := deliveryStore.ListDeliveries(r.Context(), id, innings)
	if err != nil {
		writeError(w, &PersistenceError{Op: "list deliveries", Err: err})
		return
	}
	if deliveries == nil {
		deliveries = []Delivery{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"deliveries": deliveries,
		"match_id":   id,
		"count":      len(deliveries),
		"timestamp":  time.Now(),
	})
}

// getScorecard is the read-only projection for scoreboards. It carries no
// timestamp on purpose: two reads with no delivery in between must be
// byte-identical.
func getScorecard(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "Invalid match ID", http.StatusBadRequest)
		return
	}

	mutex.RLock()
	defer mutex.RUnlock()

	match, exists := matches[id]
	session := sessions[id]
	if !exists || session == nil {
		writeError(w, &NotFoundError{Resource: "match", ID: id})
		return
	}

	extras := make([]map[string]interface{}, 0, InningsPerMatch)
	inningsSummaries := make([]map[string]interface{}, 0, InningsPerMatch)
	for _, inn := range session.Innings {
		if inn == nil {
			continue
		}
		extras = append(extras, map[string]interface{}{
			"innings_number": inn.Number,
			"wides":          inn.Extras.Wides,
			"no_balls":       inn.Extras.NoBalls,
			"byes":           inn.Extras.Byes,
			"leg_byes":       inn.Extras.LegByes,
			"total":          inn.Extras.Total(),
		})
		summary := map[string]interface{}{
			"innings_number":  inn.Number,
			"batting_team_id": inn.BattingTeamID,
			"bowling_team_id": inn.BowlingTeamID,
			"runs":            inn.Runs,
			"wickets":         inn.Wickets,
			"overs":           inn.Overs,
			"run_rate":        runRate(inn.Runs, inn.LegalBalls),
			"closed":          inn.Closed,
		}
		inningsSummaries = append(inningsSummaries, summary)
	}

	summary := map[string]interface{}{
		"status":              match.Status,
		"current_innings":     session.CurrentInning,
		"innings":             inningsSummaries,
		"man_of_the_match_id": match.Summary.ManOfTheMatchID,
	}
	first, second := session.Innings[0], session.Innings[1]
	if first != nil && first.Closed && second != nil && !second.Closed {
		target := first.Runs + 1
		remainingBalls := session.Config.OversPerInnings*BallsPerOver - second.LegalBalls
		summary["target"] = target
		summary["runs_required"] = target - second.Runs
		summary["balls_remaining"] = remainingBalls
		summary["required_run_rate"] = runRate(maxInt(target-second.Runs, 0), maxInt(remainingBalls, 1))
	}
	if match.Summary.Result != nil {
		summary["result"] = match.Summary.Result
	}

	fallOfWickets := session.FallOfWickets
	if fallOfWickets == nil {
		fallOfWickets = []FallOfWicket{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"match_id":        id,
		"batting":         session.battingRecords(0),
		"bowling":         session.bowlingRecords(0),
		"fall_of_wickets": fallOfWickets,
		"extras":          extras,
		"config":          match.Config,
		"summary":         summary,
	})
}

// closeInnings is the external trigger for the innings transition and for
// finishing the chase: the engine itself never decides a match is over.
func closeInnings(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "Invalid match ID", http.StatusBadRequest)
		return
	}

	lock := lockForMatch(id)
	lock.Lock()
	defer lock.Unlock()

	mutex.Lock()
	defer mutex.Unlock()

	match, exists := matches[id]
	session := sessions[id]
	if !exists || session == nil {
		writeError(w, &NotFoundError{Resource: "match", ID: id})
		return
	}
	if match.Status != StatusInProgress {
		writeError(w, &ConflictError{Reason: "match is not in progress"})
		return
	}

	closed, err := session.closeCurrentInnings()
	if err != nil {
		writeError(w, err)
		return
	}

	if session.bothInningsClosed() {
		result := resolveResult(session.Innings[0], session.Innings[1])
		match.Summary.Result = &result
		log.Printf("🏁 Match %d decided: %s", id, describeResult(result, match))
	} else {
		log.Printf("🔄 Match %d innings %d closed, innings %d underway", id, closed, session.CurrentInning)
	}
	match.LastUpdate = time.Now()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"match_id":       id,
		"closed_innings": closed,
		"summary":        match.Summary,
		"timestamp":      time.Now(),
	})
}

func getMatchResult(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "Invalid match ID", http.StatusBadRequest)
		return
	}

	mutex.RLock()
	match, exists := matches[id]
	mutex.RUnlock()
	if !exists {
		writeError(w, &NotFoundError{Resource: "match", ID: id})
		return
	}

	response := map[string]interface{}{
		"match_id":  id,
		"timestamp": time.Now(),
	}
	if match.Summary.Result != nil {
		response["result"] = match.Summary.Result
		response["description"] = describeResult(*match.Summary.Result, match)
	} else {
		response["result"] = nil
		response["message"] = "Match not yet decided"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func describeResult(result MatchResult, match *Match) string {
	if result.Tie {
		return "Match tied"
	}
	if result.WinnerTeamID == nil {
		return "No result"
	}
	name := strconv.Itoa(*result.WinnerTeamID)
	winnerID := *result.WinnerTeamID
	if winnerID == match.HomeTeam.ID {
		name = match.HomeTeam.Name
	} else if winnerID == match.AwayTeam.ID {
		name = match.AwayTeam.Name
	}
	return name + " won by " + result.Margin
}

func suggestMoM(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "Invalid match ID", http.StatusBadRequest)
		return
	}

	mutex.RLock()
	_, exists := matches[id]
	session := sessions[id]
	var suggestion *MatchSuggestion
	var candidates []MatchCandidate
	if session != nil {
		suggestion, candidates = suggestManOfMatch(session.battingRecords(0), session.bowlingRecords(0))
	}
	var suggestedPlayer *Player
	if suggestion != nil {
		suggestedPlayer = players[suggestion.PlayerID]
	}
	mutex.RUnlock()

	if !exists || session == nil {
		writeError(w, &NotFoundError{Resource: "match", ID: id})
		return
	}

	response := map[string]interface{}{
		"match_id":  id,
		"timestamp": time.Now(),
	}
	if suggestion == nil {
		response["suggestion"] = nil
		response["candidates"] = []MatchCandidate{}
		response["message"] = "No figures recorded yet"
	} else {
		response["suggestion"] = suggestion
		response["candidates"] = candidates
		if suggestedPlayer != nil {
			response["player"] = suggestedPlayer
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

type confirmMoMRequest struct {
	PlayerID int `json:"player_id"`
}

// confirmMoM records the human's man-of-the-match choice and finalizes the
// match. The pick is free to disagree with the advisor.
func confirmMoM(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "Invalid match ID", http.StatusBadRequest)
		return
	}

	var req confirmMoMRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.PlayerID <= 0 {
		writeError(w, invalidField("player_id", "is required"))
		return
	}

	lock := lockForMatch(id)
	lock.Lock()
	defer lock.Unlock()

	mutex.Lock()
	defer mutex.Unlock()

	match, exists := matches[id]
	session := sessions[id]
	if !exists || session == nil {
		writeError(w, &NotFoundError{Resource: "match", ID: id})
		return
	}
	if _, ok := players[req.PlayerID]; !ok {
		writeError(w, &NotFoundError{Resource: "player", ID: req.PlayerID})
		return
	}
	if match.Status == StatusCompleted {
		writeError(w, &ConflictError{Reason: "match already completed"})
		return
	}
	if !session.bothInningsClosed() {
		writeError(w, &ConflictError{Reason: "both innings must be closed first"})
		return
	}

	if match.Summary.Result == nil {
		result := resolveResult(session.Innings[0], session.Innings[1])
		match.Summary.Result = &result
	}
	playerID := req.PlayerID
	now := time.Now()
	match.Summary.ManOfTheMatchID = &playerID
	match.Summary.Status = StatusCompleted
	match.Summary.CompletedAt = &now
	match.Status = StatusCompleted
	match.LastUpdate = now

	log.Printf("🏆 Match %d completed, man of the match: %s", id, players[playerID].Name)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(match)
}

type createMatchRequest struct {
	HomeTeamID      int    `json:"home_team_id"`
	AwayTeamID      int    `json:"away_team_id"`
	OversPerInnings int    `json:"overs_per_innings"`
	TossWinnerID    int    `json:"toss_winner_id"`
	TossDecision    string `json:"toss_decision"`
	Venue           string `json:"venue"`
}

func createMatch(w http.ResponseWriter, r *http.Request) {
	var req createMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	mutex.Lock()
	defer mutex.Unlock()

	home, homeOK := teams[req.HomeTeamID]
	away, awayOK := teams[req.AwayTeamID]
	switch {
	case !homeOK:
		writeError(w, &NotFoundError{Resource: "team", ID: req.HomeTeamID})
		return
	case !awayOK:
		writeError(w, &NotFoundError{Resource: "team", ID: req.AwayTeamID})
		return
	case req.HomeTeamID == req.AwayTeamID:
		writeError(w, invalidField("away_team_id", "teams must differ"))
		return
	case req.TossWinnerID != req.HomeTeamID && req.TossWinnerID != req.AwayTeamID:
		writeError(w, invalidField("toss_winner_id", "must be one of the two teams"))
		return
	}

	decision := req.TossDecision
	if decision == "" {
		decision = TossBat
	}
	if decision != TossBat && decision != TossBowl {
		writeError(w, invalidField("toss_decision", "must be bat or bowl"))
		return
	}

	overs := req.OversPerInnings
	if overs == 0 {
		overs = appConfig.DefaultOvers
	}
	if overs < 1 {
		writeError(w, invalidField("overs_per_innings", "must be at least 1"))
		return
	}

	venue := req.Venue
	if venue == "" {
		venue = home.HomeGround
	}

	matchCounter++
	match := &Match{
		ID:       matchCounter,
		HomeTeam: *home,
		AwayTeam: *away,
		Venue:    venue,
		Config: MatchConfig{
			OversPerInnings: overs,
			TossWinnerID:    req.TossWinnerID,
			TossDecision:    decision,
		},
		Status:     StatusInProgress,
		Summary:    MatchSummary{Status: StatusInProgress},
		StartTime:  time.Now(),
		LastUpdate: time.Now(),
	}
	matches[match.ID] = match
	sessions[match.ID] = newMatchSession(match)

	log.Printf("🏏 Match %d created: %s vs %s (%d overs, %s won toss and chose to %s)",
		match.ID, home.ShortName, away.ShortName, overs, teams[req.TossWinnerID].ShortName, decision)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(match)
}

func getAllMatches(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	teamIDStr := r.URL.Query().Get("team_id")

	mutex.RLock()
	matchList := make([]*Match, 0, len(matches))
	for _, match := range matches {
		if status != "" && !strings.EqualFold(match.Status, status) {
			continue
		}
		if teamIDStr != "" {
			teamID, err := strconv.Atoi(teamIDStr)
			if err == nil && match.HomeTeam.ID != teamID && match.AwayTeam.ID != teamID {
				continue
			}
		}
		matchList = append(matchList, match)
	}
	mutex.RUnlock()

	sort.Slice(matchList, func(i, j int) bool {
		return matchList[i].ID < matchList[j].ID
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"matches":   matchList,
		"count":     len(matchList),
		"timestamp": time.Now(),
	})
}

func getMatch(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "Invalid match ID", http.StatusBadRequest)
		return
	}

	mutex.RLock()
	match, exists := matches[id]
	mutex.RUnlock()

	if !exists {
		writeError(w, &NotFoundError{Resource: "match", ID: id})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(match)
}

func getAllTeams(w http.ResponseWriter, r *http.Request) {
	mutex.RLock()
	teamList := make([]*TeamInfo, 0, len(teams))
	for _, team := range teams {
		teamList = append(teamList, team)
	}
	mutex.RUnlock()

	sort.Slice(teamList, func(i, j int) bool {
		return teamList[i].ID < teamList[j].ID
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"teams":     teamList,
		"count":     len(teamList),
		"timestamp": time.Now(),
	})
}

func getTeam(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "Invalid team ID", http.StatusBadRequest)
		return
	}

	mutex.RLock()
	team, exists := teams[id]
	mutex.RUnlock()

	if !exists {
		writeError(w, &NotFoundError{Resource: "team", ID: id})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(team)
}

func getAllPlayers(w http.ResponseWriter, r *http.Request) {
	teamIDStr := r.URL.Query().Get("team_id")
	role := r.URL.Query().Get("role")

	mutex.RLock()
	playerList := make([]*Player, 0, len(players))
	for _, player := range players {
		if teamIDStr != "" {
			teamID, err := strconv.Atoi(teamIDStr)
			if err == nil && player.TeamID != teamID {
				continue
			}
		}
		if role != "" && !strings.EqualFold(player.Role, role) {
			continue
		}
		playerList = append(playerList, player)
	}
	mutex.RUnlock()

	sort.Slice(playerList, func(i, j int) bool {
		return playerList[i].ID < playerList[j].ID
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"players":   playerList,
		"count":     len(playerList),
		"timestamp": time.Now(),
	})
}

func getPlayer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		http.Error(w, "Invalid player ID", http.StatusBadRequest)
		return
	}

	mutex.RLock()
	player, exists := players[id]
	mutex.RUnlock()

	if !exists {
		writeError(w, &NotFoundError{Resource: "player", ID: id})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(player)
}

func searchAPI(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "Search query required", http.StatusBadRequest)
		return
	}

	query = strings.ToLower(query)

	mutex.RLock()

	var results = struct {
		Players []*Player   `json:"players"`
		Teams   []*TeamInfo `json:"teams"`
		Count   int         `json:"count"`
	}{
		Players: []*Player{},
		Teams:   []*TeamInfo{},
	}

	for _, player := range players {
		if strings.Contains(strings.ToLower(player.Name), query) ||
			strings.Contains(strings.ToLower(player.Role), query) {
			results.Players = append(results.Players, player)
		}
	}

	for _, team := range teams {
		if strings.Contains(strings.ToLower(team.Name), query) ||
			strings.Contains(strings.ToLower(team.Captain), query) {
			results.Teams = append(results.Teams, team)
		}
	}

	mutex.RUnlock()

	results.Count = len(results.Players) + len(results.Teams)

	sort.Slice(results.Players, func(i, j int) bool { return results.Players[i].ID < results.Players[j].ID })
	sort.Slice(results.Teams, func(i, j int) bool { return results.Teams[i].ID < results.Teams[j].ID })

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}

func getGlobalStats(w http.ResponseWriter, r *http.Request) {
	mutex.RLock()
	liveMatches := 0
	completedMatches := 0
	totalRuns := 0
	totalWickets := 0
	highestTotal := 0
	for id, match := range matches {
		switch match.Status {
		case StatusInProgress:
			liveMatches++
		case StatusCompleted:
			completedMatches++
		}
		if session := sessions[id]; session != nil {
			for _, inn := range session.Innings {
				if inn == nil {
					continue
				}
				totalRuns += inn.Runs
				totalWickets += inn.Wickets
				if inn.Runs > highestTotal {
					highestTotal = inn.Runs
				}
			}
		}
	}
	mutex.RUnlock()

	deliveries, err := deliveryStore.CountDeliveries(r.Context())
	if err != nil {
		deliveries = -1
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"live_matches":      liveMatches,
		"completed_matches": completedMatches,
		"total_runs":        totalRuns,
		"total_wickets":     totalWickets,
		"highest_total":     highestTotal,
		"total_deliveries":  deliveries,
		"timestamp":         time.Now(),
	})
}

// For goroutine monitoring - can be hooked to a grafana dashboard
func getGoroutineStats() map[string]interface{} {
	numGoroutines := runtime.NumGoroutine()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return map[string]interface{}{
		"goroutine_count": numGoroutines,
		"memory_alloc":    memStats.Alloc,
		"memory_total":    memStats.TotalAlloc,
		"memory_sys":      memStats.Sys,
		"num_gc":          memStats.NumGC,
		"status":          getGoroutineStatus(numGoroutines),
	}
}

func getGoroutineStatus(count int) string {
	if count < 50 {
		return "healthy"
	} else if count < 100 {
		return "warning"
	}
	return "critical"
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	mutex.RLock()
	matchCount := len(matches)
	playerCount := len(players)
	teamCount := len(teams)

	activeMatches := 0
	for _, match := range matches {
		if match.Status == StatusInProgress {
			activeMatches++
		}
	}
	mutex.RUnlock()

	uptime := time.Since(startTime).Round(time.Second)
	goroutineStats := getGoroutineStats()

	healthData := map[string]interface{}{
		"status":         "healthy",
		"name":           "CrickPulse API",
		"version":        version,
		"uptime":         uptime.String(),
		"active_matches": activeMatches,
		"total_matches":  matchCount,
		"total_players":  playerCount,
		"total_teams":    teamCount,
		"goroutines":     goroutineStats,
		"timestamp":      time.Now(),
	}

	log.Printf("🏥 Health Check: %d active matches, %d total matches, %d goroutines (%s)",
		activeMatches, matchCount, goroutineStats["goroutine_count"], goroutineStats["status"])

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(healthData)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
