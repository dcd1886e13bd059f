package main

import (
	"net/http"
	"text/template"
	"time"
)

// homePage serves the API documentation landing page.
func homePage(w http.ResponseWriter, r *http.Request) {
	mutex.RLock()
	liveMatches := 0
	for _, match := range matches {
		if match.Status == StatusInProgress {
			liveMatches++
		}
	}
	templateData := struct {
		LiveMatches  int
		TotalMatches int
		TotalPlayers int
		TotalTeams   int
		DefaultOvers int
		LastUpdated  string
		Version      string
	}{
		LiveMatches:  liveMatches,
		TotalMatches: len(matches),
		TotalPlayers: len(players),
		TotalTeams:   len(teams),
		DefaultOvers: appConfig.DefaultOvers,
		LastUpdated:  time.Now().Format("2006-01-02 15:04:05"),
		Version:      version,
	}
	mutex.RUnlock()

	tmpl, err := template.New("homepage").Parse(htmlTemplate)
	if err != nil {
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	if err := tmpl.Execute(w, templateData); err != nil {
		http.Error(w, "Template execution error", http.StatusInternalServerError)
	}
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>CrickPulse API v{{.Version}}</title>
    <style>
        body {
            font-family: system-ui, -apple-system, sans-serif;
            margin: 0;
            padding: 20px;
            background: linear-gradient(135deg, #134e4a 0%, #065f46 100%);
            min-height: 100vh;
            box-sizing: border-box;
            color: #2d3748;
        }
        .container {
            max-width: 1100px;
            margin: 0 auto;
            background: white;
            padding: 30px;
            border-radius: 12px;
            box-shadow: 0 10px 25px rgba(0,0,0,0.2);
        }
        h1 { margin-top: 0; }
        .stats-grid {
            display: grid;
            grid-template-columns: repeat(auto-fit, minmax(160px, 1fr));
            gap: 1rem;
            margin: 1.5rem 0;
        }
        .stat-card {
            background: #f0fdf4;
            border: 1px solid #bbf7d0;
            border-radius: 8px;
            padding: 1rem;
            text-align: center;
        }
        .stat-card h3 { margin: 0; font-size: 1.8rem; color: #065f46; }
        .stat-card p { margin: 0.25rem 0 0; font-size: 0.85rem; color: #4a5568; }
        .endpoint {
            background: #f7fafc;
            border-left: 4px solid #065f46;
            padding: 0.6rem 1rem;
            margin: 0.5rem 0;
            border-radius: 0 6px 6px 0;
            font-family: 'SF Mono', Monaco, monospace;
            font-size: 0.9rem;
        }
        .method {
            display: inline-block;
            min-width: 3.2rem;
            font-weight: 700;
        }
        .get { color: #2b6cb0; }
        .post { color: #c05621; }
        .footer { margin-top: 2rem; font-size: 0.85rem; color: #718096; }
    </style>
</head>
<body>
    <div class="container">
        <h1>🏏 CrickPulse API</h1>
        <p>Live cricket scoring and statistics. Record every delivery as it happens;
        innings totals, batting and bowling figures, results and man-of-the-match
        suggestions are all derived from the ball-by-ball log.</p>

        <div class="stats-grid">
            <div class="stat-card"><h3>{{.LiveMatches}}</h3><p>Live Matches</p></div>
            <div class="stat-card"><h3>{{.TotalMatches}}</h3><p>Total Matches</p></div>
            <div class="stat-card"><h3>{{.TotalTeams}}</h3><p>Teams</p></div>
            <div class="stat-card"><h3>{{.TotalPlayers}}</h3><p>Players</p></div>
            <div class="stat-card"><h3>{{.DefaultOvers}}</h3><p>Default Overs</p></div>
        </div>

        <h2>Matches</h2>
        <div class="endpoint"><span class="method post">POST</span> /api/v1/matches — create a match (teams, overs, toss)</div>
        <div class="endpoint"><span class="method get">GET</span> /api/v1/matches — list matches (?status=, ?team_id=)</div>
        <div class="endpoint"><span class="method get">GET</span> /api/v1/matches/{id} — match detail</div>

        <h2>Live Scoring</h2>
        <div class="endpoint"><span class="method post">POST</span> /api/v1/matches/{id}/deliveries — record one ball</div>
        <div class="endpoint"><span class="method get">GET</span> /api/v1/matches/{id}/deliveries — ball-by-ball log (?innings=)</div>
        <div class="endpoint"><span class="method get">GET</span> /api/v1/matches/{id}/scorecard — full scorecard projection</div>
        <div class="endpoint"><span class="method post">POST</span> /api/v1/matches/{id}/innings/close — close the open innings</div>

        <h2>Results</h2>
        <div class="endpoint"><span class="method get">GET</span> /api/v1/matches/{id}/result — winner and margin</div>
        <div class="endpoint"><span class="method get">GET</span> /api/v1/matches/{id}/mom — man-of-the-match suggestion</div>
        <div class="endpoint"><span class="method post">POST</span> /api/v1/matches/{id}/mom — confirm the pick, finalize the match</div>

        <h2>Reference Data</h2>
        <div class="endpoint"><span class="method get">GET</span> /api/v1/teams · /api/v1/teams/{id}</div>
        <div class="endpoint"><span class="method get">GET</span> /api/v1/players · /api/v1/players/{id} (?team_id=, ?role=)</div>
        <div class="endpoint"><span class="method get">GET</span> /api/v1/search?q= · /api/v1/stats · /health</div>

        <div class="footer">v{{.Version}} · last updated {{.LastUpdated}}</div>
    </div>
</body>
</html>`
