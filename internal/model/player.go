package model

import "errors"

var ErrGameFull = errors.New("game is full")

type ClientPlayer struct {
	ID   string `json:"name"`
	Team Team   `json:"team"`
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

// AddPlayer seats playerID at the first free team. A player already seated
// gets their existing team back.
func (g *Game) AddPlayer(playerID string) (Team, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if team, ok := g.teamOf(playerID); ok {
		return team, nil
	}
	if g.players.White.ID == "" {
		g.players.White = ClientPlayer{ID: playerID, Team: White}
		return White, nil
	}
	if g.players.Black.ID == "" {
		g.players.Black = ClientPlayer{ID: playerID, Team: Black}
		return Black, nil
	}
	return "", ErrGameFull
}

func (g *Game) teamOf(playerID string) (Team, bool) {
	if playerID == "" {
		return "", false
	}
	if g.players.White.ID == playerID {
		return White, true
	}
	if g.players.Black.ID == playerID {
		return Black, true
	}
	return "", false
}

// TeamOf returns the team playerID is seated at.
func (g *Game) TeamOf(playerID string) (Team, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.teamOf(playerID)
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	_, ok := g.TeamOf(playerID)
	return ok
}

// CanSpectate reports whether a seat is still open, which lets unseated
// clients watch.
func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.players.White.ID == "" || g.players.Black.ID == ""
}

func (g *Game) Players() Players {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.players
}
