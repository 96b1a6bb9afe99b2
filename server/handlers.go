package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"maps"
	"net/http"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/icco/goshogi"
	"github.com/icco/goshogi/server/docs"
	"go.uber.org/zap"
)

// @title goshogi API
// @version 1.0
// @description A shogi variant game server API with authentication
// @contact.name API Support
// @contact.url http://github.com/icco/goshogi
// @license.name MIT
// @license.url https://github.com/icco/goshogi/blob/main/LICENSE
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token in format: Bearer {token}

// @Summary Get API information
// @Description Returns basic API information and available endpoints
// @Tags info
// @Produce html
// @Success 200 {string} string "HTML page with API information"
// @Router / [get]
func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	spec, err := docs.GetSwaggerSpec()
	if err != nil {
		log.Errorw("failed to parse swagger spec", zap.Error(err))
		spec = &docs.SwaggerSpec{}
	}

	var b strings.Builder
	b.WriteString(`
<html>
  <head>
    <title>goshogi API</title>
    <style>
      body { font-family: Arial, sans-serif; max-width: 800px; margin: 40px auto; padding: 20px; }
      .endpoint { margin: 20px 0; padding: 15px; border-left: 4px solid #007acc; background: #f8f9fa; }
      .method { font-weight: bold; color: #007acc; text-transform: uppercase; }
      .path { font-family: monospace; margin: 5px 0; }
      .description { color: #666; margin: 5px 0; }
    </style>
  </head>
  <body>
    <h1>goshogi API</h1>
    <p><a href="/swagger/">Swagger Documentation</a></p>
    <h2>Available Endpoints</h2>`)

	for _, path := range slices.Sorted(maps.Keys(spec.Paths)) {
		methods := spec.Paths[path]
		for _, method := range slices.Sorted(maps.Keys(methods)) {
			fmt.Fprintf(&b, `
    <div class="endpoint">
      <div class="method">%s</div>
      <div class="path">%s</div>
      <div class="description">%s</div>
    </div>`, method, template.HTMLEscapeString(path), template.HTMLEscapeString(methods[method].Description))
		}
	}
	b.WriteString(`
  </body>
</html>`)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(b.String())); err != nil {
		log.Errorw("failed to write response", zap.Error(err))
	}
}

// @Summary Health check
// @Description Returns service health status
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (s *Server) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, HealthResponse{
		Healthy:  "true",
		Revision: os.Getenv("GIT_REVISION"),
		Tag:      os.Getenv("GIT_TAG"),
		Branch:   os.Getenv("GIT_BRANCH"),
	})
}

func (s *Server) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	s.renderError(w, http.StatusNotFound, "404: This page could not be found")
}

// RuleSummary describes a rule games can be created with.
type RuleSummary struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Seats int    `json:"seats"`
}

// @Summary List rules
// @Description Lists the rules games can be created with
// @Tags game
// @Produce json
// @Success 200 {array} RuleSummary
// @Router /rules [get]
func (s *Server) rulesHandler(w http.ResponseWriter, r *http.Request) {
	out := []RuleSummary{}
	for _, id := range s.cfg.Rules.IDs() {
		rule := s.cfg.Rules[id]
		out = append(out, RuleSummary{ID: id, Name: rule.Name, Seats: len(rule.Players)})
	}
	s.render(w, http.StatusOK, out)
}

// CreateGameRequest represents the request body for creating a new game
type CreateGameRequest struct {
	Rule int `json:"rule" example:"1"`
}

// @Summary Create a new game
// @Description Creates a game of a rule and seats the caller at direction 0
// @Tags game
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param game body CreateGameRequest false "Game configuration"
// @Success 307 {string} string "Redirect to game URL"
// @Failure 400 {object} ErrorResponse
// @Router /game/new [get]
// @Router /game/new [post]
func (s *Server) newGameHandler(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)

	data := CreateGameRequest{Rule: goshogi.RuleHirate}
	if err := json.NewDecoder(r.Body).Decode(&data); err == nil && data.Rule == 0 {
		data.Rule = goshogi.RuleHirate
	}

	slug, err := s.store.CreateGame(r.Context(), data.Rule, user)
	if err != nil {
		log.Infow("could not create game", "rule", data.Rule, zap.Error(err))
		s.renderErr(w, err)
		return
	}
	s.metrics.gameCreated(r.Context(), data.Rule)
	log.Infow("game created", "slug", slug, "rule", data.Rule, "user", user.UUID)

	http.Redirect(w, r, fmt.Sprintf("/game/%s", slug), http.StatusTemporaryRedirect)
}

// JoinRequest optionally names the seat to take.
type JoinRequest struct {
	Direction *goshogi.Direction `json:"direction,omitempty"`
}

// JoinResponse reports the seat taken.
type JoinResponse struct {
	Slug      string            `json:"slug"`
	Direction goshogi.Direction `json:"direction"`
	Status    string            `json:"status"`
}

// @Summary Join a waiting game
// @Description Takes a free seat. The game starts once every seat is filled
// @Tags game
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Game slug identifier"
// @Param seat body JoinRequest false "Seat choice"
// @Success 200 {object} JoinResponse
// @Failure 409 {object} ErrorResponse
// @Router /game/{slug}/join [post]
func (s *Server) joinGameHandler(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	slug := ugcPolicy.Sanitize(chi.URLParam(r, "slug"))

	var data JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil && !errors.Is(err, io.EOF) {
		s.renderError(w, http.StatusBadRequest, err.Error())
		return
	}

	unlock := s.locks.Lock(slug)
	defer unlock()

	rec, g, err := s.store.LoadGame(r.Context(), slug)
	if err != nil {
		s.renderErr(w, err)
		return
	}

	d, err := s.store.Join(r.Context(), rec, g, user, data.Direction)
	if err != nil {
		log.Infow("could not join game", "slug", slug, "user", user.UUID, zap.Error(err))
		s.renderErr(w, err)
		return
	}
	log.Infow("user joined game", "slug", slug, "user", user.UUID, "direction", d)

	s.render(w, http.StatusOK, JoinResponse{Slug: slug, Direction: d, Status: rec.Status})
}

// CommandRequest is one command. Text is the kifu line form ("77-76",
// "fu*55", "pass", "resign", "draw"); Command carries the other types.
// Direction picks the acting seat when the caller holds several.
type CommandRequest struct {
	Text      string             `json:"text,omitempty" example:"77-76"`
	Command   *goshogi.Command   `json:"command,omitempty"`
	Direction *goshogi.Direction `json:"direction,omitempty"`
}

// GameResponse is a game's stored state.
type GameResponse struct {
	Slug     string                 `json:"slug"`
	Status   string                 `json:"status"`
	Message  string                 `json:"message,omitempty"`
	Notation string                 `json:"notation,omitempty"`
	State    *goshogi.Serialization `json:"state"`
}

func gameResponse(slug string, g *goshogi.Game) GameResponse {
	resp := GameResponse{
		Slug:    slug,
		Status:  g.Status().String(),
		Message: g.Message(),
		State:   g.Serialize(),
	}
	if e := g.Kifu().Last(); e != nil {
		resp.Notation = e.Text()
	}
	return resp
}

// @Summary Run a command
// @Description Runs a command for the caller's seat
// @Tags game
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Game slug identifier"
// @Param command body CommandRequest true "Command"
// @Success 200 {object} GameResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /game/{slug}/command [post]
func (s *Server) commandHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := userFromContext(r)
	slug := ugcPolicy.Sanitize(chi.URLParam(r, "slug"))

	var data CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		s.renderError(w, http.StatusBadRequest, err.Error())
		return
	}

	var c goshogi.Command
	switch {
	case data.Text != "":
		parsed, err := goshogi.ParseCommand(data.Text)
		if err != nil {
			s.renderErr(w, err)
			return
		}
		c = parsed
	case data.Command != nil:
		c = *data.Command
	default:
		s.renderError(w, http.StatusBadRequest, "empty command")
		return
	}

	unlock := s.locks.Lock(slug)
	defer unlock()

	rec, g, err := s.store.LoadGame(ctx, slug)
	if err != nil {
		s.renderErr(w, err)
		return
	}

	d, err := actingSeat(rec, g, user, data.Direction)
	if err != nil {
		s.renderErr(w, err)
		return
	}
	c.Direction = &d

	wasEnded := g.IsEnded()
	if err := g.RunCommand(c); err != nil {
		s.metrics.command(ctx, string(c.Type), "rejected")
		log.Infow("command rejected", "slug", slug, "type", c.Type, "direction", d, zap.Error(err))
		s.renderErr(w, err)
		return
	}
	if c.Type == goshogi.CommandReset {
		reseat(rec, g)
	}

	if err := s.store.SaveCommand(ctx, rec, g, c, user); err != nil {
		s.renderErr(w, err)
		return
	}
	s.metrics.command(ctx, string(c.Type), "accepted")
	if !wasEnded && g.IsEnded() {
		s.metrics.gameEnded(ctx, g.RuleID())
		log.Infow("game ended", "slug", slug, "message", g.Message())
	}

	s.render(w, http.StatusOK, gameResponse(slug, g))
}

// actingSeat picks the direction the user acts for: the requested one, the
// seat on turn when the user holds it, or the user's first seat.
func actingSeat(rec *Game, g *goshogi.Game, user *User, want *goshogi.Direction) (goshogi.Direction, error) {
	seats := SeatsOf(rec, user)
	if len(seats) == 0 {
		return goshogi.NoDirection, ErrNotSeated
	}
	if want != nil {
		if !slices.Contains(seats, *want) {
			return goshogi.NoDirection, fmt.Errorf("%w: direction %d", ErrNotSeated, *want)
		}
		return *want, nil
	}
	if slices.Contains(seats, g.Teban().Get()) {
		return g.Teban().Get(), nil
	}
	return seats[0], nil
}

// reseat restores the seated users after a reset rebuilt the seats.
func reseat(rec *Game, g *goshogi.Game) {
	for _, seat := range rec.Seats {
		d := goshogi.Direction(seat.Direction)
		if g.Teban().Valid(d) && seat.User.UUID != "" {
			g.Teban().SetUser(d, seat.User.UUID)
		}
	}
}

// @Summary Get game state
// @Description Returns the serialized state of a game
// @Tags game
// @Produce json
// @Param slug path string true "Game slug identifier"
// @Success 200 {object} GameResponse
// @Failure 404 {object} ErrorResponse
// @Router /game/{slug} [get]
func (s *Server) getGameHandler(w http.ResponseWriter, r *http.Request) {
	slug := ugcPolicy.Sanitize(chi.URLParam(r, "slug"))
	_, g, err := s.store.LoadGame(r.Context(), slug)
	if err != nil {
		log.Infow("could not get game", "slug", slug, zap.Error(err))
		s.renderErr(w, err)
		return
	}
	s.render(w, http.StatusOK, gameResponse(slug, g))
}

// @Summary Get position at a turn
// @Description Returns the state of a game after the given number of kifu lines
// @Tags game
// @Produce json
// @Param slug path string true "Game slug identifier"
// @Param turn path int true "Kifu lines to replay"
// @Success 200 {object} GameResponse
// @Failure 400 {object} ErrorResponse
// @Router /game/{slug}/{turn} [get]
func (s *Server) getTurnHandler(w http.ResponseWriter, r *http.Request) {
	slug := ugcPolicy.Sanitize(chi.URLParam(r, "slug"))
	_, g, err := s.store.LoadGame(r.Context(), slug)
	if err != nil {
		s.renderErr(w, err)
		return
	}

	turnStr := ugcPolicy.Sanitize(chi.URLParam(r, "turn"))
	n, err := strconv.Atoi(turnStr)
	if err != nil {
		s.renderError(w, http.StatusBadRequest, fmt.Sprintf("bad turn %q", turnStr))
		return
	}

	rec := g.KifuRecord()
	if n < 0 || n > len(rec.Turns) {
		s.renderError(w, http.StatusBadRequest, fmt.Sprintf("turn %d out of range 0-%d", n, len(rec.Turns)))
		return
	}
	rec.Turns = rec.Turns[:n]

	at, err := rec.Replay(s.cfg.Rules, s.cfg.Options...)
	if err != nil {
		log.Errorw("could not replay game", "slug", slug, "turn", n, zap.Error(err))
		s.renderErr(w, err)
		return
	}
	for _, d := range g.Teban().Directions() {
		at.Teban().SetUser(d, g.Teban().User(d))
	}

	s.render(w, http.StatusOK, gameResponse(slug, at))
}

// @Summary Get kifu
// @Description Exports the game history as kifu text
// @Tags game
// @Produce plain
// @Param slug path string true "Game slug identifier"
// @Success 200 {string} string "Kifu text"
// @Router /game/{slug}/kifu [get]
func (s *Server) kifuHandler(w http.ResponseWriter, r *http.Request) {
	slug := ugcPolicy.Sanitize(chi.URLParam(r, "slug"))
	_, g, err := s.store.LoadGame(r.Context(), slug)
	if err != nil {
		s.renderErr(w, err)
		return
	}
	rec := g.KifuRecord()
	rec.Tags = append(rec.Tags, &goshogi.Tag{Key: "Site", Value: slug})
	if err := Renderer.Text(w, http.StatusOK, rec.Text()); err != nil {
		log.Errorw("failed to render text", zap.Error(err))
	}
}

// LegalResponse lists the playable commands in kifu line form.
type LegalResponse struct {
	Direction goshogi.Direction `json:"direction"`
	Commands  []string          `json:"commands"`
}

// @Summary Legal moves
// @Description Lists the commands the seat on turn may play
// @Tags game
// @Produce json
// @Param slug path string true "Game slug identifier"
// @Success 200 {object} LegalResponse
// @Router /game/{slug}/legal [get]
func (s *Server) legalHandler(w http.ResponseWriter, r *http.Request) {
	slug := ugcPolicy.Sanitize(chi.URLParam(r, "slug"))
	_, g, err := s.store.LoadGame(r.Context(), slug)
	if err != nil {
		s.renderErr(w, err)
		return
	}

	resp := LegalResponse{Direction: g.Teban().Get(), Commands: []string{}}
	if g.IsPlaying() {
		for _, c := range g.LegalMoves() {
			resp.Commands = append(resp.Commands, goshogi.FormatCommand(c))
		}
	}
	s.render(w, http.StatusOK, resp)
}
