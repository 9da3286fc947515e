package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pfrederiksen/sp-probables/internal/calendar"
	"github.com/pfrederiksen/sp-probables/internal/filter"
	"github.com/pfrederiksen/sp-probables/internal/logger"
	"github.com/pfrederiksen/sp-probables/internal/scraper"
	"github.com/pfrederiksen/sp-probables/internal/tracker"
)

// Handler serves the web UI and API routes
type Handler struct {
	tracker       *tracker.Tracker
	maxWindowDays int
}

// NewHandler creates a Handler
func NewHandler(t *tracker.Tracker, maxWindowDays int) *Handler {
	return &Handler{
		tracker:       t,
		maxWindowDays: maxWindowDays,
	}
}

// pageData feeds templates/index.html
type pageData struct {
	Start       string
	End         string
	MaxEnd      string
	MaxDays     int
	Players     string
	Result      *tracker.Result
	Warning     string
	Error       string
	CalendarURL string
}

func (h *Handler) newPage(w filter.Window, players string) *pageData {
	today := h.tracker.Now()
	return &pageData{
		Start:   w.Start.Format(filter.DateLayout),
		End:     w.End.Format(filter.DateLayout),
		MaxEnd:  filter.MaxEnd(today, h.maxWindowDays).Format(filter.DateLayout),
		MaxDays: h.maxWindowDays,
		Players: players,
	}
}

// Form renders the empty search form
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	page := h.newPage(filter.DefaultWindow(h.tracker.Now()), "")
	h.render(w, http.StatusOK, page)
}

// Search runs the pipeline for the submitted form
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	players := r.PostForm.Get("players")
	window, err := filter.ParseWindow(r.PostForm.Get("start"), r.PostForm.Get("end"), h.tracker.Now(), h.maxWindowDays)
	if err != nil {
		page := h.newPage(filter.DefaultWindow(h.tracker.Now()), players)
		page.Error = "Error: " + err.Error()
		h.render(w, http.StatusBadRequest, page)
		return
	}

	page := h.newPage(window, players)

	result, err := h.tracker.FindStarts(r.Context(), tracker.Request{
		Players: filter.ParsePlayers(players),
		Window:  window,
	})
	if err != nil {
		page.Error = "Error " + fetchMessage(err)
		h.render(w, http.StatusOK, page)
		return
	}

	page.Result = result
	page.Warning = result.Warning
	page.CalendarURL = calendarURL(players)
	h.render(w, http.StatusOK, page)
}

// Starts returns the search result as JSON
func (h *Handler) Starts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	window, err := filter.ParseWindow(query.Get("start"), query.Get("end"), h.tracker.Now(), h.maxWindowDays)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date window", err)
		return
	}

	result, err := h.tracker.FindStarts(r.Context(), tracker.Request{
		Players: playersFromQuery(query),
		Window:  window,
	})
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to fetch probables grid", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Calendar returns the search result as an .ics download
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	result, err := h.tracker.FindStarts(r.Context(), tracker.Request{
		Players: playersFromQuery(r.URL.Query()),
		Window:  filter.DefaultWindow(h.tracker.Now()),
	})
	if err != nil {
		http.Error(w, fetchMessage(err), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="probable-starts.ics"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(calendar.GenerateICS(result.Starts, time.Now()))) // nolint:errcheck
}

// HealthCheck reports liveness
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Metrics returns the process metrics snapshot
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, logger.Snapshot())
}

func (h *Handler) render(w http.ResponseWriter, status int, page *pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, page); err != nil {
		logger.Error("Rendering page failed", nil, err)
	}
}

// playersFromQuery accepts newline-delimited "players" values and repeated "player" values
func playersFromQuery(query url.Values) filter.Players {
	players := filter.NewPlayers(query["player"]...)
	for _, list := range query["players"] {
		players.Merge(filter.ParsePlayers(list))
	}
	return players
}

func calendarURL(players string) string {
	if strings.TrimSpace(players) == "" {
		return "/starts.ics"
	}
	return "/starts.ics?" + url.Values{"players": {players}}.Encode()
}

// fetchMessage unwraps the fetch failure for display
func fetchMessage(err error) string {
	var fetchErr *scraper.FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Error()
	}
	return err.Error()
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data) // nolint:errcheck
}

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	respondJSON(w, status, response)
}
