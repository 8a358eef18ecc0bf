package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/brainink/arena/internal/common"
	"github.com/brainink/arena/internal/model"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Orchestrator is the tournament flow coordinator the HTTP layer talks to.
type Orchestrator interface {
	CreateTournament(ctx context.Context, req *model.CreateTournamentRequest) (*model.CreateTournamentResponse, error)
	JoinTournament(ctx context.Context, id uint64) (*model.JoinResponse, error)
	SubmitScore(ctx context.Context, id, score, completionTimeMs uint64) (*model.SubmitScoreResponse, error)
	GetTournament(ctx context.Context, id uint64) (*model.Tournament, error)
	GetParticipant(ctx context.Context, id uint64, player string) (*model.Participant, error)
	AllTournamentsWithDetails(ctx context.Context) ([]model.Tournament, error)
	ActiveTournamentIDs(ctx context.Context) ([]uint64, error)
	IsUserInTournament(ctx context.Context, id uint64, player string) (bool, error)
}

// TournamentHandler serves the tournament endpoints.
type TournamentHandler struct {
	orch Orchestrator
	log  *zap.Logger
}

func NewTournamentHandler(orch Orchestrator, log *zap.Logger) *TournamentHandler {
	return &TournamentHandler{orch: orch, log: log}
}

// Create handles POST /tournaments
// @Summary      Create tournament
// @Description  Submits a creation transaction and returns the id from the confirmation receipt
// @Tags         tournaments
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreateTournamentRequest  true  "Tournament parameters"
// @Success      201      {object}  model.CreateTournamentResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      401      {object}  model.ErrorResponse
// @Router       /tournaments [post]
func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateTournamentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp, err := h.orch.CreateTournament(r.Context(), &req)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// List handles GET /tournaments
// @Summary      List tournaments
// @Description  Lists active tournaments with full details; unreachable entries are skipped
// @Tags         tournaments
// @Produce      json
// @Success      200  {array}  model.Tournament
// @Router       /tournaments [get]
func (h *TournamentHandler) List(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.orch.AllTournamentsWithDetails(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, tournaments)
}

// ActiveIDs handles GET /tournaments/active
// @Summary      List active tournament ids
// @Tags         tournaments
// @Produce      json
// @Success      200  {array}  integer
// @Router       /tournaments/active [get]
func (h *TournamentHandler) ActiveIDs(w http.ResponseWriter, r *http.Request) {
	ids, err := h.orch.ActiveTournamentIDs(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if ids == nil {
		ids = []uint64{}
	}
	writeJSON(w, http.StatusOK, ids)
}

// Get handles GET /tournaments/{id}
// @Summary      Get tournament
// @Tags         tournaments
// @Produce      json
// @Param        id   path      integer  true  "Tournament id"
// @Success      200  {object}  model.Tournament
// @Failure      404  {object}  model.ErrorResponse
// @Router       /tournaments/{id} [get]
func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, err := h.orch.GetTournament(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// Join handles POST /tournaments/{id}/join
// @Summary      Join tournament
// @Description  Approves the entry fee if the allowance falls short, then joins. An existing membership is reported, not failed.
// @Tags         tournaments
// @Produce      json
// @Param        id   path      integer  true  "Tournament id"
// @Success      200  {object}  model.JoinResponse
// @Failure      401  {object}  model.ErrorResponse
// @Failure      402  {object}  model.ErrorResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /tournaments/{id}/join [post]
func (h *TournamentHandler) Join(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	resp, err := h.orch.JoinTournament(r.Context(), id)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// SubmitScore handles POST /tournaments/{id}/score
// @Summary      Submit score
// @Description  Records the participant's score. One submission per participant; duplicates are rejected.
// @Tags         tournaments
// @Accept       json
// @Produce      json
// @Param        id       path      integer                  true  "Tournament id"
// @Param        request  body      model.SubmitScoreRequest true  "Score data"
// @Success      200      {object}  model.SubmitScoreResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /tournaments/{id}/score [post]
func (h *TournamentHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req model.SubmitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp, err := h.orch.SubmitScore(r.Context(), id, req.Score, req.CompletionTimeMs)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Participant handles GET /tournaments/{id}/participants/{address}
// @Summary      Get participant record
// @Tags         tournaments
// @Produce      json
// @Param        id       path      integer  true  "Tournament id"
// @Param        address  path      string   true  "Player address"
// @Success      200      {object}  model.Participant
// @Failure      400      {object}  model.ErrorResponse
// @Router       /tournaments/{id}/participants/{address} [get]
func (h *TournamentHandler) Participant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	addr, ok := pathAddress(w, r)
	if !ok {
		return
	}
	p, err := h.orch.GetParticipant(r.Context(), id, addr)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Membership handles GET /tournaments/{id}/membership/{address}
// @Summary      Check membership
// @Description  Reports whether the address has joined. Lookup failures are errors, never reported as non-membership.
// @Tags         tournaments
// @Produce      json
// @Param        id       path      integer  true  "Tournament id"
// @Param        address  path      string   true  "Player address"
// @Success      200      {object}  map[string]bool
// @Failure      502      {object}  model.ErrorResponse
// @Router       /tournaments/{id}/membership/{address} [get]
func (h *TournamentHandler) Membership(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	addr, ok := pathAddress(w, r)
	if !ok {
		return
	}
	joined, err := h.orch.IsUserInTournament(r.Context(), id, addr)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"joined": joined})
}

func pathID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid tournament id"))
		return 0, false
	}
	return id, true
}

func pathAddress(w http.ResponseWriter, r *http.Request) (string, bool) {
	addr, err := common.NormalizeAddress(mux.Vars(r)["address"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return "", false
	}
	return addr, true
}
