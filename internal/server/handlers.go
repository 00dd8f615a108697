package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/waypoint/pkg/errors"
)

// msgMissingParams is the exact error body clients rely on.
const msgMissingParams = "Missing from or to"

// APIHandlers exposes HTTP handlers for the graph API.
type APIHandlers struct {
	logger *log.Logger
	state  *State
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *log.Logger, state *State) *APIHandlers {
	return &APIHandlers{logger: logger, state: state}
}

func (h *APIHandlers) handleGraph(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.state.Graph())
}

func (h *APIHandlers) handleShortest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	if from == "" || to == "" {
		h.logger.Debug("rejected shortest-path query",
			"code", errors.ErrCodeMissingParam,
			"request_id", RequestIDFromContext(r.Context()))
		writeError(w, http.StatusBadRequest, msgMissingParams)
		return
	}

	res := h.state.Finder().Find(r.Context(), from, to)
	respondJSON(w, http.StatusOK, res)
}

type healthResponse struct {
	Status string `json:"status"`
	Nodes  int    `json:"nodes"`
	Edges  int    `json:"edges"`
	Error  string `json:"error,omitempty"`
}

// handleHealth always answers 200: a degraded server still serves the empty
// graph, so it stays in rotation while reporting why.
func (h *APIHandlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	g := h.state.Graph()
	resp := healthResponse{Status: "ok", Nodes: g.NodeCount(), Edges: g.EdgeCount()}
	if err := h.state.Degraded(); err != nil {
		resp.Status = "degraded"
		resp.Error = errors.UserMessage(err)
	}
	respondJSON(w, http.StatusOK, resp)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
