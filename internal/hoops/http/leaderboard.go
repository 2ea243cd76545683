package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/hoops/internal/hoops/domain"
	"github.com/aussiebroadwan/hoops/internal/hoops/service"
	"github.com/aussiebroadwan/hoops/pkg/hoopsdk"
	"github.com/aussiebroadwan/hoops/pkg/httpx"
	"github.com/aussiebroadwan/hoops/pkg/slogx"
)

type LeaderboardHandler struct {
	LeaderboardService *service.LeaderboardService
}

// HandleList godoc
//
//	@Summary		Top scores
//	@Description	Returns the best entries ordered by score, earliest first on ties.
//	@Tags			Leaderboard
//	@Security		StaticToken
//	@Security		BearerAuth
//	@Produce		json
//	@Param			limit	query		int									false	"maximum entries (1-100)"	default(10)
//	@Success		200		{object}	hoopsdk.LeaderboardResponse			"entries, total"
//	@Failure		400		{object}	hoopsdk.ValidationErrorResponse		"limit out of range"
//	@Failure		401		{object}	hoopsdk.ErrorResponse				"missing or invalid credential"
//	@Failure		500		{object}	hoopsdk.ErrorResponse				"internal server error"
//	@Router			/api/leaderboard [get].
func (h *LeaderboardHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			hoopsdk.WriteValidationError(w, map[string]string{"limit": "must be an integer"})
			return
		}
		if n == 0 {
			// Zero would otherwise select the default.
			n = -1
		}
		limit = n
	}

	entries, err := h.LeaderboardService.Top(ctx, limit)
	if err != nil {
		h.writeError(w, log, err)
		return
	}

	resp := hoopsdk.LeaderboardResponse{Entries: make([]hoopsdk.Entry, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, toEntry(e))
	}
	resp.Total = len(resp.Entries)
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleSubmit godoc
//
//	@Summary		Submit a score
//	@Description	Records a new leaderboard entry. The server assigns the id and timestamp.
//	@Tags			Leaderboard
//	@Security		StaticToken
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		hoopsdk.SubmitScoreRequest		true	"name, score, maxCombo"
//	@Success		201		{object}	hoopsdk.Entry					"created entry"
//	@Failure		400		{object}	hoopsdk.ValidationErrorResponse	"invalid fields"
//	@Failure		401		{object}	hoopsdk.ErrorResponse			"missing or invalid credential"
//	@Failure		500		{object}	hoopsdk.ErrorResponse			"internal server error"
//	@Router			/api/leaderboard [post].
func (h *LeaderboardHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req hoopsdk.SubmitScoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		hoopsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if errs := req.Validate(); errs != nil {
		hoopsdk.WriteValidationError(w, errs)
		return
	}

	e, err := h.LeaderboardService.Submit(ctx, service.SubmitScore{
		Name:     req.Name,
		Score:    *req.Score,
		MaxCombo: *req.MaxCombo,
	})
	if err != nil {
		h.writeError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toEntry(e))
}

// HandleGet godoc
//
//	@Summary		Get one entry
//	@Tags			Leaderboard
//	@Security		StaticToken
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string					true	"entry id"
//	@Success		200	{object}	hoopsdk.Entry			"entry"
//	@Failure		401	{object}	hoopsdk.ErrorResponse	"missing or invalid credential"
//	@Failure		404	{object}	hoopsdk.ErrorResponse	"entry not found"
//	@Router			/api/leaderboard/{id} [get].
func (h *LeaderboardHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e, err := h.LeaderboardService.Get(ctx, r.PathValue("id"))
	if err != nil {
		h.writeError(w, slogx.FromContext(ctx), err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toEntry(e))
}

// HandleDelete godoc
//
//	@Summary		Delete an entry
//	@Description	Removes an entry. Only accepts a session token.
//	@Tags			Leaderboard
//	@Security		BearerAuth
//	@Param			id	path	string	true	"entry id"
//	@Success		204	"deleted"
//	@Failure		401	{object}	hoopsdk.ErrorResponse	"missing or invalid session token"
//	@Failure		404	{object}	hoopsdk.ErrorResponse	"entry not found"
//	@Router			/api/leaderboard/{id} [delete].
func (h *LeaderboardHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.LeaderboardService.Delete(ctx, r.PathValue("id")); err != nil {
		h.writeError(w, slogx.FromContext(ctx), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LeaderboardHandler) writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		hoopsdk.WriteValidationError(w, verr.Fields)
	case errors.Is(err, service.ErrEntryNotFound):
		hoopsdk.NewAPIError(http.StatusNotFound, hoopsdk.ErrorCodeNotFound, "entry not found").WriteError(w)
	default:
		log.Error("leaderboard request failed", "err", err)
		hoopsdk.ErrServerError.WriteError(w)
	}
}

func toEntry(e domain.Entry) hoopsdk.Entry {
	return hoopsdk.Entry{
		ID:        e.ID,
		Name:      e.Name,
		Score:     e.Score,
		MaxCombo:  e.MaxCombo,
		Timestamp: e.Timestamp,
	}
}
