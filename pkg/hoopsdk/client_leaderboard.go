package hoopsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Leaderboard returns the top entries. limit <= 0 uses the server default.
func (c *Client) Leaderboard(ctx context.Context, cred Credential, limit int) (*LeaderboardResponse, error) {
	path := c.api("/leaderboard")
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, cred)
	if err != nil {
		return nil, err
	}

	var out LeaderboardResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitScore records a new leaderboard entry.
func (c *Client) SubmitScore(ctx context.Context, cred Credential, name string, score, maxCombo int64) (*Entry, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, c.api("/leaderboard"), SubmitScoreRequest{
		Name:     name,
		Score:    &score,
		MaxCombo: &maxCombo,
	}, cred)
	if err != nil {
		return nil, err
	}

	var out Entry
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetEntry(ctx context.Context, cred Credential, id string) (*Entry, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, c.api("/leaderboard/"+url.PathEscape(id)), nil, cred)
	if err != nil {
		return nil, err
	}

	var out Entry
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteEntry removes an entry. The server only accepts a session token here.
func (c *Client) DeleteEntry(ctx context.Context, cred Credential, id string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, c.api("/leaderboard/"+url.PathEscape(id)), nil, cred)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
