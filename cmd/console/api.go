package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/lexiquest/lexiquest/internal/engine"
	"github.com/lexiquest/lexiquest/pkg/game"
)

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

type startGameRequest struct {
	Genre        string `json:"genre"`
	Mode         string `json:"mode,omitempty"`
	SessionLimit int    `json:"session_limit,omitempty"`
}

func startGame(client *http.Client, baseURL string, genre, mode string) (*game.GameState, error) {
	body, err := postJSON(client, baseURL+"/v1/game/start", startGameRequest{
		Genre: genre,
		Mode:  mode,
	}, http.StatusCreated)
	if err != nil {
		return nil, err
	}

	var gs game.GameState
	if err := json.Unmarshal(body, &gs); err != nil {
		return nil, fmt.Errorf("failed to parse game state response: %w", err)
	}
	return &gs, nil
}

func getGame(client *http.Client, baseURL string, sessionID uuid.UUID) (*game.GameState, error) {
	resp, err := client.Get(fmt.Sprintf("%s/v1/game/%s", baseURL, sessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp.StatusCode, body)
	}

	var gs game.GameState
	if err := json.Unmarshal(body, &gs); err != nil {
		return nil, fmt.Errorf("failed to parse game state response: %w", err)
	}
	return &gs, nil
}

type choiceTurnRequest struct {
	SessionID string `json:"session_id"`
	SegmentID string `json:"segment_id"`
	ChoiceID  string `json:"choice_id"`
	Turn      int    `json:"turn"`
}

func sendChoice(client *http.Client, baseURL string, gs *game.GameState, choiceID string) (*engine.Result, error) {
	seg := gs.CurrentSegment()
	if seg == nil {
		return nil, fmt.Errorf("no current story segment")
	}
	body, err := postJSON(client, baseURL+"/v1/game/choice", choiceTurnRequest{
		SessionID: gs.SessionID.String(),
		SegmentID: seg.ID,
		ChoiceID:  choiceID,
		Turn:      gs.Turn,
	}, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return parseResult(body)
}

type freeTextTurnRequest struct {
	SessionID string `json:"session_id"`
	Input     string `json:"input"`
	Turn      int    `json:"turn"`
}

func sendFreeText(client *http.Client, baseURL string, gs *game.GameState, input string) (*engine.Result, error) {
	body, err := postJSON(client, baseURL+"/v1/game/freetext", freeTextTurnRequest{
		SessionID: gs.SessionID.String(),
		Input:     input,
		Turn:      gs.Turn,
	}, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return parseResult(body)
}

type challengeAnswerRequest struct {
	SessionID string `json:"session_id"`
	SegmentID string `json:"segment_id"`
	Answer    string `json:"answer"`
}

func sendChallengeAnswer(client *http.Client, baseURL string, gs *game.GameState, answer string) (*engine.Result, error) {
	seg := gs.CurrentSegment()
	if seg == nil {
		return nil, fmt.Errorf("no current story segment")
	}
	body, err := postJSON(client, baseURL+"/v1/game/challenge", challengeAnswerRequest{
		SessionID: gs.SessionID.String(),
		SegmentID: seg.ID,
		Answer:    answer,
	}, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return parseResult(body)
}

type backtrackTurnRequest struct {
	SessionID  string `json:"session_id"`
	TargetTurn int    `json:"target_turn"`
}

func sendBacktrack(client *http.Client, baseURL string, gs *game.GameState, targetTurn int) (*game.GameState, error) {
	body, err := postJSON(client, baseURL+"/v1/game/backtrack", backtrackTurnRequest{
		SessionID:  gs.SessionID.String(),
		TargetTurn: targetTurn,
	}, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var rewound game.GameState
	if err := json.Unmarshal(body, &rewound); err != nil {
		return nil, fmt.Errorf("failed to parse game state response: %w", err)
	}
	return &rewound, nil
}

type endGameRequest struct {
	SessionID string `json:"session_id"`
}

func endGame(client *http.Client, baseURL string, gs *game.GameState) (*game.GameState, error) {
	body, err := postJSON(client, baseURL+"/v1/game/end", endGameRequest{
		SessionID: gs.SessionID.String(),
	}, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var ended game.GameState
	if err := json.Unmarshal(body, &ended); err != nil {
		return nil, fmt.Errorf("failed to parse game state response: %w", err)
	}
	return &ended, nil
}

func postJSON(client *http.Client, url string, payload any, wantStatus int) ([]byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != wantStatus {
		return nil, apiError(resp.StatusCode, body)
	}
	return body, nil
}

func parseResult(body []byte) (*engine.Result, error) {
	var res engine.Result
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("failed to parse turn response: %w", err)
	}
	return &res, nil
}

func apiError(status int, body []byte) error {
	var errorResp ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil || errorResp.Error == "" {
		return fmt.Errorf("API returned status %d: %s", status, string(body))
	}
	return fmt.Errorf("%s", errorResp.Error)
}
