package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-journal-be/internal/apperrors"
)

// Reply is the validated payload of a successful agent call.
type Reply struct {
	Response          string
	FollowUpQuestions []string
	Insights          string
	MoodDetected      string
}

// Gateway sends a user utterance to the remote conversational agent. Any
// non-success status, malformed payload or transport failure surfaces as a
// single uniform GatewayError; callers never distinguish the cause.
type Gateway interface {
	Send(ctx context.Context, utterance string, agentId string) (*Reply, error)
}

type callRequest struct {
	Message string `json:"message"`
	AgentId string `json:"agent_id"`
}

type callEnvelope struct {
	Status string `json:"status"`
	Result *struct {
		Response          string   `json:"response"`
		FollowUpQuestions []string `json:"follow_up_questions"`
		Insights          string   `json:"insights"`
		MoodDetected      string   `json:"mood_detected"`
	} `json:"result"`
	Metadata *struct {
		AgentName string `json:"agent_name"`
		Timestamp string `json:"timestamp"`
	} `json:"metadata"`
}

type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

// NewHTTPGateway creates a gateway against the agent platform base URL.
// The timeout is the only cancellation mechanism for an in-flight call.
func NewHTTPGateway(baseURL string, timeout time.Duration) *HTTPGateway {
	return &HTTPGateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (g *HTTPGateway) Send(ctx context.Context, utterance string, agentId string) (*Reply, error) {
	payload, err := json.Marshal(callRequest{
		Message: utterance,
		AgentId: agentId,
	})
	if err != nil {
		return nil, apperrors.NewGatewayError("agent", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		g.baseURL+"/api/v1/agents/call",
		bytes.NewBuffer(payload),
	)
	if err != nil {
		return nil, apperrors.NewGatewayError("agent", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := g.client.Do(req)
	if err != nil {
		return nil, apperrors.NewGatewayError("agent", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, apperrors.NewGatewayError("agent", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, apperrors.NewGatewayError("agent", fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		))
	}

	var envelope callEnvelope
	if err := json.Unmarshal(resBody, &envelope); err != nil {
		return nil, apperrors.NewGatewayError("agent", err)
	}

	// status != "success" or a missing result is a semantic failure and is
	// treated exactly like a transport failure.
	if envelope.Status != "success" || envelope.Result == nil {
		return nil, apperrors.NewGatewayError("agent", fmt.Errorf(
			"invalid response format, status %q", envelope.Status,
		))
	}

	return &Reply{
		Response:          envelope.Result.Response,
		FollowUpQuestions: envelope.Result.FollowUpQuestions,
		Insights:          envelope.Result.Insights,
		MoodDetected:      envelope.Result.MoodDetected,
	}, nil
}
