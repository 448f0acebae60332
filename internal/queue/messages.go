package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/spigell/career-matcher/internal/career"
)

const (
	KindJobs      = "jobs"
	KindResources = "resources"
	KindSkillGap  = "skill_gap"

	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

var validate = validator.New()

// Request asks for one kind of recommendation for a user.
type Request struct {
	ID              uuid.UUID              `json:"request_id"`
	UserID          uuid.UUID              `json:"user_id" validate:"required"`
	Kind            string                 `json:"kind" validate:"oneof=jobs resources skill_gap"`
	Role            string                 `json:"role,omitempty"`
	Limit           int                    `json:"limit,omitempty" validate:"gte=0"`
	MinScore        float64                `json:"min_score,omitempty" validate:"gte=0,lte=100"`
	ExperienceLevel career.ExperienceLevel `json:"experience_level,omitempty"`
	KeepApplied     bool                   `json:"keep_applied,omitempty"`
}

// Update is published for every state change of a request.
type Update struct {
	RequestID uuid.UUID `json:"request_id"`
	UserID    uuid.UUID `json:"user_id"`
	Kind      string    `json:"kind"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Payload   any       `json:"payload,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func decodeRequest(body []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("unmarshal request: %w", err)
	}
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	return &req, nil
}

func routingKey(userID uuid.UUID) string {
	return fmt.Sprintf("user.%s", userID)
}
