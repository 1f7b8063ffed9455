package rest

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/opsapi/internal/server/models"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type loginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    userSummary `json:"user"`
}

// createOperationRequest accepts both type/payload and
// operation_type/data; the former wins when both are set.
type createOperationRequest struct {
	Type          string          `json:"type"`
	OperationType string          `json:"operation_type"`
	Payload       json.RawMessage `json:"payload"`
	Data          json.RawMessage `json:"data"`
}

func (r *createOperationRequest) opType() string {
	if r.Type != "" {
		return r.Type
	}
	return r.OperationType
}

// payload returns the first of payload/data that is present and not null.
func (r *createOperationRequest) payload() any {
	for _, raw := range []json.RawMessage{r.Payload, r.Data} {
		v := bytes.TrimSpace(raw)
		if len(v) > 0 && !bytes.Equal(v, []byte("null")) {
			return raw
		}
	}
	return nil
}

type createOperationResponse struct {
	Message     string `json:"message"`
	OperationID int64  `json:"operation_id"`
}

type operationDTO struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Type      string `json:"operation_type"`
	Data      string `json:"data"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type listOperationsResponse struct {
	Operations []operationDTO `json:"operations"`
	Count      int            `json:"count"`
}

type userInfo struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	MemberSince string `json:"member_since"`
}

type statistics struct {
	TotalOperations int64 `json:"total_operations"`
	RecentActivity  int64 `json:"recent_activity"`
}

type profileResponse struct {
	UserInfo   userInfo   `json:"user_info"`
	Statistics statistics `json:"statistics"`
}

type statusResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Message   string `json:"message"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func toOperationDTOs(ops []*models.Operation) []operationDTO {
	out := make([]operationDTO, 0, len(ops))
	for _, op := range ops {
		out = append(out, operationDTO{
			ID:        op.ID,
			UserID:    op.UserID,
			Type:      op.Type,
			Data:      op.Data,
			Status:    op.Status,
			CreatedAt: formatTime(op.CreatedAt),
		})
	}
	return out
}
