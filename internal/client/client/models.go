package client

import "encoding/json"

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type Operation struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Type      string `json:"operation_type"`
	Data      string `json:"data"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type Profile struct {
	UserInfo struct {
		User
		MemberSince string `json:"member_since"`
	} `json:"user_info"`
	Statistics struct {
		TotalOperations int64 `json:"total_operations"`
		RecentActivity  int64 `json:"recent_activity"`
	} `json:"statistics"`
}

type Status struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Message   string `json:"message"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	UserID int64 `json:"user_id"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type createOperationRequest struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type createOperationResponse struct {
	OperationID int64 `json:"operation_id"`
}

type listOperationsResponse struct {
	Operations []Operation `json:"operations"`
	Count      int         `json:"count"`
}

type errorResponse struct {
	Message string `json:"message"`
	Reason  string `json:"reason"`
}
