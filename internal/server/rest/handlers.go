package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/opsapi/internal/common"
)

func (a *API) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	user, err := a.users.CreateUser(ctx, req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorConflict):
			writeMessage(w, http.StatusConflict, "Username or email already exists")
		case errors.Is(err, common.ErrorValidation):
			writeMessage(w, http.StatusBadRequest, "Missing required fields")
		default:
			a.logger.Error(ctx, "registration failed", "request_id", RequestIDFromContext(ctx), "error", err)
			writeInternalError(w)
		}
		return
	}

	a.metrics.UsersRegisteredTotal.Inc()
	a.logger.Info(ctx, "user registered", "user_id", user.ID, "username", user.Username)

	_ = writeJSON(w, http.StatusCreated, registerResponse{
		Message: "User created successfully",
		UserID:  user.ID,
	})
}

func (a *API) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Username and password required")
		return
	}

	res, err := a.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			a.metrics.LoginsTotal.WithLabelValues("failure").Inc()
			writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		a.metrics.LoginsTotal.WithLabelValues("error").Inc()
		a.logger.Error(ctx, "login failed", "request_id", RequestIDFromContext(ctx), "error", err)
		writeInternalError(w)
		return
	}

	a.metrics.LoginsTotal.WithLabelValues("success").Inc()

	_ = writeJSON(w, http.StatusOK, loginResponse{
		Message: "Login successful",
		Token:   res.Token,
		User: userSummary{
			ID:       res.User.ID,
			Username: res.User.Username,
			Email:    res.User.Email,
			Role:     res.User.Role,
		},
	})
}

func (a *API) createOperation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := IdentityFromContext(ctx)

	var req createOperationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.opType() == "" {
		writeMessage(w, http.StatusBadRequest, "Operation type is required")
		return
	}

	opID, err := a.operations.Record(ctx, id.User.ID, req.opType(), req.payload())
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			writeMessage(w, http.StatusBadRequest, "Invalid operation payload")
			return
		}
		a.logger.Error(ctx, "operation create failed", "request_id", RequestIDFromContext(ctx), "error", err)
		writeInternalError(w)
		return
	}

	a.metrics.OperationsRecordedTotal.WithLabelValues(req.opType()).Inc()

	_ = writeJSON(w, http.StatusCreated, createOperationResponse{
		Message:     "Operation created successfully",
		OperationID: opID,
	})
}

func (a *API) listOperations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := IdentityFromContext(ctx)

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeMessage(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	ops, err := a.operations.ListForUser(ctx, id.User.ID, limit)
	if err != nil {
		a.logger.Error(ctx, "operation list failed", "request_id", RequestIDFromContext(ctx), "error", err)
		writeInternalError(w)
		return
	}

	dtos := toOperationDTOs(ops)
	_ = writeJSON(w, http.StatusOK, listOperationsResponse{Operations: dtos, Count: len(dtos)})
}

func (a *API) profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, _ := IdentityFromContext(ctx)

	stats, err := a.operations.Stats(ctx, id.User.ID)
	if err != nil {
		a.logger.Error(ctx, "profile stats failed", "request_id", RequestIDFromContext(ctx), "error", err)
		writeInternalError(w)
		return
	}

	u := id.User
	_ = writeJSON(w, http.StatusOK, profileResponse{
		UserInfo: userInfo{
			ID:          u.ID,
			Username:    u.Username,
			Email:       u.Email,
			Role:        u.Role,
			MemberSince: formatTime(u.CreatedAt),
		},
		Statistics: statistics{
			TotalOperations: stats.Total,
			RecentActivity:  stats.Recent,
		},
	})
}

func (a *API) status(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, statusResponse{
		Status:    "active",
		Timestamp: a.now().UTC().Format("2006-01-02T15:04:05.000000Z07:00"),
		Version:   Version,
		Message:   "API is running successfully",
	})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusNotFound, "Endpoint not found")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
}
