package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/SahejChandok/Ask-My-HR-sub000/internal/domain/leave"
	"github.com/SahejChandok/Ask-My-HR-sub000/internal/handler/http/response"
	leaveservice "github.com/SahejChandok/Ask-My-HR-sub000/internal/service/leave"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	ListBalances(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService *leaveservice.Service
}

func NewLeaveHandler(leaveService *leaveservice.Service) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	tenantID, _, _, err := requestClaims(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := l.leaveService.CreateRequest(r.Context(), tenantID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request created", leave.ToRequestResponse(created))
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	_, userID, _, err := requestClaims(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	approved, err := l.leaveService.Approve(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", leave.ToRequestResponse(approved))
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	_, userID, _, err := requestClaims(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	rejected, err := l.leaveService.Reject(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected", leave.ToRequestResponse(rejected))
}

// ListBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) ListBalances(w http.ResponseWriter, r *http.Request) {
	_, _, _, err := requestClaims(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	balances, err := l.leaveService.ListBalances(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result := make([]leave.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		result = append(result, leave.ToBalanceResponse(b))
	}
	response.Success(w, result)
}
