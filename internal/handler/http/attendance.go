package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paysheet-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/paysheet-hq/attendance-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	// Parse previews a parse without persisting anything
	Parse(w http.ResponseWriter, r *http.Request)

	// Import parses and persists the run
	Import(w http.ResponseWriter, r *http.Request)

	GetImport(w http.ResponseWriter, r *http.Request)
	ListImports(w http.ResponseWriter, r *http.Request)
	EmployeeHistory(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	parserService attendance.ParserService
}

func NewAttendanceHandler(parserService attendance.ParserService) AttendanceHandler {
	return &attendanceHandlerImpl{
		parserService: parserService,
	}
}

func (h *attendanceHandlerImpl) Parse(w http.ResponseWriter, r *http.Request) {
	var req attendance.ParseTextRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.parserService.ParseText(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	var req attendance.ParseTextRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.parserService.ImportText(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance imported successfully", result)
}

func (h *attendanceHandlerImpl) GetImport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.parserService.GetImport(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) EmployeeHistory(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	result, err := h.parserService.EmployeeHistory(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) ListImports(w http.ResponseWriter, r *http.Request) {
	result, err := h.parserService.ListImports(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: result.TotalCount})
}
