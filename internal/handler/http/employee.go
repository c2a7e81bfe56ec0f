package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/employeehub/payroll-backend-go/internal/domain/employee"
	"github.com/employeehub/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	SeedCodes(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	UpdateComposition(w http.ResponseWriter, r *http.Request)
	AddAllowance(w http.ResponseWriter, r *http.Request)
	DeleteAllowance(w http.ResponseWriter, r *http.Request)
	SalaryHistory(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService}
}

// List implements EmployeeHandler.
func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))
	filter := employee.Filter{
		Search: query.Get("search"),
		Page:   page,
		Limit:  limit,
	}

	listResp, err := h.employeeService.ListEmployees(r.Context(), filter)
	if err != nil {
		slog.Error("List employees service error", "error", err)
		response.HandleError(w, err)
		return
	}

	totalPages := int((listResp.TotalCount + int64(listResp.Limit) - 1) / int64(listResp.Limit))
	response.SuccessWithMeta(w, listResp.Data, &response.Meta{
		Page:       listResp.Page,
		Limit:      listResp.Limit,
		TotalItems: listResp.TotalCount,
		TotalPages: totalPages,
	})
}

// Stats implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.employeeService.GetStats(r.Context())
	if err != nil {
		slog.Error("Employee stats service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// Create implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq employee.CreateEmployeeRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create employee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := createReq.Validate(); err != nil {
		slog.Error("Create employee validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	employeeResp, err := h.employeeService.CreateEmployee(r.Context(), createReq)
	if err != nil {
		slog.Error("Create employee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", employeeResp)
}

// SeedCodes implements EmployeeHandler.
func (h *EmployeeHandlerImpl) SeedCodes(w http.ResponseWriter, r *http.Request) {
	seedResp, err := h.employeeService.SeedEmployeeCodes(r.Context())
	if err != nil {
		slog.Error("Seed employee codes service error", "error", err, "assigned", seedResp.Assigned)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee codes seeded successfully", seedResp)
}

// Get implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "employeeRef")

	employeeResp, err := h.employeeService.GetEmployee(r.Context(), ref)
	if err != nil {
		slog.Error("Get employee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, employeeResp)
}

// UpdateProfile implements EmployeeHandler.
func (h *EmployeeHandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "employeeRef")

	var updateReq employee.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update profile decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := updateReq.Validate(); err != nil {
		slog.Error("Update profile validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	employeeResp, err := h.employeeService.UpdateProfile(r.Context(), ref, updateReq)
	if err != nil {
		slog.Error("Update profile service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee profile updated successfully", employeeResp)
}

// UpdateComposition implements EmployeeHandler.
func (h *EmployeeHandlerImpl) UpdateComposition(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "employeeRef")

	var updateReq employee.UpdateCompositionRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update composition decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := updateReq.Validate(); err != nil {
		slog.Error("Update composition validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	employeeResp, err := h.employeeService.UpdateComposition(r.Context(), ref, updateReq)
	if err != nil {
		slog.Error("Update composition service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary composition updated successfully", employeeResp)
}

// AddAllowance implements EmployeeHandler.
func (h *EmployeeHandlerImpl) AddAllowance(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "employeeRef")

	var allowanceReq employee.AddAllowanceRequest
	if err := json.NewDecoder(r.Body).Decode(&allowanceReq); err != nil {
		slog.Error("Add allowance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := allowanceReq.Validate(); err != nil {
		slog.Error("Add allowance validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	employeeResp, err := h.employeeService.AddAllowance(r.Context(), ref, allowanceReq)
	if err != nil {
		slog.Error("Add allowance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Allowance added successfully", employeeResp)
}

// DeleteAllowance implements EmployeeHandler.
func (h *EmployeeHandlerImpl) DeleteAllowance(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "employeeRef")
	allowanceID := chi.URLParam(r, "allowanceID")

	employeeResp, err := h.employeeService.DeleteAllowance(r.Context(), ref, allowanceID)
	if err != nil {
		slog.Error("Delete allowance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Allowance deleted successfully", employeeResp)
}

// SalaryHistory implements EmployeeHandler.
func (h *EmployeeHandlerImpl) SalaryHistory(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "employeeRef")

	history, err := h.employeeService.GetSalaryHistory(r.Context(), ref)
	if err != nil {
		slog.Error("Salary history service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, history)
}

// Delete implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "employeeRef")

	if err := h.employeeService.DeleteEmployee(r.Context(), ref); err != nil {
		slog.Error("Delete employee service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}
