package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/employeehub/payroll-backend-go/internal/domain/payroll"
	"github.com/employeehub/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	AddDeduction(w http.ResponseWriter, r *http.Request)
	ListDeductions(w http.ResponseWriter, r *http.Request)
	DeleteDeduction(w http.ResponseWriter, r *http.Request)
	CreditSalary(w http.ResponseWriter, r *http.Request)
	PayrollHistory(w http.ResponseWriter, r *http.Request)
	Projection(w http.ResponseWriter, r *http.Request)
	SendPayslip(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// AddDeduction implements PayrollHandler.
func (h *PayrollHandlerImpl) AddDeduction(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "employeeRef")

	var deductionReq payroll.AddDeductionRequest
	if err := json.NewDecoder(r.Body).Decode(&deductionReq); err != nil {
		slog.Error("Add deduction decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := deductionReq.Validate(); err != nil {
		slog.Error("Add deduction validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	deductionResp, err := h.payrollService.AddDeduction(r.Context(), ref, deductionReq)
	if err != nil {
		slog.Error("Add deduction service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Deduction added successfully", deductionResp)
}

// ListDeductions implements PayrollHandler.
func (h *PayrollHandlerImpl) ListDeductions(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "employeeRef")

	deductions, err := h.payrollService.ListDeductions(r.Context(), ref)
	if err != nil {
		slog.Error("List deductions service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, deductions)
}

// DeleteDeduction implements PayrollHandler.
func (h *PayrollHandlerImpl) DeleteDeduction(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "employeeRef")
	deductionID := chi.URLParam(r, "deductionID")

	if err := h.payrollService.DeleteDeduction(r.Context(), ref, deductionID); err != nil {
		slog.Error("Delete deduction service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Deduction deleted successfully", nil)
}

// CreditSalary implements PayrollHandler.
func (h *PayrollHandlerImpl) CreditSalary(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "employeeRef")

	var creditReq payroll.CreditSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&creditReq); err != nil {
		slog.Error("Credit salary decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := creditReq.Validate(); err != nil {
		slog.Error("Credit salary validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	recordResp, err := h.payrollService.CreditSalary(r.Context(), ref, creditReq)
	if err != nil {
		slog.Error("Credit salary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary credited successfully", recordResp)
}

// PayrollHistory implements PayrollHandler.
func (h *PayrollHandlerImpl) PayrollHistory(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "employeeRef")

	records, err := h.payrollService.GetPayrollHistory(r.Context(), ref)
	if err != nil {
		slog.Error("Payroll history service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// Projection implements PayrollHandler.
func (h *PayrollHandlerImpl) Projection(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "employeeRef")

	month, year, err := periodFromQuery(r)
	if err != nil {
		slog.Error("Projection period error", "error", err)
		response.HandleError(w, err)
		return
	}

	projection, err := h.payrollService.GetProjection(r.Context(), ref, month, year)
	if err != nil {
		slog.Error("Projection service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, projection)
}

// SendPayslip implements PayrollHandler.
func (h *PayrollHandlerImpl) SendPayslip(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "employeeRef")

	month, year, err := periodFromQuery(r)
	if err != nil {
		slog.Error("Send payslip period error", "error", err)
		response.HandleError(w, err)
		return
	}

	if err := h.payrollService.SendPayslip(r.Context(), ref, month, year); err != nil {
		slog.Error("Send payslip service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payslip sent successfully", nil)
}

func periodFromQuery(r *http.Request) (int, int, error) {
	query := r.URL.Query()
	month, _ := strconv.Atoi(query.Get("month"))
	year, _ := strconv.Atoi(query.Get("year"))
	if err := payroll.ValidatePeriod(month, year); err != nil {
		return 0, 0, err
	}
	return month, year, nil
}
