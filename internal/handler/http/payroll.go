package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/veripay/payroll-backend-go/internal/domain/payroll"
	"github.com/veripay/payroll-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	InitPayrollByYear(w http.ResponseWriter, r *http.Request)
	CreatePeriod(w http.ResponseWriter, r *http.Request)
	CreateRecords(w http.ResponseWriter, r *http.Request)
	GetRecord(w http.ResponseWriter, r *http.Request)
	UpdateTimesheets(w http.ResponseWriter, r *http.Request)
	CloseRecords(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func (h *payrollHandlerImpl) InitPayrollByYear(w http.ResponseWriter, r *http.Request) {
	organizationID, err := getOrganizationID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req payroll.InitPayrollByYearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.InitPayrollByYear(r.Context(), organizationID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll year initialized", result)
}

func (h *payrollHandlerImpl) CreatePeriod(w http.ResponseWriter, r *http.Request) {
	organizationID, err := getOrganizationID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req payroll.CreatePayrollPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreatePayrollPeriod(r.Context(), organizationID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll period created", result)
}

func (h *payrollHandlerImpl) CreateRecords(w http.ResponseWriter, r *http.Request) {
	organizationID, err := getOrganizationID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req payroll.CreatePayrollRecordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreatePayrollRecords(r.Context(), organizationID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll records created", result)
}

func (h *payrollHandlerImpl) GetRecord(w http.ResponseWriter, r *http.Request) {
	organizationID, err := getOrganizationID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if uuid.Validate(id) != nil {
		response.BadRequest(w, "Record ID must be a valid UUID", nil)
		return
	}

	result, err := h.payrollService.GetPayrollRecordByID(r.Context(), organizationID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) UpdateTimesheets(w http.ResponseWriter, r *http.Request) {
	organizationID, err := getOrganizationID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req payroll.UpdateTimesheetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.payrollService.UpdateTimesheets(r.Context(), organizationID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheets updated", nil)
}

func (h *payrollHandlerImpl) CloseRecords(w http.ResponseWriter, r *http.Request) {
	organizationID, err := getOrganizationID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req payroll.ClosePayrollRecordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.payrollService.ClosePayrollRecords(r.Context(), organizationID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll records closed", nil)
}
