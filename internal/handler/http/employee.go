package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/veripay/payroll-backend-go/internal/domain/employee"
	"github.com/veripay/payroll-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	CreateDependents(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	organizationID, err := getOrganizationID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.employeeService.CreateEmployee(r.Context(), organizationID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created", result)
}

func (h *employeeHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	organizationID, err := getOrganizationID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if uuid.Validate(id) != nil {
		response.BadRequest(w, "Employee ID must be a valid UUID", nil)
		return
	}

	result, err := h.employeeService.GetEmployeeByID(r.Context(), organizationID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	organizationID, err := getOrganizationID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.employeeService.ListEmployees(r.Context(), organizationID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *employeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	organizationID, err := getOrganizationID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if uuid.Validate(id) != nil {
		response.BadRequest(w, "Employee ID must be a valid UUID", nil)
		return
	}

	if err := h.employeeService.DeleteEmployee(r.Context(), organizationID, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deleted", nil)
}

func (h *employeeHandlerImpl) CreateDependents(w http.ResponseWriter, r *http.Request) {
	organizationID, err := getOrganizationID(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	employeeID := chi.URLParam(r, "id")
	if uuid.Validate(employeeID) != nil {
		response.BadRequest(w, "Employee ID must be a valid UUID", nil)
		return
	}

	var reqs []employee.CreateDependentRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.employeeService.CreateDependents(r.Context(), organizationID, employeeID, reqs)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Dependents created", result)
}
