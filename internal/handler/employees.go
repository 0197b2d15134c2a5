package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/mercato-dev/roster-manager/backend/internal/domain"
)

// defaultAvailableDays mirrors the historical default: weekdays only.
var defaultAvailableDays = []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes"}

func (h *Handler) GetAllEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.repository.GetAllEmployees()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "lista de empleados obtenida", employees)
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName      string   `json:"fullName" validate:"required"`
		Department    string   `json:"department"`
		Email         string   `json:"email" validate:"omitempty,email"`
		Phone         string   `json:"phone"`
		AvailableDays []string `json:"availableDays" validate:"omitempty,dive,oneof=Lunes Martes Miércoles Jueves Viernes Sábado Domingo"`
		ShiftWindow   string   `json:"shiftWindow" validate:"omitempty,oneof=morning afternoon night"`
		Branch        string   `json:"branch" validate:"omitempty,oneof=001 002 003"`
		Division      string   `json:"division"`
		MaxHoursWeek  int32    `json:"maxHoursPerWeek" validate:"omitempty,min=1,max=80"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if len(req.AvailableDays) == 0 {
		req.AvailableDays = defaultAvailableDays
	}
	if req.MaxHoursWeek == 0 {
		req.MaxHoursWeek = 40
	}

	employee := &domain.Employee{
		ID:            uuid.NewString(),
		FullName:      req.FullName,
		Department:    req.Department,
		Email:         req.Email,
		Phone:         req.Phone,
		AvailableDays: req.AvailableDays,
		ShiftWindow:   domain.Window(req.ShiftWindow),
		Branch:        req.Branch,
		Division:      req.Division,
		MaxHoursWeek:  req.MaxHoursWeek,
	}

	if err := h.repository.CreateEmployee(employee); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "empleado creado", employee)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)
	h.successResponse(w, r, "empleado obtenido", employee)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)

	// identity is immutable; everything else may change
	var req struct {
		FullName      *string   `json:"fullName"`
		Department    *string   `json:"department"`
		Email         *string   `json:"email" validate:"omitempty,email"`
		Phone         *string   `json:"phone"`
		AvailableDays *[]string `json:"availableDays" validate:"omitempty,dive,oneof=Lunes Martes Miércoles Jueves Viernes Sábado Domingo"`
		ShiftWindow   *string   `json:"shiftWindow" validate:"omitempty,oneof=morning afternoon night"`
		Branch        *string   `json:"branch" validate:"omitempty,oneof=001 002 003"`
		Division      *string   `json:"division"`
		MaxHoursWeek  *int32    `json:"maxHoursPerWeek" validate:"omitempty,min=1,max=80"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.FullName != nil {
		employee.FullName = *req.FullName
	}
	if req.Department != nil {
		employee.Department = *req.Department
	}
	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}
	if req.AvailableDays != nil {
		employee.AvailableDays = *req.AvailableDays
	}
	if req.ShiftWindow != nil {
		employee.ShiftWindow = domain.Window(*req.ShiftWindow)
	}
	if req.Branch != nil {
		employee.Branch = *req.Branch
	}
	if req.Division != nil {
		employee.Division = *req.Division
	}
	if req.MaxHoursWeek != nil {
		employee.MaxHoursWeek = *req.MaxHoursWeek
	}

	if err := h.repository.UpdateEmployee(employee); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "el empleado fue modificado por otra sesión, inténtelo de nuevo")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "empleado actualizado", employee)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	employee := r.Context().Value(EmployeeCtx).(*domain.Employee)

	if err := h.repository.DeleteEmployee(employee.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "empleado eliminado", nil)
}
