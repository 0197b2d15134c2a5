package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/mercato-dev/roster-manager/backend/internal/domain"
	"github.com/mercato-dev/roster-manager/backend/internal/roster"
)

const scheduleSnapshotKey = "schedules_snapshot"

func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartDate  string                 `json:"startDate" validate:"required"`
		Name       string                 `json:"name" validate:"required"`
		Branch     string                 `json:"branch" validate:"omitempty,oneof=001 002 003"`
		Division   string                 `json:"division"`
		Convention string                 `json:"convention" validate:"omitempty,oneof=07:00 06:00"`
		Templates  []domain.ShiftTemplate `json:"templates" validate:"omitempty,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// explicit templates win over a convention, which wins over the
	// branch default
	templates := req.Templates
	if len(templates) == 0 {
		if req.Convention != "" {
			templates = roster.DefaultTemplates(roster.TimeConvention(req.Convention))
		} else {
			templates = h.canonicalTemplate
		}
	}

	schedule, err := h.generator.Generate(req.StartDate, req.Name, templates)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	schedule.Branch = req.Branch
	if schedule.Branch == "" {
		schedule.Branch = h.config.Roster.DefaultBranch
	}
	schedule.Division = req.Division
	if schedule.Division == "" {
		schedule.Division = h.config.Roster.Division
	}

	if err := h.repository.CreateSchedule(schedule); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidateScheduleSnapshot()
	h.notifyRosterUpdated(r, schedule)

	h.successResponse(w, r, "roster generado", schedule)
}

func (h *Handler) GetDefaultTemplates(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "plantilla canónica obtenida", h.canonicalTemplate)
}

// GetAllSchedules serves the header snapshot from redis when fresh;
// any mutation elsewhere drops the key.
func (h *Handler) GetAllSchedules(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	if cached, err := h.redisClient.Get(ctx, scheduleSnapshotKey).Result(); err == nil {
		var schedules []*domain.Schedule
		if err := json.Unmarshal([]byte(cached), &schedules); err == nil {
			h.successResponse(w, r, "lista de rosters obtenida", schedules)
			return
		}
	} else if !errors.Is(err, redis.Nil) {
		h.logInternalServerError(r, err)
	}

	schedules, err := h.repository.GetAllSchedules()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if body, err := json.Marshal(schedules); err == nil {
		ttl := time.Duration(h.config.Redis.ScheduleCacheTTL) * time.Second
		if err := h.redisClient.Set(ctx, scheduleSnapshotKey, body, ttl).Err(); err != nil {
			h.logInternalServerError(r, err)
		}
	}

	h.successResponse(w, r, "lista de rosters obtenida", schedules)
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)
	h.successResponse(w, r, "roster obtenido", schedule)
}

func (h *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	var req struct {
		Name     *string `json:"name"`
		Branch   *string `json:"branch" validate:"omitempty,oneof=001 002 003"`
		Division *string `json:"division"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		schedule.Name = *req.Name
	}
	if req.Branch != nil {
		schedule.Branch = *req.Branch
	}
	if req.Division != nil {
		schedule.Division = *req.Division
	}
	schedule.UpdatedAt = time.Now()

	if err := h.repository.UpdateScheduleMeta(schedule); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "el roster fue modificado por otra sesión, inténtelo de nuevo")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.invalidateScheduleSnapshot()
	h.notifyRosterUpdated(r, schedule)

	h.successResponse(w, r, "roster actualizado", schedule)
}

func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	if err := h.repository.DeleteSchedule(schedule.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.invalidateScheduleSnapshot()

	h.successResponse(w, r, "roster eliminado", nil)
}

func (h *Handler) ToggleShift(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	var req struct {
		EmployeeID string `json:"employeeId" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift := schedule.FindShift(chi.URLParam(r, "shiftID"))
	if shift == nil {
		h.errorResponse(w, r, "el turno no existe en este roster")
		return
	}

	roster.Toggle(shift, req.EmployeeID)
	schedule.UpdatedAt = time.Now()

	if err := h.saveShifts(w, r, schedule); err != nil {
		return
	}

	h.successResponse(w, r, "turno actualizado", shift)
}

func (h *Handler) AssignShiftCoverage(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	var req struct {
		EmployeeID string `json:"employeeId" validate:"required"`
		Type       string `json:"type" validate:"required,oneof=shift branch"`
		Branch     string `json:"branch" validate:"omitempty,oneof=001 002 003"`
		Shift      string `json:"shift" validate:"omitempty,oneof=morning afternoon night"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// coverage field validation is the caller's duty, and here the
	// handler is that caller
	switch domain.CoverageType(req.Type) {
	case domain.CoverageShift:
		if req.Shift == "" {
			h.errorResponse(w, r, "la cobertura de turno requiere el turno destino")
			return
		}
	case domain.CoverageBranch:
		if req.Branch == "" {
			h.errorResponse(w, r, "la cobertura de sucursal requiere la sucursal destino")
			return
		}
	}

	shift := schedule.FindShift(chi.URLParam(r, "shiftID"))
	if shift == nil {
		h.errorResponse(w, r, "el turno no existe en este roster")
		return
	}

	roster.AssignCoverage(shift, req.EmployeeID, domain.CoverageInfo{
		Type:   domain.CoverageType(req.Type),
		Branch: req.Branch,
		Shift:  domain.Window(req.Shift),
	})
	schedule.UpdatedAt = time.Now()

	if err := h.saveShifts(w, r, schedule); err != nil {
		return
	}

	h.successResponse(w, r, "cobertura asignada", shift)
}

func (h *Handler) ImportSchedule(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	var req struct {
		Content string `json:"content" validate:"required"`
		Verbose bool   `json:"verbose"`
	}

	// Accept {content,verbose} or the file pasted as the raw body.
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if err := json.Unmarshal(body, &req); err != nil {
		req.Content = string(body)
		req.Verbose = false
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	parser := h.parser
	if req.Verbose {
		parser = roster.NewParser(true)
	}

	result, err := parser.Parse(req.Content)
	if err != nil {
		// only ErrEmptyInput reaches here; it is a user problem, not ours
		h.errorResponse(w, r, err.Error())
		return
	}

	employees, err := h.repository.GetAllEmployees()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	report := roster.NewReconciler(schedule, employees, nil).Apply(result.Rows)

	if report.Applied > 0 {
		if err := h.saveShifts(w, r, schedule); err != nil {
			return
		}
	}

	diagnostics := append(append([]string{}, result.Errors...), report.Errors...)
	message := domain.NotificationMessage{
		Type: "import_completed",
		To:   h.config.Email.ManagerAddress,
		Data: domain.ImportCompletedData{
			ScheduleName: schedule.Name,
			Applied:      report.Applied,
			Skipped:      len(result.Rows) - report.Applied,
			Diagnostics:  diagnostics,
		},
	}
	if err := h.publishNotification(message); err != nil {
		h.logInternalServerError(r, err)
	}

	h.successResponse(w, r, "importación finalizada", map[string]any{
		"applied":           report.Applied,
		"parseErrors":       result.Errors,
		"reconcileErrors":   report.Errors,
		"notFoundEmployees": report.NotFoundEmployees,
		"dates":             result.Dates,
	})
}

func (h *Handler) ValidateImport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	valid, errMsg := roster.ValidateStructure(req.Content)
	h.successResponse(w, r, "validación finalizada", map[string]any{
		"valid": valid,
		"error": errMsg,
	})
}

func (h *Handler) ExportScheduleCSV(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	employees, err := h.repository.GetAllEmployees()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	body := roster.ExportCSV(schedule, employees)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", schedule.Name+".csv"))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		h.logInternalServerError(r, err)
	}
}

func (h *Handler) ExportScheduleXLSX(w http.ResponseWriter, r *http.Request) {
	schedule := r.Context().Value(ScheduleCtx).(*domain.Schedule)

	employees, err := h.repository.GetAllEmployees()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	buf, err := roster.ExportXLSX(schedule, employees)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", schedule.Name+".xlsx"))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logInternalServerError(r, err)
	}
}

// saveShifts persists the mutated schedule, handling the optimistic
// lock and side effects; on error the response is already written and
// the caller just returns.
func (h *Handler) saveShifts(w http.ResponseWriter, r *http.Request, schedule *domain.Schedule) error {
	if err := h.repository.SaveScheduleShifts(schedule); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "el roster fue modificado por otra sesión, inténtelo de nuevo")
		default:
			h.internalServerError(w, r, err)
		}
		return err
	}

	h.invalidateScheduleSnapshot()
	h.notifyRosterUpdated(r, schedule)

	return nil
}

func (h *Handler) invalidateScheduleSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	if err := h.redisClient.Del(ctx, scheduleSnapshotKey).Err(); err != nil {
		slog.Error("no se pudo invalidar la caché de rosters", "error", err)
	}
}

func (h *Handler) notifyRosterUpdated(r *http.Request, schedule *domain.Schedule) {
	updatedBy, _ := r.Context().Value(SubCtxKey).(string)

	message := domain.NotificationMessage{
		Type: "roster_updated",
		To:   h.config.Email.ManagerAddress,
		Data: domain.RosterUpdatedData{
			ScheduleID:   schedule.ID,
			ScheduleName: schedule.Name,
			Branch:       schedule.Branch,
			UpdatedBy:    updatedBy,
		},
	}

	if err := h.publishNotification(message); err != nil {
		h.logInternalServerError(r, err)
	}
}
