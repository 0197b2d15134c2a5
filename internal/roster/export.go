package roster

import (
	"fmt"
	"strings"

	"github.com/mercato-dev/roster-manager/backend/internal/domain"
)

// exportHeader is the external file contract; the parser's structural
// validator keys on the Fecha and Horario columns.
const exportHeader = "Fecha,Dia,Turno,Horario,Empleado,Posicion,Estado,TipoCobertura,SucursalCobertura,TurnoCobertura,Roster"

// exportRows flattens the schedule into the column layout of the
// external file contract, one row per shift that carries data (status
// other than empty).
func exportRows(schedule *domain.Schedule, employees []*domain.Employee) [][]string {
	byID := make(map[string]*domain.Employee, len(employees))
	for _, emp := range employees {
		byID[emp.ID] = emp
	}

	var rows [][]string
	for _, day := range schedule.Days {
		for _, shift := range day.Shifts {
			if shift.Status == domain.StatusEmpty {
				continue
			}

			// A dangling employee reference degrades to the raw id so
			// the row still says who it was meant for.
			name := shift.EmployeeID
			if emp, ok := byID[shift.EmployeeID]; ok {
				name = emp.FullName
			}

			var covType, covBranch, covShift string
			if shift.Coverage != nil {
				covType = string(shift.Coverage.Type)
				covBranch = shift.Coverage.Branch
				covShift = string(shift.Coverage.Shift)
			}

			rows = append(rows, []string{
				day.Date,
				day.DayName,
				WindowLabel(ClassifyWindow(shift.StartTime)),
				shift.StartTime + "-" + shift.EndTime,
				name,
				string(shift.Position),
				string(shift.Status),
				covType,
				covBranch,
				covShift,
				schedule.Name,
			})
		}
	}
	return rows
}

// ExportCSV writes the schedule as comma-delimited UTF-8 text. The
// output re-imports without loss through Parse + Reconciler for every
// non-empty shift.
func ExportCSV(schedule *domain.Schedule, employees []*domain.Employee) string {
	var b strings.Builder
	b.WriteString(exportHeader)
	b.WriteString("\n")

	for _, row := range exportRows(schedule, employees) {
		fields := make([]string, len(row))
		for i, f := range row {
			fields[i] = escapeField(f)
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteString("\n")
	}

	return b.String()
}

func escapeField(field string) string {
	if strings.ContainsAny(field, ",\"") {
		return `"` + strings.ReplaceAll(field, `"`, "") + `"`
	}
	return field
}

// FormatText renders the schedule for terminal output.
func FormatText(schedule *domain.Schedule, employees []*domain.Employee) string {
	byID := make(map[string]*domain.Employee, len(employees))
	for _, emp := range employees {
		byID[emp.ID] = emp
	}

	var b strings.Builder
	fmt.Fprintf(&b, "=== %s (%s a %s) ===\n\n", schedule.Name, schedule.StartDate, schedule.EndDate)

	for _, day := range schedule.Days {
		fmt.Fprintf(&b, "%s (%s)\n", day.Date, day.DayName)
		b.WriteString(strings.Repeat("-", 50))
		b.WriteString("\n")

		if len(day.Shifts) == 0 {
			b.WriteString("  Sin turnos programados\n\n")
			continue
		}

		for _, shift := range day.Shifts {
			name := "SIN ASIGNAR"
			if shift.EmployeeID != "" {
				name = shift.EmployeeID
				if emp, ok := byID[shift.EmployeeID]; ok {
					name = emp.FullName
				}
			}
			fmt.Fprintf(&b, "  %s-%s | %s | %s\n", shift.StartTime, shift.EndTime, shift.Status, name)
		}
		b.WriteString("\n")
	}

	return b.String()
}
