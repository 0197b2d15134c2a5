package seed

import (
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/mercato-dev/roster-manager/backend/internal/domain"
	"github.com/mercato-dev/roster-manager/backend/internal/repository"
	"github.com/mercato-dev/roster-manager/backend/internal/utils"
)

// SeedRealEmployees loads the staff roster from the checked-in CSV and
// inserts every row as an employee. The file uses the columns
// nombre,departamento,email,telefono,dias,ventana,sucursal,posicion
// where dias is a semicolon separated list of day names.
func SeedRealEmployees(r *repository.Repository) {
	file, err := os.Open("./internal/seed/data/empleados.csv")
	if err != nil {
		slog.Error("no se pudo abrir el archivo de empleados", "error", err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)

	headers, err := reader.Read()
	if err != nil {
		slog.Error("no se pudo leer la cabecera", "error", err)
		return
	}

	col := map[string]int{}
	for i, header := range headers {
		col[strings.TrimSpace(strings.ToLower(header))] = i
	}
	for _, required := range []string{"nombre", "email", "sucursal"} {
		if _, ok := col[required]; !ok {
			slog.Error("falta una columna obligatoria", "column", required)
			return
		}
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	cnt := 0
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			slog.Error("no se pudo leer la fila", "error", err)
			return
		}

		availableDays := []string{}
		for _, day := range strings.Split(field(record, "dias"), ";") {
			day = strings.TrimSpace(day)
			if day != "" {
				availableDays = append(availableDays, day)
			}
		}

		employee := &domain.Employee{
			ID:            uuid.NewString(),
			FullName:      field(record, "nombre"),
			Department:    field(record, "departamento"),
			Email:         field(record, "email"),
			Phone:         field(record, "telefono"),
			AvailableDays: availableDays,
			ShiftWindow:   domain.Window(field(record, "ventana")),
			Branch:        field(record, "sucursal"),
			Division:      "retail",
			MaxHoursWeek:  40,
		}
		if employee.Department == "" {
			employee.Department = "ventas"
		}

		if err := r.CreateEmployee(employee); err != nil {
			slog.Error("no se pudo insertar el empleado", "name", employee.FullName, "error", err)
			continue
		}

		cnt++
	}

	slog.Info("empleados reales insertados", slog.Int("count", cnt))
}

// SeedRandomEmployees inserts n generated employees.
func SeedRandomEmployees(r *repository.Repository, n int, emailDomain string) {
	cnt := 0
	for i := 0; i < n; i++ {
		employee := utils.GenerateRandomEmployee(emailDomain)
		if err := r.CreateEmployee(employee); err != nil {
			slog.Error("no se pudo insertar el empleado", "error", err)
			continue
		}
		cnt++
	}

	slog.Info("empleados aleatorios insertados", slog.Int("count", cnt))
}
