package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mercato-dev/roster-manager/backend/internal/config"
	"github.com/mercato-dev/roster-manager/backend/internal/repository"
	"github.com/mercato-dev/roster-manager/backend/internal/roster"
	"github.com/mercato-dev/roster-manager/backend/internal/seed"
	"github.com/mercato-dev/roster-manager/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var startDate string
	var rosterName string

	flag.IntVar(&op, "op", 0, "operación (1: usuarios aleatorios, 2: empleados aleatorios, 3: empleados reales, 4: roster de demostración)")
	flag.IntVar(&n, "n", 5, "cantidad de registros a insertar")
	flag.StringVar(&startDate, "start-date", "", "fecha de inicio del roster de demostración (YYYY-MM-DD)")
	flag.StringVar(&rosterName, "name", "Roster de demostración", "nombre del roster de demostración")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("no se pudo cargar la configuración", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("no se pudo crear el pool de conexiones", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not dial, so force a connection attempt here
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("no se pudo conectar a la base de datos", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no se especificó ninguna operación")
	case 1:
		if n <= 0 {
			slog.Error("la cantidad de usuarios debe ser positiva")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
			if err != nil {
				slog.Error("no se pudo generar el usuario", slog.String("error", err.Error()))
				continue
			}

			if err := repo.CreateUser(user); err != nil {
				slog.Error("no se pudo insertar el usuario", slog.String("error", err.Error()))
				continue
			}

			cnt++
		}

		slog.Info("usuarios insertados", slog.Int("count", cnt))
	case 2:
		if n <= 0 {
			slog.Error("la cantidad de empleados debe ser positiva")
			return
		}

		seed.SeedRandomEmployees(repo, n, cfg.Email.UserDomain)
	case 3:
		seed.SeedRealEmployees(repo)
	case 4:
		if startDate == "" {
			startDate = time.Now().Format("2006-01-02")
		}

		templates := roster.DefaultTemplates(roster.TimeConvention(cfg.Roster.TimeConvention))
		schedule, err := roster.NewGenerator().Generate(startDate, rosterName, templates)
		if err != nil {
			slog.Error("no se pudo generar el roster", slog.String("error", err.Error()))
			return
		}
		schedule.Branch = cfg.Roster.DefaultBranch
		schedule.Division = cfg.Roster.Division

		if err := repo.CreateSchedule(schedule); err != nil {
			slog.Error("no se pudo insertar el roster", slog.String("error", err.Error()))
			return
		}

		employees, err := repo.GetAllEmployees()
		if err != nil {
			slog.Error("no se pudieron obtener los empleados", slog.String("error", err.Error()))
			return
		}

		fmt.Println(roster.FormatText(schedule, employees))
		slog.Info("roster de demostración insertado", slog.String("id", schedule.ID), slog.String("start", schedule.StartDate))
	default:
		slog.Error("operación no reconocida")
	}
}
