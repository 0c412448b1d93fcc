package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/ucin-dev/workload-tracker/backend/internal/config"
	"github.com/ucin-dev/workload-tracker/backend/internal/domain"
	"github.com/ucin-dev/workload-tracker/backend/internal/repository"
	"github.com/ucin-dev/workload-tracker/backend/internal/seed"
	"github.com/ucin-dev/workload-tracker/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "operation to run (1: insert random staff, 2: insert random patients, 3: seed demo dataset)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("unable to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open does not dial, ping to fail fast on a bad DSN
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("unable to reach database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		if n <= 0 {
			slog.Error("staff count must be positive")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				member, err := utils.GenerateRandomStaffMember(cfg.Seed.Staff.Password, "ucin.cl")
				if err != nil {
					slog.Error("unable to generate staff member", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateStaffMember(member); err != nil {
					slog.Error("unable to insert staff member", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("staff members inserted", slog.Int("count", n-cnt))
		}
	case 2:
		if n <= 0 {
			slog.Error("patient count must be positive")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				patient := &domain.Patient{
					Reference: utils.GenerateRandomPatientReference(),
					FullName:  utils.GenerateRandomFullName(),
					IsActive:  true,
				}
				if err := repo.CreatePatient(patient); err != nil {
					slog.Error("unable to insert patient", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("patients inserted", slog.Int("count", n-cnt))
		}
	case 3:
		seed.SeedDemoData(cfg, repo)
	default:
		slog.Error("unknown operation")
	}
}
