package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/buildpro/backoffice-backend-go/internal/config"
	"github.com/buildpro/backoffice-backend-go/internal/domain/advance"
	"github.com/buildpro/backoffice-backend-go/internal/domain/attendance"
	"github.com/buildpro/backoffice-backend-go/internal/domain/client"
	"github.com/buildpro/backoffice-backend-go/internal/domain/payroll"
	"github.com/buildpro/backoffice-backend-go/internal/domain/quotation"
	"github.com/buildpro/backoffice-backend-go/internal/domain/worker"
	"github.com/buildpro/backoffice-backend-go/internal/fixtures"
	appHTTP "github.com/buildpro/backoffice-backend-go/internal/handler/http"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/cron"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/database"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/lock"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/storage"
	"github.com/buildpro/backoffice-backend-go/internal/repository/memory"
	"github.com/buildpro/backoffice-backend-go/internal/repository/postgresql"
	advanceService "github.com/buildpro/backoffice-backend-go/internal/service/advance"
	attendanceService "github.com/buildpro/backoffice-backend-go/internal/service/attendance"
	clientService "github.com/buildpro/backoffice-backend-go/internal/service/client"
	exportService "github.com/buildpro/backoffice-backend-go/internal/service/export"
	payrollService "github.com/buildpro/backoffice-backend-go/internal/service/payroll"
	quotationService "github.com/buildpro/backoffice-backend-go/internal/service/quotation"
	workerService "github.com/buildpro/backoffice-backend-go/internal/service/worker"
	"github.com/buildpro/backoffice-backend-go/migrations"
)

const version = "v1.0.0"

type repositories struct {
	workers     worker.WorkerRepository
	attendances attendance.AttendanceRepository
	advances    advance.AdvanceRepository
	deductions  payroll.DeductionRepository
	records     payroll.PaymentRecordRepository
	clients     client.ClientRepository
	quotations  quotation.QuotationRepository
}

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeRepos, err := newRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRepos()

	locker, closeLocker, err := newLocker(cfg)
	if err != nil {
		return err
	}
	defer closeLocker()

	fileStorage, err := newFileStorage(ctx, cfg)
	if err != nil {
		return err
	}

	workerSvc := workerService.NewWorkerService(repos.workers)
	attendanceSvc := attendanceService.NewAttendanceService(repos.attendances, repos.workers)
	clientSvc := clientService.NewClientService(repos.clients, repos.quotations)
	quotationSvc := quotationService.NewQuotationService(repos.quotations, repos.clients)
	advanceSvc := advanceService.NewAdvanceService(repos.advances, repos.workers, locker)
	payrollSvc := payrollService.NewPayrollService(repos.workers, repos.attendances, repos.advances, repos.deductions, repos.records, advanceSvc)
	if cfg.App.SeedDemo {
		if _, err := fixtures.SeedDemo(ctx, workerSvc, clientSvc); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}

	exportSvc := exportService.NewExportService(quotationSvc, payrollSvc, fileStorage, cfg.Storage.URLExpiry)

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		AllowedOrigins: []string{cfg.App.FrontendURL},
		Env:            cfg.App.Env,
		Version:        version,
		LogLevel:       cfg.SlogLevel(),
	}, appHTTP.Handlers{
		Worker:     appHTTP.NewWorkerHandler(workerSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Client:     appHTTP.NewClientHandler(clientSvc),
		Quotation:  appHTTP.NewQuotationHandler(quotationSvc),
		Advance:    appHTTP.NewAdvanceHandler(advanceSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Export:     appHTTP.NewExportHandler(exportSvc),
	})

	if cfg.Jobs.Enabled {
		scheduler := cron.NewScheduler(locker)
		cron.NewBackofficeJobs(advanceSvc, quotationSvc).RegisterJobs(scheduler, cfg.Jobs.Interval)
		scheduler.Start()
		defer scheduler.Stop()
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", srv.Addr, "storage_driver", cfg.App.StorageDriver, "file_storage", cfg.Storage.Type)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRepositories(ctx context.Context, cfg *config.Config) (repositories, func(), error) {
	if cfg.App.StorageDriver == "memory" {
		slog.Warn("Using in-memory repositories, data is lost on restart")
		return repositories{
			workers:     memory.NewWorkerRepository(),
			attendances: memory.NewAttendanceRepository(),
			advances:    memory.NewAdvanceRepository(),
			deductions:  memory.NewDeductionRepository(),
			records:     memory.NewPaymentRecordRepository(),
			clients:     memory.NewClientRepository(),
			quotations:  memory.NewQuotationRepository(),
		}, func() {}, nil
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return repositories{}, nil, fmt.Errorf("connect to database: %w", err)
	}
	if cfg.Database.Migrate {
		if err := db.Migrate(ctx, migrations.FS); err != nil {
			db.Close()
			return repositories{}, nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	return repositories{
		workers:     postgresql.NewWorkerRepository(db),
		attendances: postgresql.NewAttendanceRepository(db),
		advances:    postgresql.NewAdvanceRepository(db),
		deductions:  postgresql.NewDeductionRepository(db),
		records:     postgresql.NewPaymentRecordRepository(db),
		clients:     postgresql.NewClientRepository(db),
		quotations:  postgresql.NewQuotationRepository(db),
	}, db.Close, nil
}

func newLocker(cfg *config.Config) (lock.Locker, func(), error) {
	if cfg.Redis.LockDriver == "local" {
		return lock.NewLocalLocker(), func() {}, nil
	}

	rdb, err := database.NewRedisClient(database.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Timeout:  5 * time.Second,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}
	closeFn := func() {
		if err := rdb.Close(); err != nil {
			slog.Error("Failed to close redis", "error", err)
		}
	}
	return lock.NewRedisLocker(rdb, "backoffice:lock", cfg.Redis.LockTTL), closeFn, nil
}

func newFileStorage(ctx context.Context, cfg *config.Config) (storage.FileStorage, error) {
	switch cfg.Storage.Type {
	case "local":
		s, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("initialize local storage: %w", err)
		}
		return s, nil
	case "minio":
		s, err := storage.NewMinioStorage(ctx, storage.MinioConfig{
			Endpoint:        cfg.Storage.MinioEndpoint,
			AccessKeyID:     cfg.Storage.MinioAccessKey,
			SecretAccessKey: cfg.Storage.MinioSecretKey,
			Bucket:          cfg.Storage.MinioBucket,
			UseSSL:          cfg.Storage.MinioUseSSL,
			Region:          cfg.Storage.MinioRegion,
		})
		if err != nil {
			return nil, fmt.Errorf("initialize minio storage: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}
}
