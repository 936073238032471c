package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/paysheet-hq/attendance-backend-go/internal/config"
	"github.com/paysheet-hq/attendance-backend-go/internal/domain/attendance"
	appHTTP "github.com/paysheet-hq/attendance-backend-go/internal/handler/http"
	"github.com/paysheet-hq/attendance-backend-go/internal/pkg/database"
	"github.com/paysheet-hq/attendance-backend-go/internal/pkg/metrics"
	"github.com/paysheet-hq/attendance-backend-go/internal/pkg/storage"
	"github.com/paysheet-hq/attendance-backend-go/internal/repository/postgresql"
	"github.com/paysheet-hq/attendance-backend-go/internal/service/assist"
	employeeService "github.com/paysheet-hq/attendance-backend-go/internal/service/employee"
	exportService "github.com/paysheet-hq/attendance-backend-go/internal/service/export"
	parserService "github.com/paysheet-hq/attendance-backend-go/internal/service/parser"
	payrollService "github.com/paysheet-hq/attendance-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	importRepo := postgresql.NewImportRepository(db)
	runRepo := postgresql.NewRunRepository(db)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}

	m := metrics.New()

	// The model fallback is optional; without an API key the deterministic
	// parser runs alone.
	var fallback attendance.ModelFallback
	if cfg.GenAI.APIKey != "" {
		fallback, err = assist.NewGeminiFallback(cfg.GenAI.APIKey, cfg.GenAI.Model)
		if err != nil {
			log.Fatal("Failed to initialize GenAI fallback:", err)
		}
	}

	empSvc := employeeService.NewEmployeeService(employeeRepo)
	parserSvc := parserService.NewParserService(empSvc, importRepo, fallback, cfg.Parser, m)
	payrollSvc := payrollService.NewPayrollService(empSvc, runRepo, cfg.Payroll, m)
	exportSvc := exportService.NewExportService(runRepo, fileStorage, m)

	employeeHandler := appHTTP.NewEmployeeHandler(empSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(parserSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc, exportSvc)

	router := appHTTP.NewRouter(
		cfg,
		m,
		employeeHandler,
		attendanceHandler,
		payrollHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
